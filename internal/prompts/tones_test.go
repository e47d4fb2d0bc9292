package prompts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"slangclip/internal/domain"
)

func TestForToneReturnsFixedEntries(t *testing.T) {
	t.Parallel()

	cases := map[domain.Tone]string{
		domain.ToneCasual:  casual,
		domain.ToneNeutral: neutral,
		domain.ToneFormal:  formal,
	}
	for tone, want := range cases {
		require.Equal(t, want, ForTone(tone), "tone %s", tone)
	}
}

func TestForToneUnknownFallsBackToNeutral(t *testing.T) {
	t.Parallel()

	for _, tone := range []domain.Tone{"", "pirate", "CASUAL"} {
		require.Equal(t, neutral, ForTone(tone), "tone %q", tone)
	}
}

func TestPromptsAreDistinctAndDemandBareOutput(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, tone := range Tones() {
		prompt := ForTone(tone)
		require.False(t, seen[prompt], "duplicate prompt for %s", tone)
		seen[prompt] = true
		require.Contains(t, prompt, "Output ONLY the translated text.", "tone %s", tone)
	}
}
