package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProvider(t *testing.T) {
	t.Parallel()

	require.Equal(t, ProviderGemini, ParseProvider(" Gemini "))
	require.Equal(t, ProviderOpenAI, ParseProvider("openai"))
	require.Equal(t, ProviderOpenAI, ParseProvider(""))
	require.Equal(t, ProviderOpenAI, ParseProvider("anthropic"))
	require.False(t, Provider("anthropic").Valid())
}

func TestParseTone(t *testing.T) {
	t.Parallel()

	require.Equal(t, ToneCasual, ParseTone("casual"))
	require.Equal(t, ToneFormal, ParseTone("FORMAL"))
	require.Equal(t, ToneNeutral, ParseTone("pirate"))
	require.Equal(t, ToneNeutral, ParseTone(""))
}

func TestPrependHistoryCapsAndKeepsNewestFirst(t *testing.T) {
	t.Parallel()

	var history []HistoryItem
	for i := 0; i < HistoryLimit+5; i++ {
		history = PrependHistory(history, HistoryItem{ID: fmt.Sprint(i)}, HistoryLimit)
	}

	require.Len(t, history, HistoryLimit)
	require.Equal(t, fmt.Sprint(HistoryLimit+4), history[0].ID)
	require.Equal(t, "5", history[len(history)-1].ID)
}

func TestPrependHistoryDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := []HistoryItem{{ID: "a"}, {ID: "b"}}
	out := PrependHistory(original, HistoryItem{ID: "c"}, 2)

	require.Equal(t, []HistoryItem{{ID: "c"}, {ID: "a"}}, out)
	require.Equal(t, "a", original[0].ID)
}

func TestSettingsNormalize(t *testing.T) {
	t.Parallel()

	s := Settings{Provider: "weird", Tone: "loud"}.Normalize()
	require.Equal(t, ProviderOpenAI, s.Provider)
	require.Equal(t, ToneNeutral, s.Tone)
	require.NotNil(t, s.History)
}

func TestProviderErrorKeepsMessageVerbatim(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: timeout")
	err := &ProviderError{Provider: ProviderOpenAI, Message: "Incorrect API key provided: sk-***", Err: cause}
	require.Equal(t, "Incorrect API key provided: sk-***", err.Error())
	require.ErrorIs(t, err, cause)

	bare := &ProviderError{Err: cause}
	require.Equal(t, cause.Error(), bare.Error())
}
