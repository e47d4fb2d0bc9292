// Package prompts holds the fixed system instructions sent with each translation.
package prompts

import "slangclip/internal/domain"

const (
	casual  = "You are a translator that converts Chinese text into authentic, casual, and punchy American English slang/Gen Z slang. Use internet abbreviations (like 'rn', 'fr', 'ngl') where natural. Output ONLY the translated text. No explanations."
	neutral = "You are a translator that converts Chinese text into authentic, everyday American English. Speak like a normal millennial—casual but polite, standard capitalization, no excessive slang. Output ONLY the translated text."
	formal  = "You are a translator that converts Chinese text into professional, clear, and concise American English. Suitable for workplace communication. Output ONLY the translated text."
)

var table = map[domain.Tone]string{
	domain.ToneCasual:  casual,
	domain.ToneNeutral: neutral,
	domain.ToneFormal:  formal,
}

// ForTone returns the system instruction for tone. Unknown tones get the neutral one.
func ForTone(tone domain.Tone) string {
	if prompt, ok := table[tone]; ok {
		return prompt
	}
	return neutral
}

// Tones lists the selectable tones in display order.
func Tones() []domain.Tone {
	return []domain.Tone{domain.ToneCasual, domain.ToneNeutral, domain.ToneFormal}
}
