package domain

// HistoryLimit caps the number of retained history entries.
const HistoryLimit = 50

// HistoryItem is one completed translation.
type HistoryItem struct {
	ID         string `json:"id"`
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Tone       Tone   `json:"tone"`
	Timestamp  int64  `json:"timestamp"`
}

// Settings holds the user preferences persisted between runs.
type Settings struct {
	APIKey    string        `json:"apiKey"`
	Provider  Provider      `json:"provider"`
	Model     string        `json:"model"`
	Tone      Tone          `json:"tone"`
	AutoPaste bool          `json:"autoPaste"`
	History   []HistoryItem `json:"history"`
}

// DefaultSettings returns the preferences of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Provider:  ProviderOpenAI,
		Tone:      ToneNeutral,
		AutoPaste: true,
		History:   []HistoryItem{},
	}
}

// Normalize coerces provider and tone to known values.
func (s Settings) Normalize() Settings {
	s.Provider = ParseProvider(string(s.Provider))
	s.Tone = ParseTone(string(s.Tone))
	if s.History == nil {
		s.History = []HistoryItem{}
	}
	if len(s.History) > HistoryLimit {
		s.History = s.History[:HistoryLimit]
	}
	return s
}

// PrependHistory returns a new slice with item first, trimmed to limit.
// The input slice is not modified.
func PrependHistory(history []HistoryItem, item HistoryItem, limit int) []HistoryItem {
	if limit <= 0 {
		limit = HistoryLimit
	}
	out := make([]HistoryItem, 0, min(len(history)+1, limit))
	out = append(out, item)
	for _, existing := range history {
		if len(out) >= limit {
			break
		}
		out = append(out, existing)
	}
	return out
}

// FindHistory returns the entry with id.
func FindHistory(history []HistoryItem, id string) (HistoryItem, bool) {
	for _, item := range history {
		if item.ID == id {
			return item, true
		}
	}
	return HistoryItem{}, false
}
