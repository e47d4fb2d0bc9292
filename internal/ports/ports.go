package ports

import (
	"context"

	"slangclip/internal/domain"
)

// ChunkFunc receives one streamed fragment of output text.
type ChunkFunc func(chunk string)

// ChatRequest is the provider-agnostic payload of a streaming translation call.
type ChatRequest struct {
	APIKey       string
	Model        string
	SystemPrompt string
	Text         string
}

// TranslationProvider is implemented once per LLM vendor.
type TranslationProvider interface {
	ListModels(ctx context.Context, apiKey string) ([]string, error)
	StreamTranslate(ctx context.Context, req ChatRequest, onChunk ChunkFunc) (string, error)
}

// ModelLister returns the advisory model catalogue for a provider.
type ModelLister interface {
	ListModels(ctx context.Context, provider domain.Provider, apiKey string) []string
}

// Translator runs one translation request end to end.
type Translator interface {
	Translate(ctx context.Context, req domain.TranslationRequest, onChunk ChunkFunc) (string, error)
}

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	GetText(ctx context.Context) (string, error)
	SetText(ctx context.Context, text string) error
}

// Paster places text into the previously focused application.
type Paster interface {
	Paste(ctx context.Context, text string) error
}

// Notifier shows a desktop notification.
type Notifier interface {
	Notify(title, message string) error
}

// SettingsStore persists user preferences.
type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

// EventSink emits backend state/events to the UI.
type EventSink interface {
	TranslationStateChanged(state domain.TranslationState, reason domain.TranslationReason)
	TranslationChunk(chunk string)
	TranslationComplete(result domain.TranslateResult)
	TranslationError(code domain.ErrorCode, detail string)
}
