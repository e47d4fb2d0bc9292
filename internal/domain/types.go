package domain

import "strings"

// Provider identifies an LLM vendor.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// ParseProvider maps a stored or user supplied value to a Provider.
// Anything that is not a known provider resolves to OpenAI.
func ParseProvider(value string) Provider {
	switch Provider(strings.ToLower(strings.TrimSpace(value))) {
	case ProviderGemini:
		return ProviderGemini
	default:
		return ProviderOpenAI
	}
}

// Valid reports whether p is a supported provider.
func (p Provider) Valid() bool {
	return p == ProviderOpenAI || p == ProviderGemini
}

// Tone selects the register of the translation.
type Tone string

const (
	ToneCasual  Tone = "casual"
	ToneNeutral Tone = "neutral"
	ToneFormal  Tone = "formal"
)

// ParseTone maps a stored or user supplied value to a Tone, defaulting to neutral.
func ParseTone(value string) Tone {
	switch Tone(strings.ToLower(strings.TrimSpace(value))) {
	case ToneCasual:
		return ToneCasual
	case ToneFormal:
		return ToneFormal
	default:
		return ToneNeutral
	}
}

// TranslationRequest is one user-initiated translate action.
type TranslationRequest struct {
	Text     string   `json:"text"`
	APIKey   string   `json:"-"`
	Provider Provider `json:"provider"`
	Model    string   `json:"model"`
	Tone     Tone     `json:"tone"`
}

// TranslationState models the lifecycle of a single translate call.
type TranslationState string

const (
	TranslationStateIdle      TranslationState = "idle"
	TranslationStatePending   TranslationState = "pending"
	TranslationStateStreaming TranslationState = "streaming"
	TranslationStateComplete  TranslationState = "complete"
	TranslationStateFailed    TranslationState = "failed"
)

// TranslationReason provides a structured reason for state transitions.
type TranslationReason string

const (
	ReasonReady                  TranslationReason = "ready"
	ReasonRequestSent            TranslationReason = "request_sent"
	ReasonFirstChunk             TranslationReason = "first_chunk"
	ReasonResultPasted           TranslationReason = "result_pasted"
	ReasonResultReady            TranslationReason = "result_ready"
	ReasonResultReadyPasteFailed TranslationReason = "result_ready_paste_failed"
	ReasonInvalidInput           TranslationReason = "invalid_input"
	ReasonProviderFailed         TranslationReason = "provider_failed"
	ReasonCancelled              TranslationReason = "cancelled"
)

// ErrorCode identifies backend errors surfaced to the UI.
type ErrorCode string

const (
	ErrorCodeStartup    ErrorCode = "startup"
	ErrorCodeValidation ErrorCode = "validation"
	ErrorCodeProvider   ErrorCode = "provider"
	ErrorCodeSettings   ErrorCode = "settings"
	ErrorCodeClipboard  ErrorCode = "clipboard"
	ErrorCodePaste      ErrorCode = "paste"
	ErrorCodeHotkey     ErrorCode = "hotkey"
)

// TranslateResult is returned to the UI once a translation completes.
type TranslateResult struct {
	Original   string `json:"original"`
	Translated string `json:"translated"`
	Tone       Tone   `json:"tone"`
	Pasted     bool   `json:"pasted"`
}

// Status summarizes the controller state for the UI.
type Status struct {
	State   TranslationState `json:"state"`
	Active  bool             `json:"active"`
	Message string           `json:"message,omitempty"`
	Partial string           `json:"partial,omitempty"`
}

// View is one of the UI screens. Each view has its own window size.
type View string

const (
	ViewTranslator View = "translator"
	ViewSettings   View = "settings"
	ViewHistory    View = "history"
)
