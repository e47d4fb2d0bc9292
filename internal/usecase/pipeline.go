package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"slangclip/internal/domain"
	"slangclip/internal/ports"
	"slangclip/internal/prompts"
)

// ProviderAdapter is the vendor-facing side of the pipeline.
type ProviderAdapter interface {
	Supports(provider domain.Provider) bool
	Translate(ctx context.Context, provider domain.Provider, req ports.ChatRequest, onChunk ports.ChunkFunc) (string, error)
}

// StateFunc observes the per-request lifecycle: pending, streaming, then
// complete or failed.
type StateFunc func(state domain.TranslationState)

var _ ports.Translator = (*Pipeline)(nil)

// Pipeline validates a request, picks the tone prompt and relays the
// provider stream. It keeps no state between calls.
type Pipeline struct {
	adapter ProviderAdapter
	logger  *slog.Logger
}

func NewPipeline(adapter ProviderAdapter, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{adapter: adapter, logger: logger}
}

// Translate implements ports.Translator.
func (p *Pipeline) Translate(ctx context.Context, req domain.TranslationRequest, onChunk ports.ChunkFunc) (string, error) {
	return p.Run(ctx, req, onChunk, nil)
}

// Run executes one request. Chunks are forwarded to onChunk synchronously
// and in arrival order until ctx is cancelled; the returned text is their
// untouched concatenation.
func (p *Pipeline) Run(ctx context.Context, req domain.TranslationRequest, onChunk ports.ChunkFunc, onState StateFunc) (string, error) {
	if err := p.validate(req); err != nil {
		return "", err
	}

	notify := func(state domain.TranslationState) {
		if onState != nil {
			onState(state)
		}
	}

	started := time.Now()
	chunks := 0
	relay := func(chunk string) {
		if ctx.Err() != nil {
			return
		}
		chunks++
		if chunks == 1 {
			notify(domain.TranslationStateStreaming)
		}
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	notify(domain.TranslationStatePending)
	p.logger.Debug("translation started",
		"provider", req.Provider,
		"model", req.Model,
		"tone", req.Tone,
		"chars", len([]rune(req.Text)),
	)

	out, err := p.adapter.Translate(ctx, req.Provider, ports.ChatRequest{
		APIKey:       req.APIKey,
		Model:        req.Model,
		SystemPrompt: prompts.ForTone(req.Tone),
		Text:         req.Text,
	}, relay)
	if err == nil && ctx.Err() != nil {
		err = &domain.ProviderError{Provider: req.Provider, Err: ctx.Err()}
	}
	if err != nil {
		notify(domain.TranslationStateFailed)
		if errors.Is(err, context.Canceled) {
			p.logger.Info("translation cancelled", "provider", req.Provider, "chunks", chunks)
		} else {
			p.logger.Warn("translation failed", "provider", req.Provider, "chunks", chunks, "error", err)
		}
		return "", err
	}

	notify(domain.TranslationStateComplete)
	p.logger.Info("translation complete",
		"provider", req.Provider,
		"chunks", chunks,
		"chars", len([]rune(out)),
		"elapsed", time.Since(started),
	)
	return out, nil
}

func (p *Pipeline) validate(req domain.TranslationRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return domain.NewValidationError("text", "Text to translate is empty")
	}
	if strings.TrimSpace(req.APIKey) == "" {
		return domain.NewValidationError("apiKey", "API Key is missing")
	}
	if !req.Provider.Valid() || !p.adapter.Supports(req.Provider) {
		return domain.NewValidationError("provider", "Unsupported provider: %q", req.Provider)
	}
	return nil
}
