// Package providers normalizes the supported LLM vendors behind one adapter.
package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/samber/lo"

	"slangclip/internal/domain"
	"slangclip/internal/ports"
)

var fallbackModels = map[domain.Provider][]string{
	domain.ProviderGemini: {"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"},
	domain.ProviderOpenAI: {"gpt-3.5-turbo", "gpt-4", "gpt-4o"},
}

// FallbackModels returns a copy of the static model list for provider.
func FallbackModels(provider domain.Provider) []string {
	models, ok := fallbackModels[provider]
	if !ok {
		models = fallbackModels[domain.ProviderOpenAI]
	}
	return append([]string(nil), models...)
}

// Adapter dispatches to the vendor client registered for each provider.
type Adapter struct {
	vendors map[domain.Provider]ports.TranslationProvider
	logger  *slog.Logger
}

func NewAdapter(vendors map[domain.Provider]ports.TranslationProvider, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	registered := make(map[domain.Provider]ports.TranslationProvider, len(vendors))
	for provider, vendor := range vendors {
		if vendor != nil {
			registered[provider] = vendor
		}
	}
	return &Adapter{vendors: registered, logger: logger}
}

// Supports reports whether a vendor client is registered for provider.
func (a *Adapter) Supports(provider domain.Provider) bool {
	_, ok := a.vendors[provider]
	return ok
}

// ListModels never fails: any error degrades to the static fallback list.
func (a *Adapter) ListModels(ctx context.Context, provider domain.Provider, apiKey string) []string {
	vendor, ok := a.vendors[provider]
	if !ok {
		a.logger.Warn("no vendor registered, using fallback models", "provider", provider)
		return FallbackModels(provider)
	}
	if strings.TrimSpace(apiKey) == "" {
		return FallbackModels(provider)
	}

	raw, err := vendor.ListModels(ctx, apiKey)
	if err != nil {
		a.logger.Warn("model listing failed, using fallback models", "provider", provider, "error", err)
		return FallbackModels(provider)
	}
	return filterModels(provider, raw)
}

// Translate streams a translation from the vendor behind provider. Every
// failure is returned as a *domain.ProviderError.
func (a *Adapter) Translate(ctx context.Context, provider domain.Provider, req ports.ChatRequest, onChunk ports.ChunkFunc) (string, error) {
	vendor, ok := a.vendors[provider]
	if !ok {
		return "", &domain.ProviderError{Provider: provider, Message: fmt.Sprintf("unsupported provider: %s", provider)}
	}

	out, err := vendor.StreamTranslate(ctx, req, onChunk)
	if err != nil {
		return out, asProviderError(provider, err)
	}
	return out, nil
}

func asProviderError(provider domain.Provider, err error) error {
	var providerErr *domain.ProviderError
	if errors.As(err, &providerErr) {
		if providerErr.Provider == "" {
			providerErr.Provider = provider
		}
		return providerErr
	}
	return &domain.ProviderError{Provider: provider, Err: err}
}

func filterModels(provider domain.Provider, raw []string) []string {
	switch provider {
	case domain.ProviderGemini:
		names := lo.Map(raw, func(name string, _ int) string {
			return strings.Replace(name, "models/", "", 1)
		})
		return lo.Filter(names, func(name string, _ int) bool {
			return strings.Contains(name, "gemini")
		})
	default:
		ids := lo.Filter(raw, func(id string, _ int) bool {
			return strings.Contains(id, "gpt")
		})
		sort.Strings(ids)
		return ids
	}
}
