package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"slangclip/internal/domain"
	"slangclip/internal/ports"
	"slangclip/internal/providers/sse"
)

const (
	DefaultAPIBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel      = "gemini-1.5-flash"
	apiVersion        = "v1beta"
)

// Config controls the Generative Language API endpoint.
type Config struct {
	APIBaseURL   string
	DefaultModel string
	HTTPClient   *http.Client
}

// Provider implements ports.TranslationProvider for Gemini.
type Provider struct {
	cfg Config
}

func NewProvider(cfg Config) *Provider {
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	return &Provider{cfg: cfg}
}

// ListModels returns the raw model names, e.g. "models/gemini-1.5-pro".
func (p *Provider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("Gemini API key is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.APIBaseURL+"/"+apiVersion+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build models request: %w", err)
	}
	req.Header.Set("x-goog-api-key", apiKey)

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list Gemini models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var payload struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode Gemini models: %w", err)
	}
	if payload.Models == nil {
		return nil, errors.New("Gemini models response has no models field")
	}

	names := make([]string, 0, len(payload.Models))
	for _, m := range payload.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// StreamTranslate calls streamGenerateContent in SSE mode and relays each
// candidate text part to onChunk.
func (p *Provider) StreamTranslate(ctx context.Context, in ports.ChatRequest, onChunk ports.ChunkFunc) (string, error) {
	model := strings.TrimPrefix(strings.TrimSpace(in.Model), "models/")
	if model == "" {
		model = p.cfg.DefaultModel
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: buildPrompt(in.SystemPrompt, in.Text)}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/models/%s:streamGenerateContent?alt=sse", p.cfg.APIBaseURL, apiVersion, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("x-goog-api-key", in.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", responseError(resp)
	}

	var full strings.Builder
	err = sse.Each(ctx, resp.Body, func(data []byte) (bool, error) {
		var chunk generateResponse
		if err := json.Unmarshal(data, &chunk); err != nil {
			return false, nil
		}
		if chunk.Error != nil && chunk.Error.Message != "" {
			return true, &domain.ProviderError{Provider: domain.ProviderGemini, Message: chunk.Error.Message}
		}
		if reason := chunk.PromptFeedback.BlockReason; reason != "" {
			return true, &domain.ProviderError{
				Provider: domain.ProviderGemini,
				Message:  fmt.Sprintf("[GoogleGenerativeAI Error]: Text not available. Response was blocked due to %s", reason),
			}
		}
		if text := chunk.text(); text != "" {
			full.WriteString(text)
			if onChunk != nil {
				onChunk(text)
			}
		}
		return false, nil
	})
	if err != nil {
		return full.String(), err
	}
	return full.String(), nil
}

// buildPrompt folds the system instruction and the user text into a single
// turn, in the Human/Translator framing the prompts were tuned with.
func buildPrompt(systemPrompt, text string) string {
	return systemPrompt + "\n\nHuman: " + text + "\nTranslator:"
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *apiError `json:"error"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	// The API answers either with an object or, for some errors, a one-element array.
	var single struct {
		Error apiError `json:"error"`
	}
	var list []struct {
		Error apiError `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(raw, &single); err == nil {
		message = strings.TrimSpace(single.Error.Message)
	} else if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		message = strings.TrimSpace(list[0].Error.Message)
	}
	if message == "" {
		message = resp.Status
		if body := strings.TrimSpace(string(raw)); body != "" {
			message += ": " + body
		}
	}
	return &domain.ProviderError{
		Provider: domain.ProviderGemini,
		Message:  message,
		Err:      fmt.Errorf("gemini returned status %d", resp.StatusCode),
	}
}
