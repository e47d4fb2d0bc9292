package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"slangclip/internal/domain"
	"slangclip/internal/ports"
	"slangclip/internal/providers/sse"
)

const (
	DefaultAPIBaseURL = "https://api.openai.com/v1"
	DefaultModel      = "gpt-3.5-turbo"
)

// Config controls the OpenAI endpoint.
type Config struct {
	APIBaseURL   string
	DefaultModel string
	HTTPClient   *http.Client
}

// Provider implements ports.TranslationProvider for OpenAI-compatible chat completions.
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

// ListModels returns every model id the account can see.
func (p *Provider) ListModels(ctx context.Context, apiKey string) ([]string, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("OpenAI API key is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.APIBaseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build models request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenAI models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp)
	}

	var payload struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode OpenAI models: %w", err)
	}
	if payload.Data == nil {
		return nil, errors.New("OpenAI models response has no data field")
	}

	ids := make([]string, 0, len(payload.Data))
	for _, m := range payload.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// StreamTranslate runs a streaming chat completion with the system prompt
// and the user text, relaying every content delta to onChunk.
func (p *Provider) StreamTranslate(ctx context.Context, in ports.ChatRequest, onChunk ports.ChunkFunc) (string, error) {
	model := strings.TrimSpace(in.Model)
	if model == "" {
		model = p.cfg.DefaultModel
	}

	body, err := json.Marshal(chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: in.SystemPrompt},
			{Role: "user", Content: in.Text},
		},
		Stream: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.APIBaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+in.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", responseError(resp)
	}

	var full strings.Builder
	err = sse.Each(ctx, resp.Body, func(data []byte) (bool, error) {
		var chunk streamChunk
		if err := json.Unmarshal(data, &chunk); err != nil {
			return false, nil
		}
		if chunk.Error != nil && chunk.Error.Message != "" {
			return true, &domain.ProviderError{Provider: domain.ProviderOpenAI, Message: chunk.Error.Message}
		}
		if len(chunk.Choices) == 0 {
			return false, nil
		}
		if content := chunk.Choices[0].Delta.Content; content != "" {
			full.WriteString(content)
			if onChunk != nil {
				onChunk(content)
			}
		}
		return false, nil
	})
	if err != nil {
		return full.String(), err
	}
	return full.String(), nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    any    `json:"code"`
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason *string `json:"finish_reason"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

// responseError turns a non-200 response into a ProviderError carrying the
// vendor message when one is present.
func responseError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var payload struct {
		Error apiError `json:"error"`
	}
	message := ""
	if err := json.Unmarshal(raw, &payload); err == nil {
		message = strings.TrimSpace(payload.Error.Message)
	}
	if message == "" {
		message = resp.Status
		if body := strings.TrimSpace(string(raw)); body != "" {
			message += ": " + body
		}
	}
	return &domain.ProviderError{
		Provider: domain.ProviderOpenAI,
		Message:  message,
		Err:      fmt.Errorf("openai returned status %d", resp.StatusCode),
	}
}
