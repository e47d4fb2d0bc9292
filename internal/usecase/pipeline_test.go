package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"slangclip/internal/domain"
	"slangclip/internal/ports"
	"slangclip/internal/prompts"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validRequest() domain.TranslationRequest {
	return domain.TranslationRequest{
		Text:     "今天好累",
		APIKey:   "sk-test",
		Provider: domain.ProviderOpenAI,
		Model:    "gpt-4o",
		Tone:     domain.ToneNeutral,
	}
}

func TestPipelineRejectsBlankText(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{chunks: []string{"x"}}
	p := NewPipeline(adapter, quietLogger())

	for _, text := range []string{"", "   ", "\n\t"} {
		req := validRequest()
		req.Text = text
		_, err := p.Translate(context.Background(), req, nil)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr, "text %q", text)
		require.Equal(t, "Text to translate is empty", validationErr.Message)
	}
	require.Zero(t, adapter.callCount())
}

func TestPipelineRejectsMissingAPIKey(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{}
	p := NewPipeline(adapter, quietLogger())

	req := validRequest()
	req.APIKey = " "
	_, err := p.Translate(context.Background(), req, nil)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "API Key is missing", validationErr.Message)
	require.Zero(t, adapter.callCount())
}

func TestPipelineRejectsUnsupportedProvider(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{unsupported: domain.ProviderGemini}
	p := NewPipeline(adapter, quietLogger())

	req := validRequest()
	req.Provider = domain.ProviderGemini
	_, err := p.Translate(context.Background(), req, nil)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "provider", validationErr.Field)
	require.Zero(t, adapter.callCount())
}

func TestPipelineSendsTonePrompt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		tone domain.Tone
		want string
	}{
		{tone: domain.ToneCasual, want: prompts.ForTone(domain.ToneCasual)},
		{tone: domain.ToneFormal, want: prompts.ForTone(domain.ToneFormal)},
		{tone: domain.Tone("pirate"), want: prompts.ForTone(domain.ToneNeutral)},
	}

	for _, tc := range cases {
		adapter := &fakeAdapter{chunks: []string{"ok"}}
		p := NewPipeline(adapter, quietLogger())

		req := validRequest()
		req.Tone = tc.tone
		_, err := p.Translate(context.Background(), req, nil)
		require.NoError(t, err)

		require.Equal(t, ports.ChatRequest{
			APIKey:       req.APIKey,
			Model:        req.Model,
			SystemPrompt: tc.want,
			Text:         req.Text,
		}, adapter.lastRequest(), "tone %q", tc.tone)
	}
}

func TestPipelineRelaysChunksInOrder(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{chunks: []string{"Hel", "lo ", "world"}}
	p := NewPipeline(adapter, quietLogger())

	var got []string
	out, err := p.Translate(context.Background(), validRequest(), func(chunk string) {
		got = append(got, chunk)
	})
	require.NoError(t, err)
	require.Equal(t, "Hello world", out)
	require.Equal(t, []string{"Hel", "lo ", "world"}, got)
}

func TestPipelineReportsLifecycle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		adapter *fakeAdapter
		want    []domain.TranslationState
	}{
		{
			name:    "streamed",
			adapter: &fakeAdapter{chunks: []string{"a", "b"}},
			want:    []domain.TranslationState{domain.TranslationStatePending, domain.TranslationStateStreaming, domain.TranslationStateComplete},
		},
		{
			name:    "empty output",
			adapter: &fakeAdapter{},
			want:    []domain.TranslationState{domain.TranslationStatePending, domain.TranslationStateComplete},
		},
		{
			name:    "failure",
			adapter: &fakeAdapter{err: &domain.ProviderError{Message: "boom"}},
			want:    []domain.TranslationState{domain.TranslationStatePending, domain.TranslationStateFailed},
		},
	}

	for _, tc := range cases {
		p := NewPipeline(tc.adapter, quietLogger())
		var states []domain.TranslationState
		_, _ = p.Run(context.Background(), validRequest(), nil, func(state domain.TranslationState) {
			states = append(states, state)
		})
		require.Equal(t, tc.want, states, tc.name)
	}
}

func TestPipelinePassesProviderErrorVerbatim(t *testing.T) {
	t.Parallel()

	vendorErr := &domain.ProviderError{Provider: domain.ProviderOpenAI, Message: "Incorrect API key provided: sk-test."}
	adapter := &fakeAdapter{chunks: []string{"partial"}, err: vendorErr}
	p := NewPipeline(adapter, quietLogger())

	out, err := p.Translate(context.Background(), validRequest(), nil)
	require.Empty(t, out)
	var providerErr *domain.ProviderError
	require.ErrorAs(t, err, &providerErr)
	require.EqualError(t, err, "Incorrect API key provided: sk-test.")
}

func TestPipelineDropsChunksAfterCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	adapter := &fakeAdapter{
		chunks:     []string{"first", "second", "third"},
		afterChunk: map[int]func(){0: cancel},
	}
	p := NewPipeline(adapter, quietLogger())

	var got []string
	var states []domain.TranslationState
	out, err := p.Run(ctx, validRequest(), func(chunk string) {
		got = append(got, chunk)
	}, func(state domain.TranslationState) {
		states = append(states, state)
	})

	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, out)
	require.Equal(t, []string{"first"}, got)
	require.Equal(t, domain.TranslationStateFailed, states[len(states)-1])
}

func TestPipelineConcurrentCallsStayIsolated(t *testing.T) {
	t.Parallel()

	adapter := &fakeAdapter{echo: true}
	p := NewPipeline(adapter, quietLogger())

	const calls = 16
	var wg sync.WaitGroup
	errs := make(chan error, calls)
	for i := range calls {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest()
			req.Text = fmt.Sprintf("request-%02d", i)

			var received strings.Builder
			out, err := p.Translate(context.Background(), req, func(chunk string) {
				received.WriteString(chunk)
			})
			if err != nil {
				errs <- err
				return
			}
			if out != req.Text || received.String() != req.Text {
				errs <- fmt.Errorf("call %d got %q / %q", i, out, received.String())
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, calls, adapter.callCount())
}

// fakeAdapter streams fixed chunks, or echoes the request text one rune at a time.
type fakeAdapter struct {
	mu sync.Mutex

	chunks      []string
	err         error
	echo        bool
	unsupported domain.Provider
	afterChunk  map[int]func()
	block       chan struct{}

	calls int
	last  ports.ChatRequest
}

func (f *fakeAdapter) Supports(provider domain.Provider) bool {
	return provider != f.unsupported
}

func (f *fakeAdapter) Translate(ctx context.Context, _ domain.Provider, req ports.ChatRequest, onChunk ports.ChunkFunc) (string, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	chunks := f.chunks
	f.mu.Unlock()

	if f.echo {
		chunks = strings.Split(req.Text, "")
	}

	var out strings.Builder
	for i, chunk := range chunks {
		out.WriteString(chunk)
		onChunk(chunk)
		if hook, ok := f.afterChunk[i]; ok {
			hook()
		}
	}
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return out.String(), &domain.ProviderError{Err: ctx.Err()}
		}
	}
	return out.String(), f.err
}

func (f *fakeAdapter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeAdapter) lastRequest() ports.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}
