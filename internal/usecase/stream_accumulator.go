package usecase

import (
	"strings"
	"sync"
)

// streamAccumulator keeps the partial output of the in-flight translation so
// the UI can re-render it after the window is hidden and shown again.
type streamAccumulator struct {
	mu     sync.Mutex
	text   strings.Builder
	chunks int
}

func newStreamAccumulator() *streamAccumulator {
	return &streamAccumulator{}
}

func (a *streamAccumulator) Add(chunk string) {
	if chunk == "" {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.text.WriteString(chunk)
	a.chunks++
}

func (a *streamAccumulator) Partial() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.text.String()
}

func (a *streamAccumulator) Chunks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chunks
}
