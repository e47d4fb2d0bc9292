package usecase

import (
	"context"
	"sync"

	"slangclip/internal/domain"
)

type activeTranslation struct {
	ctx    context.Context
	cancel context.CancelFunc

	stateMu sync.Mutex
	state   domain.TranslationState

	accumulator *streamAccumulator
}

func (t *activeTranslation) setState(state domain.TranslationState) {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()
	t.state = state
}

func (t *activeTranslation) getState() domain.TranslationState {
	t.stateMu.Lock()
	defer t.stateMu.Unlock()
	return t.state
}
