package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"slangclip/internal/domain"
	"slangclip/internal/ports"
)

// resultFinalizer records a finished translation and optionally pastes it.
type resultFinalizer struct {
	store    ports.SettingsStore
	paster   ports.Paster
	notifier ports.Notifier
	events   ports.EventSink
	logger   *slog.Logger

	// storeMu serializes load-modify-save cycles on the settings store.
	storeMu *sync.Mutex

	historyLimit int
	now          func() time.Time
	newID        func() string
}

func (f resultFinalizer) Finalize(ctx context.Context, req domain.TranslationRequest, translated string, autoPaste, record bool) (domain.TranslateResult, domain.TranslationReason) {
	result := domain.TranslateResult{
		Original:   req.Text,
		Translated: translated,
		Tone:       req.Tone,
	}

	if record {
		if err := f.record(ctx, result); err != nil {
			f.logger.Error("failed to record history", "error", err)
			f.events.TranslationError(domain.ErrorCodeSettings, "translation ready but history could not be saved")
		}
	}

	if !autoPaste {
		return result, domain.ReasonResultReady
	}

	if err := f.paster.Paste(ctx, translated); err != nil {
		f.logger.Warn("auto-paste failed", "error", err)
		f.events.TranslationError(domain.ErrorCodePaste, "translation ready but auto-paste failed")
		if f.notifier != nil {
			_ = f.notifier.Notify("SlangClip", "Translation ready (auto-paste failed)")
		}
		return result, domain.ReasonResultReadyPasteFailed
	}

	result.Pasted = true
	return result, domain.ReasonResultPasted
}

func (f resultFinalizer) record(ctx context.Context, result domain.TranslateResult) error {
	f.storeMu.Lock()
	defer f.storeMu.Unlock()

	settings, err := f.store.Load(ctx)
	if err != nil {
		return err
	}
	settings.History = domain.PrependHistory(settings.History, domain.HistoryItem{
		ID:         f.newID(),
		Original:   result.Original,
		Translated: result.Translated,
		Tone:       result.Tone,
		Timestamp:  f.now().UnixMilli(),
	}, f.historyLimit)
	return f.store.Save(ctx, settings)
}
