package host

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"slangclip/internal/ports"
)

// FocusReleaser hands keyboard focus back to the application that had it
// before the translator window was shown.
type FocusReleaser interface {
	ReleaseFocus(ctx context.Context) error
}

// Keystroker sends the platform paste shortcut to the focused application.
type Keystroker interface {
	PasteShortcut() error
}

// KeystrokePaster implements ports.Paster: it writes the clipboard, releases
// focus, waits for the previous application to regain it, then sends the
// paste shortcut.
type KeystrokePaster struct {
	clipboard ports.Clipboard
	focus     FocusReleaser
	keys      Keystroker
	delay     time.Duration
	logger    *slog.Logger
}

func NewKeystrokePaster(clipboard ports.Clipboard, focus FocusReleaser, keys Keystroker, delay time.Duration, logger *slog.Logger) *KeystrokePaster {
	if logger == nil {
		logger = slog.Default()
	}
	return &KeystrokePaster{clipboard: clipboard, focus: focus, keys: keys, delay: delay, logger: logger}
}

func (p *KeystrokePaster) Paste(ctx context.Context, text string) error {
	if err := p.clipboard.SetText(ctx, text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	if p.focus != nil {
		if err := p.focus.ReleaseFocus(ctx); err != nil {
			p.logger.Warn("release focus failed", "error", err)
		}
	}

	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if p.keys == nil {
		return nil
	}
	if err := p.keys.PasteShortcut(); err != nil {
		return fmt.Errorf("send paste shortcut: %w", err)
	}
	p.logger.Debug("pasted translation", "chars", len([]rune(text)))
	return nil
}
