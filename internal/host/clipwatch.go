package host

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"slangclip/internal/ports"
)

// ClipboardWatcher polls the clipboard and reports new text. The content
// present when Run starts is the baseline and is not reported.
type ClipboardWatcher struct {
	clipboard ports.Clipboard
	interval  time.Duration
	onChange  func(text string)
	logger    *slog.Logger

	last   string
	failed bool
}

func NewClipboardWatcher(clipboard ports.Clipboard, interval time.Duration, onChange func(string), logger *slog.Logger) *ClipboardWatcher {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ClipboardWatcher{clipboard: clipboard, interval: interval, onChange: onChange, logger: logger}
}

// Run polls until ctx is done.
func (w *ClipboardWatcher) Run(ctx context.Context) {
	if text, err := w.clipboard.GetText(ctx); err == nil {
		w.last = normalizeClip(text)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

// poll reads the clipboard once and reports whether it changed.
func (w *ClipboardWatcher) poll(ctx context.Context) bool {
	text, err := w.clipboard.GetText(ctx)
	if err != nil {
		if !w.failed {
			w.logger.Warn("clipboard read failed", "error", err)
			w.failed = true
		}
		return false
	}
	w.failed = false

	normalized := normalizeClip(text)
	if normalized == "" || normalized == w.last {
		return false
	}
	w.last = normalized
	if w.onChange != nil {
		w.onChange(normalized)
	}
	return true
}

// normalizeClip composes to NFC and trims so that re-copying the same
// text from a different source does not count as a change.
func normalizeClip(text string) string {
	return strings.TrimSpace(norm.NFC.String(text))
}
