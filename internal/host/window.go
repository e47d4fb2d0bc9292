// Package host holds the platform glue around the translator: window sizing,
// pasting into the focused application, the global hotkey, clipboard
// watching and desktop notifications.
package host

import (
	"math"
	"sync"

	"slangclip/internal/domain"
)

// Size is a window size in logical pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Bounds limits window sizes. A zero Max dimension is unbounded.
type Bounds struct {
	Min Size
	Max Size
}

// Clamp rounds the requested size and keeps it within b.
func (b Bounds) Clamp(width, height float64) Size {
	return Size{
		Width:  clampDim(width, b.Min.Width, b.Max.Width),
		Height: clampDim(height, b.Min.Height, b.Max.Height),
	}
}

func clampDim(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		return lo
	}
	n := int(math.Round(v))
	if n < lo {
		n = lo
	}
	if hi > 0 && n > hi {
		n = hi
	}
	return n
}

// ViewSize returns the window size used for view.
func ViewSize(view domain.View) Size {
	switch view {
	case domain.ViewSettings, domain.ViewHistory:
		return Size{Width: 400, Height: 500}
	default:
		return Size{Width: 300, Height: 200}
	}
}

// Window is the subset of window control needed to toggle visibility.
type Window interface {
	Show()
	Hide()
}

// Toggle tracks window visibility for the global hotkey: a visible window is
// hidden, a hidden one is shown and onShow runs.
type Toggle struct {
	mu      sync.Mutex
	window  Window
	visible bool
	onShow  func()
}

func NewToggle(window Window, visible bool, onShow func()) *Toggle {
	return &Toggle{window: window, visible: visible, onShow: onShow}
}

// Toggle flips visibility and reports whether the window is now visible.
func (t *Toggle) Toggle() bool {
	t.mu.Lock()
	visible := !t.visible
	t.visible = visible
	t.mu.Unlock()

	if visible {
		t.window.Show()
		if t.onShow != nil {
			t.onShow()
		}
		return true
	}
	t.window.Hide()
	return false
}

// SetVisible records a visibility change made outside the toggle.
func (t *Toggle) SetVisible(visible bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visible = visible
}

func (t *Toggle) Visible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.visible
}
