package host

import (
	"context"

	"github.com/atotto/clipboard"
)

// SystemClipboard implements ports.Clipboard without a GUI runtime.
type SystemClipboard struct{}

func (SystemClipboard) GetText(_ context.Context) (string, error) {
	return clipboard.ReadAll()
}

func (SystemClipboard) SetText(_ context.Context, text string) error {
	return clipboard.WriteAll(text)
}

// Available reports whether a clipboard backend exists on this system.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
