// Package shortcut registers the global show/hide hotkey. It needs a
// desktop session: on Linux the underlying library opens the X11 display
// when the package is loaded, so only the desktop binary imports it.
package shortcut

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.design/x/hotkey"
)

// Listener delivers presses of the global toggle shortcut
// (Ctrl+Alt+T, Cmd+Option+T on macOS).
type Listener struct {
	hk     *hotkey.Hotkey
	logger *slog.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Label is the human-readable toggle shortcut.
func Label() string {
	return toggleLabel
}

// ListenToggle registers the toggle shortcut and calls onPress for every
// key-down until Close.
func ListenToggle(onPress func(), logger *slog.Logger) (*Listener, error) {
	if logger == nil {
		logger = slog.Default()
	}
	hk := hotkey.New(toggleModifiers(), hotkey.KeyT)
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("register hotkey %s: %w", toggleLabel, err)
	}

	l := &Listener{
		hk:     hk,
		logger: logger,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go l.loop(hk.Keydown(), onPress)
	logger.Info("global hotkey registered", "shortcut", toggleLabel)
	return l, nil
}

func (l *Listener) loop(keydown <-chan hotkey.Event, onPress func()) {
	defer close(l.done)
	for {
		select {
		case <-l.stop:
			return
		case _, ok := <-keydown:
			if !ok {
				return
			}
			onPress()
		}
	}
}

// Close unregisters the shortcut and waits for the listener to exit.
func (l *Listener) Close() error {
	var err error
	l.stopOnce.Do(func() {
		close(l.stop)
		<-l.done
		err = l.hk.Unregister()
	})
	return err
}
