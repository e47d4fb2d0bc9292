// Package keystroke sends the platform paste shortcut through a virtual
// keyboard. Like the hotkey package it needs a desktop session, so only
// the desktop binary imports it.
package keystroke

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"
)

// linuxSettle is how long a fresh uinput device needs before the kernel
// forwards its events.
const linuxSettle = 2 * time.Second

type bonding interface {
	SetKeys(keys ...int)
	HasCTRL(bool)
	HasSuper(bool)
	Launching() error
}

func newKeyBonding() (bonding, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, err
	}
	return &kb, nil
}

// SettleFor returns the pause needed after creating the virtual keyboard on goos.
func SettleFor(goos string) time.Duration {
	if goos == "linux" {
		return linuxSettle
	}
	return 0
}

// Keystroker owns one virtual keyboard for the life of the process.
type Keystroker struct {
	newBonding func() (bonding, error)
	sleep      func(time.Duration)
	settle     time.Duration

	once sync.Once
	kb   bonding
	err  error
	mu   sync.Mutex
}

// New returns a Keystroker with the settle delay of the running platform.
func New() *Keystroker {
	return &Keystroker{
		newBonding: newKeyBonding,
		sleep:      time.Sleep,
		settle:     SettleFor(runtime.GOOS),
	}
}

// Warm creates the virtual keyboard in the background so the settle delay
// has passed by the time the first paste is sent.
func (k *Keystroker) Warm() {
	go k.init()
}

func (k *Keystroker) init() {
	k.once.Do(func() {
		k.kb, k.err = k.newBonding()
		if k.err != nil {
			k.err = fmt.Errorf("create virtual keyboard: %w", k.err)
			return
		}
		if k.settle > 0 {
			k.sleep(k.settle)
		}
	})
}

// PasteShortcut sends Cmd+V on macOS and Ctrl+V elsewhere. The first call
// waits for Warm to finish if it is still settling.
func (k *Keystroker) PasteShortcut() error {
	k.init()
	if k.err != nil {
		return k.err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.kb.SetKeys(keybd_event.VK_V)
	setPasteModifier(k.kb)
	return k.kb.Launching()
}
