package host

import "github.com/gen2brain/beeep"

var notify = beeep.Notify

// DesktopNotifier implements ports.Notifier with native notifications.
type DesktopNotifier struct {
	Enabled bool
	Icon    string
}

func (n DesktopNotifier) Notify(title, message string) error {
	if !n.Enabled {
		return nil
	}
	return notify(title, message, n.Icon)
}
