package shortcut

import "golang.design/x/hotkey"

const toggleLabel = "Ctrl+Alt+T"

func toggleModifiers() []hotkey.Modifier {
	return []hotkey.Modifier{hotkey.ModCtrl, hotkey.ModAlt}
}
