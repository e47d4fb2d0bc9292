package shortcut

import "golang.design/x/hotkey"

const toggleLabel = "Ctrl+Alt+T"

// Mod1 is Alt on X11.
func toggleModifiers() []hotkey.Modifier {
	return []hotkey.Modifier{hotkey.ModCtrl, hotkey.Mod1}
}
