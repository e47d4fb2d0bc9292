package shortcut

import "golang.design/x/hotkey"

const toggleLabel = "Cmd+Option+T"

func toggleModifiers() []hotkey.Modifier {
	return []hotkey.Modifier{hotkey.ModCmd, hotkey.ModOption}
}
