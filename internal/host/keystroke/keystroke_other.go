//go:build !darwin

package keystroke

func setPasteModifier(kb bonding) {
	kb.HasCTRL(true)
}
