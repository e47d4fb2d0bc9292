package keystroke

func setPasteModifier(kb bonding) {
	kb.HasSuper(true)
}
