package main

func (m *model) undo() {
	if m.session.Undo() {
		m.dirty = true
		return
	}
	m.successMessage = "Nothing to undo"
}

func (m *model) redo() {
	if m.session.Redo() {
		m.dirty = true
		return
	}
	m.successMessage = "Nothing to redo"
}

// startHeldUndo begins the repeating undo behind a held toolbar button.
func (m *model) startHeldUndo() {
	if m.session.StartUndoRepeat() {
		m.dirty = true
	}
	m.heldButton = btnUndo
}

// releaseHeld ends whatever a toolbar press started.
func (m *model) releaseHeld() {
	if m.heldButton == btnUndo {
		m.session.StopUndoRepeat()
	}
	m.heldButton = btnNone
}
