package main

import tea "github.com/charmbracelet/bubbletea"

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.zPanMode {
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

func (m *model) handlePan(key string, speed int) tea.Model {
	switch key {
	case "h", "left", "shift+left":
		m.panX -= speed
	case "l", "right", "shift+right":
		m.panX += speed
	case "k", "up", "shift+up":
		m.panY -= speed
	case "j", "down", "shift+down":
		m.panY += speed
	}
	m.clampPan()
	return m
}

func (m *model) handleCursorMove(key string, speed int) tea.Model {
	switch key {
	case "h", "left", "shift+left":
		m.cursorX -= speed
	case "l", "right", "shift+right":
		m.cursorX += speed
	case "k", "up", "shift+up":
		m.cursorY -= speed
	case "j", "down", "shift+down":
		m.cursorY += speed
	}
	m.ensureCursorInBounds()
	// keyboard strokes: moving with the pen down keeps painting
	if m.session.Drawing() {
		if m.session.Drag(m.cursorX, m.cursorY) {
			m.dirty = true
		}
	}
	return m
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func isNavigationKey(key string) bool {
	switch key {
	case "h", "j", "k", "l", "left", "right", "up", "down",
		"shift+left", "shift+right", "shift+up", "shift+down":
		return true
	}
	return false
}
