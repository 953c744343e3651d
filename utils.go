package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/atotto/clipboard"
)

// canvasRows is how many grid rows fit between the toolbar and the footer.
func (m *model) canvasRows() int {
	rows := m.height - canvasTop - footerLines
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *model) canvasCols() int {
	cols := m.width / cellWidth
	if cols < 1 {
		cols = 1
	}
	return cols
}

// cellAt maps a terminal position to a grid cell, honoring the pan offset.
func (m *model) cellAt(screenX, screenY int) (int, int, bool) {
	if screenX < 0 || screenY < canvasTop || screenY >= canvasTop+m.canvasRows() {
		return 0, 0, false
	}
	x := screenX/cellWidth + m.panX
	y := screenY - canvasTop + m.panY
	if !m.session.InBounds(x, y) {
		return 0, 0, false
	}
	return x, y, true
}

// ensureCursorVisible pans so that the keyboard cursor stays on screen.
func (m *model) ensureCursorVisible() {
	cols, rows := m.canvasCols(), m.canvasRows()
	if m.cursorX < m.panX {
		m.panX = m.cursorX
	}
	if m.cursorX >= m.panX+cols {
		m.panX = m.cursorX - cols + 1
	}
	if m.cursorY < m.panY {
		m.panY = m.cursorY
	}
	if m.cursorY >= m.panY+rows {
		m.panY = m.cursorY - rows + 1
	}
	m.clampPan()
}

func (m *model) clampPan() {
	maxX := m.session.Width() - m.canvasCols()
	maxY := m.session.Height() - m.canvasRows()
	if m.panX > maxX {
		m.panX = maxX
	}
	if m.panY > maxY {
		m.panY = maxY
	}
	if m.panX < 0 {
		m.panX = 0
	}
	if m.panY < 0 {
		m.panY = 0
	}
}

// ensureCursorInBounds keeps the cursor on the grid, e.g. after a resize or
// an import.
func (m *model) ensureCursorInBounds() {
	if m.cursorX >= m.session.Width() {
		m.cursorX = m.session.Width() - 1
	}
	if m.cursorY >= m.session.Height() {
		m.cursorY = m.session.Height() - 1
	}
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	m.ensureCursorVisible()
}

func (m *model) scanProjectFiles() {
	m.fileList = []string{}

	dir := m.cfg.Export.Directory
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			m.selectedFileIndex = -1
			return
		}
		dir = wd
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), projectExt) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	} else {
		m.selectedFileIndex = -1
	}
}

// withExt appends ext when name has no extension.
func withExt(name, ext string) string {
	if filepath.Ext(name) == "" {
		return name + ext
	}
	return name
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// cleanClipboardText drops control characters and normalizes newlines.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

// extractJSONObject returns the outermost {...} span of text, so a project
// pasted with surrounding chatter or a trailing newline still decodes.
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}
