package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"pkt.systems/pslog"

	"pixelpainter/internal/config"
	"pixelpainter/internal/editor"
)

type model struct {
	width  int
	height int

	session *editor.Session
	cfg     config.Config
	log     pslog.Logger
	clock   *teaClock

	cursorX  int
	cursorY  int
	panX     int
	panY     int
	zPanMode bool

	mode       Mode
	help       bool
	helpScroll int

	fileOp            FileOperation
	filename          string
	fileList          []string
	selectedFileIndex int
	projectPath       string

	textInput          TextInput
	textInputText      string
	textInputCursorPos int

	confirmAction  ConfirmAction
	pendingCmd     tea.Cmd
	pendingProject []byte
	pendingWidth   int
	pendingHeight  int

	heldButton     toolbarButton
	dirty          bool
	errorMessage   string
	successMessage string
}

// clockMsg carries a timer callback onto the event loop.
type clockMsg struct {
	fire func()
}

// writeDoneMsg reports a background write.
type writeDoneMsg struct {
	what string
	path string
	err  error
}

type projectReadMsg struct {
	path string
	data []byte
	err  error
}

type clipboardReadMsg struct {
	text string
	err  error
}
