package main

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pixelpainter/internal/editor"
	"pixelpainter/internal/pixel"
)

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case clockMsg:
		before := m.session.Timeline().ActionCount()
		msg.fire()
		if m.session.Timeline().ActionCount() != before {
			m.dirty = true
		}
		return m, nil

	case writeDoneMsg:
		if msg.err != nil {
			m.log.With("err", msg.err, "path", msg.path).Error("write failed", "what", msg.what)
			m.errorMessage = fmt.Sprintf("%s failed: %v", msg.what, msg.err)
			m.successMessage = ""
			return m, nil
		}
		m.errorMessage = ""
		switch msg.what {
		case "project":
			m.projectPath = msg.path
			m.dirty = false
			m.successMessage = fmt.Sprintf("Saved %s", msg.path)
		case "clipboard":
			m.successMessage = "Frame copied to clipboard"
		default:
			m.successMessage = fmt.Sprintf("Exported %s to %s", msg.what, msg.path)
		}
		m.log.Info("written", "what", msg.what, "path", msg.path)
		return m, nil

	case projectReadMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Error opening file: %v", msg.err)
			return m, nil
		}
		m.offerProject(msg.data, msg.path)
		return m, nil

	case clipboardReadMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Clipboard unavailable: %v", msg.err)
			return m, nil
		}
		text, ok := extractJSONObject(cleanClipboardText(msg.text))
		if !ok {
			m.errorMessage = "Clipboard does not hold a project"
			return m, nil
		}
		m.offerProject([]byte(text), "")
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg.String())
		}
		switch m.mode {
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeTextInput:
			return m.handleTextInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg.String())
		default:
			return m.handleNormalKey(msg.String())
		}
	}
	return m, nil
}

func (m model) handleHelpKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	if isNavigationKey(key) {
		m.successMessage = ""
		return m.handleNavigation(key, m.getMoveSpeed(key))
	}
	m.errorMessage = ""
	m.successMessage = ""

	tl := m.session.Timeline()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if !m.dirty {
			return m, tea.Quit
		}
		m.confirm(ConfirmQuit)
	case "?":
		m.help = true
		m.helpScroll = 0
	case "z":
		m.zPanMode = !m.zPanMode

	case " ":
		if m.session.Press(m.cursorX, m.cursorY, editor.ToolPaint) {
			m.dirty = true
		}
		m.session.Release()
	case "d":
		if m.session.Drawing() {
			m.session.Release()
		} else if m.session.Press(m.cursorX, m.cursorY, editor.ToolPaint) {
			m.dirty = true
		}
	case "x", "backspace", "delete":
		if m.session.Press(m.cursorX, m.cursorY, editor.ToolErase) {
			m.dirty = true
		}
		m.session.Release()
	case "a":
		m.session.Press(m.cursorX, m.cursorY, editor.ToolSetAxis)
	case "-":
		m.session.ToggleHorizontal()
	case "|", "\\":
		m.session.ToggleVertical()

	case "u":
		m.undo()
	case "ctrl+r", "U":
		m.redo()

	case "o":
		m.session.ToggleOnion()
	case "(":
		m.session.SetOnionDepth(m.session.Onion().Depth - 1)
	case ")":
		m.session.SetOnionDepth(m.session.Onion().Depth + 1)

	case "enter":
		m.session.TogglePlayback()
	case "n":
		m.session.StopPlayback()
		tl.AddFrame()
		m.dirty = true
	case "N":
		m.session.StopPlayback()
		tl.DuplicateFrame()
		m.dirty = true
	case "D":
		if tl.Len() < 2 {
			m.errorMessage = "Cannot remove the only frame"
			break
		}
		m.confirm(ConfirmRemoveFrame)
	case ",":
		m.session.StopPlayback()
		tl.PrevFrame()
	case ".":
		m.session.StopPlayback()
		tl.NextFrame()

	case "L":
		tl.AddLayer()
		m.dirty = true
	case "[":
		_ = tl.SelectLayer(tl.LayerIndex() - 1)
	case "]":
		_ = tl.SelectLayer(tl.LayerIndex() + 1)
	case "{":
		if tl.MoveLayer(-1) == nil {
			m.dirty = true
		}
	case "}":
		if tl.MoveLayer(1) == nil {
			m.dirty = true
		}
	case "v":
		if tl.CurrentFrame().ToggleVisible(tl.LayerIndex()) == nil {
			m.dirty = true
		}
	case "X":
		if len(tl.CurrentFrame().Layers) < 2 {
			m.errorMessage = "Cannot remove the only layer"
			break
		}
		m.confirm(ConfirmRemoveLayer)
	case "C":
		m.confirm(ConfirmClearLayer)

	case "c":
		m.beginTextInput(InputColor, m.session.Color())
	case "r":
		m.beginTextInput(InputResize, fmt.Sprintf("%dx%d", m.session.Width(), m.session.Height()))
	case "1", "2", "3", "4", "5", "6", "7", "8":
		m.pickHistoryColor(int(key[0] - '1'))
	case "<":
		m.session.SetAlpha(m.session.Alpha() - alphaStep)
	case ">":
		m.session.SetAlpha(m.session.Alpha() + alphaStep)

	case "s":
		m.beginFileOp(FileOpSaveProject)
	case "S":
		m.beginFileOp(FileOpSaveProjectV1)
	case "ctrl+s":
		if m.projectPath == "" {
			m.beginFileOp(FileOpSaveProject)
			break
		}
		data, err := m.session.ExportProject()
		if err != nil {
			m.errorMessage = err.Error()
			break
		}
		return m, writeDataCmd("project", m.projectPath, data)
	case "O":
		m.beginFileOp(FileOpOpenProject)
	case "e":
		m.beginFileOp(FileOpExportImage)
	case "E":
		m.beginFileOp(FileOpExportSheet)
	case "b":
		m.beginFileOp(FileOpExportBundle)
	case "w":
		m.beginFileOp(FileOpSnapshot)
	case "y":
		return m, m.copyFrame()
	case "p":
		return m, readClipboardCmd
	}
	return m, nil
}

func (m *model) confirm(action ConfirmAction) {
	m.confirmAction = action
	m.mode = ModeConfirm
}

// pickHistoryColor selects the i-th most recent color.
func (m *model) pickHistoryColor(i int) {
	colors := m.session.ColorHistory()
	if i < 0 || i >= len(colors) {
		return
	}
	m.session.SetColor(colors[len(colors)-1-i])
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
	case "ctrl+c":
		return m, tea.Quit
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingCmd = nil
		m.pendingProject = nil
		return m, nil
	default:
		return m, nil
	}

	m.mode = ModeNormal
	tl := m.session.Timeline()
	switch m.confirmAction {
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmResize:
		if err := m.session.Resize(m.pendingWidth, m.pendingHeight); err != nil {
			m.errorMessage = err.Error()
			break
		}
		m.dirty = true
		m.ensureCursorInBounds()
		m.successMessage = fmt.Sprintf("Canvas is now %dx%d", m.pendingWidth, m.pendingHeight)
	case ConfirmClearLayer:
		m.session.ClearLayer()
		m.dirty = true
	case ConfirmRemoveFrame:
		m.session.StopPlayback()
		if err := tl.RemoveFrame(tl.FrameIndex()); err != nil {
			m.errorMessage = err.Error()
			break
		}
		m.dirty = true
	case ConfirmRemoveLayer:
		if err := tl.RemoveLayer(tl.LayerIndex()); err != nil {
			m.errorMessage = err.Error()
			break
		}
		m.dirty = true
	case ConfirmOverwriteFile:
		cmd := m.pendingCmd
		m.pendingCmd = nil
		return m, cmd
	case ConfirmReplaceProject:
		data := m.pendingProject
		m.pendingProject = nil
		m.importProject(data, m.filename)
	}
	return m, nil
}

func (m *model) beginTextInput(input TextInput, initial string) {
	m.mode = ModeTextInput
	m.textInput = input
	m.textInputText = initial
	m.textInputCursorPos = len([]rune(initial))
	m.errorMessage = ""
}

func (m model) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case "enter":
		m.submitTextInput()
		return m, nil
	}
	m.textInputText, m.textInputCursorPos = editLine(m.textInputText, m.textInputCursorPos, msg)
	return m, nil
}

func (m *model) submitTextInput() {
	text := strings.TrimSpace(m.textInputText)
	switch m.textInput {
	case InputColor:
		if _, ok := pixel.ParseHex(text); !ok {
			m.errorMessage = fmt.Sprintf("%q is not a hex color", text)
			return
		}
		m.session.SetColor(pixel.NormalizeHex(text))
	case InputResize:
		w, h, err := parseSize(text)
		if err != nil {
			m.errorMessage = err.Error()
			return
		}
		if w < 1 || h < 1 || w > editor.MaxGridSize || h > editor.MaxGridSize {
			m.errorMessage = fmt.Sprintf("size must be 1-%d on each side", editor.MaxGridSize)
			return
		}
		m.pendingWidth, m.pendingHeight = w, h
		m.errorMessage = ""
		m.confirm(ConfirmResize)
		return
	}
	m.errorMessage = ""
	m.mode = ModeNormal
}

// parseSize reads "WxH" or "W H".
func parseSize(text string) (int, int, error) {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == 'x' || r == ' ' || r == ','
	})
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("size %q: want WIDTHxHEIGHT", text)
	}
	w, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("width %q: %w", fields[0], err)
	}
	h, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("height %q: %w", fields[1], err)
	}
	return w, h, nil
}

// editLine applies one line-editing key to text with the cursor at pos.
func editLine(text string, pos int, msg tea.KeyMsg) (string, int) {
	runes := []rune(text)
	if pos > len(runes) {
		pos = len(runes)
	}
	switch msg.Type {
	case tea.KeyLeft:
		if pos > 0 {
			pos--
		}
	case tea.KeyRight:
		if pos < len(runes) {
			pos++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		pos = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		pos = len(runes)
	case tea.KeyBackspace:
		if pos > 0 {
			runes = append(runes[:pos-1], runes[pos:]...)
			pos--
		}
	case tea.KeyDelete:
		if pos < len(runes) {
			runes = append(runes[:pos], runes[pos+1:]...)
		}
	case tea.KeyRunes, tea.KeySpace:
		ins := msg.Runes
		if msg.Type == tea.KeySpace {
			ins = []rune{' '}
		}
		out := make([]rune, 0, len(runes)+len(ins))
		out = append(out, runes[:pos]...)
		out = append(out, ins...)
		out = append(out, runes[pos:]...)
		runes = out
		pos += len(ins)
	}
	return string(runes), pos
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = ModeNormal
		m.errorMessage = ""
		return m, nil
	case "enter":
		return m, m.submitFileOp()
	case "up":
		if len(m.fileList) > 0 {
			if m.selectedFileIndex <= 0 {
				m.selectedFileIndex = len(m.fileList) - 1
			} else {
				m.selectedFileIndex--
			}
			m.filename = m.fileList[m.selectedFileIndex]
		}
		return m, nil
	case "down":
		if len(m.fileList) > 0 {
			m.selectedFileIndex = (m.selectedFileIndex + 1) % len(m.fileList)
			m.filename = m.fileList[m.selectedFileIndex]
		}
		return m, nil
	case "backspace":
		if r := []rune(m.filename); len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
		m.selectedFileIndex = -1
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		m.filename += string(msg.Runes)
		m.selectedFileIndex = -1
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.help || m.mode != ModeNormal {
		return m, nil
	}

	if msg.Action == tea.MouseActionRelease {
		m.session.Release()
		m.releaseHeld()
		return m, nil
	}

	if msg.Y < canvasTop {
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.pressButton(buttonAt(msg.X))
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.panY--
		m.clampPan()
		return m, nil
	case tea.MouseButtonWheelDown:
		m.panY++
		m.clampPan()
		return m, nil
	}

	x, y, ok := m.cellAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.cursorX, m.cursorY = x, y

	switch msg.Action {
	case tea.MouseActionPress:
		tool := editor.ToolPaint
		switch {
		case msg.Button == tea.MouseButtonRight:
			tool = editor.ToolErase
		case msg.Shift || msg.Button == tea.MouseButtonMiddle:
			tool = editor.ToolSetAxis
		case msg.Button != tea.MouseButtonLeft:
			return m, nil
		}
		if m.session.Press(x, y, tool) && tool != editor.ToolSetAxis {
			m.dirty = true
		}
	case tea.MouseActionMotion:
		if m.session.Drag(x, y) {
			m.dirty = true
		}
	}
	return m, nil
}

func (m model) pressButton(b toolbarButton) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""
	tl := m.session.Timeline()
	switch b {
	case btnUndo:
		m.startHeldUndo()
	case btnRedo:
		m.redo()
	case btnPlay:
		m.session.TogglePlayback()
	case btnOnion:
		m.session.ToggleOnion()
	case btnMirrorH:
		m.session.ToggleHorizontal()
	case btnMirrorV:
		m.session.ToggleVertical()
	case btnPrevFrame:
		m.session.StopPlayback()
		tl.PrevFrame()
	case btnNextFrame:
		m.session.StopPlayback()
		tl.NextFrame()
	case btnAddFrame:
		m.session.StopPlayback()
		tl.AddFrame()
		m.dirty = true
	case btnAddLayer:
		tl.AddLayer()
		m.dirty = true
	case btnHelp:
		m.help = true
		m.helpScroll = 0
	}
	return m, nil
}
