package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pixelpainter/internal/pixel"
)

type toolbarItem struct {
	button toolbarButton
	label  string
}

var toolbarItems = []toolbarItem{
	{btnUndo, "Undo"},
	{btnRedo, "Redo"},
	{btnPlay, "Play"},
	{btnOnion, "Onion"},
	{btnMirrorH, "Mirror-"},
	{btnMirrorV, "Mirror|"},
	{btnPrevFrame, "<"},
	{btnNextFrame, ">"},
	{btnAddFrame, "+Frame"},
	{btnAddLayer, "+Layer"},
	{btnHelp, "?"},
}

var (
	buttonStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	axisStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	checkerLight  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	checkerDark   = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	cellGlyph     = strings.Repeat("█", cellWidth)
	cursorGlyph   = "[]"
	axisGlyph     = "··"
	buttonSpacing = 1
)

// buttonAt returns the toolbar button drawn at terminal column x. Buttons
// are laid out as "[label]" separated by one space.
func buttonAt(x int) toolbarButton {
	pos := 0
	for _, item := range toolbarItems {
		w := len([]rune(item.label)) + 2
		if x >= pos && x < pos+w {
			return item.button
		}
		pos += w + buttonSpacing
	}
	return btnNone
}

func (m model) buttonActive(b toolbarButton) bool {
	sym := m.session.Symmetry()
	switch b {
	case btnUndo:
		return m.heldButton == btnUndo
	case btnPlay:
		return m.session.Playing()
	case btnOnion:
		return m.session.Onion().Enabled
	case btnMirrorH:
		return sym.Horizontal
	case btnMirrorV:
		return sym.Vertical
	}
	return false
}

func (m model) toolbarView() string {
	parts := make([]string, 0, len(toolbarItems))
	for _, item := range toolbarItems {
		label := "[" + item.label + "]"
		if item.button == btnPlay && m.session.Playing() {
			label = "[Stop]"
		}
		if m.buttonActive(item.button) {
			parts = append(parts, activeStyle.Render(label))
		} else {
			parts = append(parts, buttonStyle.Render(label))
		}
	}
	return strings.Join(parts, strings.Repeat(" ", buttonSpacing))
}

// cellColor blends a rendered cell over the transparency checkerboard.
func cellColor(c color.RGBA, x, y int) lipgloss.Color {
	bg := checkerLight
	if (x+y)%2 == 1 {
		bg = checkerDark
	}
	a := int(c.A)
	// c is premultiplied
	r := int(c.R) + int(bg.R)*(255-a)/255
	g := int(c.G) + int(bg.G)*(255-a)/255
	b := int(c.B) + int(bg.B)*(255-a)/255
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", min(r, 255), min(g, 255), min(b, 255)))
}

func (m model) canvasView() []string {
	cells := m.session.Cells()
	sym := m.session.Symmetry()
	rows, cols := m.canvasRows(), m.canvasCols()

	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		y := row + m.panY
		if y >= m.session.Height() {
			lines = append(lines, "")
			continue
		}
		var line strings.Builder
		for col := 0; col < cols; col++ {
			x := col + m.panX
			if x >= m.session.Width() {
				break
			}
			c := cells.RGBAAt(x, y)
			style := lipgloss.NewStyle().Foreground(cellColor(c, x, y))
			switch {
			case x == m.cursorX && y == m.cursorY:
				line.WriteString(style.Reverse(true).Render(cursorGlyph))
			case c.A == 0 && ((sym.Horizontal && y == sym.HorizontalAxis) || (sym.Vertical && x == sym.VerticalAxis)):
				line.WriteString(axisStyle.Background(cellColor(c, x, y)).Render(axisGlyph))
			default:
				line.WriteString(style.Render(cellGlyph))
			}
		}
		lines = append(lines, line.String())
	}
	return lines
}

func (m model) framesView() string {
	tl := m.session.Timeline()
	var b strings.Builder
	b.WriteString("Frames:")
	for i := range tl.Frames() {
		if i == tl.FrameIndex() {
			b.WriteString(" " + activeStyle.Render(fmt.Sprintf("%d", i+1)))
		} else {
			fmt.Fprintf(&b, " %d", i+1)
		}
	}
	layer := tl.CurrentLayer()
	fmt.Fprintf(&b, " | Layer %d/%d %q", tl.LayerIndex()+1, len(tl.CurrentFrame().Layers), layer.Name)
	if !layer.Visible {
		b.WriteString(" (hidden)")
	}
	if onion := m.session.Onion(); onion.Enabled {
		fmt.Fprintf(&b, " | Onion %d", onion.Depth)
	}
	fmt.Fprintf(&b, " | %d fps", m.session.FPS())
	return b.String()
}

func (m model) paletteView() string {
	var b strings.Builder
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(pixel.NormalizeHex(m.session.Color()))).Render(cellGlyph)
	fmt.Fprintf(&b, "Color: %s %s α %.1f | Recent:", swatch, m.session.Color(), m.session.Alpha())
	colors := m.session.ColorHistory()
	for i := 0; i < len(colors); i++ {
		hex := colors[len(colors)-1-i]
		fmt.Fprintf(&b, " %d%s", i+1, lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(cellGlyph))
	}
	return b.String()
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	result.WriteString(m.toolbarView())
	result.WriteString("\n")
	for _, line := range m.canvasView() {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.framesView())
	result.WriteString("\n")
	result.WriteString(m.paletteView())
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		opStr := fileOpLabel(m.fileOp)
		hint := "Enter=confirm, Esc=cancel"
		if m.fileOp == FileOpOpenProject {
			hint = "↑/↓=navigate list, Type=enter name, Enter=confirm, Esc=cancel"
		}
		if m.errorMessage != "" {
			return fmt.Sprintf("Mode: FILE | %s | %s filename: %s | %s", errorStyle.Render("ERROR: "+m.errorMessage), opStr, m.filename, hint)
		}
		return fmt.Sprintf("Mode: FILE | %s filename: %s | %s", opStr, m.filename, hint)
	case ModeTextInput:
		label := "Color (#RRGGBB)"
		if m.textInput == InputResize {
			label = "Size (WxH)"
		}
		runes := []rune(m.textInputText)
		pos := min(m.textInputCursorPos, len(runes))
		display := string(runes[:pos]) + "█" + string(runes[pos:])
		status := fmt.Sprintf("Mode: TEXT | %s: %s | Enter=confirm, Esc=cancel", label, display)
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return status
	case ModeConfirm:
		return fmt.Sprintf("Mode: CONFIRM | %s", m.confirmMessage())
	}

	modeStr := m.modeString()
	if m.zPanMode {
		modeStr = "PAN"
	}
	status := fmt.Sprintf("Mode: %s | Cursor: (%d,%d) | %dx%d", modeStr, m.cursorX, m.cursorY, m.session.Width(), m.session.Height())
	if m.session.Drawing() {
		status += " | Pen down"
	}
	if m.dirty {
		status += " | Modified"
	}
	if m.successMessage != "" {
		status += fmt.Sprintf(" | %s", m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func fileOpLabel(op FileOperation) string {
	switch op {
	case FileOpSaveProject:
		return "Save project"
	case FileOpSaveProjectV1:
		return "Save v1 project"
	case FileOpOpenProject:
		return "Open project"
	case FileOpExportImage:
		return "Export image"
	case FileOpExportSheet:
		return "Export sprite sheet"
	case FileOpExportBundle:
		return "Export frames"
	case FileOpSnapshot:
		return "Snapshot"
	}
	return "File"
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit with unsaved changes? (y/n)"
	case ConfirmResize:
		return fmt.Sprintf("Resize to %dx%d? Every frame will be cleared. (y/n)", m.pendingWidth, m.pendingHeight)
	case ConfirmClearLayer:
		return "Clear the current layer? This cannot be undone. (y/n)"
	case ConfirmRemoveFrame:
		return "Remove the current frame? (y/n)"
	case ConfirmRemoveLayer:
		return "Remove the current layer? (y/n)"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.filename)
	case ConfirmReplaceProject:
		return "Replace the current project? Unsaved changes will be lost. (y/n)"
	}
	return "(y/n)"
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		if m.session.Playing() {
			return "PLAY"
		}
		return "NORMAL"
	case ModeFileInput:
		return "FILE"
	case ModeTextInput:
		return "TEXT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"Pixel Painter Help",
	"==================",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor",
	"  Shift+arrows     Move cursor 2x faster",
	"  z                Toggle pan mode (arrows scroll the canvas)",
	"",
	"Drawing:",
	"--------",
	"  Space            Paint the cell under the cursor",
	"  d                Pen down/up (moving with the pen down paints)",
	"  x/Backspace      Erase the cell under the cursor",
	"  a                Put the symmetry axes on the cursor",
	"  -                Toggle horizontal mirror",
	"  |                Toggle vertical mirror",
	"  u                Undo",
	"  Ctrl+R/U         Redo",
	"  C                Clear the current layer",
	"",
	"Color:",
	"------",
	"  c                Enter a hex color",
	"  1-8              Pick a recent color",
	"  </>              Lower/raise opacity",
	"",
	"Frames and layers:",
	"------------------",
	"  Enter            Play/stop the animation",
	"  ,/.              Previous/next frame",
	"  n                Add frame",
	"  N                Duplicate frame",
	"  D                Remove frame",
	"  o                Toggle onion skin",
	"  (/)              Fewer/more onion frames",
	"  L                Add layer",
	"  [/]              Select layer below/above",
	"  {/}              Move layer down/up",
	"  v                Show/hide layer",
	"  X                Remove layer",
	"  r                Resize the canvas (clears every frame)",
	"",
	"Files:",
	"------",
	"  s                Save project",
	"  S                Save project in the v1 format",
	"  Ctrl+S           Save to the current project file",
	"  O                Open project",
	"  e                Export the current frame as an image",
	"  E                Export a sprite sheet",
	"  b                Export every frame plus a manifest",
	"  w                Save a snapshot of the editor view",
	"  y                Copy the frame to the clipboard as a data URL",
	"  p                Paste a project from the clipboard",
	"",
	"Mouse:",
	"------",
	"  Left drag        Paint",
	"  Right drag       Erase",
	"  Shift+click      Put the symmetry axes on the cell",
	"  Hold [Undo]      Keep undoing until released",
	"",
	"  ?                Toggle this help",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}

	startLine := m.helpScroll
	if startLine > len(helpLines)-visibleHeight {
		startLine = len(helpLines) - visibleHeight
	}
	if startLine < 0 {
		startLine = 0
	}
	endLine := startLine + visibleHeight
	if endLine > len(helpLines) {
		endLine = len(helpLines)
	}

	result := strings.Join(helpLines[startLine:endLine], "\n")
	result += "\n" + fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result
}
