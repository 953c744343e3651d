package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pixelpainter/internal/editor"
	"pixelpainter/internal/project"
	"pixelpainter/internal/render"
)

func (m *model) beginFileOp(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	m.successMessage = ""
	m.fileList = nil
	m.selectedFileIndex = -1
	switch op {
	case FileOpOpenProject:
		m.filename = ""
		m.scanProjectFiles()
	case FileOpSaveProject, FileOpSaveProjectV1:
		m.filename = "sprite" + projectExt
		if m.projectPath != "" {
			m.filename = filepath.Base(m.projectPath)
		}
	case FileOpExportImage:
		m.filename = "sprite.png"
	case FileOpExportSheet:
		m.filename = "sheet.png"
	case FileOpExportBundle:
		m.filename = "frames"
	case FileOpSnapshot:
		m.filename = "snapshot.png"
	}
}

// submitFileOp runs the pending file operation. Writes that would replace
// an existing file ask first; the raster is captured now either way.
func (m *model) submitFileOp() tea.Cmd {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "Filename cannot be empty"
		return nil
	}
	if m.fileOp == FileOpOpenProject {
		m.mode = ModeNormal
		return readProjectCmd(m.cfg.SavePath(withExt(name, projectExt)))
	}

	path, cmd, err := m.prepareWrite(name)
	if err != nil {
		m.errorMessage = err.Error()
		return nil
	}
	m.errorMessage = ""
	if _, err := os.Stat(path); err == nil {
		m.pendingCmd = cmd
		m.confirmAction = ConfirmOverwriteFile
		m.filename = path
		m.mode = ModeConfirm
		return nil
	}
	m.mode = ModeNormal
	return cmd
}

// prepareWrite snapshots whatever the operation writes and returns the
// command that encodes and writes it.
func (m *model) prepareWrite(name string) (string, tea.Cmd, error) {
	w, h := m.exportSize()
	switch m.fileOp {
	case FileOpSaveProject, FileOpSaveProjectV1:
		path := m.cfg.SavePath(withExt(name, projectExt))
		var data []byte
		var err error
		if m.fileOp == FileOpSaveProjectV1 {
			data, err = m.session.ExportProjectV1()
		} else {
			data, err = m.session.ExportProject()
		}
		if err != nil {
			return "", nil, err
		}
		return path, writeDataCmd("project", path, data), nil
	case FileOpExportImage:
		path := m.cfg.SavePath(withExt(name, ".png"))
		return path, writeExportCmd("image", m.session.SnapshotImage(path, w, h)), nil
	case FileOpExportSheet:
		path := m.cfg.SavePath(withExt(name, ".png"))
		return path, writeExportCmd("sprite sheet", m.session.SnapshotSpriteSheet(path, w, h, 0)), nil
	case FileOpExportBundle:
		base := strings.TrimSuffix(name, filepath.Ext(name))
		manifest := m.cfg.SavePath(base + ".json")
		images := m.session.SnapshotFrameBundle(w, h)
		return manifest, writeBundleCmd(filepath.Dir(manifest), filepath.Base(base), w, h, images), nil
	case FileOpSnapshot:
		path := m.cfg.SavePath(withExt(name, ".png"))
		snap := editor.Export{
			Path:   path,
			Format: render.FormatPNG,
			Image:  m.session.Snapshot(m.caption()),
		}
		return path, writeExportCmd("snapshot", snap), nil
	}
	return "", nil, fmt.Errorf("unknown file operation %d", m.fileOp)
}

func (m *model) caption() string {
	tl := m.session.Timeline()
	return fmt.Sprintf("%s / %s", tl.CurrentFrame().Name, tl.CurrentLayer().Name)
}

// copyFrame puts the current frame on the clipboard as a PNG data URL.
func (m *model) copyFrame() tea.Cmd {
	w, h := m.exportSize()
	snap := m.session.SnapshotImage("", w, h)
	snap.Format = render.FormatPNG
	return copyExportCmd(snap)
}

// importProject replaces the session contents; on failure nothing changes.
func (m *model) importProject(data []byte, path string) {
	if err := m.session.ImportProject(data); err != nil {
		m.errorMessage = fmt.Sprintf("Invalid project file: %v", err)
		return
	}
	if path != "" {
		m.projectPath = path
	}
	m.dirty = false
	m.ensureCursorInBounds()
	m.successMessage = fmt.Sprintf("Loaded %d frame(s), %dx%d", m.session.Timeline().Len(), m.session.Width(), m.session.Height())
}

// offerProject imports directly, or asks first when there is unsaved work.
func (m *model) offerProject(data []byte, path string) {
	if !m.dirty {
		m.importProject(data, path)
		return
	}
	m.pendingProject = data
	m.filename = path
	m.confirmAction = ConfirmReplaceProject
	m.mode = ModeConfirm
}

func writeExportCmd(what string, e editor.Export) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{what: what, path: e.Path, err: e.Write()}
	}
}

func writeDataCmd(what, path string, data []byte) tea.Cmd {
	return func() tea.Msg {
		return writeDoneMsg{what: what, path: path, err: project.WriteFile(path, data)}
	}
}

func writeBundleCmd(dir, base string, w, h int, images []render.NamedImage) tea.Cmd {
	return func() tea.Msg {
		path, err := project.WriteBundle(dir, base, w, h, images)
		return writeDoneMsg{what: "frame bundle", path: path, err: err}
	}
}

func copyExportCmd(e editor.Export) tea.Cmd {
	return func() tea.Msg {
		data, err := e.Encode()
		if err == nil {
			err = writeClipboardText(render.DataURL(e.Format.MIME(), data))
		}
		return writeDoneMsg{what: "clipboard", err: err}
	}
}

func readProjectCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		return projectReadMsg{path: path, data: data, err: err}
	}
}

func readClipboardCmd() tea.Msg {
	text, err := readClipboardText()
	return clipboardReadMsg{text: text, err: err}
}
