package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"pkt.systems/pslog"

	"pixelpainter/internal/editor"
)

func newEditCmd() *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "edit [file.pp]",
		Short: "Open the interactive editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := editorLogger(logFile)
			if err != nil {
				return err
			}
			defer closeLog()

			clock := newTeaClock()
			session := editor.New(sessionOptions(cfg, clock, logger))
			m := newModel(cfg, session, clock, logger)
			if len(args) == 1 {
				if err := openInitial(&m, args[0]); err != nil {
					return err
				}
			}

			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			clock.attach(p.Send)
			defer clock.attach(nil)

			logger.Info("editor started", "width", session.Width(), "height", session.Height(), "project", m.projectPath)
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "write structured logs to this file while editing")
	return cmd
}

// openInitial loads path into the model. A path that does not exist yet
// becomes the save target of a fresh project.
func openInitial(m *model, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		m.projectPath = path
		return nil
	}
	if err != nil {
		return err
	}
	if err := m.session.ImportProject(data); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	m.projectPath = path
	return nil
}

// editorLogger never writes to the terminal the editor draws on.
func editorLogger(path string) (pslog.Logger, func(), error) {
	if path == "" {
		return pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true}), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := pslog.NewWithOptions(f, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	return logger, func() { _ = f.Close() }, nil
}
