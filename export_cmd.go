package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"

	"pixelpainter/internal/editor"
	"pixelpainter/internal/project"
	"pixelpainter/internal/ticker"
)

type exportFlags struct {
	output  string
	width   int
	height  int
	frame   int
	sheet   bool
	columns int
	bundle  bool
}

func newExportCmd() *cobra.Command {
	var flags exportFlags
	cmd := &cobra.Command{
		Use:   "export file.pp",
		Short: "Render a project to an image, sprite sheet or frame bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := pslog.Ctx(cmd.Context())
			if flags.output == "" {
				return errors.New("--output is required")
			}
			if flags.sheet && flags.bundle {
				return errors.New("--sheet and --bundle are mutually exclusive")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			session := editor.New(sessionOptions(cfg, ticker.System(), logger))
			if err := session.ImportProject(data); err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if flags.frame > 0 {
				if err := session.Timeline().SelectFrame(flags.frame - 1); err != nil {
					return fmt.Errorf("--frame %d: %w", flags.frame, err)
				}
			}

			width, height := flags.width, flags.height
			if width <= 0 {
				width = cfg.Export.Width
			}
			if height <= 0 {
				height = cfg.Export.Height
			}
			return runExport(cmd, session, flags, width, height)
		},
	}
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (bundle: manifest base name)")
	cmd.Flags().IntVar(&flags.width, "width", 0, "frame width in pixels (default: grid size times pixel size)")
	cmd.Flags().IntVar(&flags.height, "height", 0, "frame height in pixels")
	cmd.Flags().IntVar(&flags.frame, "frame", 0, "1-based frame to export (default: first)")
	cmd.Flags().BoolVar(&flags.sheet, "sheet", false, "tile every frame into one sprite sheet")
	cmd.Flags().IntVar(&flags.columns, "columns", 0, "sprite sheet columns (default: playback fps)")
	cmd.Flags().BoolVar(&flags.bundle, "bundle", false, "write one PNG per frame plus a JSON manifest")
	return cmd
}

func runExport(cmd *cobra.Command, session *editor.Session, flags exportFlags, width, height int) error {
	logger := pslog.Ctx(cmd.Context())
	out := cmd.OutOrStdout()

	switch {
	case flags.bundle:
		base := strings.TrimSuffix(flags.output, filepath.Ext(flags.output))
		files, err := session.ExportFrameBundle(base, width, height)
		if err != nil {
			return err
		}
		dir := filepath.Dir(flags.output)
		for _, f := range files {
			path := filepath.Join(dir, f.Name)
			if err := project.WriteFile(path, f.Data); err != nil {
				return err
			}
			fmt.Fprintln(out, path)
		}
		logger.Info("frame bundle exported", "dir", dir, "files", len(files))
		return nil
	case flags.sheet:
		snap := session.SnapshotSpriteSheet(flags.output, width, height, flags.columns)
		if err := snap.Write(); err != nil {
			return err
		}
		b := snap.Image.Bounds()
		logger.Info("sprite sheet exported", "path", flags.output, "width", b.Dx(), "height", b.Dy())
	default:
		data, err := session.ExportImage(flags.output, width, height)
		if err != nil {
			return err
		}
		if err := project.WriteFile(flags.output, data); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, flags.output)
	return nil
}
