package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pixelpainter/internal/project"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info file.pp",
		Short: "Describe a project file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p, err := project.Decode(data, cfg.History.Cap)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			grid := "grid not recorded"
			if p.Geometry.Known() {
				grid = fmt.Sprintf("%dx%d", p.Geometry.Width, p.Geometry.Height)
			}
			frames := p.Timeline.Frames()
			fmt.Fprintf(out, "%s: %s, %s, %d frame(s)\n", args[0], p.Format, grid, len(frames))
			for i, f := range frames {
				fmt.Fprintf(out, "  %d %q: %d layer(s)\n", i+1, f.Name, len(f.Layers))
				for _, l := range f.Layers {
					fmt.Fprintf(out, "    %q visible=%t actions=%d redo=%d\n", l.Name, l.Visible, l.Len(), l.RedoLen())
				}
			}
			return nil
		},
	}
}
