package main

import (
	"github.com/spf13/cobra"

	"pkt.systems/pslog"

	"pixelpainter/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			written, err := config.WriteDefault(path, overwrite)
			if err != nil {
				return err
			}
			pslog.Ctx(cmd.Context()).Info("config written", "path", written)
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "force", false, "overwrite an existing config")
	return cmd
}
