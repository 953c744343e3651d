package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"pkt.systems/psi"
	"pkt.systems/pslog"

	"pixelpainter/internal/config"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("pixelpainter command failed")
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pixelpainter",
		Short:         "Pixel-art and sprite animation editor for the terminal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringP("config", "c", "", "path to config file")

	root.AddCommand(newEditCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	return config.Load(path)
}
