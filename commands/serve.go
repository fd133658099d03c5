package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/panschema"
	"github.com/c360studio/panschema/config"
	"github.com/c360studio/panschema/server"
)

func serveCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve converted schemas over HTTP, regenerating on change",
		Long: `Serve converts the configured inputs once, then serves the output
directory over HTTP. With watching enabled it regenerates outputs
whenever a matching input file changes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if len(cfg.Watch.Globs) == 0 {
				return fmt.Errorf("no input globs configured under watch.globs")
			}

			logger := slog.Default()
			readers := panschema.DefaultReaders()
			writers := panschema.DefaultWriters()

			regenerate := func(ctx context.Context) error {
				inputs, err := expandInputs(cfg.Watch.Globs)
				if err != nil {
					return err
				}
				for _, input := range inputs {
					if err := ctx.Err(); err != nil {
						return err
					}
					if err := convertFile(logger, readers, writers, input, formatFromPath(input), cfg.Output.Formats, cfg.Output.Dir); err != nil {
						return err
					}
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, logger, regenerate).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default: from config)")

	return cmd
}
