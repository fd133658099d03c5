// Package commands implements the panschema command line interface.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/panschema/config"
)

// Version is the tool version, overridable at build time.
var Version = "0.1.0"

// Root builds the command tree.
func Root() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "panschema",
		Short: "Schema and ontology translation tool",
		Long: `Panschema converts schema definitions between an axiom-based ontology
format and a slot/class-based native format through one canonical model.

It reads Turtle ontologies and native YAML schemas, and emits Turtle,
N-Triples, JSON-LD, native YAML, documentation view data, and graph
topology.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	loadConfig := func() (*config.Config, error) {
		cfg := config.DefaultConfig()
		if configPath != "" {
			loaded, err := config.LoadFromFile(configPath)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		configureLogging(cfg.Log.Level)
		return cfg, nil
	}

	cmd.AddCommand(convertCmd(loadConfig))
	cmd.AddCommand(formatsCmd())
	cmd.AddCommand(serveCmd(loadConfig))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("panschema version %s\n", Version)
		},
	})

	return cmd
}

func configureLogging(level string) {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
}
