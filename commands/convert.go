package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/c360studio/panschema"
	"github.com/c360studio/panschema/config"
	"github.com/c360studio/panschema/format"
	"github.com/c360studio/panschema/output"
)

func convertCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		from    string
		formats []string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "convert [flags] <input>...",
		Short: "Convert schema files between formats",
		Long: `Convert reads each input file and writes it in every requested output
format. Inputs may be literal paths or glob patterns (** is supported).
The source format is inferred from the file extension unless --from is
given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = cfg.Output.Dir
			}
			if len(formats) == 0 {
				formats = cfg.Output.Formats
			}

			inputs, err := expandInputs(args)
			if err != nil {
				return err
			}
			if len(inputs) == 0 {
				return fmt.Errorf("no input files matched %v", args)
			}

			runID := uuid.New().String()
			logger := slog.Default().With("run_id", runID)
			logger.Info("starting conversion", "inputs", len(inputs), "formats", formats, "out", outDir)

			readers := panschema.DefaultReaders()
			writers := panschema.DefaultWriters()

			var failed int
			for _, input := range inputs {
				sourceFormat := from
				if sourceFormat == "" {
					sourceFormat = formatFromPath(input)
				}
				if err := convertFile(logger, readers, writers, input, sourceFormat, formats, outDir); err != nil {
					logger.Error("conversion failed", "input", input, "error", err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed", failed, len(inputs))
			}
			logger.Info("conversion complete", "inputs", len(inputs))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source format (default: inferred from extension)")
	cmd.Flags().StringSliceVar(&formats, "to", nil, "Output formats (default: from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (default: from config)")

	return cmd
}

func convertFile(logger *slog.Logger, readers *format.ReaderRegistry, writers *format.WriterRegistry, path, from string, formats []string, outDir string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	for _, target := range formats {
		result, err := panschema.Convert(readers, writers, from, target, data)
		if err != nil {
			return err
		}
		for _, w := range result.Warnings {
			logger.Warn("translation warning", "input", path, "code", w.Code, "detail", w.Message)
		}
		outPath := output.PathFor(outDir, path, target)
		if err := output.WriteFileAtomic(outPath, result.Output, 0o644); err != nil {
			return err
		}
		logger.Debug("wrote output", "path", outPath, "format", target, "bytes", len(result.Output))
	}
	return nil
}

// expandInputs resolves each argument that contains glob metacharacters
// against the filesystem and passes literal paths through unchanged.
// Results are deduplicated in first-seen order.
func expandInputs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var inputs []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			inputs = append(inputs, path)
		}
	}

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return inputs, nil
}

// formatFromPath infers the source format from a file extension.
func formatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
