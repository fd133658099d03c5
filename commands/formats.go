package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/c360studio/panschema"
)

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported input and output formats",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("Input formats:  %s\n", strings.Join(panschema.DefaultReaders().Formats(), ", "))
			cmd.Printf("Output formats: %s\n", strings.Join(panschema.DefaultWriters().Formats(), ", "))
		},
	}
}
