package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/twoertwein/pandas/internal/testcfg"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional test-suite configuration file
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the pdtest CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "pdtest",
		Short: "Test-suite support tooling",
		Long:  "Inspect the optional capabilities, platform state, and suite configuration that the conditional skip helpers act on.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if opts.Config != "" {
				if err := testcfg.Load(opts.Config); err != nil {
					return err
				}
			}
			return testcfg.LoadEnv()
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "test-suite configuration file (YAML)")

	// Add subcommands
	cmd.AddCommand(NewDepsCommand(opts))
	cmd.AddCommand(NewEnvCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
