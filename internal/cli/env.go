package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/twoertwein/pandas/internal/testcfg"
	"github.com/twoertwein/pandas/internal/testskip"
)

// EnvReport describes the platform and suite-configuration state the
// skip conditions act on.
type EnvReport struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Is64Bit    bool   `json:"is_64bit"`
	Locale     string `json:"locale,omitempty"`
	USLocale   bool   `json:"us_locale"`
	AltStorage bool   `json:"alt_storage"`
	FastExpr   bool   `json:"use_fastexpr"`
}

// BuildEnvReport reads the current platform and configuration state.
func BuildEnvReport() *EnvReport {
	return &EnvReport{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Is64Bit:    strconv.IntSize == 64,
		Locale:     testskip.CurrentLocale(),
		USLocale:   testskip.IsUSLocale(),
		AltStorage: testcfg.Bool(testcfg.AltStorage),
		FastExpr:   testcfg.Bool(testcfg.UseFastExpr),
	}
}

// RenderText writes the report as key: value lines.
func (r *EnvReport) RenderText(w io.Writer, verbose bool) error {
	locale := r.Locale
	if locale == "" {
		locale = "(none)"
	}
	fmt.Fprintf(w, "os: %s\n", r.OS)
	fmt.Fprintf(w, "arch: %s\n", r.Arch)
	fmt.Fprintf(w, "64-bit: %t\n", r.Is64Bit)
	fmt.Fprintf(w, "locale: %s\n", locale)
	fmt.Fprintf(w, "en_US locale: %t\n", r.USLocale)
	if verbose {
		fmt.Fprintf(w, "alt storage: %t\n", r.AltStorage)
		fmt.Fprintf(w, "fast eval: %t\n", r.FastExpr)
	}
	return nil
}

// NewEnvCommand creates the env command.
func NewEnvCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Report platform and locale state",
		Long: `Report the platform, locale, and suite-configuration state that the
platform- and locale-based skip conditions evaluate.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  rootOpts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: rootOpts.Verbose,
			}
			if err := formatter.Success(BuildEnvReport()); err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			return nil
		},
	}
	return cmd
}
