package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/twoertwein/pandas/internal/optdep"
)

// CapabilityStatus is one row of the capability report.
type CapabilityStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
}

// DepsReport is the optional-capability inventory: which capabilities the
// test helpers would find, and at what version.
type DepsReport struct {
	RunID        string             `json:"run_id"`
	Capabilities []CapabilityStatus `json:"capabilities"`
	Missing      int                `json:"missing"`
}

// BuildDepsReport probes every capability in the registry.
func BuildDepsReport(reg *optdep.Registry, runID string) *DepsReport {
	report := &DepsReport{RunID: runID}
	for _, name := range reg.Names() {
		res := reg.Probe(name)
		status := CapabilityStatus{
			Name:      name,
			Available: res.Ok(),
			Version:   res.Version,
		}
		if !status.Available {
			report.Missing++
		}
		report.Capabilities = append(report.Capabilities, status)
	}
	return report
}

// RenderText writes the report as an aligned table.
func (r *DepsReport) RenderText(w io.Writer, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "CAPABILITY\tAVAILABLE\tVERSION")
	for _, c := range r.Capabilities {
		version := c.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\n", c.Name, c.Available, version)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(w, "\nrun %s: %d capabilities, %d missing\n",
			r.RunID, len(r.Capabilities), r.Missing)
	}
	return nil
}

// NewDepsCommand creates the deps command.
func NewDepsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Report optional capabilities",
		Long: `Probe every registered optional capability and report availability
and version. This is the inventory the conditional skip helpers consult.

Exit codes:
  0 - All capabilities available
  1 - One or more capabilities missing
  2 - Command error`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:  rootOpts.Format,
				Writer:  cmd.OutOrStdout(),
				Verbose: rootOpts.Verbose,
			}

			report := BuildDepsReport(optdep.Default, uuid.NewString())
			if err := formatter.Success(report); err != nil {
				return NewExitError(ExitCommandError, err.Error())
			}
			if report.Missing > 0 {
				return NewExitError(ExitFailure,
					fmt.Sprintf("%d capabilities missing", report.Missing))
			}
			return nil
		},
	}
	return cmd
}
