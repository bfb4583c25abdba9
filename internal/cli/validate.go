package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/standards"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a mix against reference standards",
	Long: `Check a mix against the applicability range of ACI 209R-92 and Eurocode 2.

A mix is invalid when a field breaks a physical bound and extrapolated when it
leaves the range a standard or the empirical model was calibrated for.

Examples:
  uhpc validate --preset sustainable
  uhpc validate --file mix.json --standard eurocode-2`,
	RunE: runValidate,
}

var (
	validateMix      *mixFlags
	validateStandard standardValue
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateMix = addMixFlags(validateCmd)
	validateCmd.Flags().Var(&validateStandard, "standard", "Only check one standard (aci-209r-92, eurocode-2)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	m, err := validateMix.mix(cmd)
	if err != nil {
		return err
	}

	reports, err := app.Service.Validate(m, validateStandard.ID())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		if err := printJSON(out, reports); err != nil {
			return err
		}
	} else {
		printReports(out, reports)
	}

	for _, r := range reports {
		if r.Status == standards.StatusInvalid {
			return fmt.Errorf("mix %s is invalid", m.Label("input"))
		}
	}
	return nil
}

func printReports(w io.Writer, reports []standards.Report) {
	tw := newTable(w)
	fmt.Fprintln(tw, "STANDARD\tSTATUS\tISSUES")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", r.Name, r.Status, len(r.Issues))
	}
	_ = tw.Flush()
	for _, r := range reports {
		for _, issue := range r.Issues {
			label := issue.Field
			if f, ok := domain.FieldByKey(issue.Field); ok {
				label = f.Label
			}
			fmt.Fprintf(w, "  %s [%s] %s\n", r.Standard, label, issue.Message)
		}
	}
}
