package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var agreementCmd = &cobra.Command{
	Use:   "agreement",
	Short: "Compare strength development with code curves",
	Long: `Correlate the model's strength development, normalised to 28 days, with
the ACI 209R-92 and Eurocode 2 curves over the first 90 days.

Examples:
  uhpc agreement --preset standard-uhpc`,
	RunE: runAgreement,
}

var agreementMix *mixFlags

func init() {
	rootCmd.AddCommand(agreementCmd)
	agreementMix = addMixFlags(agreementCmd)
}

func runAgreement(cmd *cobra.Command, args []string) error {
	m, err := agreementMix.mix(cmd)
	if err != nil {
		return err
	}

	a, err := app.Service.Agreement(m)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, a)
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "STANDARD\tPEARSON r")
	for _, c := range a.Correlations {
		fmt.Fprintf(tw, "%s\t%.3f\n", c.Name, c.Pearson)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nAverage %.3f: %s\n", a.Average, a.Status)
	return nil
}
