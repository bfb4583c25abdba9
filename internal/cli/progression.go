package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/util"
)

var progressionCmd = &cobra.Command{
	Use:   "progression",
	Short: "Show strength development over time",
	Long: `Predict a mix at the key ages 1, 3, 7, 14, 28, 56, 90, 180 and 365 days,
with strength relative to the 28-day value. Milestones are starred.

Examples:
  uhpc progression --preset high-strength-bridge
  uhpc progression --file mix.yaml --max-age 90`,
	RunE: runProgression,
}

var (
	progressionMix    *mixFlags
	progressionMaxAge float64
)

func init() {
	rootCmd.AddCommand(progressionCmd)
	progressionMix = addMixFlags(progressionCmd)
	progressionCmd.Flags().Float64Var(&progressionMaxAge, "max-age", 365, "Last age to predict (days)")
}

func runProgression(cmd *cobra.Command, args []string) error {
	m, err := progressionMix.mix(cmd)
	if err != nil {
		return err
	}

	steps, err := app.Service.Progression(m, progressionMaxAge)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, steps)
	}

	fmt.Fprintf(out, "%s\n\n", m.Label("Mix"))
	tw := newTable(out)
	fmt.Fprintln(tw, "AGE\tf'c\tft\tE\tOF 28-DAY")
	for _, s := range steps {
		age := util.FormatDays(s.AgeDays)
		if s.Milestone {
			age += " *"
		}
		p := s.Prediction
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			age,
			util.FormatMPa(p.CompressiveStrength.Value),
			util.FormatMPa(p.TensileStrength.Value),
			util.FormatGPa(p.ElasticModulus.Value),
			util.FormatPercent(s.GainPercent),
		)
	}
	return tw.Flush()
}
