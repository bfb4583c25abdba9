package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/codec"
	"github.com/emiliopalmerini/uhpc/internal/compare"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/util"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Rank several mixes by an objective",
	Long: `Predict several mixes concurrently and rank them by an objective.

Without --preset or --file the built-in comparison set is used
(Standard, High-Performance and Sustainable UHPC).

Examples:
  uhpc compare
  uhpc compare --objective min-cost
  uhpc compare --preset standard-uhpc --preset sustainable --objective max-efficiency
  uhpc compare --file candidates.yaml`,
	RunE: runCompare,
}

var (
	comparePresets   []string
	compareFiles     []string
	compareObjective = newObjectiveValue(compare.MaxCompressive)
)

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().StringSliceVarP(&comparePresets, "preset", "p", nil, "Preset to include (repeatable)")
	compareCmd.Flags().StringSliceVarP(&compareFiles, "file", "f", nil, "Descriptor file with one or more mixes (repeatable)")
	compareCmd.Flags().Var(compareObjective, "objective", "Ranking objective: "+objectiveNames())
}

func compareInputs() ([]domain.MixDesign, error) {
	if len(comparePresets) == 0 && len(compareFiles) == 0 {
		return domain.ComparisonSet(), nil
	}
	var mixes []domain.MixDesign
	for _, slug := range comparePresets {
		m, err := domain.Preset(slug)
		if err != nil {
			return nil, err
		}
		mixes = append(mixes, m.WithName(m.Label(slug)))
	}
	for _, path := range compareFiles {
		ms, err := codec.ReadFile(path)
		if err != nil {
			return nil, err
		}
		mixes = append(mixes, ms...)
	}
	return mixes, nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	mixes, err := compareInputs()
	if err != nil {
		return err
	}

	ranked, err := app.Service.Compare(cmd.Context(), mixes, compareObjective.Objective())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, ranked)
	}
	printRanking(out, compareObjective.Objective(), ranked)
	return nil
}

func printRanking(w io.Writer, obj compare.Objective, ranked []compare.Ranked) {
	fmt.Fprintf(w, "Objective: %s\n\n", obj)
	tw := newTable(w)
	fmt.Fprintln(tw, "RANK\tMIX\tf'c\tft\tE\tUPV\tCOST\tSCORE")
	for _, r := range ranked {
		p := r.Prediction
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%.3f\n",
			r.Rank,
			p.Mix.Label(fmt.Sprintf("#%d", r.Index+1)),
			util.FormatMPa(p.CompressiveStrength.Value),
			util.FormatMPa(p.TensileStrength.Value),
			util.FormatGPa(p.ElasticModulus.Value),
			util.FormatVelocity(p.UPV.Value),
			util.FormatUSD(p.Cost),
			r.Score,
		)
	}
	_ = tw.Flush()

	if len(ranked) < 2 {
		return
	}
	printSection(w, "Against the leader")
	for _, r := range ranked[1:] {
		d := compare.Diff(ranked[0], r)
		fmt.Fprintf(w, "%s: f'c %+.1f MPa, ft %+.2f MPa, cost %s USD\n", d.To, d.Compressive, d.Tensile, d.Cost.StringFixed(2))
	}
}
