package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/service"
	"github.com/emiliopalmerini/uhpc/internal/util"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the properties of a mix",
	Long: `Predict compressive strength, tensile strength, elastic modulus, pulse
velocity and material cost for one mix design.

Examples:
  uhpc predict --preset standard-uhpc
  uhpc predict --preset sustainable --age-days 90
  uhpc predict --file mix.yaml --save
  uhpc predict --cement 420 --water 150 --silica-fume 45 -o json`,
	RunE: runPredict,
}

var (
	predictMix  *mixFlags
	predictSave bool
)

func init() {
	rootCmd.AddCommand(predictCmd)
	predictMix = addMixFlags(predictCmd)
	predictCmd.Flags().BoolVar(&predictSave, "save", false, "Log the prediction to the database")
}

func runPredict(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	m, err := predictMix.mix(cmd)
	if err != nil {
		return err
	}
	if predictSave {
		if err := app.Migrate(ctx); err != nil {
			return err
		}
	}

	res, err := app.Service.Predict(ctx, m, predictSave)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, res)
	}
	printResult(out, res)
	return nil
}

func printResult(w io.Writer, res *service.Result) {
	p, a := res.Prediction, res.Analysis

	fmt.Fprintf(w, "%s at %s\n", p.Mix.Label("Mix"), util.FormatDays(p.Mix.AgeDays))
	fmt.Fprintf(w, "w/b %.3f  w/c %.3f  SCM %s\n", a.WaterBinderRatio, a.WaterCementRatio, util.FormatPercent(a.SCMPercent))

	printSection(w, "Predicted properties")
	tw := newTable(w)
	fmt.Fprintln(tw, "PROPERTY\tVALUE\tR²")
	fmt.Fprintf(tw, "Compressive strength\t%s\t%.2f\n", util.FormatMPa(p.CompressiveStrength.Value), p.CompressiveStrength.R2)
	fmt.Fprintf(tw, "Tensile strength\t%s\t%.2f\n", util.FormatMPa(p.TensileStrength.Value), p.TensileStrength.R2)
	fmt.Fprintf(tw, "Elastic modulus\t%s\t%.2f\n", util.FormatGPa(p.ElasticModulus.Value), p.ElasticModulus.R2)
	fmt.Fprintf(tw, "Pulse velocity\t%s\t%.2f\n", util.FormatVelocity(p.UPV.Value), p.UPV.R2)
	fmt.Fprintf(tw, "Cost\t%s\t%.2f\n", util.FormatUSD(p.Cost), p.CostR2)
	_ = tw.Flush()
	fmt.Fprintf(w, "Confidence: %s (%s)\n", util.FormatPercent(res.Confidence*100), res.ConfidenceLevel)

	printSection(w, "Analysis")
	fmt.Fprintf(w, "Class: %s  UPV quality: %s  Sustainability: %.1f/10\n", a.Class, a.UPVQuality, a.SustainabilityScore)
	fmt.Fprintf(w, "Strength/cost: %.3f MPa per USD  ft/fc: %s  E/fc: %.0f\n", a.StrengthPerCost, util.FormatPercent(a.TensileRatioPercent), a.ModulusRatio)
	fmt.Fprintf(w, "Applications: %v\n", a.Applications)

	printSection(w, "Standards")
	printReports(w, res.Reports)

	fmt.Fprintf(w, "\nEngine %s (coefficients %s)\n", p.EngineVersion, util.ShortID(p.CoefficientsDigest))
	fmt.Fprintf(w, "Descriptor %s\n", util.ShortID(p.DescriptorDigest))
	if res.RecordID != "" {
		fmt.Fprintf(w, "Saved as %s\n", res.RecordID)
	}
}
