package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/codec"
	"github.com/emiliopalmerini/uhpc/internal/compare"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/util"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Recommend a mix for project requirements",
	Long: `Evaluate candidate mixes against target strength, early strength and cost,
and recommend them by requirements met, then lowest cost.

Examples:
  uhpc optimize
  uhpc optimize --target 110 --max-cost 150 --application high-rise
  uhpc optimize --file candidates.yaml`,
	RunE: runOptimize,
}

var (
	optimizeReq  = compare.DefaultRequirements()
	optimizeApp  = applicationValue(optimizeReq.Application)
	optimizeFile string
)

func init() {
	rootCmd.AddCommand(optimizeCmd)
	fs := optimizeCmd.Flags()
	fs.Float64Var(&optimizeReq.TargetStrength, "target", optimizeReq.TargetStrength, "Target compressive strength (MPa)")
	fs.Float64Var(&optimizeReq.AgeDays, "age", optimizeReq.AgeDays, "Age at which the target applies (days)")
	fs.Float64Var(&optimizeReq.MaxCost, "max-cost", optimizeReq.MaxCost, "Maximum material cost (USD/m³)")
	fs.Float64Var(&optimizeReq.MinEarlyStrength, "min-early", optimizeReq.MinEarlyStrength, fmt.Sprintf("Minimum %d-day strength (MPa)", compare.EarlyAge))
	fs.Var(&optimizeApp, "application", "Target application: bridge, high-rise, marine, industrial-floor")
	fs.StringVarP(&optimizeFile, "file", "f", "", "Descriptor file with candidate mixes (default: built-in families)")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	req := optimizeReq
	req.Application = domain.Application(optimizeApp)

	var candidates []domain.MixDesign
	if optimizeFile != "" {
		ms, err := codec.ReadFile(optimizeFile)
		if err != nil {
			return err
		}
		candidates = ms
		if candidates == nil {
			candidates = []domain.MixDesign{}
		}
	}

	results, err := app.Service.Optimize(cmd.Context(), req, candidates)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, map[string]any{"requirements": req, "candidates": results})
	}

	fmt.Fprintf(out, "Target %s at %s, %d-day >= %s, cost <= $%.2f, %s\n\n",
		util.FormatMPa(req.TargetStrength), util.FormatDays(req.AgeDays), compare.EarlyAge,
		util.FormatMPa(req.MinEarlyStrength), req.MaxCost, req.Application)

	tw := newTable(out)
	fmt.Fprintln(tw, "#\tMIX\tf'c\tEARLY\tCOST\tSTRENGTH\tEARLY OK\tCOST OK\tFIT\tVERDICT")
	for i, c := range results {
		p := c.Prediction
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d%% (%s)\t%s\n",
			i+1,
			p.Mix.Label(fmt.Sprintf("candidate %d", i+1)),
			util.FormatMPa(p.CompressiveStrength.Value),
			util.FormatMPa(c.EarlyStrength),
			util.FormatUSD(p.Cost),
			yesNo(c.MeetsStrength),
			yesNo(c.MeetsEarly),
			yesNo(c.MeetsCost),
			c.Suitability, c.Grade,
			c.Verdict(),
		)
	}
	return tw.Flush()
}
