package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/ports"
	"github.com/emiliopalmerini/uhpc/internal/service"
	"github.com/emiliopalmerini/uhpc/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse logged predictions",
	Long: `Browse, inspect, delete and re-verify predictions saved with --save.

Examples:
  uhpc history list --limit 10
  uhpc history list --name "Sustainable Mix"
  uhpc history show <id>
  uhpc history verify <id>
  uhpc history delete <id>`,
	Annotations: map[string]string{needsDB: "true"},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd, args); err != nil {
			return err
		}
		return app.Migrate(cmd.Context())
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List logged predictions, newest first",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one logged prediction",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a logged prediction",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-run a logged prediction and compare the results",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryVerify,
}

var (
	historyLimit int
	historyName  string
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyVerifyCmd)

	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum predictions to list (0 for all)")
	historyListCmd.Flags().StringVar(&historyName, "name", "", "Filter by mix name")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	recs, err := app.Service.History(cmd.Context(), ports.ListOptions{Limit: historyLimit, Name: historyName})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, recs)
	}
	if len(recs) == 0 {
		fmt.Fprintln(out, "No predictions logged.")
		return nil
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tCREATED\tMIX\tAGE\tf'c\tCOST\tENGINE")
	for _, r := range recs {
		p := r.Prediction
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			util.ShortID(r.ID),
			util.FormatDateTime(r.CreatedAt),
			p.Mix.Label("-"),
			util.FormatDays(p.Mix.AgeDays),
			util.FormatMPa(p.CompressiveStrength.Value),
			util.FormatUSD(p.Cost),
			p.EngineVersion,
		)
	}
	return tw.Flush()
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	rec, err := app.Service.Record(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, rec)
	}

	res, err := app.Service.Describe(rec.Prediction)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Prediction %s, logged %s\n\n", rec.ID, util.FormatDateTime(rec.CreatedAt))
	printResult(out, res)
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	if err := app.Service.DeleteRecord(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runHistoryVerify(cmd *cobra.Command, args []string) error {
	v, err := app.Service.Verify(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput() {
		return printJSON(out, v)
	}
	printVerification(cmd, v)
	if !v.Reproduced {
		return fmt.Errorf("prediction %s was not reproduced", v.Record.ID)
	}
	return nil
}

func printVerification(cmd *cobra.Command, v *service.Verification) {
	out := cmd.OutOrStdout()
	stored, current := v.Record.Prediction, v.Current

	tw := newTable(out)
	fmt.Fprintln(tw, "\tSTORED\tCURRENT")
	fmt.Fprintf(tw, "Engine\t%s\t%s\n", stored.EngineVersion, current.EngineVersion)
	fmt.Fprintf(tw, "Coefficients\t%s\t%s\n", util.ShortID(stored.CoefficientsDigest), util.ShortID(current.CoefficientsDigest))
	fmt.Fprintf(tw, "Descriptor\t%s\t%s\n", util.ShortID(stored.DescriptorDigest), util.ShortID(current.DescriptorDigest))
	fmt.Fprintf(tw, "f'c\t%s\t%s\n", util.FormatMPa(stored.CompressiveStrength.Value), util.FormatMPa(current.CompressiveStrength.Value))
	fmt.Fprintf(tw, "Cost\t%s\t%s\n", util.FormatUSD(stored.Cost), util.FormatUSD(current.Cost))
	_ = tw.Flush()

	fmt.Fprintf(out, "\nSame descriptor: %s  Same engine: %s  Reproduced: %s\n",
		yesNo(v.SameDescriptor), yesNo(v.SameEngine), yesNo(v.Reproduced))
}
