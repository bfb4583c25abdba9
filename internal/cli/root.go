package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/emiliopalmerini/uhpc/internal/config"
	"github.com/emiliopalmerini/uhpc/internal/logging"
)

// needsDB marks commands that open the prediction log.
const needsDB = "db"

var rootCmd = &cobra.Command{
	Use:   "uhpc",
	Short: "Property prediction for ultra-high performance concrete",
	Long: `uhpc predicts compressive strength, tensile strength, elastic modulus,
pulse velocity and material cost for a concrete mix design.

Mixes can be checked against reference code curves, ranked, optimized
against project requirements and logged for later verification.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

// Global flags
var (
	flagVerbose bool
	flagDB      string
	flagOutput  string
)

var app *AppContext

func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	// Post-run hooks are skipped when a command fails.
	teardown(rootCmd, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database URL (overrides UHPC_DATABASE_URL)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", outputText, "Output format: text, json")
}

func setup(cmd *cobra.Command, args []string) error {
	if flagOutput != outputText && flagOutput != outputJSON {
		return fmt.Errorf("unsupported output %q (want text or json)", flagOutput)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flagDB != "" {
		cfg.DatabaseURL = flagDB
	}

	log, err := logging.New(cfg.LogLevel, flagVerbose)
	if err != nil {
		return err
	}

	app, err = NewAppContext(cmd.Context(), cfg, log, wantsDB(cmd))
	if err != nil {
		_ = log.Sync()
		return err
	}
	log.Debug("command", zap.String("name", cmd.CommandPath()), zap.Bool("db", app.DB != nil))
	return nil
}

func teardown(cmd *cobra.Command, args []string) {
	if app == nil {
		return
	}
	a := app
	app = nil
	if err := a.Close(cmd.Context()); err != nil {
		a.Log.Warn("failed to close app context", zap.Error(err))
	}
	_ = a.Log.Sync()
}

// wantsDB reports whether cmd, or a predict run with --save, needs the database.
func wantsDB(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[needsDB]; ok {
			return true
		}
	}
	if f := cmd.Flags().Lookup("save"); f != nil && f.Changed {
		return f.Value.String() == "true"
	}
	return false
}
