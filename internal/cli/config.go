package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration and the UHPC_* environment variables
that control it.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := app.Config
	out := cmd.OutOrStdout()

	if jsonOutput() {
		redacted := *cfg
		if redacted.AuthToken != "" {
			redacted.AuthToken = "***"
		}
		return printJSON(out, redacted)
	}

	db := cfg.DatabaseURL
	if db == "" {
		db = "default (XDG data directory)"
	}
	tw := newTable(out)
	fmt.Fprintf(tw, "Database\t%s\n", db)
	fmt.Fprintf(tw, "Auth token\t%s\n", yesNo(cfg.AuthToken != ""))
	fmt.Fprintf(tw, "Listen address\t%s\n", cfg.Addr)
	fmt.Fprintf(tw, "Shutdown timeout\t%s\n", cfg.ShutdownTimeout)
	fmt.Fprintf(tw, "Log level\t%s\n", cfg.LogLevel)
	fmt.Fprintf(tw, "Compare workers\t%d\n", cfg.CompareWorkers)
	fmt.Fprintf(tw, "OTel metrics\t%s %s\n", yesNo(cfg.OTel.Enabled), cfg.OTel.Endpoint)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return config.Usage(out)
}
