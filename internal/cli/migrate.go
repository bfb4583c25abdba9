package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [version]",
	Short: "Run database migrations",
	Long: `Run database migrations.

Without arguments, runs all pending migrations (up).
With a version number, migrates to that specific version (up or down as needed).

Examples:
  uhpc migrate      # Run all pending migrations
  uhpc migrate 1    # Migrate to version 1
  uhpc migrate 0    # Rollback all migrations`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{needsDB: "true"},
	RunE:        runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	runner, err := migrate.New(app.DB, app.Log)
	if err != nil {
		return err
	}

	current, dirty, err := runner.Version(ctx)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d, manual intervention required", current)
	}
	fmt.Fprintf(out, "Current version: %d\n", current)

	target := runner.Latest()
	if len(args) == 1 {
		target, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version number: %s", args[0])
		}
	}
	if target == current {
		fmt.Fprintln(out, "Already at target version")
		return nil
	}

	applied, err := runner.To(ctx, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Applied %d migration(s), now at version %d\n", applied, target)
	return nil
}
