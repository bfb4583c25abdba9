package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/engine"
	"github.com/emiliopalmerini/uhpc/internal/service"
	"github.com/emiliopalmerini/uhpc/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and report pages",
	Long: `Start the JSON API and the HTML prediction report.

Examples:
  uhpc serve              # Listen on UHPC_ADDR (default :8080)
  uhpc serve --port 3000  # Listen on :3000`,
	Annotations: map[string]string{needsDB: "true"},
	RunE:        runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides UHPC_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Migrate(ctx); err != nil {
		return err
	}

	addr := app.Config.Addr
	if servePort > 0 {
		addr = fmt.Sprintf(":%d", servePort)
	}

	svc := service.New(engine.Default(),
		service.WithRepository(app.Predictions),
		service.WithMetrics(app.Metrics),
		service.WithLogger(app.Log.Named("http")),
		service.WithWorkers(app.Config.CompareWorkers),
		service.WithSource("http"),
	)
	server := web.NewServer(svc, addr, app.Log, app.Config.ShutdownTimeout)
	return server.Start(ctx)
}
