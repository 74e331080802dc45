package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/gridiron/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd runs the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rankings and player scores over HTTP",
	Long: `Start a JSON API on --addr. The league is loaded once at startup.

Routes:
  GET /healthz
  GET /api/rankings?format=&td_pts=&position=&limit=
  GET /api/players/{id}?format=&td_pts=
  GET /api/weights

Examples:
  gridiron serve --snapshot league.json --addr :8080
  curl 'localhost:8080/api/rankings?position=RB&limit=10'`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return api.Serve(ctx, cfg, cacheManager)
	},
}
