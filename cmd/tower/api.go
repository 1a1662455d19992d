package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/leaderboard"
	"github.com/taubyte/example-games-tower-blocks/internal/metrics"
	"github.com/taubyte/example-games-tower-blocks/internal/storage"
)

var (
	flagAPIAddr    string
	flagAPIMetrics bool
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Run a leaderboard service",
	Long: `Run an HTTP leaderboard service backed by the local scores database.
Point clients at it with leaderboard.base_url or $TOWER_API_BASE_URL.

Endpoints:
  GET  /health                    - Liveness probe
  GET  /leaderboard               - Best score of every player
  GET  /score?player_name=<name>  - Best score of one player
  POST /score                     - Submit a finished round
  GET  /metrics                   - Prometheus metrics (with --metrics)

Examples:
  tower api
  tower api --addr :9000 --metrics
  tower api --db ./leaderboard.db`,
	Run: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", ":8080", "HTTP listen address")
	apiCmd.Flags().BoolVar(&flagAPIMetrics, "metrics", true, "Expose /metrics and record request metrics")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger, _ := newLogger(os.Stderr)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	cfg := leaderboard.ServerConfig{
		Addr:   flagAPIAddr,
		Store:  store,
		Logger: logger,
	}
	var reg *metrics.Registry
	if flagAPIMetrics {
		reg = metrics.New()
		cfg.Middleware = []gin.HandlerFunc{reg.GinMiddleware()}
	}

	server := leaderboard.NewServer(cfg)
	if reg != nil {
		reg.Mount(server.Router())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Leaderboard API on %s (database %s)\n", flagAPIAddr, flagDBPath)
	if err := server.Run(ctx); err != nil {
		fail("leaderboard API: %v", err)
	}
}
