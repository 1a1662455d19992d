package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/metrics"
	"github.com/taubyte/example-games-tower-blocks/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Tower Blocks SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode menu. The SSH
user name is the player name. Scores are stored per-server, so all
players share the same local scoreboard. Sound is disabled for remote
sessions.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tower/host_key

Examples:
  tower serve                           # Listen on :23234 with auto-generated key
  tower serve --ssh :2222               # Listen on port 2222
  tower serve --host-key ./my_host_key  # Use specific host key
  tower serve --metrics :9090           # Expose Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Serve Prometheus metrics on this address (disabled if empty)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, _ := newLogger(os.Stderr)

	cfg := loadConfig("")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	reg := metrics.New()
	env := gameEnv{
		cfg:     cfg,
		store:   store,
		board:   newLeaderboardClient(cfg),
		metrics: reg,
		logger:  logger,
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: expandHome(flagHostKey),
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}, tui.SessionDeps{
		Store:    store,
		NewGame:  env.factory,
		Global:   env.globalBoard(),
		Observer: reg,
		Logger:   logger,
	})
	if err != nil {
		fail("creating server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if flagMetricsAddr != "" {
		go serveMetrics(ctx, reg, flagMetricsAddr)
	}

	fmt.Printf("Starting Tower Blocks SSH server on %s\n", flagSSHAddr)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Serve(ctx); err != nil {
		fail("server: %v", err)
	}
}

// serveMetrics exposes /metrics until ctx is cancelled.
func serveMetrics(ctx context.Context, reg *metrics.Registry, addr string) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	reg.Mount(router)

	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Serving metrics on %s/metrics\n", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Metrics server error: %v\n", err)
	}
}
