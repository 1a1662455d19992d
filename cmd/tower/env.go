package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/taubyte/example-games-tower-blocks/internal/audio"
	"github.com/taubyte/example-games-tower-blocks/internal/config"
	"github.com/taubyte/example-games-tower-blocks/internal/core"
	"github.com/taubyte/example-games-tower-blocks/internal/games/towerblocks"
	"github.com/taubyte/example-games-tower-blocks/internal/leaderboard"
	"github.com/taubyte/example-games-tower-blocks/internal/platform/tui"
	"github.com/taubyte/example-games-tower-blocks/internal/registry"
	"github.com/taubyte/example-games-tower-blocks/internal/storage"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// loadConfig loads the tower configuration and applies a difficulty preset.
func loadConfig(preset string) config.TowerConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	switch p := config.DifficultyPreset(preset); p {
	case "":
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyPreset(&cfg, p)
	default:
		fail("unknown difficulty %q (want easy, normal, hard or fixed)", preset)
	}
	return cfg
}

// playerName resolves the player: --player, then the config, then $USER.
func playerName(cfg config.TowerConfig) string {
	for _, name := range []string{flagPlayer, cfg.Leaderboard.PlayerName, os.Getenv("USER")} {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}
	return storage.DefaultPlayer
}

// newLogger returns a logger writing to w, or to the --log file when w is nil.
// The returned closer releases the file.
func newLogger(w io.Writer) (*log.Logger, func()) {
	closer := func() {}
	if w == nil {
		path := expandHome(flagLogPath)
		w = io.Discard
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
				w = f
				closer = func() { f.Close() }
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tower",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closer
}

// openStore opens the score database. A failure is reported and play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newLeaderboardClient returns nil unless the leaderboard is enabled and configured.
func newLeaderboardClient(cfg config.TowerConfig) *leaderboard.Client {
	if !cfg.Leaderboard.Enabled || cfg.Leaderboard.BaseURL == "" {
		return nil
	}
	return leaderboard.NewClient(cfg.Leaderboard.BaseURL, config.Duration(cfg.Leaderboard.TimeoutMs))
}

// runtimeConfig sizes the game to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg
}

// gameEnv holds what every game built by the factory shares.
type gameEnv struct {
	cfg     config.TowerConfig
	store   *storage.Store
	audio   *audio.Player
	board   *leaderboard.Client
	metrics tower.Metrics
	logger  *log.Logger
}

// factory builds games for registered modes.
func (e gameEnv) factory(mode, player string) (registry.Game, error) {
	m, err := registry.Lookup(mode)
	if err != nil {
		return nil, err
	}

	opts := towerblocks.Options{
		Mode:    m.ID,
		Config:  m.Configure(e.cfg),
		Player:  player,
		Store:   e.store,
		Audio:   e.audio,
		Metrics: e.metrics,
		Logger:  e.logger,
	}
	if e.board != nil {
		opts.Leaderboard = e.board
	}
	return towerblocks.New(opts), nil
}

// globalBoard returns the leaderboard for the scoreboard screen, or nil.
func (e gameEnv) globalBoard() tui.GlobalBoard {
	if e.board == nil {
		return nil
	}
	return e.board
}

// newAudio opens the speaker for local play. Failures leave the game silent.
func newAudio(cfg config.TowerConfig, logger *log.Logger) *audio.Player {
	player := audio.New(cfg.Audio)
	if err := player.Init(); err != nil {
		logger.Warn("audio unavailable", "error", err)
	}
	return player
}
