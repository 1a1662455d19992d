package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/games/towerblocks"
	"github.com/taubyte/example-games-tower-blocks/internal/platform/tui"
	"github.com/taubyte/example-games-tower-blocks/internal/registry"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play Tower Blocks",
	Long: `Start a round of Tower Blocks. The mode defaults to classic.

Controls:
  Space/Enter/Click - Place the block
  R                 - Restart (after game over)
  P                 - Pause
  M                 - Mute sound effects
  N                 - Toggle music
  T                 - Next music track
  Esc/B             - Back (when paused or game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Start at lowest difficulty with wide perfect slack
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty with tight perfect slack
  fixed  - No progression, stays at config's initial level

Examples:
  tower play
  tower play zen
  tower play --difficulty hard
  tower play --player ada --seed 42
  tower play --config ./my-tower.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) {
	mode := towerblocks.ModeClassic
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
		fmt.Fprintln(os.Stderr, "Run 'tower modes' to see available modes.")
		os.Exit(1)
	}

	logger, closeLog := newLogger(nil)
	defer closeLog()

	cfg := loadConfig(flagDifficulty)
	player := playerName(cfg)

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	sound := newAudio(cfg, logger)
	defer sound.Close()

	env := gameEnv{
		cfg:    cfg,
		store:  store,
		audio:  sound,
		board:  newLeaderboardClient(cfg),
		logger: logger,
	}
	game, err := env.factory(mode, player)
	if err != nil {
		fail("%v", err)
	}
	defer game.Close()

	logger.Info("starting round", "mode", mode, "player", player)
	if _, err := tui.Run(game, runtimeConfig()); err != nil {
		fail("running game: %v", err)
	}
}
