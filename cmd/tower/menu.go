package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the mode picker. From the menu you can start any mode or press
Tab to browse local scores, your best rounds, the global leaderboard
and achievements.

Menu controls:
  Up/Down or K/J  - Navigate
  Enter/Space     - Play the selected mode
  Tab             - Scores and achievements
  Q/Esc           - Quit`,
	Run: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runMenu(_ *cobra.Command, _ []string) {
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

	rc := runtimeConfig()
	for {
		best := 0
		if store != nil {
			best, _ = store.HighScore(player)
		}

		result, err := tui.RunMenu(rc, player, best)
		if err != nil {
			fail("running menu: %v", err)
		}
		rc = result.Config

		switch {
		case result.Quit:
			return
		case result.WantsScoreboard:
			back, err := tui.RunScoreboard(tui.ScoreboardOptions{
				Store:  store,
				Player: player,
				Global: env.globalBoard(),
			}, rc.ScreenW, rc.ScreenH)
			if err != nil {
				fail("running scoreboard: %v", err)
			}
			if !back {
				return
			}
		default:
			if flagSeed == 0 {
				rc.Seed = time.Now().UnixNano()
			}
			game, err := env.factory(result.ModeID, player)
			if err != nil {
				fail("%v", err)
			}
			logger.Info("starting round", "mode", result.ModeID, "player", player)
			back, err := tui.Run(game, rc)
			game.Close()
			if err != nil {
				fail("running game: %v", err)
			}
			if !back {
				return
			}
		}
	}
}
