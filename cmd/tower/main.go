// tower is Tower Blocks for the terminal: stack sliding blocks as high as you can.
//
// Usage:
//
//	tower play [mode]        - Play a round directly
//	tower menu               - Pick a mode interactively
//	tower modes              - List game modes
//	tower serve              - Start the SSH server for remote play
//	tower api                - Run a leaderboard service
//	tower scores             - Show local high scores
//	tower stats              - Show player stats and achievements
//	tower leaderboard        - Show the global leaderboard
//	tower config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.tower/tower.db)
//	--config <path>      - Use a custom YAML configuration
//	--player <name>      - Player name for scores and the leaderboard
//	--log <path>         - Log file (default: ~/.tower/tower.log)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Registers the game modes
	_ "github.com/taubyte/example-games-tower-blocks/internal/games/towerblocks"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPlayer   string
	flagLogPath  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tower",
	Short: "Tower Blocks - stack blocks in your terminal",
	Long: `Tower Blocks is a reflex stacking game. A block slides back and forth
above the tower; press Space to drop it. Whatever overhangs the block
below is cut off, so every miss makes the tower narrower. Land a block
almost exactly on top of the previous one for a perfect placement.

Available commands:
  play         - Play a round directly
  menu         - Interactive mode picker, scores and achievements
  modes        - Show all game modes
  serve        - Start SSH server for remote play
  api          - Run a leaderboard service backed by the local database
  scores       - View local high scores
  stats        - View player stats and achievements
  leaderboard  - View the global leaderboard
  config       - Print the effective configuration

Examples:
  tower play
  tower play hard
  tower menu
  tower serve --ssh :2222
  tower scores --player ada`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tower/tower.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tower config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name (default: config or $USER)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.tower/tower.log", "Log file for interactive commands")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(configCmd)
}
