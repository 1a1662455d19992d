package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/config"
	"github.com/taubyte/example-games-tower-blocks/internal/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the global leaderboard",
	Long: `Fetch the top players from the leaderboard service. With --player
only that player's best score is shown.

The service address comes from leaderboard.base_url in the config or
$TOWER_API_BASE_URL.

Examples:
  tower leaderboard
  tower leaderboard --player ada
  TOWER_API_BASE_URL=http://localhost:8080 tower leaderboard`,
	Args: cobra.NoArgs,
	Run:  runLeaderboard,
}

func runLeaderboard(_ *cobra.Command, _ []string) {
	cfg := loadConfig("")
	client := leaderboard.NewClient(cfg.Leaderboard.BaseURL, config.Duration(cfg.Leaderboard.TimeoutMs))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if flagPlayer != "" {
		score, err := client.PlayerScore(ctx, flagPlayer)
		switch {
		case errors.Is(err, leaderboard.ErrNotFound):
			fmt.Printf("%s has no score on the leaderboard yet.\n", flagPlayer)
			return
		case err != nil:
			fail("%v", err)
		}
		fmt.Printf("%s: %d\n", score.PlayerName, score.Value())
		return
	}

	scores, err := client.Top(ctx)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Global Leaderboard - %s\n", client.BaseURL())
	fmt.Println()
	if len(scores) == 0 {
		fmt.Println("Nobody is on the leaderboard yet.")
		return
	}

	fmt.Printf("  %-4s  %-20s  %s\n", "Rank", "Player", "Score")
	fmt.Printf("  %-4s  %-20s  %s\n", "----", "------", "-----")
	for i, s := range scores {
		fmt.Printf("  %-4d  %-20s  %d\n", i+1, s.PlayerName, s.Value())
	}
}
