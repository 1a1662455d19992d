package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show local high scores",
	Long: `Display the best local rounds. With --player only that player's
rounds are listed.

Examples:
  tower scores
  tower scores --player ada
  tower scores --limit 25`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	var scores []storage.ScoreEntry
	if flagPlayer != "" {
		scores, err = store.PlayerScores(flagPlayer, flagScoresLimit)
		fmt.Printf("High Scores - %s\n", flagPlayer)
	} else {
		scores, err = store.TopScores(flagScoresLimit)
		fmt.Println("High Scores - Tower Blocks")
	}
	if err != nil {
		fail("retrieving scores: %v", err)
	}
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tower play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-7s  %-8s  %s\n", "Rank", "Player", "Score", "Perfect", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-7s  %-8s  %s\n", "----", "------", "-----", "-------", "----", "----")

	for i, e := range scores {
		played := time.Duration(e.DurationMs) * time.Millisecond
		fmt.Printf("  %-4d  %-16s  %-6d  %-7d  %-8s  %s\n",
			i+1, e.Player, e.Score, e.Perfect, played.Round(time.Second), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagPlayer != "" {
		if best, err := store.HighScore(flagPlayer); err == nil {
			fmt.Println()
			fmt.Printf("Best: %d\n", best)
		}
	}
}
