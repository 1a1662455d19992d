package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taubyte/example-games-tower-blocks/internal/achievements"
	"github.com/taubyte/example-games-tower-blocks/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show player stats and achievements",
	Long: `Display the cumulative stats of a player and their progress towards
every achievement.

Examples:
  tower stats
  tower stats --player ada`,
	Args: cobra.NoArgs,
	Run:  runStats,
}

func runStats(_ *cobra.Command, _ []string) {
	cfg := loadConfig("")
	player := playerName(cfg)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	sys, err := achievements.New(store, player)
	if err != nil {
		fail("loading stats: %v", err)
	}
	st := sys.Stats()

	fmt.Printf("Stats - %s\n", player)
	fmt.Println()
	fmt.Printf("  Games played:     %d\n", st.GamesPlayed)
	fmt.Printf("  Highest score:    %d\n", st.HighestScore)
	fmt.Printf("  Blocks placed:    %d\n", st.TotalBlocks)
	fmt.Printf("  Perfect places:   %d\n", st.PerfectPlaces)
	fmt.Printf("  Best streak:      %d\n", st.ConsecutivePerfect)
	fmt.Printf("  Time played:      %s\n", (time.Duration(st.TotalPlayTimeMs) * time.Millisecond).Round(time.Second))
	fmt.Println()

	fmt.Printf("Achievements (%d/%d)\n", sys.UnlockedCount(), len(achievements.All))
	fmt.Println()
	for _, s := range sys.List() {
		mark := " "
		if s.Unlocked {
			mark = "✓"
		}
		fmt.Printf("  [%s] %s %-18s %3.0f%%  %s\n", mark, s.Icon, s.Title, s.Progress*100, s.Description)
	}
}
