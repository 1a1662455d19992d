// Package achievements tracks cumulative player statistics and unlocks
// milestone achievements when a round is reported.
package achievements

import (
	"fmt"
	"sync"

	"github.com/taubyte/example-games-tower-blocks/internal/storage"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// Achievement is a milestone reached once a stat meets its goal.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Goal        int
	metric      func(storage.PlayerStats) int
}

// Value returns the stat the achievement measures.
func (a Achievement) Value(st storage.PlayerStats) int {
	return a.metric(st)
}

// Reached reports whether st satisfies the achievement.
func (a Achievement) Reached(st storage.PlayerStats) bool {
	return a.metric(st) >= a.Goal
}

// Progress returns how close st is to the goal, in [0, 1].
func (a Achievement) Progress(st storage.PlayerStats) float64 {
	if a.Goal <= 0 {
		return 1
	}
	return min(float64(a.metric(st))/float64(a.Goal), 1)
}

func totalBlocks(st storage.PlayerStats) int   { return st.TotalBlocks }
func highestScore(st storage.PlayerStats) int  { return st.HighestScore }
func perfectPlaces(st storage.PlayerStats) int { return st.PerfectPlaces }
func streak(st storage.PlayerStats) int        { return st.ConsecutivePerfect }
func gamesPlayed(st storage.PlayerStats) int   { return st.GamesPlayed }

// All lists every achievement in display order.
var All = []Achievement{
	{ID: "first_block", Title: "First Steps", Description: "Place your first block", Icon: "◎", Goal: 1, metric: totalBlocks},
	{ID: "tower_10", Title: "Tower Builder", Description: "Build a tower of 10 blocks", Icon: "▲", Goal: 10, metric: highestScore},
	{ID: "tower_50", Title: "Skyscraper", Description: "Build a tower of 50 blocks", Icon: "▣", Goal: 50, metric: highestScore},
	{ID: "perfect_10", Title: "Precision Master", Description: "Get 10 perfect placements", Icon: "◆", Goal: 10, metric: perfectPlaces},
	{ID: "perfect_50", Title: "Perfect Storm", Description: "Get 50 perfect placements", Icon: "★", Goal: 50, metric: perfectPlaces},
	{ID: "consecutive_5", Title: "Hot Streak", Description: "Get 5 consecutive perfect placements", Icon: "♨", Goal: 5, metric: streak},
	{ID: "games_10", Title: "Dedicated Player", Description: "Play 10 games", Icon: "♣", Goal: 10, metric: gamesPlayed},
	{ID: "tower_100", Title: "Master Builder", Description: "Build a tower of 100 blocks", Icon: "♛", Goal: 100, metric: highestScore},
}

// Lookup finds an achievement by ID.
func Lookup(id string) (Achievement, bool) {
	for _, a := range All {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

// Merge folds the counters of one round into cumulative stats.
// Totals add up; the best score and the best streak keep their maximum.
func Merge(st storage.PlayerStats, round tower.Stats) storage.PlayerStats {
	st.TotalBlocks += round.BlocksPlaced
	st.PerfectPlaces += round.PerfectCount
	st.GamesPlayed += round.GamesPlayed
	st.TotalPlayTimeMs += round.PlayTimeMs
	st.HighestScore = max(st.HighestScore, round.HighestScore)
	st.ConsecutivePerfect = max(st.ConsecutivePerfect, round.ConsecutivePerfect)
	return st
}

// Store persists stats and unlocks.
type Store interface {
	LoadStats(player string) (storage.PlayerStats, error)
	SaveStats(player string, st storage.PlayerStats) error
	UnlockAchievement(player, id string) (bool, error)
	Achievements(player string) ([]storage.Unlock, error)
}

// Status is an achievement with the player's standing.
type Status struct {
	Achievement
	Unlocked bool
	Progress float64
}

// System keeps one player's stats and unlocked achievements.
// It is safe for concurrent use.
type System struct {
	mu       sync.Mutex
	store    Store
	player   string
	stats    storage.PlayerStats
	unlocked map[string]bool

	// OnUnlock is called for every newly unlocked achievement.
	OnUnlock func(Achievement)
}

// New loads a player's stats and unlocks. A nil store keeps everything in memory.
func New(store Store, player string) (*System, error) {
	if player == "" {
		player = storage.DefaultPlayer
	}
	s := &System{
		store:    store,
		player:   player,
		unlocked: make(map[string]bool),
	}
	if store == nil {
		return s, nil
	}

	st, err := store.LoadStats(player)
	if err != nil {
		return nil, fmt.Errorf("achievements: load stats: %w", err)
	}
	s.stats = st

	unlocks, err := store.Achievements(player)
	if err != nil {
		return nil, fmt.Errorf("achievements: load unlocks: %w", err)
	}
	for _, u := range unlocks {
		s.unlocked[u.AchievementID] = true
	}
	return s, nil
}

// ReportStats merges a finished round and unlocks any reached achievements.
func (s *System) ReportStats(round tower.Stats) error {
	_, err := s.Record(round)
	return err
}

// Record merges a finished round and returns the achievements it unlocked.
func (s *System) Record(round tower.Stats) ([]Achievement, error) {
	s.mu.Lock()
	s.stats = Merge(s.stats, round)
	stats := s.stats

	var fresh []Achievement
	for _, a := range All {
		if !s.unlocked[a.ID] && a.Reached(stats) {
			s.unlocked[a.ID] = true
			fresh = append(fresh, a)
		}
	}
	onUnlock := s.OnUnlock
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveStats(s.player, stats); err != nil {
			return fresh, fmt.Errorf("achievements: save stats: %w", err)
		}
		for _, a := range fresh {
			if _, err := s.store.UnlockAchievement(s.player, a.ID); err != nil {
				return fresh, fmt.Errorf("achievements: unlock %s: %w", a.ID, err)
			}
		}
	}

	if onUnlock != nil {
		for _, a := range fresh {
			onUnlock(a)
		}
	}
	return fresh, nil
}

// Stats returns the cumulative stats.
func (s *System) Stats() storage.PlayerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Player returns the tracked player name.
func (s *System) Player() string { return s.player }

// Unlocked reports whether an achievement has been earned.
func (s *System) Unlocked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlocked[id]
}

// Progress returns the progress toward an achievement, 0 for unknown IDs.
func (s *System) Progress(id string) float64 {
	a, ok := Lookup(id)
	if !ok {
		return 0
	}
	return a.Progress(s.Stats())
}

// List returns every achievement with the player's standing.
func (s *System) List() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Status, len(All))
	for i, a := range All {
		out[i] = Status{
			Achievement: a,
			Unlocked:    s.unlocked[a.ID],
			Progress:    a.Progress(s.stats),
		}
	}
	return out
}

// UnlockedCount returns how many achievements have been earned.
func (s *System) UnlockedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.unlocked)
}
