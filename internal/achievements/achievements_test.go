package achievements

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taubyte/example-games-tower-blocks/internal/storage"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

var _ tower.StatsReporter = (*System)(nil)

func TestCatalog(t *testing.T) {
	ids := make([]string, len(All))
	for i, a := range All {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{
		"first_block", "tower_10", "tower_50", "perfect_10",
		"perfect_50", "consecutive_5", "games_10", "tower_100",
	}, ids)
}

func TestMerge(t *testing.T) {
	st := storage.PlayerStats{TotalBlocks: 10, PerfectPlaces: 4, HighestScore: 10, GamesPlayed: 2, TotalPlayTimeMs: 1000, ConsecutivePerfect: 3}
	round := tower.Stats{BlocksPlaced: 7, PerfectCount: 2, HighestScore: 7, GamesPlayed: 1, PlayTimeMs: 500, ConsecutivePerfect: 5}

	got := Merge(st, round)

	assert.Equal(t, storage.PlayerStats{
		TotalBlocks:        17,
		PerfectPlaces:      6,
		HighestScore:       10,
		GamesPlayed:        3,
		TotalPlayTimeMs:    1500,
		ConsecutivePerfect: 5,
	}, got)
}

func TestRecordUnlocks(t *testing.T) {
	s, err := New(nil, "")
	require.NoError(t, err)
	assert.Equal(t, storage.DefaultPlayer, s.Player())

	var notified []string
	s.OnUnlock = func(a Achievement) { notified = append(notified, a.ID) }

	fresh, err := s.Record(tower.Stats{BlocksPlaced: 12, PerfectCount: 6, HighestScore: 12, GamesPlayed: 1, ConsecutivePerfect: 6})
	require.NoError(t, err)

	ids := make([]string, len(fresh))
	for i, a := range fresh {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"first_block", "tower_10", "consecutive_5"}, ids)
	assert.Equal(t, ids, notified)

	// Already unlocked achievements are not reported again
	fresh, err = s.Record(tower.Stats{BlocksPlaced: 1, HighestScore: 1, GamesPlayed: 1})
	require.NoError(t, err)
	assert.Empty(t, fresh)
	assert.Equal(t, 3, s.UnlockedCount())
}

func TestProgress(t *testing.T) {
	s, err := New(nil, "ada")
	require.NoError(t, err)

	require.NoError(t, s.ReportStats(tower.Stats{BlocksPlaced: 5, PerfectCount: 5, HighestScore: 5, GamesPlayed: 1, ConsecutivePerfect: 2}))

	assert.Equal(t, 1.0, s.Progress("first_block"))
	assert.Equal(t, 0.5, s.Progress("tower_10"))
	assert.Equal(t, 0.1, s.Progress("tower_50"))
	assert.Equal(t, 0.4, s.Progress("consecutive_5"))
	assert.Equal(t, 0.1, s.Progress("games_10"))
	assert.Equal(t, 0.0, s.Progress("unknown"))

	list := s.List()
	require.Len(t, list, len(All))
	assert.True(t, list[0].Unlocked)
	assert.False(t, list[1].Unlocked)
	assert.Equal(t, 0.5, list[1].Progress)
}

func TestPersistence(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "tower.db"))
	require.NoError(t, err)
	defer store.Close()

	s, err := New(store, "ada")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, s.ReportStats(tower.Stats{BlocksPlaced: 3, PerfectCount: 1, HighestScore: 3, GamesPlayed: 1, PlayTimeMs: 1000}))
	}
	assert.True(t, s.Unlocked("games_10"))
	assert.True(t, s.Unlocked("perfect_10"))

	reloaded, err := New(store, "ada")
	require.NoError(t, err)
	assert.Equal(t, s.Stats(), reloaded.Stats())
	assert.True(t, reloaded.Unlocked("games_10"))
	assert.True(t, reloaded.Unlocked("first_block"))
	assert.False(t, reloaded.Unlocked("tower_10"))

	other, err := New(store, "bob")
	require.NoError(t, err)
	assert.Equal(t, storage.PlayerStats{}, other.Stats())
	assert.Equal(t, 0, other.UnlockedCount())
}
