package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{Player: "ada", Score: 12, Perfect: 3, DurationMs: 20000, GameID: "g1"},
		{Player: "bob", Score: 40, Perfect: 11, DurationMs: 61000, GameID: "g2"},
		{Player: "ada", Score: 25, Perfect: 7, DurationMs: 35000, GameID: "g3"},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	want := []int{40, 25, 12}
	for i, s := range scores {
		if s.Score != want[i] {
			t.Errorf("Score[%d] = %d, want %d", i, s.Score, want[i])
		}
	}
	if scores[0].Player != "bob" || scores[0].Perfect != 11 || scores[0].DurationMs != 61000 || scores[0].GameID != "g2" {
		t.Errorf("Unexpected top entry: %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}

	ada, err := store.PlayerScores("ada", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(ada) != 2 || ada[0].Score != 25 {
		t.Errorf("PlayerScores(ada) = %+v", ada)
	}
}

func TestStoreDefaultPlayer(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreEntry{Score: 5}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	scores, err := store.PlayerScores(DefaultPlayer, 0)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Errorf("Expected 1 score for default player, got %d", len(scores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveScore(ScoreEntry{Player: "p", Score: i * 10}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected highest score 190, got %d", scores[0].Score)
	}

	// Default limit
	scores, err = store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	store.SaveScore(ScoreEntry{Player: "ada", Score: 30})
	store.SaveScore(ScoreEntry{Player: "bob", Score: 50})

	if high, _ = store.HighScore(""); high != 50 {
		t.Errorf("HighScore(all) = %d, want 50", high)
	}
	if high, _ = store.HighScore("ada"); high != 30 {
		t.Errorf("HighScore(ada) = %d, want 30", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "ada", Score: 100})
	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	st, err := store.LoadStats("ada")
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if st != (PlayerStats{}) {
		t.Errorf("Expected zero stats for unknown player, got %+v", st)
	}

	want := PlayerStats{TotalBlocks: 42, PerfectPlaces: 9, HighestScore: 20, GamesPlayed: 3, TotalPlayTimeMs: 90000, ConsecutivePerfect: 4}
	if err := store.SaveStats("ada", want); err != nil {
		t.Fatalf("SaveStats() failed: %v", err)
	}
	want.GamesPlayed = 4
	if err := store.SaveStats("ada", want); err != nil {
		t.Fatalf("SaveStats() upsert failed: %v", err)
	}

	got, err := store.LoadStats("ada")
	if err != nil {
		t.Fatalf("LoadStats() failed: %v", err)
	}
	if got != want {
		t.Errorf("LoadStats() = %+v, want %+v", got, want)
	}
}

func TestStoreAchievements(t *testing.T) {
	store := openTestStore(t)

	added, err := store.UnlockAchievement("ada", "first_block")
	if err != nil {
		t.Fatalf("UnlockAchievement() failed: %v", err)
	}
	if !added {
		t.Error("First unlock should report added")
	}

	added, err = store.UnlockAchievement("ada", "first_block")
	if err != nil {
		t.Fatalf("UnlockAchievement() failed: %v", err)
	}
	if added {
		t.Error("Second unlock of the same achievement should be ignored")
	}

	store.UnlockAchievement("ada", "tower_10")
	store.UnlockAchievement("bob", "games_10")

	unlocks, err := store.Achievements("ada")
	if err != nil {
		t.Fatalf("Achievements() failed: %v", err)
	}
	if len(unlocks) != 2 {
		t.Fatalf("Expected 2 achievements for ada, got %d", len(unlocks))
	}
	if unlocks[0].AchievementID != "first_block" {
		t.Errorf("Expected first_block first, got %s", unlocks[0].AchievementID)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.tower/test.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".tower", "test.db")); err != nil {
		t.Errorf("Expected database under home directory: %v", err)
	}
}

func TestStoreTopPlayers(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{Player: "ada", Score: 12},
		{Player: "ada", Score: 30},
		{Player: "bob", Score: 25},
		{Player: "cy", Score: 30},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	top, err := store.TopPlayers(2)
	if err != nil {
		t.Fatalf("TopPlayers() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 players, got %d", len(top))
	}
	if top[0].Player != "ada" || top[0].Score != 30 {
		t.Errorf("first = %+v, want ada/30", top[0])
	}
	if top[1].Player != "cy" || top[1].Score != 30 {
		t.Errorf("second = %+v, want cy/30", top[1])
	}
}
