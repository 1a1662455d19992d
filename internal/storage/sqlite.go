// Package storage provides SQLite-based persistence for scores, cumulative
// player statistics and unlocked achievements.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayer is used when no player name is configured.
const DefaultPlayer = "player"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished round.
type ScoreEntry struct {
	ID         int64
	Player     string
	GameID     string // Round UUID
	Score      int
	Perfect    int
	DurationMs int64
	CreatedAt  time.Time
}

// PlayerStats are the cumulative counters of one player.
type PlayerStats struct {
	TotalBlocks        int
	PerfectPlaces      int
	HighestScore       int
	GamesPlayed        int
	TotalPlayTimeMs    int64
	ConsecutivePerfect int
}

// Unlock records when an achievement was earned.
type Unlock struct {
	AchievementID string
	UnlockedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			game_id TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			perfect INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player, score DESC);

		CREATE TABLE IF NOT EXISTS player_stats (
			player TEXT PRIMARY KEY,
			total_blocks INTEGER NOT NULL DEFAULT 0,
			perfect_places INTEGER NOT NULL DEFAULT 0,
			highest_score INTEGER NOT NULL DEFAULT 0,
			games_played INTEGER NOT NULL DEFAULT 0,
			total_play_time_ms INTEGER NOT NULL DEFAULT 0,
			consecutive_perfect INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS achievements (
			player TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, achievement_id)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.Player == "" {
		e.Player = DefaultPlayer
	}
	result, err := s.db.Exec(
		"INSERT INTO scores (player, game_id, score, perfect, duration_ms) VALUES (?, ?, ?, ?, ?)",
		e.Player, e.GameID, e.Score, e.Perfect, e.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores across all players.
// Results are ordered by score descending.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, player, game_id, score, perfect, duration_ms, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerScores retrieves the top N scores of one player.
func (s *Store) PlayerScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, player, game_id, score, perfect, duration_ms, created_at
		 FROM scores
		 WHERE player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.GameID, &e.Score, &e.Perfect, &e.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score of a player, or across all players
// when player is empty. Returns 0 if no scores exist.
func (s *Store) HighScore(player string) (int, error) {
	var score sql.NullInt64
	var err error
	if player == "" {
		err = s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)
	} else {
		err = s.db.QueryRow("SELECT MAX(score) FROM scores WHERE player = ?", player).Scan(&score)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// PlayerBest is a player's best score.
type PlayerBest struct {
	Player    string
	Score     int
	UpdatedAt time.Time
}

// TopPlayers returns the best score of each player, best first.
func (s *Store) TopPlayers(limit int) ([]PlayerBest, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT player, MAX(score) AS best, MAX(created_at)
		 FROM scores
		 GROUP BY player
		 ORDER BY best DESC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query top players: %w", err)
	}
	defer rows.Close()

	var out []PlayerBest
	for rows.Next() {
		var b PlayerBest
		var updated any
		if err := rows.Scan(&b.Player, &b.Score, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		b.UpdatedAt = parseTime(updated)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearScores deletes all scores.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LoadStats returns the cumulative stats of a player, zero if none were saved.
func (s *Store) LoadStats(player string) (PlayerStats, error) {
	var st PlayerStats
	err := s.db.QueryRow(
		`SELECT total_blocks, perfect_places, highest_score, games_played,
		        total_play_time_ms, consecutive_perfect
		 FROM player_stats
		 WHERE player = ?`,
		player,
	).Scan(&st.TotalBlocks, &st.PerfectPlaces, &st.HighestScore, &st.GamesPlayed, &st.TotalPlayTimeMs, &st.ConsecutivePerfect)

	if errors.Is(err, sql.ErrNoRows) {
		return PlayerStats{}, nil
	}
	if err != nil {
		return PlayerStats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	return st, nil
}

// SaveStats replaces the cumulative stats of a player.
func (s *Store) SaveStats(player string, st PlayerStats) error {
	_, err := s.db.Exec(
		`INSERT INTO player_stats
		 (player, total_blocks, perfect_places, highest_score, games_played, total_play_time_ms, consecutive_perfect, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
		   total_blocks = excluded.total_blocks,
		   perfect_places = excluded.perfect_places,
		   highest_score = excluded.highest_score,
		   games_played = excluded.games_played,
		   total_play_time_ms = excluded.total_play_time_ms,
		   consecutive_perfect = excluded.consecutive_perfect,
		   updated_at = CURRENT_TIMESTAMP`,
		player, st.TotalBlocks, st.PerfectPlaces, st.HighestScore, st.GamesPlayed, st.TotalPlayTimeMs, st.ConsecutivePerfect,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save stats: %w", err)
	}
	return nil
}

// UnlockAchievement records an achievement for a player.
// Returns false if it was already unlocked.
func (s *Store) UnlockAchievement(player, id string) (bool, error) {
	res, err := s.db.Exec(
		"INSERT OR IGNORE INTO achievements (player, achievement_id) VALUES (?, ?)",
		player, id,
	)
	if err != nil {
		return false, fmt.Errorf("storage: cannot unlock achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// Achievements returns every achievement a player has unlocked, oldest first.
func (s *Store) Achievements(player string) ([]Unlock, error) {
	rows, err := s.db.Query(
		`SELECT achievement_id, unlocked_at
		 FROM achievements
		 WHERE player = ?
		 ORDER BY unlocked_at ASC, achievement_id ASC`,
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var unlocks []Unlock
	for rows.Next() {
		var u Unlock
		var unlockedAt any
		if err := rows.Scan(&u.AchievementID, &unlockedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		u.UnlockedAt = parseTime(unlockedAt)
		unlocks = append(unlocks, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return unlocks, nil
}

// parseTime handles the datetime forms the driver may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
