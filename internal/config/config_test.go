package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(DefaultYAML()) failed: %v", err)
	}
	if cfg != DefaultTowerConfig() {
		t.Errorf("embedded defaults differ from DefaultTowerConfig():\n got %+v\nwant %+v", cfg, DefaultTowerConfig())
	}
}

func TestLoadCustomPathPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	data := []byte("gameplay:\n  accuracy_tolerance: 0.1\nmovement:\n  travel_distance: 8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Gameplay.AccuracyTolerance != 0.1 {
		t.Errorf("AccuracyTolerance = %v, want 0.1", cfg.Gameplay.AccuracyTolerance)
	}
	if cfg.Movement.TravelDistance != 8 {
		t.Errorf("TravelDistance = %v, want 8", cfg.Movement.TravelDistance)
	}
	// Untouched sections keep their defaults
	if cfg.Stack.BaseColor != 0x333344 {
		t.Errorf("BaseColor = %#x, want 0x333344", cfg.Stack.BaseColor)
	}
	if cfg.Teardown.BlockDelayMs != 20 {
		t.Errorf("BlockDelayMs = %d, want 20", cfg.Teardown.BlockDelayMs)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("Load() with missing custom path should fail")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero width", "stack:\n  base_width: 0\n"},
		{"negative height", "stack:\n  base_height: -2\n"},
		{"zero travel", "movement:\n  travel_distance: 0\n"},
		{"zero speed", "movement:\n  base_speed: 0\n"},
		{"negative tolerance", "gameplay:\n  accuracy_tolerance: -0.1\n"},
		{"zero teardown", "teardown:\n  block_duration_ms: 0\n"},
		{"bad progression", "difficulty:\n  progression:\n    type: time\n"},
		{"leaderboard without url", "leaderboard:\n  enabled: true\n"},
		{"negative track", "audio:\n  track: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tower.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvAPIBaseURL, "https://scores.example.com/api/")
	path := filepath.Join(t.TempDir(), "tower.yaml")
	if err := os.WriteFile(path, []byte("leaderboard:\n  enabled: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Leaderboard.BaseURL != "https://scores.example.com/api" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed env value", cfg.Leaderboard.BaseURL)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultTowerConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled {
		t.Error("hard preset should enable difficulty")
	}
	if cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("InitialLevel = %v, want 0.7", cfg.Difficulty.InitialLevel)
	}
	if cfg.Gameplay.AccuracyTolerance >= DefaultTowerConfig().Gameplay.AccuracyTolerance {
		t.Error("hard preset should tighten the tolerance")
	}

	cfg = DefaultTowerConfig()
	cfg.Difficulty.Enabled = true
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable difficulty")
	}
}

func TestBlockSpeed(t *testing.T) {
	cfg := DefaultTowerConfig()
	dm := NewDifficultyManager(cfg.Difficulty, cfg.Movement)

	tests := []struct {
		stackLen int
		want     float64
	}{
		{1, 9.25},
		{10, 11.5},
		{48, 21},
		{1000, 21}, // capped
	}
	for _, tt := range tests {
		if got := dm.BlockSpeed(tt.stackLen, 0); got != tt.want {
			t.Errorf("BlockSpeed(%d) = %v, want %v", tt.stackLen, got, tt.want)
		}
	}
}

func TestDifficultyProgression(t *testing.T) {
	cfg := DefaultTowerConfig()
	cfg.Difficulty.Enabled = true
	dm := NewDifficultyManager(cfg.Difficulty, cfg.Movement)

	if got := dm.Level(0); got != 0 {
		t.Errorf("Level(0) = %v, want 0", got)
	}
	if got := dm.Level(30); got != 0.5 {
		t.Errorf("Level(30) = %v, want 0.5", got)
	}
	if got := dm.Level(600); got != 1 {
		t.Errorf("Level(600) = %v, want 1", got)
	}

	slow := dm.BlockSpeed(1, 0)
	fast := dm.BlockSpeed(1, 60)
	if fast <= slow {
		t.Errorf("speed should grow with score: %v <= %v", fast, slow)
	}
	if got := dm.Tolerance(0.3, 60); got != 0.15 {
		t.Errorf("Tolerance at max level = %v, want 0.15", got)
	}

	dm.SetEnabled(false)
	if got := dm.Tolerance(0.3, 60); got != 0.3 {
		t.Errorf("disabled Tolerance = %v, want 0.3", got)
	}
}
