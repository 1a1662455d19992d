package tower

import (
	"time"

	"github.com/taubyte/example-games-tower-blocks/internal/config"
)

// Settings are the tunables of one Machine.
type Settings struct {
	BaseWidth  float64
	BaseHeight float64
	BaseDepth  float64
	BaseColor  uint32

	Travel float64

	// Speed returns the active block speed for the tower length and score.
	Speed func(stackLen, score int) float64
	// Tolerance returns the perfect-placement slack for the score.
	Tolerance func(score int) float64

	BlockDuration time.Duration // Teardown shrink per block
	BlockDelay    time.Duration // Teardown stagger per depth
	FallDuration  time.Duration // Offcut and missed block fall
	CameraMove    time.Duration

	SubmitTimeout time.Duration
	PlayerName    string
	Seed          int64
}

// SettingsFromConfig derives machine settings from a loaded configuration.
func SettingsFromConfig(cfg config.TowerConfig) Settings {
	dm := config.NewDifficultyManager(cfg.Difficulty, cfg.Movement)
	tolerance := cfg.Gameplay.AccuracyTolerance

	return Settings{
		BaseWidth:  cfg.Stack.BaseWidth,
		BaseHeight: cfg.Stack.BaseHeight,
		BaseDepth:  cfg.Stack.BaseDepth,
		BaseColor:  cfg.Stack.BaseColor,
		Travel:     cfg.Movement.TravelDistance,
		Speed:      dm.BlockSpeed,
		Tolerance: func(score int) float64 {
			return dm.Tolerance(tolerance, score)
		},
		BlockDuration: config.Duration(cfg.Teardown.BlockDurationMs),
		BlockDelay:    config.Duration(cfg.Teardown.BlockDelayMs),
		FallDuration:  config.Duration(cfg.Teardown.FallDurationMs),
		CameraMove:    config.Duration(cfg.Camera.MoveDurationMs),
		SubmitTimeout: config.Duration(cfg.Leaderboard.TimeoutMs),
		PlayerName:    cfg.Leaderboard.PlayerName,
	}
}

// DefaultSettings returns the settings of the default configuration.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.DefaultTowerConfig())
}

// TeardownDuration is how long resetting lasts for a tower of stackLen blocks.
func (s Settings) TeardownDuration(stackLen int) time.Duration {
	return 2*s.BlockDuration + time.Duration(stackLen)*s.BlockDelay
}
