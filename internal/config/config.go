// Package config provides YAML-based game configuration loading and
// difficulty management for Tower Blocks.
package config

// TowerConfig contains all configuration for the Tower Blocks game.
type TowerConfig struct {
	Stack       StackConfig       `yaml:"stack"`
	Movement    MovementConfig    `yaml:"movement"`
	Gameplay    GameplayConfig    `yaml:"gameplay"`
	Teardown    TeardownConfig    `yaml:"teardown"`
	Camera      CameraConfig      `yaml:"camera"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Audio       AudioConfig       `yaml:"audio"`
}

// StackConfig defines the immovable base block every tower starts from.
type StackConfig struct {
	BaseWidth  float64 `yaml:"base_width"`
	BaseHeight float64 `yaml:"base_height"`
	BaseDepth  float64 `yaml:"base_depth"`
	BaseColor  uint32  `yaml:"base_color"`
}

// MovementConfig defines the oscillation of the active block.
// Speeds are world units per second.
type MovementConfig struct {
	BaseSpeed         float64 `yaml:"base_speed"`
	HeightScaleFactor float64 `yaml:"height_scale_factor"` // Added per block of tower height
	SpeedCap          float64 `yaml:"speed_cap"`           // Upper bound of the height bonus
	TravelDistance    float64 `yaml:"travel_distance"`     // Oscillation half-amplitude
}

// GameplayConfig defines placement rules.
type GameplayConfig struct {
	AccuracyTolerance float64 `yaml:"accuracy_tolerance"` // Overlap slack still counted as perfect
	HideHintAfter     int     `yaml:"hide_hint_after"`    // Stack length that hides the instructions
}

// TeardownConfig defines restart and debris animation timings in milliseconds.
type TeardownConfig struct {
	BlockDurationMs int `yaml:"block_duration_ms"`
	BlockDelayMs    int `yaml:"block_delay_ms"`
	FallDurationMs  int `yaml:"fall_duration_ms"`
}

// CameraConfig defines camera motion.
type CameraConfig struct {
	MoveDurationMs int `yaml:"move_duration_ms"`
}

// LeaderboardConfig configures the remote leaderboard service.
type LeaderboardConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BaseURL    string `yaml:"base_url"`
	PlayerName string `yaml:"player_name"`
	TimeoutMs  int    `yaml:"timeout_ms"`
}

// AudioConfig configures sound effects and music.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Music   bool    `yaml:"music"`
	Volume  float64 `yaml:"volume"` // 0.0 - 1.0
	Track   int     `yaml:"track"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a round.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`    // Multiplier added to speed at max difficulty
	ToleranceReduction float64 `yaml:"tolerance_reduction"` // Fraction of tolerance removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
