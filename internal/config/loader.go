package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIBaseURL overrides leaderboard.base_url when set.
const EnvAPIBaseURL = "TOWER_API_BASE_URL"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads the Tower Blocks configuration.
// Search order: customPath -> ~/.tower/configs/tower.yaml -> ./configs/tower.yaml -> embedded default.
// Files are layered over the defaults, so partial files are allowed.
// The result is validated before it is returned.
func Load(customPath string) (TowerConfig, error) {
	cfg, err := load(customPath)
	if err != nil {
		return cfg, err
	}

	if base := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); base != "" {
		cfg.Leaderboard.BaseURL = base
	}
	cfg.Leaderboard.BaseURL = strings.TrimSuffix(cfg.Leaderboard.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func load(customPath string) (TowerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTowerConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tower.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/tower.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultTowerYAML)
	if err != nil {
		return DefaultTowerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the hardcoded defaults.
func Parse(data []byte) (TowerConfig, error) {
	cfg := DefaultTowerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultTowerConfig(), err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg TowerConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tower", "configs", filename)
}

// Validate rejects configurations that would break the simulation mid-game.
func (c TowerConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.Stack.BaseWidth > 0, "stack.base_width must be positive, got %v", c.Stack.BaseWidth)
	check(c.Stack.BaseHeight > 0, "stack.base_height must be positive, got %v", c.Stack.BaseHeight)
	check(c.Stack.BaseDepth > 0, "stack.base_depth must be positive, got %v", c.Stack.BaseDepth)
	check(c.Stack.BaseColor <= 0xFFFFFF, "stack.base_color must be a 24-bit RGB value, got %#x", c.Stack.BaseColor)

	check(c.Movement.BaseSpeed > 0, "movement.base_speed must be positive, got %v", c.Movement.BaseSpeed)
	check(c.Movement.HeightScaleFactor >= 0, "movement.height_scale_factor must not be negative, got %v", c.Movement.HeightScaleFactor)
	check(c.Movement.SpeedCap >= 0, "movement.speed_cap must not be negative, got %v", c.Movement.SpeedCap)
	check(c.Movement.TravelDistance > 0, "movement.travel_distance must be positive, got %v", c.Movement.TravelDistance)

	check(c.Gameplay.AccuracyTolerance >= 0, "gameplay.accuracy_tolerance must not be negative, got %v", c.Gameplay.AccuracyTolerance)

	check(c.Teardown.BlockDurationMs > 0, "teardown.block_duration_ms must be positive, got %d", c.Teardown.BlockDurationMs)
	check(c.Teardown.BlockDelayMs >= 0, "teardown.block_delay_ms must not be negative, got %d", c.Teardown.BlockDelayMs)
	check(c.Teardown.FallDurationMs > 0, "teardown.fall_duration_ms must be positive, got %d", c.Teardown.FallDurationMs)
	check(c.Camera.MoveDurationMs >= 0, "camera.move_duration_ms must not be negative, got %d", c.Camera.MoveDurationMs)

	check(c.Difficulty.InitialLevel >= 0 && c.Difficulty.InitialLevel <= 1,
		"difficulty.initial_level must be within [0, 1], got %v", c.Difficulty.InitialLevel)
	switch c.Difficulty.Progression.Type {
	case "", "none", "score":
	default:
		check(false, "difficulty.progression.type must be score or none, got %q", c.Difficulty.Progression.Type)
	}

	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1], got %v", c.Audio.Volume)
	check(c.Audio.Track >= 0, "audio.track must not be negative, got %d", c.Audio.Track)
	if c.Leaderboard.Enabled {
		check(c.Leaderboard.BaseURL != "", "leaderboard.base_url is required when the leaderboard is enabled")
	}

	return errors.Join(errs...)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *TowerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Adjust placement slack based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.AccuracyTolerance = 0.5
	case DifficultyHard:
		cfg.Gameplay.AccuracyTolerance = 0.15
	}
}

// Duration converts a millisecond config value to a time.Duration.
func Duration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
