package config

import (
	_ "embed"
)

//go:embed defaults/tower.yaml
var defaultTowerYAML []byte

// DefaultTowerConfig returns the default Tower Blocks configuration.
func DefaultTowerConfig() TowerConfig {
	return TowerConfig{
		Stack: StackConfig{
			BaseWidth:  10,
			BaseHeight: 2,
			BaseDepth:  10,
			BaseColor:  0x333344,
		},
		Movement: MovementConfig{
			BaseSpeed:         9.0,
			HeightScaleFactor: 0.25,
			SpeedCap:          12.0,
			TravelDistance:    12,
		},
		Gameplay: GameplayConfig{
			AccuracyTolerance: 0.3,
			HideHintAfter:     5,
		},
		Teardown: TeardownConfig{
			BlockDurationMs: 200,
			BlockDelayMs:    20,
			FallDurationMs:  600,
		},
		Camera: CameraConfig{
			MoveDurationMs: 300,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:    0.8,
				ToleranceReduction: 0.5,
			},
		},
		Leaderboard: LeaderboardConfig{
			TimeoutMs: 5000,
		},
		Audio: AudioConfig{
			Enabled: true,
			Music:   true,
			Volume:  0.6,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultTowerYAML
}
