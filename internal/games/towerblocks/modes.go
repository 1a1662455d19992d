package towerblocks

import (
	"github.com/taubyte/example-games-tower-blocks/internal/config"
	"github.com/taubyte/example-games-tower-blocks/internal/registry"
)

// Mode identifiers.
const (
	ModeClassic = "classic"
	ModeEasy    = "easy"
	ModeHard    = "hard"
	ModeZen     = "zen"
)

func init() {
	registry.Register(registry.Mode{
		ID:          ModeClassic,
		Title:       "Classic",
		Description: "The configured rules",
		Order:       0,
	})
	registry.Register(registry.Mode{
		ID:          ModeEasy,
		Title:       "Easy",
		Description: "Wide perfect window, gentle speed-up",
		Order:       1,
		Apply: func(cfg *config.TowerConfig) {
			config.ApplyPreset(cfg, config.DifficultyEasy)
		},
	})
	registry.Register(registry.Mode{
		ID:          ModeHard,
		Title:       "Hard",
		Description: "Tight perfect window, fast from the start",
		Order:       2,
		Apply: func(cfg *config.TowerConfig) {
			config.ApplyPreset(cfg, config.DifficultyHard)
		},
	})
	registry.Register(registry.Mode{
		ID:          ModeZen,
		Title:       "Zen",
		Description: "Constant speed, no music",
		Order:       3,
		Apply: func(cfg *config.TowerConfig) {
			config.ApplyPreset(cfg, config.DifficultyFixed)
			cfg.Movement.HeightScaleFactor = 0
			cfg.Audio.Music = false
		},
	})
}
