package config

import "math"

// DifficultyManager calculates dynamic game parameters from the tower height and score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	movement     MovementConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, movement MovementConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		movement:     movement,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty scaling is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level (0.0 to 1.0) based on score.
// Disabled difficulty always reports level 0 so the base speed curve applies unchanged.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	if d.cfg.Progression.Type != "score" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(score)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// BlockSpeed returns the oscillation speed for a tower of stackLen blocks:
// baseSpeed + min(heightScaleFactor * stackLen, speedCap), scaled by the difficulty level.
func (d *DifficultyManager) BlockSpeed(stackLen, score int) float64 {
	bonus := math.Min(d.movement.HeightScaleFactor*float64(stackLen), d.movement.SpeedCap)
	speed := d.movement.BaseSpeed + bonus
	return speed * (1.0 + d.Level(score)*d.cfg.Scaling.SpeedMultiplier)
}

// Tolerance returns the perfect-placement slack for the current score.
func (d *DifficultyManager) Tolerance(base float64, score int) float64 {
	reduction := clampF(d.Level(score)*d.cfg.Scaling.ToleranceReduction, 0, 1)
	return base * (1.0 - reduction)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
