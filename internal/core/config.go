package core

// RuntimeConfig is what the platform tells a game on Reset: the terminal size,
// the simulation rate and the seed of the block colours and particles.
type RuntimeConfig struct {
	ScreenW  int   // Terminal columns
	ScreenH  int   // Terminal rows
	TickRate int   // Ticks per second
	Seed     int64 // Colour offset and particle seed
}

// DefaultConfig returns an 80x24 screen at 60 ticks per second.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the platform-facing summary of a running game.
type GameState struct {
	Score    int    // Current score
	GameOver bool   // Whether the round has ended
	Paused   bool   // Whether the game is paused
	Phase    string // Game-specific phase name (e.g. "playing")
}

// StepResult is returned by Game.Step after every tick.
type StepResult struct {
	State GameState
}
