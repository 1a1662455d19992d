// Package registry provides a global registry of game modes.
// Modes register themselves in init() functions, allowing the platform
// to list and start them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/taubyte/example-games-tower-blocks/internal/config"
	"github.com/taubyte/example-games-tower-blocks/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing and terminal output.
type Game interface {
	// ID returns the mode identifier (e.g. "classic").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes the game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState

	// Resize adapts the game to a new terminal size without restarting.
	Resize(width, height int)

	// Close releases audio and waits for background work.
	Close()
}

// Mode is a named variant of the game settings.
type Mode struct {
	ID          string
	Title       string
	Description string
	Order       int

	// Apply adjusts a loaded configuration for this mode.
	Apply func(cfg *config.TowerConfig)
}

// Configure returns a copy of cfg with the mode applied.
func (m Mode) Configure(cfg config.TowerConfig) config.TowerConfig {
	if m.Apply != nil {
		m.Apply(&cfg)
	}
	return cfg
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode. Panics if a mode with the same ID is already registered.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	modes[m.ID] = m
}

// List returns every registered mode in menu order.
func List() []Mode {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Mode, 0, len(modes))
	for _, m := range modes {
		result = append(result, m)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Lookup returns a mode by its ID.
func Lookup(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("registry: unknown mode %q", id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
