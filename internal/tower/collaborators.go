package tower

import (
	"context"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Handle is the render snapshot of a block, pushed to the Scene after every mutation.
type Handle struct {
	ID       uint64
	Position mgl64.Vec3
	Scale    mgl64.Vec3
	Rotation mgl64.Vec3
	Color    uint32
}

// Scene draws block handles. The machine never reads state back from it.
type Scene interface {
	Add(h Handle)
	Update(h Handle)
	Remove(id uint64)
	Render()
	Resize(width, height int)
	SetCameraTarget(y float64, d time.Duration)
	ResetCamera(d time.Duration)
}

// Sound identifies a sound effect.
type Sound int

const (
	SoundBlockPlaced Sound = iota
	SoundBlockMissed
	SoundPerfect
	SoundGameOver
	SoundGameStart
)

func (s Sound) String() string {
	switch s {
	case SoundBlockPlaced:
		return "block_placed"
	case SoundBlockMissed:
		return "block_missed"
	case SoundPerfect:
		return "perfect"
	case SoundGameOver:
		return "game_over"
	case SoundGameStart:
		return "game_start"
	default:
		return "unknown"
	}
}

// Audio plays fire-and-forget sounds and background music.
type Audio interface {
	PlaySound(s Sound)
	StartMusic()
	StopMusic()
}

// Effects spawns decorative particles.
type Effects interface {
	SpawnExplosion(pos mgl64.Vec3, color uint32)
	SpawnSparkle(pos mgl64.Vec3, color uint32)
	Update(dt float64)
}

// StatsReporter receives the counters of every finished round.
type StatsReporter interface {
	ReportStats(s Stats) error
}

// Leaderboard accepts finished rounds. Submit runs off the tick goroutine.
type Leaderboard interface {
	Submit(ctx context.Context, data GameStateData) error
}

// Metrics observes gameplay.
type Metrics interface {
	ObservePlacement(o Outcome)
	ObserveGameOver(score int, d time.Duration)
}

// GameOverFunc is invoked once per finished round, when the state becomes ended.
type GameOverFunc func(score int, data GameStateData)

type (
	NopAudio       struct{}
	NopEffects     struct{}
	NopStats       struct{}
	NopLeaderboard struct{}
	NopMetrics     struct{}
)

func (NopAudio) PlaySound(Sound) {}
func (NopAudio) StartMusic()     {}
func (NopAudio) StopMusic()      {}

func (NopEffects) SpawnExplosion(mgl64.Vec3, uint32) {}
func (NopEffects) SpawnSparkle(mgl64.Vec3, uint32)   {}
func (NopEffects) Update(float64)                    {}

func (NopStats) ReportStats(Stats) error { return nil }

func (NopLeaderboard) Submit(context.Context, GameStateData) error { return nil }

func (NopMetrics) ObservePlacement(Outcome)           {}
func (NopMetrics) ObserveGameOver(int, time.Duration) {}
