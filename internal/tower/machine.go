package tower

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// State is the phase of the game state machine.
type State int

const (
	StateLoading State = iota
	StateReady
	StatePlaying
	StateEnded
	StateResetting
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StatePlaying:
		return "playing"
	case StateEnded:
		return "ended"
	case StateResetting:
		return "resetting"
	default:
		return "unknown"
	}
}

// ErrNoScene is returned by Prepare when no Scene collaborator was supplied.
var ErrNoScene = errors.New("scene collaborator is required")

// fallDistance is how far debris drops before it is released.
const fallDistance = 20.0

// Deps are the collaborators of a Machine. Only Scene is required.
type Deps struct {
	Scene       Scene
	Audio       Audio
	Effects     Effects
	Stats       StatsReporter
	Leaderboard Leaderboard
	Metrics     Metrics
	Logger      *log.Logger
	OnGameOver  GameOverFunc
}

// Machine runs the Tower Blocks state machine. It is driven by Tick and
// Action from a single goroutine and is not safe for concurrent use.
type Machine struct {
	settings Settings
	deps     Deps

	state State
	pool  *Pool
	stack *Stack
	mover *Mover
	sched Scheduler
	rng   *rand.Rand

	clock      time.Duration
	roundStart time.Duration
	pending    bool

	gameID       uuid.UUID
	events       []GameEvent
	streak       int
	bestStreak   int
	perfectCount int
	finished     bool

	submits sync.WaitGroup
}

// NewMachine creates a machine in the loading state. Missing optional
// collaborators are replaced by no-op implementations.
func NewMachine(settings Settings, deps Deps) *Machine {
	if deps.Audio == nil {
		deps.Audio = NopAudio{}
	}
	if deps.Effects == nil {
		deps.Effects = NopEffects{}
	}
	if deps.Stats == nil {
		deps.Stats = NopStats{}
	}
	if deps.Leaderboard == nil {
		deps.Leaderboard = NopLeaderboard{}
	}
	if deps.Metrics == nil {
		deps.Metrics = NopMetrics{}
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	if settings.Speed == nil {
		settings.Speed = func(int, int) float64 { return 10 }
	}
	if settings.Tolerance == nil {
		settings.Tolerance = func(int) float64 { return 0 }
	}

	m := &Machine{
		settings: settings,
		deps:     deps,
		state:    StateLoading,
		pool:     NewPool(nil),
		rng:      rand.New(rand.NewSource(settings.Seed)),
	}
	m.mover = &Mover{
		Speed: func(stackLen int) float64 {
			return m.settings.Speed(stackLen, m.Score())
		},
		Travel: settings.Travel,
	}
	return m
}

// Prepare builds the base block and moves the machine to ready.
func (m *Machine) Prepare(width, height int) error {
	if m.deps.Scene == nil {
		return fmt.Errorf("tower: prepare: %w", ErrNoScene)
	}
	if m.state != StateLoading {
		return nil
	}

	base := m.pool.Acquire()
	base.Scale = mgl64.Vec3{m.settings.BaseWidth, m.settings.BaseHeight, m.settings.BaseDepth}
	base.Color = m.settings.BaseColor
	m.stack = NewStack(m.pool, m.rng, base, m.settings.Travel)

	m.deps.Scene.Resize(width, height)
	m.deps.Scene.Add(base.Handle())
	m.deps.Scene.SetCameraTarget(0, 0)
	m.state = StateReady
	return nil
}

// Action requests the context-dependent step: start, place or restart.
// It takes effect on the next Tick.
func (m *Machine) Action() {
	m.pending = true
}

// Restart begins the teardown of an ended round immediately.
func (m *Machine) Restart() {
	if m.state != StateEnded {
		return
	}
	m.beginTeardown()
}

// Resize forwards a viewport change to the scene.
func (m *Machine) Resize(width, height int) {
	if m.deps.Scene != nil {
		m.deps.Scene.Resize(width, height)
	}
}

// Tick advances the simulation by dt: movement, then pending action,
// then scheduled animations, then effects, then render.
func (m *Machine) Tick(dt time.Duration) {
	if m.state == StateLoading {
		return
	}
	m.clock += dt

	if m.state == StatePlaying {
		if active := m.stack.Active(); active != nil {
			m.mover.Advance(active, m.stack.Top(), m.stack.Len(), dt.Seconds())
			m.deps.Scene.Update(active.Handle())
		}
	}

	if m.pending {
		m.pending = false
		m.handleAction()
	}

	m.sched.Advance(m.clock)
	m.deps.Effects.Update(dt.Seconds())
	m.deps.Scene.Render()
}

func (m *Machine) handleAction() {
	switch m.state {
	case StateReady:
		m.startRound()
	case StatePlaying:
		m.place()
	case StateEnded:
		m.beginTeardown()
	}
}

func (m *Machine) startRound() {
	m.state = StatePlaying
	m.stack.NewGame()
	m.roundStart = m.clock
	m.gameID = uuid.New()
	m.events = nil
	m.streak = 0
	m.bestStreak = 0
	m.perfectCount = 0
	m.finished = false

	m.deps.Audio.PlaySound(SoundGameStart)
	m.deps.Audio.StartMusic()
	m.spawn()
}

func (m *Machine) spawn() {
	b := m.stack.Spawn()
	m.deps.Scene.Add(b.Handle())
}

func (m *Machine) place() {
	target := m.stack.Top()
	res := m.stack.AttemptPlacement(m.settings.Tolerance(m.Score()))
	if res.Block == nil {
		return
	}
	b := res.Block

	index := m.stack.Len() - 1
	if res.Outcome == OutcomeMissed {
		index = m.stack.Len()
	}
	m.events = append(m.events, GameEvent{
		EventType:      EventTypeFor(res.Outcome),
		BlockIndex:     index,
		BlockPosition:  VecOf(b.Position),
		BlockScale:     VecOf(b.Scale),
		TargetPosition: VecOf(target.Position),
		TargetScale:    VecOf(target.Scale),
		Timestamp:      (m.clock - m.roundStart).Milliseconds(),
	})
	m.deps.Metrics.ObservePlacement(res.Outcome)

	switch res.Outcome {
	case OutcomeMissed:
		m.endRound(res)
		return
	case OutcomePerfect:
		m.streak++
		m.perfectCount++
		m.bestStreak = max(m.bestStreak, m.streak)
		m.deps.Audio.PlaySound(SoundPerfect)
		m.deps.Effects.SpawnSparkle(mgl64.Vec3{b.Position[0], b.Top(), b.Position[2]}, b.Color)
	case OutcomeChopped:
		m.streak = 0
		m.deps.Audio.PlaySound(SoundBlockPlaced)
		m.deps.Effects.SpawnExplosion(res.OffcutPosition, b.Color)
		m.dropOffcut(res)
	}

	m.deps.Scene.Update(b.Handle())
	m.deps.Scene.SetCameraTarget(b.Position[1], m.settings.CameraMove)
	m.spawn()
}

// dropOffcut animates the severed part of a chopped block with a pooled
// debris block and releases it once it has fallen.
func (m *Machine) dropOffcut(res PlacementResult) {
	debris := m.pool.Acquire()
	debris.Position = res.OffcutPosition
	debris.Scale = res.OffcutScale
	debris.Color = res.Block.Color
	m.deps.Scene.Add(debris.Handle())

	sign := 1.0
	if res.OffcutPosition[int(res.Axis)] < res.Block.Position[int(res.Axis)] {
		sign = -1.0
	}
	m.fall("offcut", debris, res.Axis, sign)
}

// fall drops b out of the scene and returns it to the pool.
func (m *Machine) fall(name string, b *Block, axis Axis, sign float64) {
	start := b.Position
	a := int(axis)
	m.sched.Add(&Animation{
		Name:     name,
		Start:    m.clock,
		Duration: m.settings.FallDuration,
		Ease:     EaseInQuad,
		Update: func(t float64) {
			b.Position[1] = start[1] - t*fallDistance
			b.Position[a] = start[a] + sign*t*b.Scale[a]
			b.Rotation[2-a] = sign * t * math.Pi / 2
			m.deps.Scene.Update(b.Handle())
		},
		Done: func() {
			m.deps.Scene.Remove(b.ID)
			m.pool.Release(b)
		},
	})
}

func (m *Machine) endRound(res PlacementResult) {
	b := res.Block
	m.deps.Audio.PlaySound(SoundBlockMissed)
	m.deps.Audio.PlaySound(SoundGameOver)
	m.deps.Audio.StopMusic()

	sign := 1.0
	if b.Direction[int(res.Axis)] < 0 {
		sign = -1.0
	}
	b.Stop()
	m.fall("missed", b, res.Axis, sign)

	m.state = StateEnded
	m.finishRound()
}

// finishRound reports the ended round to every collaborator exactly once.
func (m *Machine) finishRound() {
	if m.finished {
		return
	}
	m.finished = true

	score := m.Score()
	played := m.clock - m.roundStart
	data := GameStateData{
		PlayerName:      m.settings.PlayerName,
		GameID:          m.gameID,
		GameEvents:      append([]GameEvent(nil), m.events...),
		DurationMs:      played.Milliseconds(),
		FinalBlockCount: m.stack.Len(),
	}

	if m.deps.OnGameOver != nil {
		m.deps.OnGameOver(score, data)
	}

	stats := Stats{
		BlocksPlaced:       score,
		PerfectCount:       m.perfectCount,
		HighestScore:       score,
		GamesPlayed:        1,
		PlayTimeMs:         played.Milliseconds(),
		ConsecutivePerfect: m.bestStreak,
	}
	if err := m.deps.Stats.ReportStats(stats); err != nil {
		m.deps.Logger.Warn("stats report failed", "error", err)
	}
	m.deps.Metrics.ObserveGameOver(score, played)
	m.deps.Logger.Info("round ended", "score", score, "perfect", m.perfectCount, "duration", played)

	m.submit(data.Clone())
}

func (m *Machine) submit(data GameStateData) {
	timeout := m.settings.SubmitTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	lb := m.deps.Leaderboard
	logger := m.deps.Logger

	m.submits.Add(1)
	go func() {
		defer m.submits.Done()
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := lb.Submit(ctx, data); err != nil {
			logger.Warn("leaderboard submit failed", "game_id", data.GameID, "error", err)
		}
	}()
}

// beginTeardown shrinks and spins every block above the base, staggered by
// depth, and starts a new round once the whole teardown has elapsed.
func (m *Machine) beginTeardown() {
	m.state = StateResetting

	blocks := m.stack.Blocks()
	n := len(blocks)
	total := m.settings.TeardownDuration(n)

	for i := n - 1; i > 0; i-- {
		b := blocks[i]
		scale := b.Scale
		m.sched.Add(&Animation{
			Name:     "teardown",
			Start:    m.clock,
			Delay:    time.Duration(n-1-i) * m.settings.BlockDelay,
			Duration: m.settings.BlockDuration,
			Ease:     EaseInQuad,
			Update: func(t float64) {
				b.Scale = scale.Mul(math.Max(1-t, 0.001))
				b.Rotation[1] = t * math.Pi / 2
				m.deps.Scene.Update(b.Handle())
			},
		})
	}
	m.deps.Scene.ResetCamera(total)

	m.sched.Add(&Animation{
		Name:     "reset",
		Start:    m.clock,
		Duration: total,
		Done:     m.finishTeardown,
	})
}

func (m *Machine) finishTeardown() {
	for _, b := range m.stack.Truncate() {
		m.deps.Scene.Remove(b.ID)
		m.pool.Release(b)
	}
	m.startRound()
}

// Wait blocks until every in-flight leaderboard submission has returned.
func (m *Machine) Wait() {
	m.submits.Wait()
}

// Close discards the machine: pending animations are dropped without running
// their callbacks and in-flight submissions are awaited.
func (m *Machine) Close() {
	m.sched.Clear()
	m.Wait()
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Score returns the number of blocks placed this round.
func (m *Machine) Score() int {
	if m.stack == nil {
		return 0
	}
	return m.stack.Score()
}

// Stack returns the tower. It is nil until Prepare succeeds.
func (m *Machine) Stack() *Stack { return m.stack }

// Pool returns the block pool.
func (m *Machine) Pool() *Pool { return m.pool }

// Scheduler returns the animation scheduler.
func (m *Machine) Scheduler() *Scheduler { return &m.sched }

// Events returns the placement log of the current round.
func (m *Machine) Events() []GameEvent { return m.events }

// ConsecutivePerfect returns the current perfect streak.
func (m *Machine) ConsecutivePerfect() int { return m.streak }

// BestStreak returns the longest perfect streak of the current round.
func (m *Machine) BestStreak() int { return m.bestStreak }

// PerfectCount returns the perfect placements of the current round.
func (m *Machine) PerfectCount() int { return m.perfectCount }

// Clock returns the simulation time since the machine was created.
func (m *Machine) Clock() time.Duration { return m.clock }

// Settings returns the machine settings.
func (m *Machine) Settings() Settings { return m.settings }
