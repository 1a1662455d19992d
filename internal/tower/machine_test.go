package tower

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScene struct {
	handles map[uint64]Handle
	renders int
	width   int
	height  int
	cameraY float64
	resets  []time.Duration
}

func newFakeScene() *fakeScene {
	return &fakeScene{handles: make(map[uint64]Handle)}
}

func (s *fakeScene) Add(h Handle)     { s.handles[h.ID] = h }
func (s *fakeScene) Update(h Handle)  { s.handles[h.ID] = h }
func (s *fakeScene) Remove(id uint64) { delete(s.handles, id) }
func (s *fakeScene) Render()          { s.renders++ }
func (s *fakeScene) Resize(w, h int)  { s.width, s.height = w, h }

func (s *fakeScene) SetCameraTarget(y float64, d time.Duration) { s.cameraY = y }
func (s *fakeScene) ResetCamera(d time.Duration)                { s.resets = append(s.resets, d) }

type fakeAudio struct {
	sounds []Sound
	music  bool
}

func (a *fakeAudio) PlaySound(s Sound) { a.sounds = append(a.sounds, s) }
func (a *fakeAudio) StartMusic()       { a.music = true }
func (a *fakeAudio) StopMusic()        { a.music = false }

type fakeEffects struct {
	explosions []mgl64.Vec3
	sparkles   int
	updates    int
}

func (e *fakeEffects) SpawnExplosion(pos mgl64.Vec3, color uint32) {
	e.explosions = append(e.explosions, pos)
}
func (e *fakeEffects) SpawnSparkle(pos mgl64.Vec3, color uint32) { e.sparkles++ }
func (e *fakeEffects) Update(dt float64)                         { e.updates++ }

type fakeStats struct {
	reports []Stats
	err     error
}

func (s *fakeStats) ReportStats(st Stats) error {
	s.reports = append(s.reports, st)
	return s.err
}

type fakeLeaderboard struct {
	mu   sync.Mutex
	subs []GameStateData
	err  error
}

func (l *fakeLeaderboard) Submit(ctx context.Context, data GameStateData) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, data)
	return l.err
}

type harness struct {
	m        *Machine
	scene    *fakeScene
	audio    *fakeAudio
	effects  *fakeEffects
	stats    *fakeStats
	board    *fakeLeaderboard
	gameOver []int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		scene:   newFakeScene(),
		audio:   &fakeAudio{},
		effects: &fakeEffects{},
		stats:   &fakeStats{},
		board:   &fakeLeaderboard{},
	}
	settings := DefaultSettings()
	settings.Seed = 42
	settings.PlayerName = "tester"
	h.m = NewMachine(settings, Deps{
		Scene:       h.scene,
		Audio:       h.audio,
		Effects:     h.effects,
		Stats:       h.stats,
		Leaderboard: h.board,
		OnGameOver: func(score int, data GameStateData) {
			h.gameOver = append(h.gameOver, score)
		},
	})
	require.NoError(t, h.m.Prepare(80, 24))
	return h
}

// start performs the first action so a block is moving.
func (h *harness) start(t *testing.T) {
	t.Helper()
	h.m.Action()
	h.m.Tick(0)
	require.Equal(t, StatePlaying, h.m.State())
}

// placeAt moves the active block to offset from the top along its axis and places it.
func (h *harness) placeAt(t *testing.T, offset float64) PlacementResult {
	t.Helper()
	active := h.m.Stack().Active()
	require.NotNil(t, active)
	a := int(active.ActiveAxis())
	active.Position[a] = h.m.Stack().Top().Position[a] + offset
	h.m.Action()
	h.m.Tick(0)
	events := h.m.Events()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	switch last.EventType {
	case EventPerfectPlacement:
		return PlacementResult{Outcome: OutcomePerfect, Block: active}
	case EventBlockChopped:
		return PlacementResult{Outcome: OutcomeChopped, Block: active}
	default:
		return PlacementResult{Outcome: OutcomeMissed, Block: active}
	}
}

func TestPrepareRequiresScene(t *testing.T) {
	m := NewMachine(DefaultSettings(), Deps{})
	err := m.Prepare(80, 24)
	assert.True(t, errors.Is(err, ErrNoScene))
	assert.Equal(t, StateLoading, m.State())
}

func TestPrepare(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, StateReady, h.m.State())
	assert.Equal(t, 1, h.m.Stack().Len())
	assert.Len(t, h.scene.handles, 1)
	assert.Equal(t, 80, h.scene.width)

	base := h.m.Stack().Base()
	assert.Equal(t, mgl64.Vec3{10, 2, 10}, base.Scale)
	assert.Equal(t, uint32(0x333344), base.Color)
}

func TestTickBeforePrepareIsNoop(t *testing.T) {
	m := NewMachine(DefaultSettings(), Deps{Scene: newFakeScene()})
	m.Action()
	m.Tick(time.Second)
	assert.Equal(t, StateLoading, m.State())
	assert.Equal(t, time.Duration(0), m.Clock())
}

func TestStartRound(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	active := h.m.Stack().Active()
	require.NotNil(t, active)
	assert.Equal(t, AxisX, active.ActiveAxis())
	assert.Equal(t, 2.0, active.Position[1])
	assert.Contains(t, h.audio.sounds, SoundGameStart)
	assert.True(t, h.audio.music)
	assert.Equal(t, 0, h.m.Score())
}

func TestActiveBlockMovesOnTick(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	active := h.m.Stack().Active()
	before := active.Position[0]
	h.m.Tick(100 * time.Millisecond)

	assert.NotEqual(t, before, active.Position[0])
	assert.Equal(t, active.Position, h.scene.handles[active.ID].Position, "scene receives the moved handle")
	assert.Greater(t, h.effects.updates, 0)
	assert.Greater(t, h.scene.renders, 0)
}

func TestPerfectPlacement(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	res := h.placeAt(t, 0)

	assert.Equal(t, OutcomePerfect, res.Outcome)
	assert.Equal(t, 1, h.m.Score())
	assert.Equal(t, 1, h.m.ConsecutivePerfect())
	assert.Equal(t, 1, h.effects.sparkles)
	assert.Contains(t, h.audio.sounds, SoundPerfect)
	assert.Equal(t, 2.0, h.scene.cameraY)
	assert.NotNil(t, h.m.Stack().Active(), "next block spawned")
	assert.Equal(t, AxisZ, h.m.Stack().Active().ActiveAxis())
}

func TestMissEndsRound(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.placeAt(t, 0)
	h.placeAt(t, 0)

	res := h.placeAt(t, 11)
	h.m.Wait()

	assert.Equal(t, OutcomeMissed, res.Outcome)
	assert.Equal(t, StateEnded, h.m.State())
	assert.Equal(t, 2, h.m.Score())
	assert.Equal(t, []int{2}, h.gameOver)
	assert.False(t, h.audio.music)
	assert.Contains(t, h.audio.sounds, SoundBlockMissed)
	assert.Contains(t, h.audio.sounds, SoundGameOver)

	require.Len(t, h.stats.reports, 1)
	assert.Equal(t, Stats{BlocksPlaced: 2, PerfectCount: 2, HighestScore: 2, GamesPlayed: 1, ConsecutivePerfect: 2}, h.stats.reports[0])

	require.Len(t, h.board.subs, 1)
	sub := h.board.subs[0]
	assert.Equal(t, "tester", sub.PlayerName)
	assert.Equal(t, 3, sub.FinalBlockCount)
	require.Len(t, sub.GameEvents, 3)
	assert.Equal(t, EventMissed, sub.GameEvents[2].EventType)

	// Further ticks never report the round again
	for i := 0; i < 10; i++ {
		h.m.Tick(100 * time.Millisecond)
	}
	assert.Len(t, h.gameOver, 1)
}

func TestCloseDropsPendingAnimations(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	h.placeAt(t, -11)
	require.NotZero(t, h.m.Scheduler().Len(), "missed block is falling")

	h.m.Close()
	assert.Zero(t, h.m.Scheduler().Len())

	h.m.Tick(h.m.Settings().FallDuration)
	assert.Equal(t, 0, h.m.Pool().Idle(), "dropped fall never releases its block")
}

func TestMissedBlockFallsThenReleases(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	active := h.m.Stack().Active()

	h.placeAt(t, -11)
	assert.Contains(t, h.scene.handles, active.ID, "missed block stays visible while falling")
	assert.Equal(t, 0, h.m.Pool().Idle())

	h.m.Tick(h.m.Settings().FallDuration)

	assert.NotContains(t, h.scene.handles, active.ID)
	assert.Equal(t, 1, h.m.Pool().Idle())
}

func TestChoppedPlacement(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	active := h.m.Stack().Active()

	res := h.placeAt(t, 6)

	assert.Equal(t, OutcomeChopped, res.Outcome)
	assert.Equal(t, 4.0, active.Scale[0])
	assert.Equal(t, 3.0, active.Position[0])
	require.Len(t, h.effects.explosions, 1)
	assert.Equal(t, 8.0, h.effects.explosions[0][0])
	assert.Contains(t, h.audio.sounds, SoundBlockPlaced)
	assert.Equal(t, []string{"offcut"}, h.m.Scheduler().Active())

	// Base, placed block, next active and falling offcut
	assert.Len(t, h.scene.handles, 4)
	h.m.Tick(h.m.Settings().FallDuration)
	assert.Len(t, h.scene.handles, 3)
	assert.Equal(t, 1, h.m.Pool().Idle())
	assert.Equal(t, 0, h.m.Scheduler().Len())
}

func TestScoreMonotonic(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	offsets := []float64{0, 1, 0.1, 2, 0, 0.5}
	for i, off := range offsets {
		prev := h.m.Score()
		res := h.placeAt(t, off)
		require.NotEqual(t, OutcomeMissed, res.Outcome)
		assert.Equal(t, prev+1, h.m.Score(), "placement %d", i)
	}
}

func TestConsecutivePerfect(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	for i := 0; i < 10; i++ {
		require.Equal(t, OutcomePerfect, h.placeAt(t, 0).Outcome)
	}
	assert.Equal(t, 10, h.m.ConsecutivePerfect())

	require.Equal(t, OutcomeChopped, h.placeAt(t, 2).Outcome)
	assert.Equal(t, 0, h.m.ConsecutivePerfect())
	assert.Equal(t, 10, h.m.BestStreak())
	assert.Equal(t, 10, h.m.PerfectCount())
}

func TestRestartTeardown(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	for i := 0; i < 14; i++ {
		h.placeAt(t, 0)
	}
	require.Equal(t, 15, h.m.Stack().Len())
	h.placeAt(t, 11)
	require.Equal(t, StateEnded, h.m.State())

	teardown := h.m.Settings().TeardownDuration(h.m.Stack().Len())
	assert.Equal(t, 700*time.Millisecond, teardown)

	h.m.Action()
	h.m.Tick(0)
	assert.Equal(t, StateResetting, h.m.State())
	assert.Equal(t, []time.Duration{teardown}, h.scene.resets)

	// Actions are ignored while resetting
	h.m.Action()
	h.m.Tick(699 * time.Millisecond)
	assert.Equal(t, StateResetting, h.m.State())
	assert.Equal(t, 15, h.m.Stack().Len())

	h.m.Tick(time.Millisecond)
	assert.Equal(t, StatePlaying, h.m.State())
	assert.Equal(t, 1, h.m.Stack().Len())
	assert.Equal(t, 0, h.m.Score())
	assert.NotNil(t, h.m.Stack().Active())
	assert.Empty(t, h.m.Events())
	assert.Len(t, h.scene.handles, 2, "base and fresh active block")
}

func TestRestartOnlyFromEnded(t *testing.T) {
	h := newHarness(t)
	h.m.Restart()
	assert.Equal(t, StateReady, h.m.State())

	h.start(t)
	h.m.Restart()
	assert.Equal(t, StatePlaying, h.m.State())

	h.placeAt(t, 12)
	h.m.Restart()
	assert.Equal(t, StateResetting, h.m.State())
}

func TestPoolReuseAcrossRestart(t *testing.T) {
	h := newHarness(t)
	h.start(t)
	for i := 0; i < 14; i++ {
		h.placeAt(t, 0)
	}
	h.placeAt(t, 11)
	created := h.m.Pool().Created()
	assert.Equal(t, 16, created)

	h.m.Action()
	h.m.Tick(0)
	h.m.Tick(time.Second)
	require.Equal(t, StatePlaying, h.m.State())

	for i := 0; i < 14; i++ {
		h.placeAt(t, 0)
	}
	assert.Equal(t, created, h.m.Pool().Created(), "second round reuses every block")
}

func TestCollaboratorFailuresAreIgnored(t *testing.T) {
	h := newHarness(t)
	h.stats.err = errors.New("disk full")
	h.board.err = errors.New("service unavailable")
	h.start(t)

	h.placeAt(t, 11)
	h.m.Wait()

	assert.Equal(t, StateEnded, h.m.State())
	assert.Len(t, h.gameOver, 1)
}

func TestEventLog(t *testing.T) {
	h := newHarness(t)
	h.start(t)

	h.m.Tick(250 * time.Millisecond)
	h.placeAt(t, 0)
	h.m.Tick(250 * time.Millisecond)
	h.placeAt(t, 3)

	events := h.m.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventPerfectPlacement, events[0].EventType)
	assert.Equal(t, 1, events[0].BlockIndex)
	assert.Equal(t, int64(250), events[0].Timestamp)
	assert.Equal(t, EventBlockChopped, events[1].EventType)
	assert.Equal(t, 2, events[1].BlockIndex)
	assert.Equal(t, int64(500), events[1].Timestamp)
	assert.Equal(t, 7.0, events[1].BlockScale.Z)
	assert.Equal(t, 2.0, events[1].TargetPosition.Y)
}
