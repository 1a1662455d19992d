// Package towerblocks wires the tower simulation to the terminal scene,
// particles, audio, achievements and local score storage.
package towerblocks

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/taubyte/example-games-tower-blocks/internal/achievements"
	"github.com/taubyte/example-games-tower-blocks/internal/audio"
	"github.com/taubyte/example-games-tower-blocks/internal/config"
	"github.com/taubyte/example-games-tower-blocks/internal/core"
	"github.com/taubyte/example-games-tower-blocks/internal/effects"
	"github.com/taubyte/example-games-tower-blocks/internal/registry"
	"github.com/taubyte/example-games-tower-blocks/internal/scene"
	"github.com/taubyte/example-games-tower-blocks/internal/storage"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// toastDuration is how long an achievement banner stays up.
const toastDuration = 3 * time.Second

// Options configure a Game. Everything except Config is optional.
type Options struct {
	Mode        string
	Config      config.TowerConfig
	Player      string
	Store       *storage.Store
	Audio       *audio.Player
	Leaderboard tower.Leaderboard
	Metrics     tower.Metrics
	Logger      *log.Logger
}

type toast struct {
	text string
	left time.Duration
}

// Game adapts a tower.Machine to the platform's registry.Game interface.
type Game struct {
	opts  Options
	title string

	machine      *tower.Machine
	scene        *scene.Scene
	fx           *effects.System
	achievements *achievements.System

	rc     core.RuntimeConfig
	paused bool
	best   int
	toasts []toast
}

var _ registry.Game = (*Game)(nil)

// New creates a game for the given options. The tower is built on Reset.
func New(opts Options) *Game {
	if opts.Mode == "" {
		opts.Mode = ModeClassic
	}
	if opts.Player == "" {
		opts.Player = opts.Config.Leaderboard.PlayerName
	}
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	title := "Tower Blocks"
	if m, err := registry.Lookup(opts.Mode); err == nil && m.ID != ModeClassic {
		title += " · " + m.Title
	}
	return &Game{opts: opts, title: title}
}

// ID returns the mode identifier.
func (g *Game) ID() string { return g.opts.Mode }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Reset builds a fresh tower for the screen size and seed in cfg.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	g.rc = cfg
	g.paused = false
	g.toasts = nil

	g.setupAchievements()

	g.scene = scene.New(cfg.ScreenW, cfg.ScreenH)
	g.fx = effects.New(cfg.Seed)

	settings := tower.SettingsFromConfig(g.opts.Config)
	settings.Seed = cfg.Seed
	settings.PlayerName = g.opts.Player

	deps := tower.Deps{
		Scene:       g.scene,
		Effects:     g.fx,
		Leaderboard: g.opts.Leaderboard,
		Metrics:     g.opts.Metrics,
		Logger:      g.opts.Logger,
		OnGameOver:  g.onGameOver,
	}
	if g.opts.Audio != nil {
		deps.Audio = g.opts.Audio
	}
	if g.achievements != nil {
		deps.Stats = g.achievements
	}

	if g.machine != nil {
		g.machine.Close()
	}
	g.machine = tower.NewMachine(settings, deps)
	if err := g.machine.Prepare(cfg.ScreenW, cfg.ScreenH); err != nil {
		g.opts.Logger.Error("cannot prepare tower", "error", err)
	}

	if g.opts.Store != nil {
		best, err := g.opts.Store.HighScore(g.opts.Player)
		if err != nil {
			g.opts.Logger.Warn("cannot load high score", "error", err)
		}
		g.best = best
	}
}

func (g *Game) setupAchievements() {
	if g.achievements != nil {
		return
	}
	var store achievements.Store
	if g.opts.Store != nil {
		store = g.opts.Store
	}
	sys, err := achievements.New(store, g.opts.Player)
	if err != nil {
		g.opts.Logger.Warn("achievements unavailable", "error", err)
		sys, _ = achievements.New(nil, g.opts.Player)
	}
	sys.OnUnlock = func(a achievements.Achievement) {
		g.toasts = append(g.toasts, toast{
			text: a.Icon + " " + a.Title + " unlocked",
			left: toastDuration,
		})
	}
	g.achievements = sys
}

// Step handles the frame's actions and advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.machine == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.machine.State() == tower.StatePlaying {
		g.paused = !g.paused
	}
	g.handleAudio(in)

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPlace) {
		g.machine.Action()
	}
	if in.Has(core.ActionRestart) {
		g.machine.Restart()
	}

	dt := time.Second / time.Duration(g.rc.TickRate)
	g.scene.Step(dt)
	g.machine.Tick(dt)
	g.ageToasts(dt)

	return core.StepResult{State: g.State()}
}

func (g *Game) handleAudio(in core.InputFrame) {
	a := g.opts.Audio
	if a == nil {
		return
	}
	if in.Has(core.ActionMute) {
		a.ToggleMute()
	}
	if in.Has(core.ActionMusic) {
		a.ToggleMusic()
	}
	if in.Has(core.ActionNextTrack) {
		a.NextTrack()
	}
}

func (g *Game) ageToasts(dt time.Duration) {
	kept := g.toasts[:0]
	for _, t := range g.toasts {
		t.left -= dt
		if t.left > 0 {
			kept = append(kept, t)
		}
	}
	g.toasts = kept
}

// onGameOver stores the finished round locally.
func (g *Game) onGameOver(score int, data tower.GameStateData) {
	if score > g.best {
		g.best = score
	}
	if g.opts.Store == nil {
		return
	}
	_, err := g.opts.Store.SaveScore(storage.ScoreEntry{
		Player:     data.PlayerName,
		GameID:     data.GameID.String(),
		Score:      score,
		Perfect:    g.machine.PerfectCount(),
		DurationMs: data.DurationMs,
	})
	if err != nil {
		g.opts.Logger.Warn("cannot save score", "error", err)
	}
}

// Resize adapts the scene without touching the round.
func (g *Game) Resize(width, height int) {
	g.rc.ScreenW = width
	g.rc.ScreenH = height
	if g.machine != nil {
		g.machine.Resize(width, height)
	}
}

// Close stops audio, drops pending animations and waits for leaderboard submissions.
func (g *Game) Close() {
	if g.opts.Audio != nil {
		g.opts.Audio.StopMusic()
	}
	if g.machine != nil {
		g.machine.Close()
	}
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{Phase: tower.StateLoading.String()}
	}
	return core.GameState{
		Score:    g.machine.Score(),
		GameOver: g.machine.State() == tower.StateEnded,
		Paused:   g.paused,
		Phase:    g.machine.State().String(),
	}
}

// Machine exposes the simulation.
func (g *Game) Machine() *tower.Machine { return g.machine }

// Achievements exposes the player's achievement tracker.
func (g *Game) Achievements() *achievements.System { return g.achievements }

// Best returns the best score known for the player.
func (g *Game) Best() int { return g.best }
