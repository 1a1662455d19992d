// Package audio synthesizes the game's sound effects and chiptune music
// and plays them through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/taubyte/example-games-tower-blocks/internal/config"
	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// SampleRate is the output rate of every generated streamer.
const SampleRate = beep.SampleRate(44100)

// Player mixes sound effects and background music.
// All methods are safe for concurrent use.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	music       *beep.Ctrl
	enabled     bool
	initialized bool

	muted      bool
	musicMuted bool
	wantMusic  bool
	track      int
	volume     float64
}

// New creates a player from the audio configuration. Nothing is played until
// Init opens the speaker.
func New(cfg config.AudioConfig) *Player {
	return &Player{
		mixer:      &beep.Mixer{},
		enabled:    cfg.Enabled,
		musicMuted: !cfg.Music,
		track:      trackIndex(cfg.Track),
		volume:     cfg.Volume,
	}
}

// Init opens the speaker. A failure disables the player so the game keeps
// running silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		p.enabled = false
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.locked(func() {
		p.mixer.Clear()
	})
	p.music = nil
	if p.initialized {
		speaker.Clear()
	}
}

// locked runs fn holding the speaker lock when the speaker is streaming the mixer.
func (p *Player) locked(fn func()) {
	if p.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// PlaySound plays a sound effect unless effects are muted.
func (p *Player) PlaySound(s tower.Sound) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.muted {
		return
	}
	st := Effect(s, SampleRate, p.volume)
	if st == nil {
		return
	}
	p.locked(func() {
		p.mixer.Add(st)
	})
}

// StartMusic loops the current track.
func (p *Player) StartMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantMusic = true
	p.startMusicLocked()
}

// StopMusic stops the background loop.
func (p *Player) StopMusic() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.wantMusic = false
	p.stopMusicLocked()
}

func (p *Player) startMusicLocked() {
	if !p.enabled || p.muted || p.musicMuted || p.music != nil {
		return
	}
	track, volume := p.track, p.volume
	ctrl := &beep.Ctrl{Streamer: beep.Iterate(func() beep.Streamer {
		return Melody(track, SampleRate, volume)
	})}
	p.music = ctrl
	p.locked(func() {
		p.mixer.Add(ctrl)
	})
}

func (p *Player) stopMusicLocked() {
	if p.music == nil {
		return
	}
	ctrl := p.music
	p.music = nil
	p.locked(func() {
		// A nil streamer ends the Ctrl and the mixer drops it.
		ctrl.Streamer = nil
	})
}

// ToggleMute flips sound effect muting and returns the new state.
// Muting effects also silences the music.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.muted {
		p.stopMusicLocked()
	} else if p.wantMusic {
		p.startMusicLocked()
	}
	return p.muted
}

// ToggleMusic flips music muting and returns the new state.
func (p *Player) ToggleMusic() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.musicMuted = !p.musicMuted
	if p.musicMuted {
		p.stopMusicLocked()
	} else if p.wantMusic {
		p.startMusicLocked()
	}
	return p.musicMuted
}

// NextTrack switches to the next melody, restarting playback if music is on.
func (p *Player) NextTrack() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.track = trackIndex(p.track + 1)
	if p.music != nil {
		p.stopMusicLocked()
		p.startMusicLocked()
	}
	return p.track
}

// Track returns the current melody index.
func (p *Player) Track() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.track
}

// Muted reports whether sound effects are muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// MusicMuted reports whether music is muted.
func (p *Player) MusicMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.musicMuted
}

// MusicPlaying reports whether the music loop is active.
func (p *Player) MusicPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.music != nil
}

// Enabled reports whether the player produces any sound.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}
