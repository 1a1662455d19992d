package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/taubyte/example-games-tower-blocks/internal/tower"
)

// effectGain keeps beeps well below clipping.
const effectGain = 0.3

// Beep is the pitch and length of a sound effect.
type Beep struct {
	Freq     float64
	Duration time.Duration
}

// Beeps maps every game sound to its beep.
var Beeps = map[tower.Sound]Beep{
	tower.SoundBlockPlaced: {800, 100 * time.Millisecond},
	tower.SoundBlockMissed: {200, 300 * time.Millisecond},
	tower.SoundPerfect:     {1200, 200 * time.Millisecond},
	tower.SoundGameOver:    {150, 500 * time.Millisecond},
	tower.SoundGameStart:   {600, 150 * time.Millisecond},
}

// Effect returns the streamer for s, or nil for an unknown sound.
func Effect(s tower.Sound, rate beep.SampleRate, volume float64) beep.Streamer {
	b, ok := Beeps[s]
	if !ok {
		return nil
	}
	return withVolume(NewTone(b.Freq, b.Duration, WaveSine, rate), effectGain*volume)
}

// Note is one step of a music track.
type Note struct {
	Freq     float64
	Duration time.Duration
}

func notes(d time.Duration, freqs ...float64) []Note {
	out := make([]Note, len(freqs))
	for i, f := range freqs {
		out[i] = Note{Freq: f, Duration: d}
	}
	return out
}

// Tracks are the looping chiptune melodies.
var Tracks = [][]Note{
	notes(400*time.Millisecond, 440, 494, 523, 587, 659, 698, 784, 880), // ascending
	notes(300*time.Millisecond, 880, 784, 698, 659, 587, 523, 494, 440), // descending
	notes(200*time.Millisecond, 440, 523, 659, 880, 659, 523, 440, 330), // arpeggio
}

// musicGain keeps the melody under the effects.
const musicGain = 0.05

// trackIndex wraps any track number, negative ones included, onto Tracks.
func trackIndex(track int) int {
	n := len(Tracks)
	return ((track % n) + n) % n
}

// Melody returns one pass of track as square-wave plucks.
func Melody(track int, rate beep.SampleRate, volume float64) beep.Streamer {
	ns := Tracks[trackIndex(track)]
	parts := make([]beep.Streamer, len(ns))
	for i, n := range ns {
		parts[i] = NewPluck(n.Freq, n.Duration, WaveSquare, rate, 0.02)
	}
	return withVolume(beep.Seq(parts...), musicGain*volume)
}
