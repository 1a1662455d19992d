package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave selects the oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// tone is a fixed-length oscillator with an optional exponential decay.
type tone struct {
	freq  float64
	wave  Wave
	rate  beep.SampleRate
	total int
	pos   int
	phase float64
	decay float64 // Gain multiplier per sample, 1 for none
	gain  float64
}

// NewTone creates a streamer of freq Hz lasting d.
func NewTone(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &tone{freq: freq, wave: wave, rate: rate, total: rate.N(d), decay: 1, gain: 1}
}

// NewPluck creates a tone whose gain falls to floor by the end of d.
func NewPluck(freq float64, d time.Duration, wave Wave, rate beep.SampleRate, floor float64) beep.Streamer {
	t := &tone{freq: freq, wave: wave, rate: rate, total: rate.N(d), decay: 1, gain: 1}
	if t.total > 0 && floor > 0 && floor < 1 {
		t.decay = math.Pow(floor, 1/float64(t.total))
	}
	return t
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}
	for i := range samples {
		if t.pos >= t.total {
			return i, true
		}
		var v float64
		switch t.wave {
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		default:
			v = math.Sin(2 * math.Pi * t.phase)
		}
		v *= t.gain
		samples[i][0], samples[i][1] = v, v

		t.gain *= t.decay
		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// withVolume scales s linearly by vol; zero or less is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
