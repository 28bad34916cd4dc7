package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// cue is a short procedurally generated sound with an exponential decay
// envelope and an optional linear pitch sweep.
type cue struct {
	rate     beep.SampleRate
	wave     WaveType
	freq     float64 // start frequency in Hz
	sweep    float64 // Hz per second
	decay    float64 // envelope decay rate
	gain     float64
	duration int
	position int
	phase    float64
	seed     uint32
}

func (c *cue) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.duration {
			return i, i > 0
		}
		t := float64(c.position) / float64(c.rate)

		var val float64
		switch c.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * c.phase)
		case WaveSquare:
			if c.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case WaveNoise:
			c.seed = c.seed*1664525 + 1013904223
			val = float64(c.seed)/float64(math.MaxUint32)*2 - 1
		}

		freq := math.Max(c.freq+c.sweep*t, 20)
		c.phase += freq / float64(c.rate)
		c.phase -= math.Floor(c.phase)

		v := val * c.gain * math.Exp(-t*c.decay)
		samples[i][0] = v
		samples[i][1] = v
		c.position++
	}
	return len(samples), true
}

func (c *cue) Err() error {
	return nil
}

// synthCue returns the stand-in sound for a category. variant shifts the
// pitch slightly so variants of one category stay distinguishable.
func synthCue(category string, variant int, rate beep.SampleRate) beep.Streamer {
	shift := 1 + 0.06*float64(variant)
	switch category {
	case "impact":
		return &cue{rate: rate, wave: WaveSquare, freq: 220 * shift, sweep: -600, decay: 40, gain: 0.25,
			duration: rate.N(70 * time.Millisecond)}
	case "pluck":
		return &cue{rate: rate, wave: WaveSine, freq: 880 * shift, sweep: 400, decay: 12, gain: 0.4,
			duration: rate.N(220 * time.Millisecond)}
	case "explosion":
		rumble := &cue{rate: rate, wave: WaveSine, freq: 70 * shift, sweep: -40, decay: 4, gain: 0.35,
			duration: rate.N(600 * time.Millisecond)}
		crunch := &cue{rate: rate, wave: WaveNoise, decay: 7, gain: 0.3, seed: uint32(variant + 1),
			duration: rate.N(600 * time.Millisecond)}
		return beep.Mix(rumble, crunch)
	default:
		return &cue{rate: rate, wave: WaveSine, freq: 440, decay: 20, gain: 0.2,
			duration: rate.N(100 * time.Millisecond)}
	}
}
