// Package audio plays the simulation's sound effects.
// Sounds are decoded once into a Bank and mixed through the beep speaker.
// Playback never blocks the caller: requests above the configured rate are
// dropped, and without an audio device the player runs silent.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Outcome is the result of a playback request.
type Outcome uint8

const (
	Played    Outcome = iota
	Silent            // no audio device, or audio disabled
	Muted             // muted by the user
	Throttled         // above the rate limit
	Unknown           // path not in the bank
)

// String returns the outcome name used as a metric label.
func (o Outcome) String() string {
	switch o {
	case Played:
		return "played"
	case Silent:
		return "silent"
	case Muted:
		return "muted"
	case Throttled:
		return "throttled"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Player mixes bank sounds into the speaker.
type Player struct {
	mu          sync.Mutex
	bank        *Bank
	mixer       *beep.Mixer
	volume      *effects.Volume
	limiter     *rate.Limiter
	enabled     bool
	initialized bool
	muted       bool
	logger      *log.Logger
}

// NewPlayer creates a player. Call Initialize to open the audio device.
func NewPlayer(cfg config.AudioConfig, bank *Bank, logger *log.Logger) *Player {
	mixer := &beep.Mixer{}
	p := &Player{
		bank:    bank,
		mixer:   mixer,
		volume:  &effects.Volume{Streamer: mixer, Base: 2},
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxPerSecond), cfg.Burst),
		enabled: cfg.Enabled,
		logger:  logger,
	}
	p.setLevel(cfg.Volume)
	return p
}

// setLevel converts a linear 0..1 level to the exponent used by effects.Volume.
func (p *Player) setLevel(level float64) {
	if level <= 0 {
		p.volume.Silent = true
		p.volume.Volume = 0
		return
	}
	p.volume.Silent = false
	p.volume.Volume = math.Log2(level)
}

// Initialize opens the speaker. It is a no-op when audio is disabled or
// already initialized. On error the player stays silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(p.volume)
	p.initialized = true
	return nil
}

// Play starts a sound by asset path and returns immediately.
func (p *Player) Play(path string) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	streamer, ok := p.bank.Streamer(path)
	if !ok {
		return Unknown
	}
	if p.muted {
		return Muted
	}
	if !p.limiter.Allow() {
		return Throttled
	}
	if !p.initialized {
		return Silent
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	return Played
}

// HandleEffects plays every sound effect of a tick and reports the outcome
// of each request in order.
func (p *Player) HandleEffects(effs []core.Effect) []Outcome {
	var out []Outcome
	for _, e := range effs {
		if e.Kind != core.EffectSound {
			continue
		}
		o := p.Play(e.Sound)
		if o == Unknown && p.logger != nil {
			p.logger.Warn("unknown sound", "path", e.Sound, "category", e.Category)
		}
		out = append(out, o)
	}
	return out
}

// ToggleMute flips the mute state and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.initialized && p.muted {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	return p.muted
}

// Muted reports whether playback is muted.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Active reports whether sounds reach an audio device.
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close stops all sounds and closes the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
