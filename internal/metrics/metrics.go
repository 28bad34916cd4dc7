// Package metrics collects simulation metrics in a private Prometheus
// registry. Label values are bounded: sound categories, entity kinds and
// audio outcomes only, never entity IDs.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vovakirdan/starcatch/internal/core"
)

// Metrics holds the collectors for one process.
type Metrics struct {
	registry *prometheus.Registry

	ticks        prometheus.Counter
	tickDuration prometheus.Histogram
	sounds       *prometheus.CounterVec // by category
	despawns     *prometheus.CounterVec // by entity kind
	audio        *prometheus.CounterVec // by outcome
	sessions     prometheus.Counter
	stars        prometheus.Gauge
	enemies      prometheus.Gauge
	playerAlive  prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "starcatch_ticks_total",
			Help: "Simulation ticks executed",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "starcatch_tick_duration_seconds",
			Help:    "Time spent in one simulation tick",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
		}),
		sounds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "starcatch_sounds_total",
			Help: "Sound effects emitted by the simulation",
		}, []string{"category"}),
		despawns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "starcatch_despawns_total",
			Help: "Entities permanently removed",
		}, []string{"kind"}),
		audio: f.NewCounterVec(prometheus.CounterOpts{
			Name: "starcatch_audio_requests_total",
			Help: "Audio playback requests by outcome",
		}, []string{"outcome"}),
		sessions: f.NewCounter(prometheus.CounterOpts{
			Name: "starcatch_sessions_total",
			Help: "Sessions started",
		}),
		stars: f.NewGauge(prometheus.GaugeOpts{
			Name: "starcatch_stars",
			Help: "Stars remaining in the current session",
		}),
		enemies: f.NewGauge(prometheus.GaugeOpts{
			Name: "starcatch_enemies",
			Help: "Enemies in the current session",
		}),
		playerAlive: f.NewGauge(prometheus.GaugeOpts{
			Name: "starcatch_player_alive",
			Help: "1 while the player entity exists",
		}),
	}
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SessionStarted counts a new session.
func (m *Metrics) SessionStarted() {
	m.sessions.Inc()
}

// ObserveTick records one executed tick and its effects.
func (m *Metrics) ObserveTick(elapsed time.Duration, res core.StepResult) {
	m.ticks.Inc()
	m.tickDuration.Observe(elapsed.Seconds())

	for _, e := range res.Effects {
		switch e.Kind {
		case core.EffectSound:
			m.sounds.WithLabelValues(e.Category).Inc()
		case core.EffectDespawn:
			m.despawns.WithLabelValues(e.EntityKind).Inc()
		}
	}

	m.stars.Set(float64(res.State.Stars))
	m.enemies.Set(float64(res.State.Enemies))
	if res.State.GameOver {
		m.playerAlive.Set(0)
	} else {
		m.playerAlive.Set(1)
	}
}

// ObserveAudio counts a playback outcome, e.g. "played" or "throttled".
func (m *Metrics) ObserveAudio(outcome string) {
	m.audio.WithLabelValues(outcome).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format, suitable
// for the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
