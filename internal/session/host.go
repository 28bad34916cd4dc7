// Package session runs one game session at a time and routes the effects of
// every tick to the audio player, the journal, metrics and the logger.
// Both the terminal UI and the headless simulator drive games through a Host.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starcatch/internal/audio"
	"github.com/vovakirdan/starcatch/internal/core"
	"github.com/vovakirdan/starcatch/internal/metrics"
	"github.com/vovakirdan/starcatch/internal/registry"
	"github.com/vovakirdan/starcatch/internal/storage"
)

// End reasons recorded in the journal.
const (
	ReasonQuit          = "quit"
	ReasonPlayerRemoved = "player_removed"
	ReasonRestart       = "restart"
	ReasonTicks         = "ticks"
)

// Options wires the optional effect consumers. Nil fields are skipped.
type Options struct {
	Journal *storage.Store
	Audio   *audio.Player
	Metrics *metrics.Metrics
	Logger  *log.Logger
}

// Host owns the game and the current session.
type Host struct {
	game    registry.Game
	journal *storage.Store
	audio   *audio.Player
	metrics *metrics.Metrics
	logger  *log.Logger

	runtime   core.RuntimeConfig
	sessionID string
	open      bool
	lastTick  uint64
}

// NewHost creates a host for game.
func NewHost(game registry.Game, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Host{
		game:    game,
		journal: opts.Journal,
		audio:   opts.Audio,
		metrics: opts.Metrics,
		logger:  logger,
	}
}

// Game returns the hosted game.
func (h *Host) Game() registry.Game {
	return h.game
}

// Runtime returns the runtime config of the current session.
func (h *Host) Runtime() core.RuntimeConfig {
	return h.runtime
}

// SessionID returns the journal ID of the current session, or "" when the
// journal is disabled or unavailable.
func (h *Host) SessionID() string {
	return h.sessionID
}

// Start begins a new session, ending the previous one as a restart.
// A zero seed is replaced by the current time.
func (h *Host) Start(cfg core.RuntimeConfig) error {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if h.open {
		h.End(ReasonRestart)
	}

	if err := h.game.Reset(cfg); err != nil {
		return err
	}
	h.runtime = cfg
	h.open = true
	h.lastTick = 0
	h.sessionID = ""

	st := h.game.State()
	h.logger.Info("session started",
		"game", h.game.ID(),
		"seed", cfg.Seed,
		"width", cfg.WindowW,
		"height", cfg.WindowH,
		"stars", st.Stars,
		"enemies", st.Enemies,
	)

	if h.journal != nil {
		id, err := h.journal.StartSession(storage.SessionInfo{
			GameID:  h.game.ID(),
			Seed:    cfg.Seed,
			Width:   cfg.WindowW,
			Height:  cfg.WindowH,
			Stars:   st.Stars,
			Enemies: st.Enemies,
		})
		if err != nil {
			h.logger.Error("journal unavailable", "error", err)
		} else {
			h.sessionID = id
		}
	}
	if h.metrics != nil {
		h.metrics.SessionStarted()
	}
	return nil
}

// Step advances the game one tick and dispatches its effects.
func (h *Host) Step(in core.InputFrame) core.StepResult {
	start := time.Now()
	res := h.game.Step(in)
	elapsed := time.Since(start)

	// Paused frames do not advance the tick
	if res.State.Tick == h.lastTick {
		return res
	}
	h.lastTick = res.State.Tick

	if h.metrics != nil && h.open {
		h.metrics.ObserveTick(elapsed, res)
	}
	if len(res.Effects) > 0 {
		h.dispatch(res)
	}
	return res
}

// dispatch routes the effects of one tick. Once the session has ended the
// world keeps running on screen, so sounds still play, but nothing more is
// journaled or metered for it.
func (h *Host) dispatch(res core.StepResult) {
	for _, e := range res.Effects {
		switch e.Kind {
		case core.EffectSound:
			h.logger.Debug("sound", "tick", e.Tick, "category", e.Category, "path", e.Sound)
		case core.EffectDespawn:
			h.logger.Debug("despawn", "tick", e.Tick, "entity", e.Entity, "kind", e.EntityKind)
		}
	}

	if h.audio != nil {
		for _, o := range h.audio.HandleEffects(res.Effects) {
			if h.metrics != nil && h.open {
				h.metrics.ObserveAudio(o.String())
			}
		}
	}
	if !h.open {
		return
	}

	if h.journal != nil && h.sessionID != "" {
		if err := h.journal.RecordEffects(h.sessionID, res.Effects); err != nil {
			h.logger.Error("journal write failed", "error", err)
		}
	}

	if playerRemoved(res.Effects) {
		h.logger.Info("player removed", "tick", res.State.Tick, "stars", res.State.Stars)
		h.End(ReasonPlayerRemoved)
	}
}

func playerRemoved(effects []core.Effect) bool {
	for _, e := range effects {
		if e.Kind == core.EffectDespawn && e.EntityKind == "player" {
			return true
		}
	}
	return false
}

// End closes the current session in the journal. Later calls are no-ops
// until the next Start.
func (h *Host) End(reason string) {
	if !h.open {
		return
	}
	h.open = false

	tick := h.game.State().Tick
	h.logger.Info("session ended", "reason", reason, "tick", tick)
	if h.journal != nil && h.sessionID != "" {
		if err := h.journal.EndSession(h.sessionID, tick, reason); err != nil {
			h.logger.Error("journal write failed", "error", err)
		}
	}
}

// ToggleMute flips audio mute and returns the new state. Without an audio
// player it always reports muted.
func (h *Host) ToggleMute() bool {
	if h.audio == nil {
		return true
	}
	muted := h.audio.ToggleMute()
	h.logger.Info("audio", "muted", muted)
	return muted
}

// Summary returns the journal summary of the current session.
func (h *Host) Summary() (*storage.Summary, error) {
	if h.journal == nil || h.sessionID == "" {
		return nil, storage.ErrUnknownSession
	}
	return h.journal.Summary(h.sessionID)
}
