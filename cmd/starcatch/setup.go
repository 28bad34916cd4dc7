package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starcatch/internal/audio"
	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/metrics"
	"github.com/vovakirdan/starcatch/internal/registry"
	"github.com/vovakirdan/starcatch/internal/session"
	"github.com/vovakirdan/starcatch/internal/storage"
)

// newLogger builds the process logger. Interactive sessions never log to
// stderr since it shares the terminal with the alternate screen.
func newLogger(interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer
	)
	switch {
	case flagLogFile != "":
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "starcatch",
		Level:           level,
	})
	return logger, closer, nil
}

// gameConfig is implemented by games that load their own configuration.
type gameConfig interface {
	Config() config.StarsConfig
	ConfigErr() error
}

// hostResources holds everything a host needs besides the game.
type hostResources struct {
	journal *storage.Store
	audio   *audio.Player
	metrics *metrics.Metrics
}

func (r *hostResources) Close() {
	if r.audio != nil {
		r.audio.Close()
	}
	if r.journal != nil {
		r.journal.Close()
	}
}

// newHost wires the journal, audio and metrics around a game. Failures of
// the optional parts are logged and the host runs without them.
func newHost(game registry.Game, cfg config.StarsConfig, enableAudio bool, logger *log.Logger) (*session.Host, *hostResources) {
	res := &hostResources{metrics: metrics.New()}

	journal, err := storage.Open(flagJournal)
	if err != nil {
		logger.Warn("could not open session journal", "error", err)
	} else {
		res.journal = journal
	}

	audioCfg := cfg.Audio
	audioCfg.Enabled = audioCfg.Enabled && enableAudio
	bank := audio.LoadBank(audioCfg.AssetDir, cfg.Sounds, logger)
	res.audio = audio.NewPlayer(audioCfg, bank, logger)
	if err := res.audio.Initialize(); err != nil {
		logger.Warn("audio unavailable, running silent", "error", err)
	}

	host := session.NewHost(game, session.Options{
		Journal: res.journal,
		Audio:   res.audio,
		Metrics: res.metrics,
		Logger:  logger,
	})
	return host, res
}

// createGame instantiates a registered game and returns the configuration
// it loaded. Games without their own configuration get the one from
// --config.
func createGame(gameID string) (registry.Game, config.StarsConfig, error) {
	if !registry.Exists(gameID) {
		return nil, config.StarsConfig{}, fmt.Errorf("unknown game %q, run 'starcatch list' to see available games", gameID)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return nil, config.StarsConfig{}, err
	}

	gc, ok := game.(gameConfig)
	if !ok {
		cfg, err := config.LoadStars(flagConfig)
		if err != nil {
			return nil, config.StarsConfig{}, err
		}
		return game, cfg, nil
	}
	if err := gc.ConfigErr(); err != nil {
		return nil, config.StarsConfig{}, err
	}
	return game, gc.Config(), nil
}
