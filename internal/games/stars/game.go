// Package stars implements the star-catching arcade session.
// The player steers a ball around the window, collecting stars while avoiding
// enemies that bounce off the walls. Touching an enemy removes the player and
// ends the session.
package stars

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
	"github.com/vovakirdan/starcatch/internal/registry"
)

// GameID is the registry identifier.
const GameID = "stars"

var configPath string

// SetConfigPath sets a custom config file path for new instances.
func SetConfigPath(path string) {
	configPath = path
}

// Game implements the simulation and the registry.Game interface.
type Game struct {
	cfg     config.StarsConfig
	loadErr error

	runtime core.RuntimeConfig
	world   *World
	effects *Dispatcher
	counts  SpawnCounts
	tick    uint64
	paused  bool
}

// New creates a game using the config found by config.LoadStars.
// A load error is reported by the first Reset.
func New() *Game {
	cfg, err := config.LoadStars(configPath)
	if err != nil {
		return &Game{cfg: config.DefaultStarsConfig(), loadErr: err}
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.StarsConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Star Catch"
}

// Config returns the active configuration.
func (g *Game) Config() config.StarsConfig {
	return g.cfg
}

// ConfigErr returns the error from loading the configuration in New, if any.
func (g *Game) ConfigErr() error {
	return g.loadErr
}

// Reset starts a new session: fresh world, RNG seeded from cfg.Seed, and a
// new spawn. The window size comes from cfg.WindowW/WindowH and stays fixed
// until the next Reset.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	if g.loadErr != nil {
		return fmt.Errorf("stars: load config: %w", g.loadErr)
	}
	if err := g.cfg.Validate(); err != nil {
		return fmt.Errorf("stars: %w", err)
	}

	bounds := Bounds{Width: cfg.WindowW, Height: cfg.WindowH}
	rng := rand.New(rand.NewSource(cfg.Seed))
	world := NewWorld(bounds)

	counts, err := Spawn(world, g.cfg, rng)
	if err != nil {
		return err
	}

	g.runtime = cfg
	g.world = world
	g.effects = NewDispatcher(g.cfg.Sounds, rng)
	g.counts = counts
	g.tick = 0
	g.paused = false
	return nil
}

// Step advances the simulation by one tick:
// movement, confinement, collision, then effect dispatch.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.world == nil {
		return core.StepResult{State: g.State()}
	}

	g.tick++
	ctx := &TickContext{
		Tick:    g.tick,
		Input:   in,
		Delta:   in.Seconds(),
		Config:  &g.cfg,
		Effects: g.effects,
	}
	g.effects.BeginTick(g.tick)

	MovePlayer(g.world, ctx)
	MoveEnemies(g.world, ctx)
	ConfinePlayer(g.world, ctx)
	ConfineEnemies(g.world, ctx)
	ConsumeStars(g.world, ctx)
	KillPlayer(g.world, ctx)

	effects := g.effects.Flush(g.world)
	return core.StepResult{State: g.State(), Effects: effects}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{Paused: g.paused}
	}
	_, alive := g.world.Player()
	return core.GameState{
		Tick:     g.tick,
		Stars:    g.world.StarCount(),
		Enemies:  g.world.EnemyCount(),
		GameOver: !alive,
		Paused:   g.paused,
	}
}

// Spawned returns how many stars and enemies the current session started with.
func (g *Game) Spawned() SpawnCounts {
	return g.counts
}

// Register the game with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
