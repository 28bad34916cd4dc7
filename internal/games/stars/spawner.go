package stars

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/config"
)

var (
	// ErrNoWindow means the session has no usable window bounds.
	ErrNoWindow = errors.New("stars: no window available")

	// ErrEmptyRange means a random spawn range has no values, usually because
	// the window is too small for the configured margins.
	ErrEmptyRange = errors.New("stars: empty random range")
)

// SpawnCounts reports how many entities Spawn placed.
type SpawnCounts struct {
	Stars   int
	Enemies int
}

// spawnArea is the half-open region [MinX, MaxX) x [MinY, MaxY) for stars
// and enemies.
type spawnArea struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func newSpawnArea(b Bounds, cfg config.SpawnConfig) (spawnArea, error) {
	a := spawnArea{
		MinX: cfg.Margin,
		MaxX: b.Width - cfg.Margin,
		MinY: cfg.Margin,
		MaxY: (b.Height - cfg.Margin) / cfg.VerticalDivisor,
	}
	if a.MaxX <= a.MinX {
		return a, fmt.Errorf("%w: x in [%.1f, %.1f) for width %.1f", ErrEmptyRange, a.MinX, a.MaxX, b.Width)
	}
	if a.MaxY <= a.MinY {
		return a, fmt.Errorf("%w: y in [%.1f, %.1f) for height %.1f", ErrEmptyRange, a.MinY, a.MaxY, b.Height)
	}
	return a, nil
}

func (a spawnArea) random(rng *rand.Rand) mgl64.Vec2 {
	return mgl64.Vec2{
		a.MinX + rng.Float64()*(a.MaxX-a.MinX),
		a.MinY + rng.Float64()*(a.MaxY-a.MinY),
	}
}

// Spawn populates an empty world for a new session: the player at the window
// center, then a random number of stars and of enemies inside the spawn area.
// All ranges are checked before anything is placed.
func Spawn(w *World, cfg config.StarsConfig, rng *rand.Rand) (SpawnCounts, error) {
	b := w.Bounds()
	if !b.Valid() {
		return SpawnCounts{}, fmt.Errorf("%w: bounds %.1fx%.1f", ErrNoWindow, b.Width, b.Height)
	}
	area, err := newSpawnArea(b, cfg.Spawn)
	if err != nil {
		return SpawnCounts{}, err
	}
	starCount, err := randomCount(rng, cfg.Spawn.MinStars, cfg.Spawn.MaxStars)
	if err != nil {
		return SpawnCounts{}, fmt.Errorf("star count: %w", err)
	}
	enemyCount, err := randomCount(rng, cfg.Spawn.MinEnemies, cfg.Spawn.MaxEnemies)
	if err != nil {
		return SpawnCounts{}, fmt.Errorf("enemy count: %w", err)
	}

	w.SpawnPlayer(b.Center())

	for range starCount {
		w.SpawnStar(area.random(rng))
	}
	for range enemyCount {
		pos := area.random(rng)
		w.SpawnEnemy(pos, randomDirection(rng, cfg.Spawn.DirectionRetries))
	}

	return SpawnCounts{Stars: starCount, Enemies: enemyCount}, nil
}

// randomCount draws from [min, max).
func randomCount(rng *rand.Rand, min, max int) (int, error) {
	if max <= min {
		return 0, fmt.Errorf("%w: [%d, %d)", ErrEmptyRange, min, max)
	}
	return min + rng.Intn(max-min), nil
}

// randomDirection draws (U[0,1), U[0,1)) and normalizes it. A zero-length
// draw is redrawn up to retries times before falling back to +x.
func randomDirection(rng *rand.Rand, retries int) mgl64.Vec2 {
	for attempt := 0; attempt <= retries; attempt++ {
		d := mgl64.Vec2{rng.Float64(), rng.Float64()}
		if d.Len() > 0 {
			return d.Normalize()
		}
	}
	return mgl64.Vec2{1, 0}
}
