// Package config provides YAML-based game configuration loading for the
// starcatch simulation.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned (wrapped) when a configuration fails validation.
var ErrInvalid = errors.New("invalid config")

// StarsConfig contains all tunables for the star-catching simulation.
type StarsConfig struct {
	Window WindowConfig `yaml:"window"`
	Player PlayerConfig `yaml:"player"`
	Enemy  EnemyConfig  `yaml:"enemy"`
	Star   StarConfig   `yaml:"star"`
	Spawn  SpawnConfig  `yaml:"spawn"`
	Sounds SoundsConfig `yaml:"sounds"`
	Audio  AudioConfig  `yaml:"audio"`
	Input  InputConfig  `yaml:"input"`
}

// WindowConfig defines the simulation window in world units.
// A zero width or height means "derive from the terminal size".
type WindowConfig struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	CellWidth  float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight float64 `yaml:"cell_height"` // World units per terminal row
}

// PlayerConfig defines the player entity.
type PlayerConfig struct {
	Size  float64 `yaml:"size"`  // Sprite size; confinement uses size/2
	Speed float64 `yaml:"speed"` // Units per second
}

// EnemyConfig defines roaming enemies.
type EnemyConfig struct {
	Size        float64 `yaml:"size"`
	Speed       float64 `yaml:"speed"`
	HalfDivisor float64 `yaml:"half_divisor"` // Confinement half-extent is size/half_divisor
	BounceNudge float64 `yaml:"bounce_nudge"` // Distance pushed along the new direction on bounce
	KillRadius  float64 `yaml:"kill_radius"`  // Player dies at or below this distance
}

// StarConfig defines collectible stars.
type StarConfig struct {
	PickupRadius float64 `yaml:"pickup_radius"`
}

// SpawnConfig defines session-start placement.
// Counts are drawn from [min, max).
type SpawnConfig struct {
	Margin           float64 `yaml:"margin"`
	VerticalDivisor  float64 `yaml:"vertical_divisor"` // y upper bound is (height-margin)/divisor
	MinStars         int     `yaml:"min_stars"`
	MaxStars         int     `yaml:"max_stars"`
	MinEnemies       int     `yaml:"min_enemies"`
	MaxEnemies       int     `yaml:"max_enemies"`
	DirectionRetries int     `yaml:"direction_retries"`
}

// SoundsConfig lists the asset paths for each sound category.
type SoundsConfig struct {
	Impact    []string `yaml:"impact"`
	Pluck     []string `yaml:"pluck"`
	Explosion []string `yaml:"explosion"`
}

// AudioConfig controls the audio player.
type AudioConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Volume       float64 `yaml:"volume"`         // 0.0 - 1.0
	AssetDir     string  `yaml:"asset_dir"`      // Base directory for sound paths
	MaxPerSecond float64 `yaml:"max_per_second"` // Playback rate limit
	Burst        int     `yaml:"burst"`
}

// InputConfig controls terminal key latching.
type InputConfig struct {
	// HoldMillis is how long a key counts as held after its last press event.
	HoldMillis int `yaml:"hold_ms"`
}

// Validate checks that the configuration can drive a session.
func (c StarsConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !finite(v) || v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if !finite(v) || v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	positive("window.cell_width", c.Window.CellWidth)
	positive("window.cell_height", c.Window.CellHeight)
	nonNegative("window.width", c.Window.Width)
	nonNegative("window.height", c.Window.Height)
	positive("player.size", c.Player.Size)
	positive("player.speed", c.Player.Speed)
	positive("enemy.size", c.Enemy.Size)
	positive("enemy.speed", c.Enemy.Speed)
	positive("enemy.half_divisor", c.Enemy.HalfDivisor)
	positive("enemy.kill_radius", c.Enemy.KillRadius)
	nonNegative("enemy.bounce_nudge", c.Enemy.BounceNudge)
	positive("star.pickup_radius", c.Star.PickupRadius)
	nonNegative("spawn.margin", c.Spawn.Margin)
	positive("spawn.vertical_divisor", c.Spawn.VerticalDivisor)

	if c.Spawn.DirectionRetries < 0 {
		errs = append(errs, fmt.Errorf("spawn.direction_retries must not be negative, got %d", c.Spawn.DirectionRetries))
	}
	if c.Spawn.MinStars < 0 || c.Spawn.MaxStars <= c.Spawn.MinStars {
		errs = append(errs, fmt.Errorf("spawn star range [%d, %d) is empty", c.Spawn.MinStars, c.Spawn.MaxStars))
	}
	if c.Spawn.MinEnemies < 0 || c.Spawn.MaxEnemies <= c.Spawn.MinEnemies {
		errs = append(errs, fmt.Errorf("spawn enemy range [%d, %d) is empty", c.Spawn.MinEnemies, c.Spawn.MaxEnemies))
	}
	if len(c.Sounds.Impact) == 0 || len(c.Sounds.Pluck) == 0 || len(c.Sounds.Explosion) == 0 {
		errs = append(errs, fmt.Errorf("every sound category needs at least one asset"))
	}
	if !(c.Audio.Volume >= 0 && c.Audio.Volume <= 1) {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %v", c.Audio.Volume))
	}
	positive("audio.max_per_second", c.Audio.MaxPerSecond)
	if c.Audio.Burst < 1 {
		errs = append(errs, fmt.Errorf("audio.burst must be at least 1, got %d", c.Audio.Burst))
	}
	if c.Input.HoldMillis <= 0 {
		errs = append(errs, fmt.Errorf("input.hold_ms must be positive, got %d", c.Input.HoldMillis))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PlayerHalf returns the player's confinement half-extent.
func (c StarsConfig) PlayerHalf() float64 {
	return c.Player.Size / 2
}

// EnemyHalf returns the enemy's confinement half-extent.
func (c StarsConfig) EnemyHalf() float64 {
	return c.Enemy.Size / c.Enemy.HalfDivisor
}

// Resolve returns the world window for a terminal of cols x rows cells.
// An explicit width or height wins over the terminal-derived size.
func (w WindowConfig) Resolve(cols, rows int) (float64, float64) {
	width, height := w.Width, w.Height
	if width == 0 {
		width = float64(cols) * w.CellWidth
	}
	if height == 0 {
		height = float64(rows) * w.CellHeight
	}
	return width, height
}
