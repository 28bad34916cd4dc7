package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	def := DefaultStarsConfig()

	if cfg.Player != def.Player {
		t.Errorf("Player = %+v, expected %+v", cfg.Player, def.Player)
	}
	if cfg.Enemy != def.Enemy {
		t.Errorf("Enemy = %+v, expected %+v", cfg.Enemy, def.Enemy)
	}
	if cfg.Spawn != def.Spawn {
		t.Errorf("Spawn = %+v, expected %+v", cfg.Spawn, def.Spawn)
	}
	if len(cfg.Sounds.Impact) != 5 || len(cfg.Sounds.Pluck) != 2 || len(cfg.Sounds.Explosion) != 2 {
		t.Errorf("Sound counts = %d/%d/%d, expected 5/2/2",
			len(cfg.Sounds.Impact), len(cfg.Sounds.Pluck), len(cfg.Sounds.Explosion))
	}
}

func TestDefaultHalves(t *testing.T) {
	cfg := DefaultStarsConfig()
	if cfg.PlayerHalf() != 32 {
		t.Errorf("PlayerHalf() = %f, expected 32", cfg.PlayerHalf())
	}
	half := cfg.EnemyHalf()
	if half < 35.55 || half > 35.56 {
		t.Errorf("EnemyHalf() = %f, expected ~35.56", half)
	}
}

func TestLoadStarsCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stars.yaml")
	data := []byte("player:\n  speed: 250\nenemy:\n  bounce_nudge: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadStars(path)
	if err != nil {
		t.Fatalf("LoadStars() failed: %v", err)
	}

	if cfg.Player.Speed != 250 {
		t.Errorf("Player.Speed = %f, expected 250", cfg.Player.Speed)
	}
	if cfg.Enemy.BounceNudge != 4 {
		t.Errorf("Enemy.BounceNudge = %f, expected 4", cfg.Enemy.BounceNudge)
	}
	// Untouched fields keep their defaults
	if cfg.Player.Size != 64 {
		t.Errorf("Player.Size = %f, expected default 64", cfg.Player.Size)
	}
}

func TestLoadStarsMissingFile(t *testing.T) {
	_, err := LoadStars(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadStars() with missing file should fail")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadStarsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("spawn:\n  min_stars: 3\n  max_stars: 3\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err := LoadStars(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("LoadStars() error = %v, expected ErrInvalid", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*StarsConfig)
		valid  bool
	}{
		{"defaults", func(*StarsConfig) {}, true},
		{"zero player speed", func(c *StarsConfig) { c.Player.Speed = 0 }, false},
		{"negative nudge", func(c *StarsConfig) { c.Enemy.BounceNudge = -1 }, false},
		{"empty enemy range", func(c *StarsConfig) { c.Spawn.MaxEnemies = 1 }, false},
		{"no pluck sounds", func(c *StarsConfig) { c.Sounds.Pluck = nil }, false},
		{"volume too loud", func(c *StarsConfig) { c.Audio.Volume = 1.5 }, false},
		{"explicit window", func(c *StarsConfig) { c.Window.Width, c.Window.Height = 800, 600 }, true},
		{"zero hold", func(c *StarsConfig) { c.Input.HoldMillis = 0 }, false},
		{"nan player speed", func(c *StarsConfig) { c.Player.Speed = math.NaN() }, false},
		{"infinite player speed", func(c *StarsConfig) { c.Player.Speed = math.Inf(1) }, false},
		{"nan enemy size", func(c *StarsConfig) { c.Enemy.Size = math.NaN() }, false},
		{"nan nudge", func(c *StarsConfig) { c.Enemy.BounceNudge = math.NaN() }, false},
		{"infinite window width", func(c *StarsConfig) { c.Window.Width = math.Inf(1) }, false},
		{"nan window height", func(c *StarsConfig) { c.Window.Height = math.NaN() }, false},
		{"negative window", func(c *StarsConfig) { c.Window.Width = -1 }, false},
		{"negative margin", func(c *StarsConfig) { c.Spawn.Margin = -500 }, false},
		{"zero margin", func(c *StarsConfig) { c.Spawn.Margin = 0 }, true},
		{"negative retries", func(c *StarsConfig) { c.Spawn.DirectionRetries = -1 }, false},
		{"zero retries", func(c *StarsConfig) { c.Spawn.DirectionRetries = 0 }, true},
		{"nan volume", func(c *StarsConfig) { c.Audio.Volume = math.NaN() }, false},
		{"zero sound rate", func(c *StarsConfig) { c.Audio.MaxPerSecond = 0 }, false},
		{"zero burst", func(c *StarsConfig) { c.Audio.Burst = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultStarsConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestParseRejectsNonFinite(t *testing.T) {
	docs := []string{
		"player:\n  speed: .nan\n",
		"player:\n  speed: .inf\n",
		"enemy:\n  speed: -.inf\n",
		"spawn:\n  margin: -500\n",
	}
	for _, doc := range docs {
		if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) error = %v, expected ErrInvalid", doc, err)
		}
	}
}

func TestMarshalRoundTripKeepsSounds(t *testing.T) {
	data, err := Marshal(DefaultStarsConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse(Marshal()) failed: %v", err)
	}
	if cfg.Sounds.Impact[4] != "audio/impactGeneric_light_004.ogg" {
		t.Errorf("unexpected impact sound %q", cfg.Sounds.Impact[4])
	}
}

func TestWindowResolve(t *testing.T) {
	tests := []struct {
		name       string
		window     WindowConfig
		cols, rows int
		wantW      float64
		wantH      float64
	}{
		{"from terminal", WindowConfig{CellWidth: 8, CellHeight: 16}, 100, 30, 800, 480},
		{"explicit", WindowConfig{Width: 1024, Height: 768, CellWidth: 8, CellHeight: 16}, 100, 30, 1024, 768},
		{"mixed", WindowConfig{Width: 640, CellWidth: 8, CellHeight: 16}, 100, 30, 640, 480},
		{"no terminal", WindowConfig{CellWidth: 8, CellHeight: 16}, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.window.Resolve(tt.cols, tt.rows)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Resolve(%d, %d) = %vx%v, want %vx%v", tt.cols, tt.rows, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
