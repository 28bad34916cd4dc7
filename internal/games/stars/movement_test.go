package stars

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/core"
)

func TestInputDirectionNormalizeOrZero(t *testing.T) {
	dirs := []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight}

	// Every subset of the four keys
	for mask := 0; mask < 1<<len(dirs); mask++ {
		in := core.NewInputFrame()
		for i, a := range dirs {
			if mask&(1<<i) != 0 {
				in.Set(a)
			}
		}

		d := InputDirection(in)
		l := d.Len()
		if l != 0 && !approx(l, 1) {
			t.Errorf("mask %04b: |direction| = %f, expected 0 or 1", mask, l)
		}
	}
}

func TestInputDirectionCases(t *testing.T) {
	s := 1 / 1.4142135623730951

	tests := []struct {
		name     string
		in       core.InputFrame
		expected mgl64.Vec2
	}{
		{"none", keys(), mgl64.Vec2{0, 0}},
		{"left", keys(core.ActionLeft), mgl64.Vec2{-1, 0}},
		{"up (y grows)", keys(core.ActionUp), mgl64.Vec2{0, 1}},
		{"up+right diagonal", keys(core.ActionUp, core.ActionRight), mgl64.Vec2{s, s}},
		{"left+right cancel", keys(core.ActionLeft, core.ActionRight), mgl64.Vec2{0, 0}},
		{"all four cancel", keys(core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight), mgl64.Vec2{0, 0}},
		{"up+down+left", keys(core.ActionUp, core.ActionDown, core.ActionLeft), mgl64.Vec2{-1, 0}},
		{"non-directional ignored", keys(core.ActionPause), mgl64.Vec2{0, 0}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := InputDirection(tc.in)
			if !approxVec(got, tc.expected) {
				t.Errorf("InputDirection() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestMovePlayer(t *testing.T) {
	w := NewWorld(Bounds{Width: 800, Height: 600})
	w.SpawnPlayer(mgl64.Vec2{400, 300})

	ctx := newTestContext(t, keys(core.ActionRight), 0.1)
	MovePlayer(w, ctx)

	p, _ := w.Player()
	// 500 units/s * 0.1s = 50
	if !approxVec(p.Pos, mgl64.Vec2{450, 300}) {
		t.Errorf("player at %v, expected (450, 300)", p.Pos)
	}

	// Zero elapsed time means no movement
	ctx = newTestContext(t, keys(core.ActionUp), 0)
	MovePlayer(w, ctx)
	if !approxVec(p.Pos, mgl64.Vec2{450, 300}) {
		t.Errorf("player moved with zero delta: %v", p.Pos)
	}
}

func TestMoveEnemiesUnconditional(t *testing.T) {
	w := NewWorld(Bounds{Width: 800, Height: 600})
	w.SpawnEnemy(mgl64.Vec2{100, 100}, mgl64.Vec2{0.6, 0.8})

	// No input, no player: enemies still move
	ctx := newTestContext(t, keys(), 0.5)
	MoveEnemies(w, ctx)

	e := w.Enemies()[0]
	// 500 * 0.5 = 250 along (0.6, 0.8)
	if !approxVec(e.Pos, mgl64.Vec2{250, 300}) {
		t.Errorf("enemy at %v, expected (250, 300)", e.Pos)
	}
	if !approxVec(e.Dir, mgl64.Vec2{0.6, 0.8}) {
		t.Errorf("movement should not change direction, got %v", e.Dir)
	}
}
