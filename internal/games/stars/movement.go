package stars

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
)

// TickContext carries everything a system needs for one tick. It is built
// once per tick by Game.Step and passed to each system in order.
type TickContext struct {
	Tick    uint64
	Input   core.InputFrame
	Delta   float64 // Seconds since the previous tick, never negative
	Config  *config.StarsConfig
	Effects *Dispatcher
}

// Axis unit vectors for the directional keys (y up).
var keyAxes = [...]struct {
	action core.Action
	axis   mgl64.Vec2
}{
	{core.ActionLeft, mgl64.Vec2{-1, 0}},
	{core.ActionRight, mgl64.Vec2{1, 0}},
	{core.ActionUp, mgl64.Vec2{0, 1}},
	{core.ActionDown, mgl64.Vec2{0, -1}},
}

// InputDirection sums the axis vectors of the held directional keys and
// normalizes the result. Opposing keys cancel to the zero vector.
func InputDirection(in core.InputFrame) mgl64.Vec2 {
	var dir mgl64.Vec2
	for _, k := range keyAxes {
		if in.Has(k.action) {
			dir = dir.Add(k.axis)
		}
	}
	return normalizeOrZero(dir)
}

func normalizeOrZero(v mgl64.Vec2) mgl64.Vec2 {
	if v.Len() == 0 {
		return mgl64.Vec2{}
	}
	return v.Normalize()
}

// MovePlayer integrates the player position from input.
func MovePlayer(w *World, ctx *TickContext) {
	p, ok := w.Player()
	if !ok {
		return
	}
	dir := InputDirection(ctx.Input)
	p.Pos = p.Pos.Add(dir.Mul(ctx.Config.Player.Speed * ctx.Delta))
}

// MoveEnemies advances every enemy along its stored direction.
func MoveEnemies(w *World, ctx *TickContext) {
	step := ctx.Config.Enemy.Speed * ctx.Delta
	enemies := w.Enemies()
	for i := range enemies {
		enemies[i].Pos = enemies[i].Pos.Add(enemies[i].Dir.Mul(step))
	}
}
