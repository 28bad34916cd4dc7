package stars

import (
	"github.com/vovakirdan/starcatch/internal/core"
)

// ConfinePlayer clamps the player inside the window, keeping half the sprite
// size away from every edge. Each axis is clamped independently.
func ConfinePlayer(w *World, ctx *TickContext) {
	p, ok := w.Player()
	if !ok {
		return
	}
	half := ctx.Config.PlayerHalf()
	b := w.Bounds()
	p.Pos[0] = core.ClampF(p.Pos[0], half, b.Width-half)
	p.Pos[1] = core.ClampF(p.Pos[1], half, b.Height-half)
}

// ConfineEnemies reflects enemies that left the window. Only one axis is
// corrected per tick: x is checked first and y only when x is in range.
// The bounced enemy is nudged along its new direction and an impact sound
// is requested.
func ConfineEnemies(w *World, ctx *TickContext) {
	half := ctx.Config.EnemyHalf()
	nudge := ctx.Config.Enemy.BounceNudge
	b := w.Bounds()

	enemies := w.Enemies()
	for i := range enemies {
		e := &enemies[i]
		switch {
		case e.Pos[0] < half || e.Pos[0] > b.Width-half:
			e.Dir[0] = -e.Dir[0]
		case e.Pos[1] < half || e.Pos[1] > b.Height-half:
			e.Dir[1] = -e.Dir[1]
		default:
			continue
		}
		e.Pos = e.Pos.Add(e.Dir.Mul(nudge))
		ctx.Effects.PlaySound(SoundImpact)
	}
}
