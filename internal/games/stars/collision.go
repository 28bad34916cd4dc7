package stars

// ConsumeStars removes every star within pickup range of the player.
// Several stars may be consumed in one tick; each gets its own pluck sound.
func ConsumeStars(w *World, ctx *TickContext) {
	p, ok := w.Player()
	if !ok {
		return
	}
	radius := ctx.Config.Star.PickupRadius
	for _, s := range w.Stars() {
		if s.Pos.Sub(p.Pos).Len() <= radius {
			ctx.Effects.PlaySound(SoundPluck)
			ctx.Effects.Despawn(s.ID, KindStar)
		}
	}
}

// KillPlayer removes the player when any enemy is within kill range.
// The first enemy in range wins; the rest are not examined, so a death
// produces exactly one explosion.
func KillPlayer(w *World, ctx *TickContext) {
	p, ok := w.Player()
	if !ok {
		return
	}
	radius := ctx.Config.Enemy.KillRadius
	for _, e := range w.Enemies() {
		if e.Pos.Sub(p.Pos).Len() <= radius {
			ctx.Effects.PlaySound(SoundExplosion)
			ctx.Effects.Despawn(p.ID, KindPlayer)
			return
		}
	}
}
