package stars

// Snapshot is a copy of the session state for determinism tests, renderers
// and input sources that must not touch the live world.
type Snapshot struct {
	Tick      uint64
	Bounds    Bounds
	HasPlayer bool
	Player    Player
	Stars     []Star
	Enemies   []Enemy
	Paused    bool
}

// Snapshot returns a deep copy of the current state.
func (g *Game) Snapshot() Snapshot {
	if g.world == nil {
		return Snapshot{Paused: g.paused}
	}
	s := Snapshot{
		Tick:    g.tick,
		Bounds:  g.world.Bounds(),
		Stars:   append([]Star(nil), g.world.Stars()...),
		Enemies: append([]Enemy(nil), g.world.Enemies()...),
		Paused:  g.paused,
	}
	if p, ok := g.world.Player(); ok {
		s.HasPlayer = true
		s.Player = *p
	}
	return s
}
