package stars

import (
	"math/rand"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
)

// SoundCategory is a logical group of interchangeable sound assets.
type SoundCategory uint8

const (
	SoundImpact    SoundCategory = iota // enemy bounced off a wall
	SoundPluck                          // star consumed
	SoundExplosion                      // player killed
	soundCategoryCount
)

// String returns the category name used in effects and logs.
func (c SoundCategory) String() string {
	switch c {
	case SoundImpact:
		return "impact"
	case SoundPluck:
		return "pluck"
	case SoundExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Dispatcher collects the side effects requested during a tick.
// Sounds are recorded immediately; despawns are deferred until Flush so that
// systems iterating the world never observe a removal mid-pass.
type Dispatcher struct {
	sounds  [soundCategoryCount][]string
	rng     *rand.Rand
	tick    uint64
	pending []core.Effect
	removed map[EntityID]bool
}

// NewDispatcher creates a dispatcher choosing sound variants with rng.
func NewDispatcher(sounds config.SoundsConfig, rng *rand.Rand) *Dispatcher {
	d := &Dispatcher{
		rng:     rng,
		removed: make(map[EntityID]bool),
	}
	d.sounds[SoundImpact] = sounds.Impact
	d.sounds[SoundPluck] = sounds.Pluck
	d.sounds[SoundExplosion] = sounds.Explosion
	return d
}

// BeginTick stamps subsequent effects with the given tick.
func (d *Dispatcher) BeginTick(tick uint64) {
	d.tick = tick
}

// PlaySound requests a uniformly random variant of the category.
func (d *Dispatcher) PlaySound(cat SoundCategory) {
	variants := d.sounds[cat]
	if len(variants) == 0 {
		return
	}
	v := d.rng.Intn(len(variants))
	d.pending = append(d.pending, core.Effect{
		Kind:     core.EffectSound,
		Tick:     d.tick,
		Category: cat.String(),
		Variant:  v,
		Sound:    variants[v],
	})
}

// Despawn requests removal of an entity at the end of the tick.
// Repeated requests for the same entity within a tick collapse into one.
func (d *Dispatcher) Despawn(id EntityID, kind EntityKind) {
	if d.removed[id] {
		return
	}
	d.removed[id] = true
	d.pending = append(d.pending, core.Effect{
		Kind:       core.EffectDespawn,
		Tick:       d.tick,
		Entity:     uint64(id),
		EntityKind: kind.String(),
	})
}

// Pending returns the number of effects queued this tick.
func (d *Dispatcher) Pending() int {
	return len(d.pending)
}

// Flush applies queued despawns to the world and returns every effect of the
// tick in emission order. Despawns of entities that are already gone are
// dropped.
func (d *Dispatcher) Flush(w *World) []core.Effect {
	if len(d.pending) == 0 {
		return nil
	}

	out := make([]core.Effect, 0, len(d.pending))
	for _, e := range d.pending {
		if e.Kind == core.EffectDespawn {
			if _, ok := w.Despawn(EntityID(e.Entity)); !ok {
				continue
			}
		}
		out = append(out, e)
	}

	d.pending = d.pending[:0]
	clear(d.removed)
	return out
}
