package core

// EffectKind identifies what a simulation side effect asks the host to do.
type EffectKind uint8

const (
	EffectSound   EffectKind = iota + 1 // play a sound asset, fire-and-forget
	EffectDespawn                       // an entity was permanently removed
)

// String returns the lowercase name used in logs and the journal.
func (k EffectKind) String() string {
	switch k {
	case EffectSound:
		return "sound"
	case EffectDespawn:
		return "despawn"
	default:
		return "unknown"
	}
}

// Effect is a side effect emitted by a game during one tick.
type Effect struct {
	Kind EffectKind
	Tick uint64

	// Sound effects
	Category string // logical sound category, e.g. "impact"
	Variant  int    // index into the category's sound list
	Sound    string // asset path of the chosen variant

	// Despawn effects
	Entity     uint64
	EntityKind string
}

// ParseEffectKind is the inverse of EffectKind.String. Unknown names map to 0.
func ParseEffectKind(s string) EffectKind {
	switch s {
	case "sound":
		return EffectSound
	case "despawn":
		return EffectDespawn
	default:
		return 0
	}
}
