package stars

import (
	"github.com/go-gl/mathgl/mgl64"
)

// EntityID identifies an entity for the lifetime of a session.
// IDs start at 1 and are never reused.
type EntityID uint64

// EntityKind distinguishes the three entity types.
type EntityKind uint8

const (
	KindPlayer EntityKind = iota + 1
	KindStar
	KindEnemy
)

// String returns the lowercase kind name.
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindStar:
		return "star"
	case KindEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Player is the user-controlled entity. Its velocity is derived from input
// every tick, so only the position is stored.
type Player struct {
	ID  EntityID
	Pos mgl64.Vec2
}

// Star is a collectible.
type Star struct {
	ID  EntityID
	Pos mgl64.Vec2
}

// Enemy roams the window along a unit direction.
type Enemy struct {
	ID  EntityID
	Pos mgl64.Vec2
	Dir mgl64.Vec2
}

// Bounds is the simulation window in world units. Origin is bottom-left, y up.
type Bounds struct {
	Width  float64
	Height float64
}

// Valid reports whether the bounds describe a usable window.
func (b Bounds) Valid() bool {
	return b.Width > 0 && b.Height > 0
}

// Center returns the middle of the window.
func (b Bounds) Center() mgl64.Vec2 {
	return mgl64.Vec2{b.Width / 2, b.Height / 2}
}

// World is the entity store: an optional player slot plus ordered star and
// enemy collections with O(1) swap-remove by ID.
type World struct {
	bounds Bounds

	player        Player
	hasPlayer     bool
	playerSpawned bool

	stars      []Star
	starIndex  map[EntityID]int
	enemies    []Enemy
	enemyIndex map[EntityID]int

	nextID EntityID
}

// NewWorld creates an empty world with fixed bounds.
func NewWorld(b Bounds) *World {
	return &World{
		bounds:     b,
		starIndex:  make(map[EntityID]int),
		enemyIndex: make(map[EntityID]int),
	}
}

// Bounds returns the window the world was created with.
func (w *World) Bounds() Bounds {
	return w.bounds
}

func (w *World) allocID() EntityID {
	w.nextID++
	return w.nextID
}

// SpawnPlayer places the player. A world holds at most one player per
// session; once spawned (even if later removed) further calls return false.
func (w *World) SpawnPlayer(pos mgl64.Vec2) (EntityID, bool) {
	if w.playerSpawned {
		return 0, false
	}
	w.player = Player{ID: w.allocID(), Pos: pos}
	w.hasPlayer = true
	w.playerSpawned = true
	return w.player.ID, true
}

// Player returns the live player, if any. The pointer is valid until the
// player is despawned.
func (w *World) Player() (*Player, bool) {
	if !w.hasPlayer {
		return nil, false
	}
	return &w.player, true
}

// SpawnStar adds a star and returns its ID.
func (w *World) SpawnStar(pos mgl64.Vec2) EntityID {
	id := w.allocID()
	w.starIndex[id] = len(w.stars)
	w.stars = append(w.stars, Star{ID: id, Pos: pos})
	return id
}

// SpawnEnemy adds an enemy and returns its ID. dir must already be unit length.
func (w *World) SpawnEnemy(pos, dir mgl64.Vec2) EntityID {
	id := w.allocID()
	w.enemyIndex[id] = len(w.enemies)
	w.enemies = append(w.enemies, Enemy{ID: id, Pos: pos, Dir: dir})
	return id
}

// Stars returns the live stars. Callers may mutate elements in place but
// must not append or remove; use Despawn.
func (w *World) Stars() []Star {
	return w.stars
}

// Enemies returns the live enemies, with the same rules as Stars.
func (w *World) Enemies() []Enemy {
	return w.enemies
}

// StarCount returns the number of live stars.
func (w *World) StarCount() int {
	return len(w.stars)
}

// EnemyCount returns the number of live enemies.
func (w *World) EnemyCount() int {
	return len(w.enemies)
}

// Despawn permanently removes the entity with the given ID.
// It returns the removed kind and false if no such entity is live, which
// makes repeated removal a no-op.
func (w *World) Despawn(id EntityID) (EntityKind, bool) {
	if w.hasPlayer && w.player.ID == id {
		w.hasPlayer = false
		w.player = Player{}
		return KindPlayer, true
	}
	if i, ok := w.starIndex[id]; ok {
		w.stars = swapRemove(w.stars, i, w.starIndex, func(s Star) EntityID { return s.ID })
		delete(w.starIndex, id)
		return KindStar, true
	}
	if i, ok := w.enemyIndex[id]; ok {
		w.enemies = swapRemove(w.enemies, i, w.enemyIndex, func(e Enemy) EntityID { return e.ID })
		delete(w.enemyIndex, id)
		return KindEnemy, true
	}
	return 0, false
}

// swapRemove moves the last element into slot i, shrinks the slice and
// repoints the moved element's index entry.
func swapRemove[T any](s []T, i int, index map[EntityID]int, idOf func(T) EntityID) []T {
	last := len(s) - 1
	if i != last {
		s[i] = s[last]
		index[idOf(s[i])] = i
	}
	var zero T
	s[last] = zero
	return s[:last]
}
