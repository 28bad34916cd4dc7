package stars

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
)

func TestSoundVariants(t *testing.T) {
	sounds := config.DefaultStarsConfig().Sounds
	d := NewDispatcher(sounds, rand.New(rand.NewSource(11)))
	w := NewWorld(Bounds{Width: 800, Height: 600})

	tests := []struct {
		cat      SoundCategory
		variants []string
	}{
		{SoundImpact, sounds.Impact},
		{SoundPluck, sounds.Pluck},
		{SoundExplosion, sounds.Explosion},
	}

	for _, tt := range tests {
		t.Run(tt.cat.String(), func(t *testing.T) {
			seen := map[int]bool{}
			for i := 0; i < 200; i++ {
				d.PlaySound(tt.cat)
			}
			for _, e := range d.Flush(w) {
				if e.Kind != core.EffectSound || e.Category != tt.cat.String() {
					t.Fatalf("unexpected effect %+v", e)
				}
				if e.Variant < 0 || e.Variant >= len(tt.variants) {
					t.Fatalf("variant %d out of range [0, %d)", e.Variant, len(tt.variants))
				}
				if e.Sound != tt.variants[e.Variant] {
					t.Errorf("sound %q does not match variant %d", e.Sound, e.Variant)
				}
				seen[e.Variant] = true
			}
			if len(seen) != len(tt.variants) {
				t.Errorf("saw %d distinct variants, expected all %d", len(seen), len(tt.variants))
			}
		})
	}
}

func TestDespawnDeduplicated(t *testing.T) {
	d := NewDispatcher(config.DefaultStarsConfig().Sounds, rand.New(rand.NewSource(1)))
	w := NewWorld(Bounds{Width: 800, Height: 600})
	id := w.SpawnStar(mgl64.Vec2{100, 100})

	d.BeginTick(5)
	d.Despawn(id, KindStar)
	d.Despawn(id, KindStar)
	if d.Pending() != 1 {
		t.Fatalf("pending = %d, expected duplicate despawns to collapse", d.Pending())
	}

	effects := d.Flush(w)
	if len(effects) != 1 {
		t.Fatalf("Flush returned %d effects, expected 1", len(effects))
	}
	e := effects[0]
	if e.Tick != 5 || e.Entity != uint64(id) || e.EntityKind != "star" {
		t.Errorf("unexpected despawn effect %+v", e)
	}
	if w.StarCount() != 0 {
		t.Error("star should be removed by Flush")
	}

	if got := d.Flush(w); got != nil {
		t.Errorf("second Flush = %v, expected nil", got)
	}

	// Already gone: the request is dropped
	d.Despawn(id, KindStar)
	if got := d.Flush(w); len(got) != 0 {
		t.Errorf("despawn of a removed entity produced %v", got)
	}
}

func TestEmptySoundListIgnored(t *testing.T) {
	d := NewDispatcher(config.SoundsConfig{}, rand.New(rand.NewSource(1)))
	d.PlaySound(SoundPluck)
	if d.Pending() != 0 {
		t.Errorf("pending = %d, expected nothing for an empty sound list", d.Pending())
	}
}
