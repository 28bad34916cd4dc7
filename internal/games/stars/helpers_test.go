package stars

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func approxVec(a, b mgl64.Vec2) bool {
	return approx(a[0], b[0]) && approx(a[1], b[1])
}

// newTestContext builds a tick context with default config and a fixed seed.
func newTestContext(t *testing.T, in core.InputFrame, delta float64) *TickContext {
	t.Helper()
	cfg := config.DefaultStarsConfig()
	return &TickContext{
		Tick:    1,
		Input:   in,
		Delta:   delta,
		Config:  &cfg,
		Effects: NewDispatcher(cfg.Sounds, rand.New(rand.NewSource(7))),
	}
}

func countEffects(effects []core.Effect, kind core.EffectKind, category string) int {
	n := 0
	for _, e := range effects {
		if e.Kind == kind && (category == "" || e.Category == category) {
			n++
		}
	}
	return n
}

func keys(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}
