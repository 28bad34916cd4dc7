package stars

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/starcatch/internal/core"
)

// Autopilot is a scripted input source for headless runs. It heads for the
// nearest star and flees any enemy closer than Caution.
type Autopilot struct {
	Caution  float64 // Flee distance in world units
	Deadzone float64 // Per-axis threshold before a key is pressed
}

// NewAutopilot returns an autopilot tuned for the default sizes.
func NewAutopilot() *Autopilot {
	return &Autopilot{Caution: 160, Deadzone: 4}
}

// Next chooses the held keys for the next tick.
func (a *Autopilot) Next(s Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if !s.HasPlayer {
		return in
	}

	want := a.desired(s)
	if want[0] < -a.Deadzone {
		in.Set(core.ActionLeft)
	} else if want[0] > a.Deadzone {
		in.Set(core.ActionRight)
	}
	if want[1] < -a.Deadzone {
		in.Set(core.ActionDown)
	} else if want[1] > a.Deadzone {
		in.Set(core.ActionUp)
	}
	return in
}

func (a *Autopilot) desired(s Snapshot) mgl64.Vec2 {
	p := s.Player.Pos

	var flee mgl64.Vec2
	threatened := false
	for _, e := range s.Enemies {
		away := p.Sub(e.Pos)
		if away.Len() < a.Caution {
			flee = flee.Add(away)
			threatened = true
		}
	}
	if threatened {
		return flee
	}

	best := -1.0
	var target mgl64.Vec2
	for _, st := range s.Stars {
		d := st.Pos.Sub(p).Len()
		if best < 0 || d < best {
			best = d
			target = st.Pos
		}
	}
	if best < 0 {
		return mgl64.Vec2{}
	}
	return target.Sub(p)
}
