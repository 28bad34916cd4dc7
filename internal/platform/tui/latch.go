package tui

import (
	"time"

	"github.com/vovakirdan/starcatch/internal/core"
)

// KeyLatch turns key press events into held keys. Terminals report presses
// (and auto-repeats) but never releases, so a directional key counts as held
// for a fixed window after its last press. Other actions fire once, on the
// next frame.
type KeyLatch struct {
	hold    time.Duration
	held    map[core.Action]time.Time
	pending map[core.Action]bool
}

// NewKeyLatch creates a latch with the given hold window.
func NewKeyLatch(hold time.Duration) *KeyLatch {
	return &KeyLatch{
		hold:    hold,
		held:    make(map[core.Action]time.Time),
		pending: make(map[core.Action]bool),
	}
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// Press records a key press at now. Pressing a direction releases the
// opposite one.
func (l *KeyLatch) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if !a.IsDirectional() {
		l.pending[a] = true
		return
	}
	delete(l.held, opposite[a])
	l.held[a] = now
}

// Frame builds the input frame for a tick at now and consumes one-shot
// actions.
func (l *KeyLatch) Frame(now time.Time, elapsed time.Duration) core.InputFrame {
	in := core.NewInputFrame()
	in.Elapsed = elapsed

	for a, at := range l.held {
		if now.Sub(at) > l.hold {
			delete(l.held, a)
			continue
		}
		in.Set(a)
	}
	for a := range l.pending {
		in.Set(a)
	}
	clear(l.pending)
	return in
}

// Reset forgets all held and pending keys.
func (l *KeyLatch) Reset() {
	clear(l.held)
	clear(l.pending)
}
