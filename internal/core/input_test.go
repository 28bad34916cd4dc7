package core

import (
	"testing"
	"time"
)

func TestInputFrameSetHasClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionUp)
	f.Elapsed = 16 * time.Millisecond

	if !f.Has(ActionLeft) || !f.Has(ActionUp) {
		t.Error("Set actions should be reported by Has")
	}
	if f.Has(ActionRight) {
		t.Error("Unset action should not be reported")
	}

	f.Clear()

	if f.Has(ActionLeft) || f.Elapsed != 0 {
		t.Error("Clear should reset actions and elapsed time")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("Zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFrameSeconds(t *testing.T) {
	tests := []struct {
		elapsed  time.Duration
		expected float64
	}{
		{0, 0},
		{-time.Second, 0},
		{500 * time.Millisecond, 0.5},
		{2 * time.Second, 2},
	}

	for _, tc := range tests {
		f := InputFrame{Elapsed: tc.elapsed}
		if got := f.Seconds(); got != tc.expected {
			t.Errorf("Seconds() with %v = %f, expected %f", tc.elapsed, got, tc.expected)
		}
	}
}

func TestActionIsDirectional(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirectional() {
			t.Errorf("%s should be directional", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionRestart, ActionMute, ActionQuit} {
		if a.IsDirectional() {
			t.Errorf("%s should not be directional", a)
		}
	}
}
