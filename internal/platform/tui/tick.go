// Package tui provides the Bubble Tea integration for starcatch.
// It handles the terminal UI loop, key latching, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrame caps the elapsed time fed to one tick, e.g. after the process was
// suspended.
const maxFrame = 250 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameElapsed returns the simulated time between two tick messages.
// The first tick uses the nominal interval.
func frameElapsed(prev, now time.Time, tickRate int) time.Duration {
	if prev.IsZero() {
		return time.Second / time.Duration(tickRate)
	}
	d := now.Sub(prev)
	if d < 0 {
		return 0
	}
	return min(d, maxFrame)
}
