// Package tui renders the simulation in the terminal: a coloured map, a
// live viewer driven by Bubble Tea and a browser for catalogued runs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Speed bounds for the live viewer, in turns per second.
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// TickMsg is sent to trigger one simulation turn.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	interval := time.Second / time.Duration(clampSpeed(tickRate))
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func clampSpeed(s int) int {
	if s < MinSpeed {
		return MinSpeed
	}
	if s > MaxSpeed {
		return MaxSpeed
	}
	return s
}
