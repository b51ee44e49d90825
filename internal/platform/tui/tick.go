// Package tui runs 2048 games in a terminal with Bubble Tea.
// It maps keys and mouse swipes to moves, records scores, feeds spectators
// and serves the same menu over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives one Game.Step.
type TickMsg time.Time

// tickCmd schedules the next tick; rates below one tick per second are raised to one.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(max(tickRate, 1)), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
