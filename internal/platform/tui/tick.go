// Package tui runs Veda Path in a terminal: the Bubble Tea frame loop, key
// mapping, menus, the run history view and the SSH server.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// contentLoadedMsg carries the continuation of a finished content load.
type contentLoadedMsg struct {
	apply func()
}

// loadCmd runs fetch off the frame loop and delivers its continuation as a message.
func loadCmd(ctx context.Context, fetch func(context.Context) func()) tea.Cmd {
	return func() tea.Msg {
		return contentLoadedMsg{apply: fetch(ctx)}
	}
}
