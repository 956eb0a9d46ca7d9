// Package tui provides the Bubble Tea front end for match-3.
// It runs the fixed-rate tick loop, maps keys and mouse to game input, and
// hosts the menu, level select, scoreboard and SSH server screens.
package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// bellCmd writes the terminal bell to w outside the renderer.
func bellCmd(w io.Writer) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		//nolint:errcheck // Best-effort cue
		w.Write([]byte{'\a'})
		return nil
	}
}
