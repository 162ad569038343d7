// Package tui provides the Bubble Tea front end for the snake game.
// The simulation itself runs in a session.Runner goroutine; this package
// paces it, forwards key presses and draws the frames it produces.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/session"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// FrameMsg carries the state produced by a simulation tick.
type FrameMsg snake.Frame

// runDoneMsg reports that the runner goroutine has returned.
type runDoneMsg struct {
	result session.Result
	err    error
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 10
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
