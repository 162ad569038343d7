package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/session"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
)

// frameRenderer prints every frame as plain text, the way the terminal
// UI would draw it at double cell width.
func frameRenderer(w io.Writer, game *snake.Game) session.Renderer {
	cols, rows := game.Grid().Cols(), game.Grid().Rows()
	screen := core.NewScreen(cols*2+2, rows+4)

	var n int
	return session.RendererFunc(func(f snake.Frame) error {
		screen.Clear()
		snake.RenderFrame(screen, f, cols, rows)
		_, err := fmt.Fprintf(w, "tick %d\n%s\n", n, screen.String())
		n++
		return err
	})
}

// printSummary prints the final state of a run.
func printSummary(w io.Writer, title string, game *snake.Game, res session.Result) {
	snap := game.Snapshot()
	row := func(label string, value any) {
		fmt.Fprintf(w, "  %s %v\n", labelStyle.Render(label), value)
	}

	fmt.Fprintln(w, titleStyle.Render(title))
	row("Ticks", fmt.Sprintf("%d (%s)", res.Ticks, res.Reason))
	row("Seed", snap.Seed)
	row("Grid", fmt.Sprintf("%dx%d", game.Grid().Cols(), game.Grid().Rows()))
	row("Length", snap.Length)
	row("Head", fmt.Sprintf("(%d,%d) heading %s", snap.HeadX, snap.HeadY, snap.Dir))
	if snap.FruitActive {
		row("Fruit", fmt.Sprintf("(%d,%d)", snap.FruitX, snap.FruitY))
	} else {
		row("Fruit", "none (board full)")
	}
	row("Eaten", snap.Eaten)
	row("Resets", snap.Resets)
}
