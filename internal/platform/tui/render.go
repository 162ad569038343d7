package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/torus-snake/internal/core"
)

// palette maps core.Color to terminal colors. ColorDefault is absent and
// leaves the terminal's own color in place.
var palette = map[core.Color]lipgloss.Color{
	core.ColorGreen:       lipgloss.Color("2"),
	core.ColorBrightRed:   lipgloss.Color("9"),
	core.ColorBrightGreen: lipgloss.Color("10"),
	core.ColorGray:        lipgloss.Color("245"),
}

type colorPair struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style for a foreground/background pair.
func styleFor(p colorPair) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := palette[p.fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[p.bg]; ok {
		style = style.Background(c)
	}
	if p.fg == core.ColorBrightRed || p.fg == core.ColorBrightGreen {
		style = style.Bold(true)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[colorPair]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			first := s.GetCell(x, y)
			pair := colorPair{fg: first.Color, bg: first.Background}

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if (colorPair{fg: cell.Color, bg: cell.Background}) != pair {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[pair]
			if !ok {
				style = styleFor(pair)
				styles[pair] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
