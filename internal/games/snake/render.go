package snake

import (
	"fmt"

	"github.com/vovakirdan/torus-snake/internal/core"
)

const hudHeight = 2 // Title line + separator

// Layout describes where the board lands on a screen of a given size.
type Layout struct {
	OffsetX  int  // Column of the box's left border
	OffsetY  int  // Row of the box's top border
	CellW    int  // Screen columns per grid cell (1 or 2)
	HalfRows bool // Two grid rows share one screen line as half blocks
	TooSmall bool
}

// BoxSize returns the outer size of the board box for this layout.
func (l Layout) BoxSize(cols, rows int) (w, h int) {
	if l.HalfRows {
		return cols*l.CellW + 2, (rows+1)/2 + 2
	}
	return cols*l.CellW + 2, rows + 2
}

// LayoutFor picks the roomiest rendering that fits and centers the board.
// A board too tall for one line per row falls back to half blocks at
// single width, which keeps cells roughly square.
func LayoutFor(cols, rows, screenW, screenH int) Layout {
	cellW := 2
	if cols*cellW+2 > screenW {
		cellW = 1
	}
	if cols*cellW+2 > screenW {
		return Layout{TooSmall: true}
	}

	l := Layout{OffsetY: hudHeight, CellW: cellW}
	if _, boxH := l.BoxSize(cols, rows); hudHeight+boxH > screenH {
		l = Layout{OffsetY: hudHeight, CellW: 1, HalfRows: true}
		if _, boxH := l.BoxSize(cols, rows); hudHeight+boxH > screenH {
			return Layout{TooSmall: true}
		}
	}

	boxW, _ := l.BoxSize(cols, rows)
	l.OffsetX = (screenW - boxW) / 2
	return l
}

// RenderFrame draws a frame for a cols x rows board into dst.
// It only reads the frame, so rendering never changes simulation state.
func RenderFrame(dst *core.Screen, f Frame, cols, rows int) {
	renderHUD(dst, f)

	layout := LayoutFor(cols, rows, dst.Width(), dst.Height())
	if layout.TooSmall {
		renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	boxW, boxH := layout.BoxSize(cols, rows)
	dst.DrawBox(core.NewRect(layout.OffsetX, layout.OffsetY, boxW, boxH), core.ColorGray)

	if layout.HalfRows {
		renderHalfBlocks(dst, f, cols, rows, layout)
		return
	}

	plot := func(x, y int, r rune, c core.Color) {
		sx := layout.OffsetX + 1 + x*layout.CellW
		sy := layout.OffsetY + 1 + y
		for i := range layout.CellW {
			dst.SetColor(sx+i, sy, r, c)
		}
	}

	if f.FruitActive {
		plot(f.Fruit.X, f.Fruit.Y, '*', core.ColorBrightRed)
	}

	// Tail first so the head is drawn on top on a wrap coincidence
	for i := len(f.Body) - 1; i >= 0; i-- {
		seg := f.Body[i]
		if i == 0 {
			plot(seg.X, seg.Y, '@', core.ColorBrightGreen)
		} else {
			plot(seg.X, seg.Y, 'o', core.ColorGreen)
		}
	}
}

// renderHalfBlocks packs grid rows 2k and 2k+1 into screen line k.
func renderHalfBlocks(dst *core.Screen, f Frame, cols, rows int, layout Layout) {
	paint := make([]core.Color, cols*rows)
	set := func(x, y int, c core.Color) {
		if x >= 0 && x < cols && y >= 0 && y < rows {
			paint[y*cols+x] = c
		}
	}
	if f.FruitActive {
		set(f.Fruit.X, f.Fruit.Y, core.ColorBrightRed)
	}
	for i := len(f.Body) - 1; i >= 0; i-- {
		c := core.ColorGreen
		if i == 0 {
			c = core.ColorBrightGreen
		}
		set(f.Body[i].X, f.Body[i].Y, c)
	}

	for line := range (rows + 1) / 2 {
		for x := range cols {
			top := paint[2*line*cols+x]
			bottom := core.ColorDefault
			if 2*line+1 < rows {
				bottom = paint[(2*line+1)*cols+x]
			}

			sx := layout.OffsetX + 1 + x
			sy := layout.OffsetY + 1 + line
			switch {
			case top == core.ColorDefault && bottom == core.ColorDefault:
			case top == bottom:
				dst.SetColor(sx, sy, '█', top)
			case bottom == core.ColorDefault:
				dst.SetColor(sx, sy, '▀', top)
			case top == core.ColorDefault:
				dst.SetColor(sx, sy, '▄', bottom)
			default:
				dst.SetColors(sx, sy, '▀', top, bottom)
			}
		}
	}
}

// renderHUD draws the top status bar.
func renderHUD(dst *core.Screen, f Frame) {
	hud := fmt.Sprintf(" Snake — Length: %d", f.Length)
	if !f.FruitActive {
		hud += "  Board full!"
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderOverlay draws a centered overlay message.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	maxLen := max(len(line1), len(line2))
	boxW := maxLen + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	for y := boxY; y < boxY+boxH && y < h; y++ {
		for x := boxX; x < boxX+boxW && x < w; x++ {
			if x < 0 || y < 0 {
				continue
			}
			isTopOrBottom := y == boxY || y == boxY+boxH-1
			isLeftOrRight := x == boxX || x == boxX+boxW-1
			switch {
			case isTopOrBottom && isLeftOrRight:
				dst.Set(x, y, '+')
			case isTopOrBottom:
				dst.Set(x, y, '-')
			case isLeftOrRight:
				dst.Set(x, y, '|')
			default:
				dst.Set(x, y, ' ')
			}
		}
	}

	dst.DrawTextCentered(boxY+1, line1)
	dst.DrawTextCentered(boxY+3, line2)
}
