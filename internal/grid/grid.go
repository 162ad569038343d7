// Package grid defines the discrete, wrap-around coordinate space the snake
// lives in. A Grid is built once from fixed dimensions and is read-only
// afterwards, so it can be shared freely between the simulation and renderers.
package grid

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidGeometry is returned when the grid dimensions do not tile exactly.
var ErrInvalidGeometry = errors.New("grid: invalid geometry")

// Cell identifies one grid square by integer column and row.
type Cell struct {
	X, Y int
}

// Add returns the cell offset by (dx, dy). The result is not wrapped.
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// String returns the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is an immutable cols x rows toroidal board.
type Grid struct {
	cols int
	rows int
	all  []Cell // Row-major enumeration, computed once
}

// New builds a grid from pixel-style dimensions and a cell size.
// Width and height must be positive multiples of cellSize.
func New(width, height, cellSize int) (*Grid, error) {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		return nil, fmt.Errorf("%w: width=%d height=%d cell_size=%d must be positive",
			ErrInvalidGeometry, width, height, cellSize)
	}
	if width%cellSize != 0 || height%cellSize != 0 {
		return nil, fmt.Errorf("%w: %dx%d does not tile with cell size %d",
			ErrInvalidGeometry, width, height, cellSize)
	}
	return NewCells(width/cellSize, height/cellSize)
}

// NewCells builds a grid directly from cell counts.
func NewCells(cols, rows int) (*Grid, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells", ErrInvalidGeometry, cols, rows)
	}

	all := make([]Cell, 0, cols*rows)
	for y := range rows {
		for x := range cols {
			all = append(all, Cell{X: x, Y: y})
		}
	}

	return &Grid{cols: cols, rows: rows, all: all}, nil
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Size returns the total number of cells.
func (g *Grid) Size() int {
	return len(g.all)
}

// AllCells returns every valid cell in row-major order.
// The returned slice is a copy.
func (g *Grid) AllCells() []Cell {
	out := make([]Cell, len(g.all))
	copy(out, g.all)
	return out
}

// Cells iterates every valid cell in row-major order without copying.
func (g *Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range g.all {
			if !yield(c) {
				return
			}
		}
	}
}

// Center returns the starting cell for a fresh snake.
func (g *Grid) Center() Cell {
	return Cell{X: g.cols / 2, Y: g.rows / 2}
}

// Contains reports whether c lies inside [0,cols) x [0,rows).
func (g *Grid) Contains(c Cell) bool {
	return c.X >= 0 && c.X < g.cols && c.Y >= 0 && c.Y < g.rows
}

// Wrap maps any cell back onto the board using per-axis modulo.
// Exiting one edge re-enters from the opposite edge.
func (g *Grid) Wrap(c Cell) Cell {
	return Cell{X: mod(c.X, g.cols), Y: mod(c.Y, g.rows)}
}

// mod is a modulo whose result always has the sign of m.
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
