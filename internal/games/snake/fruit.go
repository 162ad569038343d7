package snake

import (
	"golang.org/x/exp/rand"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

// Fruit is the single target cell the snake is chasing.
//
// A fruit is active while it sits on a free cell. When the snake covers the
// whole board there is nowhere to put it: Relocate keeps the old coordinates,
// marks the fruit inactive, and the game retries placement every tick until a
// cell frees up again.
type Fruit struct {
	grid     *grid.Grid
	rng      *rand.Rand
	position grid.Cell
	active   bool
}

// NewFruit places a fruit on a random cell outside occupied.
func NewFruit(g *grid.Grid, rng *rand.Rand, occupied map[grid.Cell]struct{}) *Fruit {
	f := &Fruit{grid: g, rng: rng}
	f.Relocate(occupied)
	return f
}

// Relocate samples a new position uniformly from the free cells.
// It returns false, leaving the fruit inactive, when every cell is occupied.
func (f *Fruit) Relocate(occupied map[grid.Cell]struct{}) bool {
	available := make([]grid.Cell, 0, max(f.grid.Size()-len(occupied), 0))
	for c := range f.grid.Cells() {
		if _, taken := occupied[c]; !taken {
			available = append(available, c)
		}
	}

	if len(available) == 0 {
		f.active = false
		return false
	}

	f.position = available[f.rng.Intn(len(available))]
	f.active = true
	return true
}

// Position returns the fruit's cell. Meaningless while inactive.
func (f *Fruit) Position() grid.Cell {
	return f.position
}

// Active reports whether the fruit currently sits on a free cell.
func (f *Fruit) Active() bool {
	return f.active
}

// place puts the fruit on c unconditionally.
func (f *Fruit) place(c grid.Cell) {
	f.position = c
	f.active = true
}
