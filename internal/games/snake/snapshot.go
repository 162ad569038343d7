package snake

import "github.com/vovakirdan/torus-snake/internal/grid"

// Frame is the state handed to renderers after each tick.
type Frame struct {
	Body        []grid.Cell // Head first
	Fruit       grid.Cell
	FruitActive bool
	Length      int
	// Vacated is the tail cell dropped this tick, for incremental renderers.
	Vacated    grid.Cell
	HasVacated bool
}

// Frame returns a copy of the renderable state.
func (g *Game) Frame() Frame {
	vacated, hasVacated := g.snake.Vacated()
	return Frame{
		Body:        g.snake.Body(),
		Fruit:       g.fruit.Position(),
		FruitActive: g.fruit.Active(),
		Length:      g.snake.Length(),
		Vacated:     vacated,
		HasVacated:  hasVacated,
	}
}

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick        uint64
	Seed        int64
	Length      int
	BodyLen     int
	HeadX       int
	HeadY       int
	Dir         Direction
	FruitX      int
	FruitY      int
	FruitActive bool
	Eaten       int
	Resets      int
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	head := g.snake.Head()
	fruit := g.fruit.Position()
	return Snapshot{
		Tick:        g.tick,
		Seed:        g.seed,
		Length:      g.snake.Length(),
		BodyLen:     len(g.snake.body),
		HeadX:       head.X,
		HeadY:       head.Y,
		Dir:         g.snake.Direction(),
		FruitX:      fruit.X,
		FruitY:      fruit.Y,
		FruitActive: g.fruit.Active(),
		Eaten:       g.eaten,
		Resets:      g.resets,
	}
}
