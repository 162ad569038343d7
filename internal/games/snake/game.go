// Package snake implements the wrap-around snake simulation: the snake's
// movement and growth state machine, fruit placement, and the per-tick
// orchestration that ties them together. It has no terminal dependencies.
package snake

import (
	"errors"
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/grid"
)

// Config holds everything needed to start a run.
type Config struct {
	Grid *grid.Grid
	Seed int64
}

// StepResult reports what happened during one tick.
type StepResult struct {
	Tick      uint64
	Ate       bool // Head reached the fruit
	Collided  bool // Self-collision reset the snake
	BoardFull bool // Fruit could not be placed anywhere
	// Length the snake had reached before a collision reset it.
	LengthAtCollision int
	State             core.GameState
}

// Game drives one snake and one fruit on a shared grid.
type Game struct {
	grid  *grid.Grid
	seed  int64
	rng   *rand.Rand
	tick  uint64
	snake *Snake
	fruit *Fruit

	eaten  int // Fruit eaten this run
	resets int // Self-collisions this run
}

// New creates a game ready for its first tick.
func New(cfg Config) (*Game, error) {
	if cfg.Grid == nil {
		return nil, errors.New("snake: grid is required")
	}
	g := &Game{grid: cfg.Grid}
	g.Restart(cfg.Seed)
	return g, nil
}

// Restart discards the current run and starts over with seed.
func (g *Game) Restart(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(uint64(seed)))
	g.tick = 0
	g.eaten = 0
	g.resets = 0
	g.snake = NewSnake(g.grid)
	g.fruit = NewFruit(g.grid, g.rng, g.snake.Occupied())
}

// Step advances the simulation by one tick.
//
// Direction actions in the frame are buffered in order, so the last one wins.
// Anything else in the frame is ignored.
func (g *Game) Step(in core.InputFrame) StepResult {
	g.tick++
	res := StepResult{Tick: g.tick}

	for _, a := range in.Actions {
		if d, ok := DirectionFromAction(a); ok {
			g.snake.SetPendingDirection(d)
		}
	}
	g.snake.CommitDirection()

	before := g.snake.Length()
	if g.snake.Advance() == Collided {
		res.Collided = true
		res.LengthAtCollision = before
		g.resets++
	}

	switch {
	case g.fruit.Active() && g.snake.Head() == g.fruit.Position():
		g.snake.Grow()
		g.eaten++
		res.Ate = true
		if !g.fruit.Relocate(g.snake.Occupied()) {
			res.BoardFull = true
		}
	case !g.fruit.Active():
		if !g.fruit.Relocate(g.snake.Occupied()) {
			res.BoardFull = true
		}
	}

	res.State = g.State()
	return res
}

// State returns the summary the platform displays.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.snake.Length()}
}

// Grid returns the board the game runs on.
func (g *Game) Grid() *grid.Grid {
	return g.grid
}

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 {
	return g.seed
}

// Tick returns the number of ticks simulated in the current run.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Snake exposes the snake for inspection.
func (g *Game) Snake() *Snake {
	return g.snake
}

// Fruit exposes the fruit for inspection.
func (g *Game) Fruit() *Fruit {
	return g.fruit
}

// DebugState returns a one-line description of the game state.
func (g *Game) DebugState() string {
	head := g.snake.Head()
	fruit := "none"
	if g.fruit.Active() {
		fruit = g.fruit.Position().String()
	}
	return fmt.Sprintf("tick=%d length=%d head=%s dir=%s fruit=%s eaten=%d resets=%d",
		g.tick, g.snake.Length(), head, g.snake.Direction(), fruit, g.eaten, g.resets)
}
