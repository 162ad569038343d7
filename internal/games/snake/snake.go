package snake

import (
	"slices"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

// AdvanceResult tells the caller what a single Advance did.
type AdvanceResult int

const (
	// Moved means the head stepped forward normally.
	Moved AdvanceResult = iota
	// Collided means the head would have entered the body and the snake was reset.
	Collided
)

// Snake owns its body, its committed and buffered direction, and its target length.
// It is not safe for concurrent use; the game loop is its only owner.
type Snake struct {
	grid *grid.Grid

	body   []grid.Cell // Head at index 0
	length int         // Target length; len(body) never exceeds it

	direction  Direction
	pending    Direction
	hasPending bool

	// Tail cell dropped by the last Advance, for renderers that erase trails.
	vacated    grid.Cell
	hasVacated bool
}

// NewSnake creates a snake in its initial configuration on g.
func NewSnake(g *grid.Grid) *Snake {
	s := &Snake{grid: g}
	s.Reset()
	return s
}

// Reset puts the snake back to a single cell at the grid center, heading right.
func (s *Snake) Reset() {
	s.length = 1
	s.body = append(s.body[:0], s.grid.Center())
	s.direction = DirRight
	s.hasPending = false
	s.hasVacated = false
}

// SetPendingDirection buffers d for the next commit. Later calls overwrite earlier ones.
func (s *Snake) SetPendingDirection(d Direction) {
	s.pending = d
	s.hasPending = true
}

// CommitDirection applies the buffered direction unless it would reverse the
// snake onto itself. The buffer is cleared either way.
func (s *Snake) CommitDirection() {
	if s.hasPending && s.pending != s.direction.Opposite() {
		s.direction = s.pending
	}
	s.hasPending = false
}

// Advance moves the head one cell along the current direction, wrapping at the
// edges. Entering any segment other than the current head resets the snake.
// The tail segment counts even though it would move away this tick.
func (s *Snake) Advance() AdvanceResult {
	dx, dy := s.direction.Vector()
	newHead := s.grid.Wrap(s.Head().Add(dx, dy))

	if s.length > 1 && slices.Contains(s.body[1:], newHead) {
		s.Reset()
		return Collided
	}

	s.body = slices.Insert(s.body, 0, newHead)
	s.hasVacated = false
	if len(s.body) > s.length {
		last := len(s.body) - 1
		s.vacated = s.body[last]
		s.hasVacated = true
		s.body = s.body[:last]
	}
	return Moved
}

// Grow raises the target length by one. The body extends on the next Advance.
func (s *Snake) Grow() {
	s.length++
}

// Head returns the first body segment.
func (s *Snake) Head() grid.Cell {
	return s.body[0]
}

// Body returns a copy of the segments, head first.
func (s *Snake) Body() []grid.Cell {
	return slices.Clone(s.body)
}

// Length returns the target length (the displayed score).
func (s *Snake) Length() int {
	return s.length
}

// Direction returns the committed direction.
func (s *Snake) Direction() Direction {
	return s.direction
}

// Pending returns the buffered direction, if any.
func (s *Snake) Pending() (Direction, bool) {
	return s.pending, s.hasPending
}

// Vacated returns the tail cell dropped by the last Advance.
func (s *Snake) Vacated() (grid.Cell, bool) {
	return s.vacated, s.hasVacated
}

// Occupies reports whether any segment sits on c.
func (s *Snake) Occupies(c grid.Cell) bool {
	return slices.Contains(s.body, c)
}

// Occupied returns the set of cells covered by the body.
func (s *Snake) Occupied() map[grid.Cell]struct{} {
	set := make(map[grid.Cell]struct{}, len(s.body))
	for _, c := range s.body {
		set[c] = struct{}{}
	}
	return set
}
