package storage

import (
	"fmt"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/session"
)

// Recorder writes the inputs of a running session into a recording.
type Recorder struct {
	store *Store
	id    string
}

// NewRecorder starts a recording for a game and returns a recorder bound to it.
func (s *Store) NewRecorder(game *snake.Game, tickRate int) (*Recorder, error) {
	g := game.Grid()
	id, err := s.CreateRecording(game.Seed(), g.Cols(), g.Rows(), tickRate)
	if err != nil {
		return nil, err
	}
	return &Recorder{store: s, id: id}, nil
}

// ID returns the recording ID.
func (r *Recorder) ID() string {
	return r.id
}

// RecordInput implements session.Recorder.
func (r *Recorder) RecordInput(tick uint64, d snake.Direction) error {
	return r.store.AppendInput(r.id, tick, d.String())
}

// Finish stores the final tick count.
func (r *Recorder) Finish(ticks uint64) error {
	return r.store.FinishRecording(r.id, ticks)
}

var _ session.Recorder = (*Recorder)(nil)

// Script converts recorded inputs back into a replay script.
func Script(inputs []Input) (session.Script, error) {
	script := make(session.Script)
	for _, in := range inputs {
		d, ok := snake.ParseDirection(in.Direction)
		if !ok {
			return nil, fmt.Errorf("storage: bad direction %q at tick %d", in.Direction, in.Tick)
		}
		script.Add(in.Tick, d)
	}
	return script, nil
}
