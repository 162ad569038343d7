package session

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
)

type recordedInput struct {
	tick uint64
	dir  snake.Direction
}

type memRecorder struct {
	inputs []recordedInput
}

func (m *memRecorder) RecordInput(tick uint64, d snake.Direction) error {
	m.inputs = append(m.inputs, recordedInput{tick: tick, dir: d})
	return nil
}

func newTestGame(t *testing.T, seed int64) *snake.Game {
	t.Helper()
	g, err := grid.New(640, 480, 20)
	if err != nil {
		t.Fatalf("grid.New() failed: %v", err)
	}
	game, err := snake.New(snake.Config{Grid: g, Seed: seed})
	if err != nil {
		t.Fatalf("snake.New() failed: %v", err)
	}
	return game
}

func TestRunUntilTicksExhausted(t *testing.T) {
	game := newTestGame(t, 1)
	r := NewRunner(game, Options{Ticks: Immediate(20)})

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Ticks != 20 || res.Reason != StopSourceClosed {
		t.Errorf("Run() = %+v, expected 20 ticks / ticks exhausted", res)
	}
	if game.Tick() != 20 {
		t.Errorf("game.Tick() = %d, expected 20", game.Tick())
	}
}

func TestRunMaxTicks(t *testing.T) {
	game := newTestGame(t, 1)
	r := NewRunner(game, Options{Ticks: Immediate(50), MaxTicks: 10})

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Ticks != 10 || res.Reason != StopMaxTicks {
		t.Errorf("Run() = %+v, expected 10 ticks / max ticks", res)
	}
}

func TestRunQuit(t *testing.T) {
	game := newTestGame(t, 1)
	r := NewRunner(game, Options{Ticks: Immediate(5)})
	r.SendInput(core.ActionQuit)

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != StopQuit || res.Ticks != 0 {
		t.Errorf("Run() = %+v, expected quit before the first tick", res)
	}
}

func TestRunCancelled(t *testing.T) {
	game := newTestGame(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRunner(game, Options{Ticks: NewManualTicks(0)})
	res, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != StopCancelled {
		t.Errorf("Reason = %v, expected cancelled", res.Reason)
	}
}

func TestRunStop(t *testing.T) {
	game := newTestGame(t, 1)
	r := NewRunner(game, Options{Ticks: NewManualTicks(0)})
	r.Stop()
	r.Stop() // Idempotent

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != StopRequested {
		t.Errorf("Reason = %v, expected stopped", res.Reason)
	}
}

func TestRunRequiresTickSource(t *testing.T) {
	r := NewRunner(newTestGame(t, 1), Options{})
	if _, err := r.Run(context.Background()); err == nil {
		t.Error("Run() without a tick source should fail")
	}
}

func TestLiveInputLastWins(t *testing.T) {
	game := newTestGame(t, 1)
	r := NewRunner(game, Options{Ticks: Immediate(1)})
	r.SendInput(core.ActionUp)
	r.SendInput(core.ActionDown)

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if game.Snake().Direction() != snake.DirDown {
		t.Errorf("Direction() = %v, expected down", game.Snake().Direction())
	}
	if game.Snake().Head() != (grid.Cell{X: 16, Y: 13}) {
		t.Errorf("Head() = %v, expected (16,13)", game.Snake().Head())
	}
}

func TestScriptAndRecorder(t *testing.T) {
	game := newTestGame(t, 5)
	script := make(Script)
	script.Add(2, snake.DirUp)
	script.Add(5, snake.DirLeft)
	rec := &memRecorder{}

	r := NewRunner(game, Options{Ticks: Immediate(6), Script: script, Recorder: rec})
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	want := []recordedInput{{2, snake.DirUp}, {5, snake.DirLeft}}
	if len(rec.inputs) != len(want) {
		t.Fatalf("recorded %v, expected %v", rec.inputs, want)
	}
	for i := range want {
		if rec.inputs[i] != want[i] {
			t.Errorf("input %d = %+v, expected %+v", i, rec.inputs[i], want[i])
		}
	}
	if game.Snake().Direction() != snake.DirLeft {
		t.Errorf("Direction() = %v, expected left", game.Snake().Direction())
	}
}

func TestReplayReproducesRun(t *testing.T) {
	original := newTestGame(t, 2024)
	rec := &memRecorder{}
	live := NewManualTicks(1)
	r := NewRunner(original, Options{Ticks: live, Recorder: rec})

	// Feed live input between ticks the way an interactive session would
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := r.Run(context.Background()); err != nil {
			t.Errorf("Run() failed: %v", err)
		}
	}()
	turns := []core.Action{core.ActionDown, core.ActionLeft, core.ActionUp, core.ActionRight}
	for i := range 120 {
		if i%9 == 0 {
			r.SendInput(turns[(i/9)%len(turns)])
		}
		live.Tick()
	}
	live.Stop()
	<-done

	script := make(Script)
	for _, in := range rec.inputs {
		script.Add(in.tick, in.dir)
	}
	replayed := newTestGame(t, 2024)
	rr := NewRunner(replayed, Options{Ticks: Immediate(int(original.Tick())), Script: script})
	if _, err := rr.Run(context.Background()); err != nil {
		t.Fatalf("replay Run() failed: %v", err)
	}

	if original.Snapshot() != replayed.Snapshot() {
		t.Errorf("replay diverged\noriginal: %+v\nreplayed: %+v", original.Snapshot(), replayed.Snapshot())
	}
}

func TestRendererCalledEveryTick(t *testing.T) {
	game := newTestGame(t, 1)
	var frames []snake.Frame
	renderer := RendererFunc(func(f snake.Frame) error {
		frames = append(frames, f)
		return nil
	})

	r := NewRunner(game, Options{Ticks: Immediate(3), Renderer: renderer})
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	// Initial frame plus one per tick
	if len(frames) != 4 {
		t.Fatalf("renderer called %d times, expected 4", len(frames))
	}
	if frames[3].Body[0] != (grid.Cell{X: 19, Y: 12}) {
		t.Errorf("last frame head = %v, expected (19,12)", frames[3].Body[0])
	}
}

func TestRendererErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	renderer := RendererFunc(func(snake.Frame) error {
		calls++
		if calls == 2 {
			return boom
		}
		return nil
	})

	r := NewRunner(newTestGame(t, 1), Options{Ticks: Immediate(5), Renderer: renderer})
	res, err := r.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, expected boom", err)
	}
	if res.Ticks != 0 {
		t.Errorf("Ticks = %d, expected 0", res.Ticks)
	}
}
