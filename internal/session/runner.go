// Package session runs the snake simulation as an explicit loop: one goroutine
// owns the game, consumes buffered input at each tick boundary, and hands the
// result to a renderer. Tick sources are injectable so headless runs and
// tests are fully deterministic.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
)

// Renderer draws the state produced by each tick.
type Renderer interface {
	Render(f snake.Frame) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f snake.Frame) error

// Render calls fn(f).
func (fn RendererFunc) Render(f snake.Frame) error {
	return fn(f)
}

// Recorder receives every direction input applied to the game, in order.
type Recorder interface {
	RecordInput(tick uint64, d snake.Direction) error
}

// StopReason explains why Run returned.
type StopReason int

const (
	StopCancelled    StopReason = iota // Context cancelled
	StopQuit                           // Quit action received
	StopRequested                      // Stop called
	StopSourceClosed                   // Tick source ran dry
	StopMaxTicks                       // MaxTicks reached
)

func (r StopReason) String() string {
	switch r {
	case StopCancelled:
		return "cancelled"
	case StopQuit:
		return "quit"
	case StopRequested:
		return "stopped"
	case StopSourceClosed:
		return "ticks exhausted"
	case StopMaxTicks:
		return "max ticks"
	default:
		return "unknown"
	}
}

// Result summarizes a finished run.
type Result struct {
	Ticks  uint64
	Reason StopReason
}

// Options configures a Runner. Ticks is required.
type Options struct {
	Ticks    TickSource
	Renderer Renderer    // Optional
	Recorder Recorder    // Optional
	Script   Script      // Inputs applied at fixed ticks, before live input
	Logger   *log.Logger // Optional; discards when nil
	MaxTicks uint64      // 0 means unlimited
}

// Runner drives a game from a tick source.
type Runner struct {
	game   *snake.Game
	opts   Options
	logger *log.Logger

	inputs   chan core.Action
	frame    core.InputFrame
	done     chan struct{}
	doneOnce sync.Once
}

// NewRunner creates a runner for game.
func NewRunner(game *snake.Game, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		game:   game,
		opts:   opts,
		logger: logger,
		inputs: make(chan core.Action, 64),
		frame:  core.NewInputFrame(),
		done:   make(chan struct{}),
	}
}

// SendInput queues an action for the next tick.
// Non-blocking; the action is dropped if the buffer is full.
func (r *Runner) SendInput(a core.Action) {
	select {
	case r.inputs <- a:
	default:
		// Channel full, drop input (rare under normal conditions)
	}
}

// Stop ends Run at the next opportunity.
func (r *Runner) Stop() {
	r.doneOnce.Do(func() {
		close(r.done)
	})
}

// Run steps the game on every tick until the context is cancelled, a quit
// action arrives, Stop is called, the tick source closes, or MaxTicks is
// reached. Renderer and recorder errors abort the run.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.opts.Ticks == nil {
		return Result{}, fmt.Errorf("session: tick source is required")
	}
	defer r.opts.Ticks.Stop()

	var ticks uint64
	grid := r.game.Grid()
	r.logger.Info("run started",
		"seed", r.game.Seed(), "cols", grid.Cols(), "rows", grid.Rows())

	if err := r.render(); err != nil {
		return Result{Ticks: ticks}, err
	}

	for {
		if r.opts.MaxTicks > 0 && ticks >= r.opts.MaxTicks {
			return r.finish(ticks, StopMaxTicks), nil
		}

		select {
		case <-ctx.Done():
			return r.finish(ticks, StopCancelled), nil

		case <-r.done:
			return r.finish(ticks, StopRequested), nil

		case _, ok := <-r.opts.Ticks.C():
			if !ok {
				return r.finish(ticks, StopSourceClosed), nil
			}
			if r.drainInputs() {
				return r.finish(ticks, StopQuit), nil
			}
			if err := r.runTick(); err != nil {
				return Result{Ticks: ticks}, err
			}
			ticks++
		}
	}
}

// drainInputs moves queued actions into the frame. Reports a quit request.
func (r *Runner) drainInputs() bool {
	for {
		select {
		case a := <-r.inputs:
			if a == core.ActionQuit {
				return true
			}
			r.frame.Set(a)
		default:
			return false
		}
	}
}

func (r *Runner) runTick() error {
	tick := r.game.Tick() + 1

	in := core.NewInputFrame()
	for _, a := range r.opts.Script[tick] {
		in.Set(a)
	}
	for _, a := range r.frame.Actions {
		in.Set(a)
	}
	r.frame.Clear()

	if r.opts.Recorder != nil {
		for _, a := range in.Actions {
			d, ok := snake.DirectionFromAction(a)
			if !ok {
				continue
			}
			if err := r.opts.Recorder.RecordInput(tick, d); err != nil {
				return fmt.Errorf("session: record input: %w", err)
			}
		}
	}

	res := r.game.Step(in)
	if res.Collided {
		r.logger.Debug("self collision, snake reset", "tick", res.Tick, "length", res.LengthAtCollision)
	}
	if res.BoardFull {
		r.logger.Warn("board full, fruit parked until a cell frees up", "tick", res.Tick, "length", res.State.Score)
	}

	return r.render()
}

func (r *Runner) render() error {
	if r.opts.Renderer == nil {
		return nil
	}
	if err := r.opts.Renderer.Render(r.game.Frame()); err != nil {
		return fmt.Errorf("session: render: %w", err)
	}
	return nil
}

func (r *Runner) finish(ticks uint64, reason StopReason) Result {
	r.logger.Info("run finished", "ticks", ticks, "reason", reason.String(), "state", r.game.DebugState())
	return Result{Ticks: ticks, Reason: reason}
}
