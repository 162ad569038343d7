package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/torus-snake/internal/core"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/session"
)

// Options configures an interactive session.
type Options struct {
	TickRate int
	Width    int // Initial terminal size; 80x24 when unknown
	Height   int
	Recorder session.Recorder // Optional
	Logger   *log.Logger      // Optional
}

// Model is the Bubble Tea model for a running snake game.
// It never touches the game directly: state arrives as FrameMsg from the
// runner and input leaves through Runner.SendInput.
type Model struct {
	runner   *session.Runner
	ticks    *session.ManualTicks
	keys     KeyMap
	help     help.Model
	screen   *core.Screen
	frame    snake.Frame
	cols     int
	rows     int
	tickRate int
	logger   *log.Logger
	quitting bool
	err      error
}

// NewModel creates a model that paces runner through ticks.
func NewModel(game *snake.Game, runner *session.Runner, ticks *session.ManualTicks, opts Options) Model {
	w, h := opts.Width, opts.Height
	if w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		runner:   runner,
		ticks:    ticks,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		screen:   core.NewScreen(w, max(h-1, 0)), // Last line holds the help footer
		frame:    game.Frame(),
		cols:     game.Grid().Cols(),
		rows:     game.Grid().Rows(),
		tickRate: opts.TickRate,
		logger:   logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		// A full buffer means the runner is behind; skip rather than queue
		m.ticks.TryTick()
		return m, tickCmd(m.tickRate)

	case FrameMsg:
		m.frame = snake.Frame(msg)
		return m, nil

	case runDoneMsg:
		m.quitting = true
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.runner.Stop()
		return m, tea.Quit
	case core.ActionNone:
	default:
		// Buffered until the next tick boundary
		m.runner.SendInput(action)
	}
	return m, nil
}

// saveScreenshot saves the current screen as plain text under ~/.snake/screenshots.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot skipped", "err", err)
		return
	}

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

func (m Model) draw() {
	m.screen.Clear()
	snake.RenderFrame(m.screen, m.frame, m.cols, m.rows)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run plays game in the terminal until the player quits or ctx is cancelled.
// The returned result is the runner's.
func Run(ctx context.Context, game *snake.Game, opts Options) (session.Result, error) {
	ticks := session.NewManualTicks(1)

	var p *tea.Program
	runner := session.NewRunner(game, session.Options{
		Ticks:    ticks,
		Recorder: opts.Recorder,
		Logger:   opts.Logger,
		Renderer: session.RendererFunc(func(f snake.Frame) error {
			p.Send(FrameMsg(f))
			return nil
		}),
	})

	p = tea.NewProgram(
		NewModel(game, runner, ticks, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	done := make(chan runDoneMsg, 1)
	go func() {
		res, err := runner.Run(ctx)
		done <- runDoneMsg{result: res, err: err}
		p.Send(runDoneMsg{result: res, err: err})
	}()

	_, progErr := p.Run()
	runner.Stop()
	out := <-done

	if progErr != nil && !errors.Is(progErr, tea.ErrProgramKilled) {
		return out.result, fmt.Errorf("tui: %w", progErr)
	}
	return out.result, out.err
}
