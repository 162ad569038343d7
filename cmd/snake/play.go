package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/platform/tui"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively",
	Long: `Start an interactive game in the terminal.

Controls:
  Arrows / WASD / hjkl  - Change direction
  Ctrl+S                - Save a text screenshot
  Q / Esc / Ctrl+C      - Quit

Every run is recorded unless --no-record is given, so it can be
replayed later with 'snake replay <id>'.

Examples:
  snake play
  snake play --seed 42
  snake play --tps 15 --no-record
  snake play --config ./my-snake.yaml --log-file snake.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	const usage = "Do not record this run"
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, usage)
	rootCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, usage)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := newGame(cfg)
	if err != nil {
		return err
	}

	// Get terminal size for the first frame; resizes arrive as messages
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := tui.Options{
		TickRate: cfg.TickRate,
		Width:    width,
		Height:   height,
		Logger:   logger,
	}

	var rec *lenientRecorder
	if !flagNoRecord {
		store, r := openRecorder(logger, game, cfg.TickRate)
		if store != nil {
			defer store.Close()
			rec = &lenientRecorder{rec: r, logger: logger}
			opts.Recorder = rec
		}
	}

	res, err := tui.Run(cmd.Context(), game, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Final length: %d after %d ticks (%s)\n", game.Snake().Length(), res.Ticks, res.Reason)
	if rec == nil || rec.failed {
		return nil
	}
	id := rec.rec.ID()
	if err := rec.rec.Finish(res.Ticks); err != nil {
		logger.Warn("cannot finish recording", "id", id, "err", err)
		return nil
	}
	logger.Info("recording saved", "id", id, "ticks", res.Ticks)
	fmt.Printf("Recording saved. Replay with: snake replay %s\n", id)
	return nil
}

// lenientRecorder keeps the game running when storage fails: the first
// error is logged and later inputs are ignored.
type lenientRecorder struct {
	rec    *storage.Recorder
	logger *log.Logger
	failed bool
}

func (l *lenientRecorder) RecordInput(tick uint64, d snake.Direction) error {
	if l.failed {
		return nil
	}
	if err := l.rec.RecordInput(tick, d); err != nil {
		l.failed = true
		l.logger.Warn("recording stopped", "id", l.rec.ID(), "tick", tick, "err", err)
	}
	return nil
}

// openRecorder starts a recording for game. Storage problems never stop
// play: they are logged and the run goes unrecorded (nil store).
func openRecorder(logger *log.Logger, game *snake.Game, tickRate int) (*storage.Store, *storage.Recorder) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("recording disabled", "err", err)
		return nil, nil
	}
	rec, err := store.NewRecorder(game, tickRate)
	if err != nil {
		store.Close()
		logger.Warn("recording disabled", "err", err)
		return nil, nil
	}
	return store, rec
}
