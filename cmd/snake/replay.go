package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/games/snake"
	"github.com/vovakirdan/torus-snake/internal/grid"
	"github.com/vovakirdan/torus-snake/internal/session"
	"github.com/vovakirdan/torus-snake/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Replay a recorded run",
	Long: `Rebuild a recorded run from its seed, grid and inputs and print
the final state. The replay is exact: fruit placement is driven only by
the stored seed.

Examples:
  snake recordings
  snake replay 1b4e28ba-2fa1-41d2-883f-0016d3cca427
  snake replay 1b4e28ba-2fa1-41d2-883f-0016d3cca427 --render`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagRender, "render", false, "Print every frame")
}

func runReplay(cmd *cobra.Command, args []string) error {
	id := args[0]

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Recording(id)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no recording %q; run 'snake recordings' to list them", id)
	}
	if err != nil {
		return err
	}
	if rec.Ticks == 0 {
		logger.Warn("recording was never finished, nothing to replay", "id", id)
	}

	inputs, err := store.Inputs(id)
	if err != nil {
		return err
	}
	script, err := storage.Script(inputs)
	if err != nil {
		return err
	}

	g, err := grid.NewCells(rec.Cols, rec.Rows)
	if err != nil {
		return err
	}
	game, err := snake.New(snake.Config{Grid: g, Seed: rec.Seed})
	if err != nil {
		return err
	}

	opts := session.Options{
		Ticks:  session.Immediate(int(rec.Ticks)),
		Script: script,
		Logger: logger,
	}
	if flagRender {
		opts.Renderer = frameRenderer(os.Stdout, game)
	}

	res, err := session.NewRunner(game, opts).Run(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(os.Stdout, "Replay "+id, game, res)
	return nil
}
