package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/session"
)

var (
	flagTicks  int
	flagMoves  string
	flagRender bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless with scripted moves",
	Long: `Run the game without a terminal UI for a fixed number of ticks.

Moves are given as comma separated tick:direction pairs; ticks count
from 1 and a move is applied before the snake advances on that tick.
With the same seed the outcome is always identical.

Examples:
  snake simulate --seed 7 --ticks 100
  snake simulate --seed 7 --ticks 40 --moves "5:down,9:left,20:up"
  snake simulate --ticks 10 --render`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 100, "Number of ticks to run")
	simulateCmd.Flags().StringVar(&flagMoves, "moves", "", `Scripted moves, e.g. "5:down,9:left"`)
	simulateCmd.Flags().BoolVar(&flagRender, "render", false, "Print every frame")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	script, err := session.ParseScript(flagMoves)
	if err != nil {
		return err
	}
	game, err := newGame(cfg)
	if err != nil {
		return err
	}

	opts := session.Options{
		Ticks:  session.Immediate(max(flagTicks, 0)),
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
	printSummary(os.Stdout, "Simulation", game, res)
	return nil
}
