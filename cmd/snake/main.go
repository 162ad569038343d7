// snake is a single-player snake game on a wrap-around grid, played in the terminal.
//
// Usage:
//
//	snake                      - Play (same as "snake play")
//	snake play                 - Play interactively, recording the run
//	snake simulate --ticks N   - Run headless with scripted moves
//	snake replay <id>          - Replay a recorded run
//	snake recordings           - List or delete recordings
//
// Global flags:
//
//	--config <path>     - Config YAML (default search: ~/.snake/config.yaml, ./configs/snake.yaml)
//	--seed <value>      - RNG seed for fruit placement (0 = random based on time)
//	--tps <rate>        - Ticks per second
//	--db <path>         - Recordings database (default: ~/.snake/recordings.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/torus-snake/internal/config"
	"github.com/vovakirdan/torus-snake/internal/games/snake"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagTPS      int
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snake",
	Short: "Snake on a wrap-around grid, in your terminal",
	Long: `A single-player snake game played on a toroidal grid: leaving one
edge brings the snake back on the opposite edge. Running into yourself
resets the snake to a single segment in the middle of the board.

Available commands:
  play        - Play interactively (default)
  simulate    - Run headless with scripted moves
  replay      - Replay a recorded run
  recordings  - List or delete recordings

Examples:
  snake
  snake play --seed 42 --tps 15
  snake simulate --ticks 200 --moves "5:down,9:left"
  snake replay 1b4e28ba-2fa1-41d2-883f-0016d3cca427 --render
  snake recordings --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", 0, "Tick rate in steps per second (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snake/recordings.db", "Path to recordings database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(recordingsCmd)
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if cmd.Flags().Changed("tps") {
		cfg.TickRate = flagTPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

// newGame builds a game from a validated config.
func newGame(cfg config.Config) (*snake.Game, error) {
	g, err := cfg.Grid.Build()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return snake.New(snake.Config{Grid: g, Seed: cfg.Seed})
}

// newLogger creates the command logger. Interactive play must not write to
// the terminal it draws on, so it logs to --log-file or nowhere.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "snake",
		Level:           level,
	})
	return logger, closeFn, nil
}
