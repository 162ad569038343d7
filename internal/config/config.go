// Package config provides YAML-based configuration loading for the snake game.
package config

import (
	"fmt"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

// Config contains all tunable settings of a game.
type Config struct {
	Grid     GridConfig `yaml:"grid"`
	TickRate int        `yaml:"tick_rate"` // Steps per second
	Seed     int64      `yaml:"seed"`      // 0 = derive from the clock
}

// GridConfig defines the playfield geometry in pixels.
type GridConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick_rate must be positive, got %d", c.TickRate)
	}
	if _, err := c.Grid.Build(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Build constructs the grid described by the geometry.
func (g GridConfig) Build() (*grid.Grid, error) {
	return grid.New(g.Width, g.Height, g.CellSize)
}
