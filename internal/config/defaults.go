package config

import (
	_ "embed"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultConfig returns the built-in configuration: a 640x480 playfield
// of 20 pixel cells stepped at 10 Hz.
func DefaultConfig() Config {
	return Config{
		Grid: GridConfig{
			Width:    640,
			Height:   480,
			CellSize: 20,
		},
		TickRate: 10,
	}
}
