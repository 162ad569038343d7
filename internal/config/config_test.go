package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/torus-snake/internal/grid"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

// isolate points the user and local search paths at empty directories.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func TestEmbeddedDefaultMatchesDefaultConfig(t *testing.T) {
	cfg, err := parse(defaultSnakeYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded default = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}

	g, err := cfg.Grid.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	if g.Cols() != 32 || g.Rows() != 24 {
		t.Errorf("grid = %dx%d, expected 32x24", g.Cols(), g.Rows())
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)

	writeConfig(t, work, "configs/snake.yaml", "tick_rate: 15\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TickRate != 15 {
		t.Errorf("local config: TickRate = %d, expected 15", cfg.TickRate)
	}

	writeConfig(t, home, ".snake/config.yaml", "tick_rate: 20\n")
	cfg, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TickRate != 20 {
		t.Errorf("user config should win over local: TickRate = %d", cfg.TickRate)
	}

	custom := writeConfig(t, t.TempDir(), "custom.yaml", "tick_rate: 25\n")
	cfg, err = Load(custom)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TickRate != 25 {
		t.Errorf("custom config should win: TickRate = %d", cfg.TickRate)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "snake.yaml", "grid:\n  width: 400\n  height: 200\nseed: 7\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := Config{Grid: GridConfig{Width: 400, Height: 200, CellSize: 20}, TickRate: 10, Seed: 7}
	if cfg != want {
		t.Errorf("Load() = %+v, expected %+v", cfg, want)
	}
}

func TestLoadSkipsBrokenUserConfig(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, home, ".snake/config.yaml", "grid: [not a map\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("broken user config should be skipped, got %+v", cfg)
	}
}

func TestLoadCustomErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"bad yaml", writeConfig(t, dir, "bad.yaml", "tick_rate: [1, 2\n")},
		{"non-tiling grid", writeConfig(t, dir, "tile.yaml", "grid:\n  width: 650\n")},
		{"zero tick rate", writeConfig(t, dir, "rate.yaml", "tick_rate: 0\n")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(tc.path); err == nil {
				t.Errorf("Load(%s) should fail", tc.name)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantGrid bool
		wantErr  bool
	}{
		{"defaults", func(*Config) {}, false, false},
		{"negative cell size", func(c *Config) { c.Grid.CellSize = -1 }, true, true},
		{"zero height", func(c *Config) { c.Grid.Height = 0 }, true, true},
		{"uneven width", func(c *Config) { c.Grid.Width = 630 }, true, true},
		{"negative tick rate", func(c *Config) { c.TickRate = -5 }, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantGrid && !errors.Is(err, grid.ErrInvalidGeometry) {
				t.Errorf("expected ErrInvalidGeometry, got %v", err)
			}
		})
	}
}
