package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/viz"
)

const (
	DefaultRows        = 30
	DefaultCols        = 50
	DefaultGenerations = 500
	DefaultTheme       = "ocean"
	DefaultCellSize    = 16
	MinDimension       = 3

	// PatternRandom seeds the board with Randomize instead of a named pattern.
	PatternRandom = "random"
)

type Config struct {
	Rows        int    `yaml:"rows"`
	Cols        int    `yaml:"cols"`
	SpeedMs     int    `yaml:"speed_ms"`
	Seed        int64  `yaml:"seed"`
	Pattern     string `yaml:"pattern"`
	Theme       string `yaml:"theme"`
	Generations int    `yaml:"generations"`
	StopOnCycle bool   `yaml:"stop_on_cycle"`
	CellSize    int    `yaml:"cell_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Rows:        DefaultRows,
		Cols:        DefaultCols,
		SpeedMs:     sim.DefaultSpeedMs,
		Theme:       DefaultTheme,
		Generations: DefaultGenerations,
		StopOnCycle: true,
		CellSize:    DefaultCellSize,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file on top of a copy of base, so keys missing from
// the file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks dimensions and names and clamps the speed into range.
func (c *Config) Validate() error {
	if c.Rows < MinDimension || c.Cols < MinDimension {
		return fmt.Errorf("grid must be at least %dx%d, got %dx%d", MinDimension, MinDimension, c.Rows, c.Cols)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("generations must be positive, got %d", c.Generations)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive, got %d", c.CellSize)
	}
	if c.Pattern != "" && c.Pattern != PatternRandom {
		p, ok := life.LookupPattern(c.Pattern)
		if !ok {
			return fmt.Errorf("unknown pattern: %s (available: %v)", c.Pattern, life.PatternNames())
		}
		if p.Shape.Rows() > c.Rows || p.Shape.Cols() > c.Cols {
			return fmt.Errorf("pattern %s (%dx%d) does not fit a %dx%d grid",
				c.Pattern, p.Shape.Rows(), p.Shape.Cols(), c.Rows, c.Cols)
		}
	}
	if _, ok := viz.LookupTheme(c.Theme); !ok {
		return fmt.Errorf("unknown theme: %s (available: %v)", c.Theme, viz.ThemeNames())
	}
	c.SpeedMs = sim.ClampSpeed(c.SpeedMs)
	return nil
}

// InitialGrid builds the starting board described by the config. seed is
// used only by the random pattern.
func (c *Config) InitialGrid(seed int64) life.Grid {
	switch c.Pattern {
	case "":
		return life.Clear(c.Rows, c.Cols)
	case PatternRandom:
		return life.Randomize(c.Rows, c.Cols, life.NewRNG(seed))
	default:
		return life.PlaceCentered(life.Clear(c.Rows, c.Cols), life.MustPattern(c.Pattern))
	}
}

// SimConfig returns the headless run settings.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{Generations: c.Generations, StopOnCycle: c.StopOnCycle}
}
