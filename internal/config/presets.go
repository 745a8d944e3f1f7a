package config

import "sort"

var Presets = map[string]*Config{
	"soup": {
		Rows: 30, Cols: 50, SpeedMs: 100, Pattern: PatternRandom, Theme: "ocean",
		Generations: 1000, StopOnCycle: true, CellSize: 16,
	},
	"glider": {
		Rows: 20, Cols: 20, SpeedMs: 150, Pattern: "glider", Theme: "minimal",
		Generations: 200, StopOnCycle: true, CellSize: 24,
	},
	"pulsar": {
		Rows: 21, Cols: 21, SpeedMs: 300, Pattern: "pulsar", Theme: "retro",
		Generations: 30, StopOnCycle: true, CellSize: 24,
	},
	"gun": {
		Rows: 40, Cols: 60, SpeedMs: 80, Pattern: "gosper-gun", Theme: "cyberpunk",
		Generations: 600, StopOnCycle: false, CellSize: 14,
	},
	"methuselah": {
		Rows: 60, Cols: 90, SpeedMs: 50, Pattern: "r-pentomino", Theme: "ocean",
		Generations: 1200, StopOnCycle: true, CellSize: 10,
	},
	"acorn": {
		Rows: 60, Cols: 90, SpeedMs: 50, Pattern: "acorn", Theme: "minimal",
		Generations: 1200, StopOnCycle: true, CellSize: 10,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
