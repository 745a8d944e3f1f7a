package sim

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/san-kum/lifesim/internal/life"
)

// Simulation is the Stopped/Running state machine around the current grid.
//
// It has no locks: every method must be called from the single goroutine that
// owns it (a bubbletea Update, a raylib frame loop). Runner wraps it for use
// across goroutines.
//
// Each Stopped->Running transition starts a new epoch. A tick carries the
// epoch it was scheduled under, and a tick from an earlier epoch is dropped,
// so a quick stop/start never leaves two tick chains alive.
type Simulation struct {
	grid       life.Grid
	running    bool
	speedMs    int
	generation int
	epoch      uint64
}

func NewSimulation(rows, cols int) *Simulation {
	return NewSimulationFrom(life.Clear(rows, cols))
}

func NewSimulationFrom(g life.Grid) *Simulation {
	return &Simulation{grid: g, speedMs: DefaultSpeedMs}
}

// Start moves to Running and returns the new epoch. The first tick is due
// immediately. On an already running simulation it returns the current epoch
// and false.
func (s *Simulation) Start() (uint64, bool) {
	if s.running {
		return s.epoch, false
	}
	s.running = true
	s.epoch++
	return s.epoch, true
}

// Stop moves to Stopped. A tick already delivered has run; the next one
// sees the flag and ends the chain.
func (s *Simulation) Stop() { s.running = false }

func (s *Simulation) Toggle() (uint64, bool) {
	if s.running {
		s.Stop()
		return s.epoch, false
	}
	return s.Start()
}

// Tick advances one generation if the simulation is running under epoch.
// It returns the delay to wait before the next tick, read from the live
// speed setting, and false when the chain should end.
func (s *Simulation) Tick(epoch uint64) (time.Duration, bool) {
	if !s.running || epoch != s.epoch {
		return 0, false
	}
	s.advance()
	return s.Speed(), true
}

// StepOnce advances one generation by hand. It only acts while stopped.
func (s *Simulation) StepOnce() bool {
	if s.running {
		return false
	}
	s.advance()
	return true
}

func (s *Simulation) advance() {
	s.grid = life.Step(s.grid)
	s.generation++
}

// SetSpeed sets the inter-tick delay in milliseconds, clamped to the allowed
// range, and returns the value in effect.
func (s *Simulation) SetSpeed(ms int) int {
	s.speedMs = ClampSpeed(ms)
	return s.speedMs
}

func (s *Simulation) SpeedMs() int         { return s.speedMs }
func (s *Simulation) Speed() time.Duration { return speedDuration(s.speedMs) }
func (s *Simulation) Running() bool        { return s.running }
func (s *Simulation) Epoch() uint64        { return s.epoch }
func (s *Simulation) Generation() int      { return s.generation }
func (s *Simulation) Grid() life.Grid      { return s.grid }

func (s *Simulation) Snapshot() Snapshot {
	return Snapshot{Grid: s.grid, Generation: s.generation, Running: s.running, SpeedMs: s.speedMs}
}

func (s *Simulation) Clear() {
	s.grid = life.Clear(s.grid.Rows(), s.grid.Cols())
	s.generation = 0
}

func (s *Simulation) Randomize(rng *rand.Rand) {
	s.grid = life.Randomize(s.grid.Rows(), s.grid.Cols(), rng)
	s.generation = 0
}

// ToggleCell flips one cell directly, bypassing the rule.
func (s *Simulation) ToggleCell(row, col int) error {
	g, err := life.Toggle(s.grid, row, col)
	if err != nil {
		return err
	}
	s.grid = g
	return nil
}

// Load replaces the grid. The new grid must have the same dimensions.
func (s *Simulation) Load(g life.Grid) error {
	if g.Rows() != s.grid.Rows() || g.Cols() != s.grid.Cols() {
		return fmt.Errorf("%w: have %dx%d, got %dx%d", ErrDimensionMismatch,
			s.grid.Rows(), s.grid.Cols(), g.Rows(), g.Cols())
	}
	s.grid = g
	s.generation = 0
	return nil
}
