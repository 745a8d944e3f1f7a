package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/storage"
)

// Experiment is one headless run: a validated config, the seed that built
// its starting grid, and the simulator that steps it.
type Experiment struct {
	cfg       *config.Config
	seed      int64
	initial   life.Grid
	simulator *sim.Simulator
}

func New(cfg *config.Config, seed int64) *Experiment {
	return &Experiment{cfg: cfg, seed: seed}
}

func (e *Experiment) Setup(metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return fmt.Errorf("experiment config: %w", err)
	}
	e.initial = e.cfg.InitialGrid(e.seed)
	e.simulator = sim.New()
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.initial, e.cfg.SimConfig())
}

// Initial returns the starting grid built by Setup.
func (e *Experiment) Initial() life.Grid { return e.initial }

// Info describes the run for the store.
func (e *Experiment) Info() storage.RunInfo {
	return storage.RunInfo{
		Pattern: e.cfg.Pattern,
		Seed:    e.seed,
		Rows:    e.cfg.Rows,
		Cols:    e.cfg.Cols,
	}
}

// Simulator returns the stepper built by Setup so callers can attach
// observers before Run. It is nil until Setup succeeds.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }
