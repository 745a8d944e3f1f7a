package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/lifesim/internal/life"
)

// Simulator runs a grid forward for a fixed number of generations without
// any pacing, observing metrics and detecting cycles on the way.
type Simulator struct {
	metrics   []Metric
	observers []Observer
}

func New() *Simulator {
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run steps g0 up to cfg.Generations times. Metrics and observers see the
// initial grid as generation 0 and every grid produced after it. When the
// context ends early the partial result is returned with ctx.Err().
func (s *Simulator) Run(ctx context.Context, g0 life.Grid, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Populations: make([]int, 0, cfg.Generations+1),
		Metrics:     make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	g := g0
	seen := map[string]int{g.Key(): 0}
	s.observe(g, 0)
	result.Populations = append(result.Populations, g.Population())

	var runErr error
	for gen := 1; gen <= cfg.Generations; gen++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		g = life.Step(g)
		result.Generations = gen
		s.observe(g, gen)
		result.Populations = append(result.Populations, g.Population())

		key := g.Key()
		if first, ok := seen[key]; ok && result.Period == 0 {
			result.CycleStart = first
			result.Period = gen - first
			if cfg.StopOnCycle {
				break
			}
		}
		if result.Period == 0 {
			seen[key] = gen
		}
	}

	result.Final = g
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func (s *Simulator) observe(g life.Grid, gen int) {
	for _, m := range s.metrics {
		m.Observe(g, gen)
	}
	for _, obs := range s.observers {
		obs.OnStep(g, gen)
	}
}

func validateConfig(cfg Config) error {
	if cfg.Generations <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidGenerations, cfg.Generations)
	}
	return nil
}
