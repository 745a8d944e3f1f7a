package sim

import (
	"context"
	"fmt"
	"runtime"

	"github.com/san-kum/lifesim/internal/life"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs many random soups of the same size side by side, one seed
// per run. Metrics come from a factory so no two runs share metric state.
type Ensemble struct {
	rows, cols int
	numRuns    int
	seedStart  int64
	metrics    func() []Metric
}

func NewEnsemble(rows, cols, numRuns int, seedStart int64, metrics func() []Metric) *Ensemble {
	return &Ensemble{rows: rows, cols: cols, numRuns: numRuns, seedStart: seedStart, metrics: metrics}
}

// Seed returns the seed used for run i.
func (e *Ensemble) Seed(i int) int64 { return e.seedStart + int64(i) }

// Run executes every run with at most GOMAXPROCS in flight. Results are
// indexed by run. The first failing run cancels the rest.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, ErrInvalidEnsemble
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	results := make([]*Result, e.numRuns)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.numRuns; i++ {
		g.Go(func() error {
			s := New()
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}
			g0 := life.Randomize(e.rows, e.cols, life.NewRNG(e.Seed(i)))
			r, err := s.Run(ctx, g0, cfg)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, e.Seed(i), err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
