package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
)

// Registry maps metric names to constructors so runs can pick metrics by
// name on the command line.
type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{metrics: make(map[string]func() sim.Metric)}

	r.metrics["final_population"] = func() sim.Metric { return metrics.NewFinalPopulation() }
	r.metrics["peak_population"] = func() sim.Metric { return metrics.NewPeakPopulation() }
	r.metrics["mean_density"] = func() sim.Metric { return metrics.NewMeanDensity() }
	r.metrics["churn"] = func() sim.Metric { return metrics.NewChurn() }

	return r
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	factory, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s (available: %v)", name, r.MetricNames())
	}
	return factory(), nil
}

// Metrics builds fresh instances of the named metrics; no names means all.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		names = r.MetricNames()
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) MetricNames() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
