package metrics

import "github.com/san-kum/lifesim/internal/sim"

// Default returns a fresh set of the standard population metrics.
func Default() []sim.Metric {
	return []sim.Metric{
		NewFinalPopulation(),
		NewPeakPopulation(),
		NewMeanDensity(),
		NewChurn(),
	}
}
