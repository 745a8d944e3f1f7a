// Package analysis characterises population series from stored runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a mean-removed series
//   - [DominantPeriod]: strongest oscillation period, in generations
//
// An oscillating or cycling board shows up as a sharp peak:
//
//	period, _ := analysis.DominantPeriod(populations)
//	if period > 0 {
//	    // population oscillates with this period
//	}
package analysis
