package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// flatPower is the spectrum magnitude below which a series counts as constant.
const flatPower = 1e-9

// PowerSpectrum returns |X[k]| for k in [0, n/2] of the series with its mean
// removed, so bin 0 is always close to zero.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range data {
		centred[i] = v - mean
	}

	spectrum := fft.FFTReal(centred)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantPeriod returns the period (n/k generations) of the strongest
// non-constant frequency bin and its magnitude. It returns 0, 0 for series
// that are too short or flat.
func DominantPeriod(data []float64) (float64, float64) {
	n := len(data)
	if n < 4 {
		return 0, 0
	}
	ps := PowerSpectrum(data)

	best, bestK := 0.0, 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > best {
			best, bestK = ps[k], k
		}
	}
	if bestK == 0 || best < flatPower {
		return 0, 0
	}
	return float64(n) / float64(bestK), best
}

// Ints converts a population series to floats for spectral analysis.
func Ints(series []int) []float64 {
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = float64(v)
	}
	return out
}
