// Package series provides rolling-window statistics over ordered float
// sequences. The functions carry no market knowledge; the indicator engine
// composes them into the full indicator set.
package series

import (
	"math"

	"github.com/moznion/go-optional"
)

// SMA returns the mean of the trailing window values, or None when the
// sequence is shorter than the window. It never extrapolates.
func SMA(values []float64, window int) optional.Option[float64] {
	if window <= 0 || len(values) < window {
		return optional.None[float64]()
	}

	sum := 0.0
	for _, v := range values[len(values)-window:] {
		sum += v
	}

	return optional.Some(sum / float64(window))
}

// RollingStd returns the sample standard deviation (ddof=1) of the trailing
// window values, or None when the sequence is shorter than the window or
// the window admits no sample variance. The sample convention matches the
// Bollinger band computation.
func RollingStd(values []float64, window int) optional.Option[float64] {
	if window < 2 || len(values) < window {
		return optional.None[float64]()
	}

	tail := values[len(values)-window:]

	mean := 0.0
	for _, v := range tail {
		mean += v
	}

	mean /= float64(window)

	sumSquares := 0.0

	for _, v := range tail {
		d := v - mean
		sumSquares += d * d
	}

	return optional.Some(math.Sqrt(sumSquares / float64(window-1)))
}

// EMA returns the exponential moving average over the whole sequence with
// smoothing factor alpha = 2/(span+1). The recurrence is seeded with the
// first value, so there is no look-ahead bias. The full series is returned
// because MACD chains EMAs.
func EMA(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}

	alpha := 2.0 / (float64(span) + 1.0)

	out := make([]float64, len(values))
	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}
