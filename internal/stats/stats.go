// Package stats reduces per-sample score sequences to summary statistics.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// #region errors
// ErrEmptyInput is returned when statistics are requested over zero samples.
var ErrEmptyInput = errors.New("empty input")

// #endregion errors

// #region summary
// Summary holds the descriptive statistics of one score sequence.
type Summary struct {
	Mean float64
	Std  float64
	P5   float64
	P95  float64
}

// Describe computes mean, population standard deviation and the 5th/95th
// percentiles of xs. Percentiles use linear interpolation over the sorted
// sequence, so the result does not depend on input order.
func Describe(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, fmt.Errorf("describe: %w", ErrEmptyInput)
	}

	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs))

	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	return Summary{
		Mean: mean,
		Std:  math.Sqrt(variance),
		P5:   percentile(sorted, 5),
		P95:  percentile(sorted, 95),
	}, nil
}

// #endregion summary

// #region percentile
// Percentile returns the p-th percentile (0..100) of xs with linear
// interpolation between the two nearest order statistics.
func Percentile(xs []float64, p float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("percentile: %w", ErrEmptyInput)
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return percentile(sorted, p), nil
}

// percentile expects sorted, non-empty input.
func percentile(sorted []float64, p float64) float64 {
	pos := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// #endregion percentile
