// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tidystat provides the statistical summaries and data
// transforms behind tidyplot's layers.
//
// Functions in this package operate on plain []float64 samples.
// Types with an F method are table transforms in the style of
// ggstat: they take a table.Grouping and return a new one, operating
// on each group independently.
package tidystat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Interval is a point estimate with a lower and upper bound.
type Interval struct {
	Y, YMin, YMax float64
}

// Finite returns the finite values of xs. If all of xs is finite, it
// returns xs itself.
func Finite(xs []float64) []float64 {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			out := append([]float64(nil), xs[:i]...)
			for _, x := range xs[i+1:] {
				if !math.IsNaN(x) && !math.IsInf(x, 0) {
					out = append(out, x)
				}
			}
			return out
		}
	}
	return xs
}

// sumSquares returns the sum of squared deviations of xs from mean.
func sumSquares(xs []float64, mean float64) float64 {
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return ss
}

// PopulationSD returns the standard deviation of xs with no
// degrees-of-freedom correction. It returns NaN for an empty sample.
func PopulationSD(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return math.Sqrt(sumSquares(xs, stats.Mean(xs)) / float64(len(xs)))
}

// SEM returns the standard error of the mean of xs, using the sample
// standard deviation. It returns NaN if xs has fewer than two values.
func SEM(xs []float64) float64 {
	n := float64(len(xs))
	if n < 2 {
		return math.NaN()
	}
	sd := math.Sqrt(sumSquares(xs, stats.Mean(xs)) / (n - 1))
	return sd / math.Sqrt(n)
}

// MeanSE returns the mean of xs plus or minus one standard error.
func MeanSE(xs []float64) Interval {
	m, se := stats.Mean(xs), SEM(xs)
	return Interval{m, m - se, m + se}
}

// MeanSD returns the mean of xs plus or minus one population standard
// deviation.
func MeanSD(xs []float64) Interval {
	m, sd := stats.Mean(xs), PopulationSD(xs)
	return Interval{m, m - sd, m + sd}
}

// MeanCI returns the mean of xs with its Student t confidence
// interval at the given level (for example, 0.95).
func MeanCI(xs []float64, level float64) Interval {
	m, se := stats.Mean(xs), SEM(xs)
	if math.IsNaN(se) {
		return Interval{m, math.NaN(), math.NaN()}
	}
	t := TQuantile((1+level)/2, float64(len(xs)-1))
	return Interval{m, m - t*se, m + t*se}
}

// TQuantile returns the q quantile of Student's t distribution with
// dof degrees of freedom.
func TQuantile(q, dof float64) float64 {
	if q <= 0 {
		return math.Inf(-1)
	} else if q >= 1 {
		return math.Inf(1)
	}
	dist := stats.TDist{V: dof}

	// Bracket the quantile, then bisect on the CDF.
	lo, hi := -1.0, 1.0
	for dist.CDF(lo) > q {
		lo *= 2
	}
	for dist.CDF(hi) < q {
		hi *= 2
	}
	for i := 0; i < 200 && hi-lo > 1e-12; i++ {
		mid := (lo + hi) / 2
		if dist.CDF(mid) < q {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// SummaryFunc reduces a sample to an Interval.
type SummaryFunc func(xs []float64) Interval

// MeanCIFunc returns a SummaryFunc computing MeanCI at level.
func MeanCIFunc(level float64) SummaryFunc {
	return func(xs []float64) Interval { return MeanCI(xs, level) }
}

// MeanOnly is a SummaryFunc whose bounds equal the mean.
func MeanOnly(xs []float64) Interval {
	m := stats.Mean(xs)
	return Interval{m, m, m}
}
