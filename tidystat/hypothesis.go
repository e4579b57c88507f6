// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidystat

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// TestResult is the outcome of a hypothesis test or correlation.
type TestResult struct {
	// Stat is the test statistic (t, U, or the correlation
	// coefficient r).
	Stat float64

	// P is the two-sided p-value.
	P float64
}

// TTest performs a two-sided two-sample Student t-test with pooled
// variance on samples a and b.
func TTest(a, b []float64) (TestResult, error) {
	res, err := stats.TwoSampleTTest(&stats.Sample{Xs: a}, &stats.Sample{Xs: b}, stats.LocationDiffers)
	if err != nil {
		return TestResult{}, fmt.Errorf("t-test: %w", err)
	}
	return TestResult{res.T, res.P}, nil
}

// RankSum performs a two-sided Wilcoxon rank-sum (Mann-Whitney U)
// test on samples a and b.
func RankSum(a, b []float64) (TestResult, error) {
	res, err := stats.MannWhitneyUTest(a, b, stats.LocationDiffers)
	if err != nil {
		return TestResult{}, fmt.Errorf("rank-sum test: %w", err)
	}
	return TestResult{res.U, res.P}, nil
}

// ErrCorrelationSize is returned when a correlation is requested for
// samples that are too short or have mismatched lengths.
var ErrCorrelationSize = errors.New("correlation requires two samples of equal length >= 3")

// Pearson returns the Pearson product-moment correlation of xs and ys
// and the two-sided p-value of the null hypothesis of no
// correlation.
func Pearson(xs, ys []float64) (TestResult, error) {
	if len(xs) != len(ys) || len(xs) < 3 {
		return TestResult{}, ErrCorrelationSize
	}
	mx, my := stats.Mean(xs), stats.Mean(ys)
	var sxy, sxx, syy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return TestResult{}, stats.ErrZeroVariance
	}
	r := sxy / math.Sqrt(sxx*syy)
	// Rounding can push |r| slightly past 1.
	r = math.Max(-1, math.Min(1, r))
	return TestResult{r, corrP(r, len(xs))}, nil
}

// Spearman returns Spearman's rank correlation of xs and ys and its
// two-sided p-value. Tied values receive their average rank.
func Spearman(xs, ys []float64) (TestResult, error) {
	if len(xs) != len(ys) || len(xs) < 3 {
		return TestResult{}, ErrCorrelationSize
	}
	return Pearson(Ranks(xs), Ranks(ys))
}

// corrP returns the two-sided p-value of correlation r over n pairs
// using the t approximation with n-2 degrees of freedom.
func corrP(r float64, n int) float64 {
	if math.Abs(r) == 1 {
		return 0
	}
	dof := float64(n - 2)
	t := r * math.Sqrt(dof/(1-r*r))
	return 2 * (1 - stats.TDist{V: dof}.CDF(math.Abs(t)))
}

// Ranks returns the 1-based ranks of xs, assigning tied values their
// average rank.
func Ranks(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return xs[idx[i]] < xs[idx[j]] })

	ranks := make([]float64, len(xs))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && xs[idx[j]] == xs[idx[i]] {
			j++
		}
		// Positions i..j-1 share the average of ranks i+1..j.
		avg := float64(i+1+j) / 2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}
