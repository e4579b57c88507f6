// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidystat

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// SmoothMethod selects the regression used by Smooth.
type SmoothMethod string

const (
	// SmoothLOESS is locally weighted quadratic regression.
	SmoothLOESS SmoothMethod = "loess"

	// SmoothLM is a least squares linear fit.
	SmoothLM SmoothMethod = "lm"
)

// ParseSmoothMethod validates a smoothing method name.
func ParseSmoothMethod(s string) (SmoothMethod, error) {
	switch m := SmoothMethod(s); m {
	case SmoothLOESS, SmoothLM:
		return m, nil
	case "":
		return SmoothLOESS, nil
	}
	return "", fmt.Errorf("smoothing method must be %q or %q; got %q", SmoothLOESS, SmoothLM, s)
}

// bootstrapSamples is the number of resamples used for LOESS
// confidence bands.
const bootstrapSamples = 100

// Smooth fits a regression of Y on X in each group and samples it at
// N evenly spaced points across the group's X range.
//
// The result has columns X, Y, "ymin", and "ymax", plus the constant
// columns of the input. If SE is false, "ymin" and "ymax" equal Y.
type Smooth struct {
	X, Y string

	// Method is the regression method. If "", it is SmoothLOESS.
	Method SmoothMethod

	// SE requests a confidence band at Level (0.95 if 0).
	SE    bool
	Level float64

	// N is the number of evaluation points. If 0, it is 80.
	N int

	// Span is the LOESS span. If 0, it is 0.75.
	Span float64

	// Seed seeds the bootstrap used for LOESS bands.
	Seed int64
}

func (s Smooth) F(g table.Grouping) table.Grouping {
	if s.Method == "" {
		s.Method = SmoothLOESS
	}
	if s.Level == 0 {
		s.Level = 0.95
	}
	if s.N <= 0 {
		s.N = 80
	}
	if s.Span <= 0 {
		s.Span = 0.75
	}
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		xs, ys := finitePairs(floats(t, s.X), floats(t, s.Y))
		var eval, fitY, lo, hi []float64
		if len(xs) >= 3 {
			min, max := stats.Bounds(xs)
			eval = vec.Linspace(min, max, s.N)
			fitY, lo, hi = s.fit(xs, ys, eval)
		}
		nt := new(table.Builder).Add(s.X, nonNil(eval)).Add(s.Y, nonNil(fitY)).
			Add("ymin", nonNil(lo)).Add("ymax", nonNil(hi))
		preserveConsts(nt, t)
		return nt.Done()
	})
}

func (s Smooth) fit(xs, ys, eval []float64) (fitY, lo, hi []float64) {
	switch s.Method {
	case SmoothLM:
		r := fit.PolynomialRegression(xs, ys, nil, 1)
		fitY = vec.Map(r.F, eval)
		if !s.SE {
			return fitY, fitY, fitY
		}
		lo, hi = lmBand(xs, ys, r.F, eval, fitY, s.Level)
		return fitY, lo, hi
	}

	f := fit.LOESS(xs, ys, 2, s.Span)
	fitY = vec.Map(f, eval)
	if !s.SE {
		return fitY, fitY, fitY
	}
	lo, hi = s.loessBand(xs, ys, eval)
	return fitY, lo, hi
}

// lmBand returns the pointwise confidence band of a least squares
// line.
func lmBand(xs, ys []float64, f func(float64) float64, eval, fitY []float64, level float64) (lo, hi []float64) {
	n := float64(len(xs))
	mx := stats.Mean(xs)
	rss := 0.0
	for i, x := range xs {
		d := ys[i] - f(x)
		rss += d * d
	}
	sigma := math.Sqrt(rss / (n - 2))
	sxx := sumSquares(xs, mx)
	t := TQuantile((1+level)/2, n-2)
	lo, hi = make([]float64, len(eval)), make([]float64, len(eval))
	for i, x := range eval {
		se := sigma * math.Sqrt(1/n+(x-mx)*(x-mx)/sxx)
		lo[i], hi[i] = fitY[i]-t*se, fitY[i]+t*se
	}
	return lo, hi
}

// loessBand returns a percentile bootstrap band for a LOESS fit.
func (s Smooth) loessBand(xs, ys, eval []float64) (lo, hi []float64) {
	rng := rand.New(rand.NewSource(s.Seed))
	curves := make([][]float64, len(eval))
	bx, by := make([]float64, len(xs)), make([]float64, len(xs))
	for b := 0; b < bootstrapSamples; b++ {
		for i := range bx {
			k := rng.Intn(len(xs))
			bx[i], by[i] = xs[k], ys[k]
		}
		f := fit.LOESS(bx, by, 2, s.Span)
		for i, x := range eval {
			if y := f(x); !math.IsNaN(y) && !math.IsInf(y, 0) {
				curves[i] = append(curves[i], y)
			}
		}
	}
	alpha := (1 - s.Level) / 2
	lo, hi = make([]float64, len(eval)), make([]float64, len(eval))
	for i, c := range curves {
		q := Quantiles(c, []float64{alpha, 1 - alpha})
		lo[i], hi[i] = q[0], q[1]
	}
	return lo, hi
}

// finitePairs returns the (x, y) pairs where both are finite.
func finitePairs(xs, ys []float64) (fx, fy []float64) {
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		fx, fy = append(fx, x), append(fy, y)
	}
	return fx, fy
}
