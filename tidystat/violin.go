// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidystat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// ViolinShape is a kernel density estimate of a sample evaluated
// over the sample's range, for drawing a violin.
type ViolinShape struct {
	// Ys are the evaluation points, ascending.
	Ys []float64

	// Widths are the densities at Ys, scaled so the largest is 1.
	Widths []float64
}

// Violin estimates the density of xs at n points between the minimum
// and maximum of xs. If n is 0, it is 128. ok is false if xs has no
// finite values.
func Violin(xs []float64, n int) (v ViolinShape, ok bool) {
	xs = Finite(xs)
	if len(xs) == 0 {
		return v, false
	}
	if n <= 0 {
		n = 128
	}
	sample := stats.Sample{Xs: xs}
	min, max := sample.Bounds()
	if min == max {
		// Degenerate sample: draw a flat sliver.
		return ViolinShape{Ys: []float64{min, max}, Widths: []float64{1, 1}}, true
	}
	kde := stats.KDE{Sample: sample, Bandwidth: stats.BandwidthScott(sample)}
	v.Ys = vec.Linspace(min, max, n)
	v.Widths = vec.Map(kde.PDF, v.Ys)
	peak := 0.0
	for _, w := range v.Widths {
		peak = math.Max(peak, w)
	}
	if peak > 0 {
		for i := range v.Widths {
			v.Widths[i] /= peak
		}
	}
	return v, true
}

// WidthAt returns the scaled density of v at y by linear
// interpolation. It returns 0 outside the range of v.
func (v ViolinShape) WidthAt(y float64) float64 {
	n := len(v.Ys)
	if n == 0 || y < v.Ys[0] || y > v.Ys[n-1] {
		return 0
	}
	for i := 1; i < n; i++ {
		if y <= v.Ys[i] {
			span := v.Ys[i] - v.Ys[i-1]
			if span == 0 {
				return v.Widths[i]
			}
			f := (y - v.Ys[i-1]) / span
			return v.Widths[i-1] + f*(v.Widths[i]-v.Widths[i-1])
		}
	}
	return v.Widths[n-1]
}
