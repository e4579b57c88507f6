// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidystat

import (
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// Grid is a function sampled on a regular rectangular grid.
type Grid struct {
	// Xs and Ys are the grid coordinates in ascending order.
	Xs, Ys []float64

	// Z[j][i] is the value at (Xs[i], Ys[j]).
	Z [][]float64
}

// Max returns the largest value in the grid.
func (g *Grid) Max() float64 {
	max := math.Inf(-1)
	for _, row := range g.Z {
		for _, z := range row {
			max = math.Max(max, z)
		}
	}
	return max
}

// bounds returns the bounds of the finite (x, y) pairs.
func bounds(xs, ys []float64) (xmin, xmax, ymin, ymax float64, n int) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
		ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
		n++
	}
	return
}

// Bin2D counts points in a bins×bins grid of equal rectangles
// spanning the data.
//
// The result has columns X and Y (bin centers), "width", "height",
// and "count", with one row per non-empty bin, plus the constant
// columns of the input.
type Bin2D struct {
	X, Y string

	// Bins is the number of bins along each axis. If 0, it is 20.
	Bins int
}

func (s Bin2D) F(g table.Grouping) table.Grouping {
	bins := s.Bins
	if bins <= 0 {
		bins = 20
	}
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		xs, ys := floats(t, s.X), floats(t, s.Y)
		xmin, xmax, ymin, ymax, n := bounds(xs, ys)
		var xo, yo, wo, ho, co []float64
		if n > 0 {
			if xmin == xmax {
				xmin, xmax = xmin-0.5, xmax+0.5
			}
			if ymin == ymax {
				ymin, ymax = ymin-0.5, ymax+0.5
			}
			w, h := (xmax-xmin)/float64(bins), (ymax-ymin)/float64(bins)
			counts := make([]float64, bins*bins)
			cell := func(v, min, size float64) int {
				i := int((v - min) / size)
				if i >= bins {
					i = bins - 1
				}
				return i
			}
			for i := range xs {
				x, y := xs[i], ys[i]
				if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
					continue
				}
				counts[cell(y, ymin, h)*bins+cell(x, xmin, w)]++
			}
			for j := 0; j < bins; j++ {
				for i := 0; i < bins; i++ {
					c := counts[j*bins+i]
					if c == 0 {
						continue
					}
					xo = append(xo, xmin+(float64(i)+0.5)*w)
					yo = append(yo, ymin+(float64(j)+0.5)*h)
					wo = append(wo, w)
					ho = append(ho, h)
					co = append(co, c)
				}
			}
		}
		nt := new(table.Builder).Add(s.X, nonNil(xo)).Add(s.Y, nonNil(yo)).
			Add("width", nonNil(wo)).Add("height", nonNil(ho)).Add("count", nonNil(co))
		preserveConsts(nt, t)
		return nt.Done()
	})
}

// Density2D estimates the joint density of (xs, ys) on an n×n grid
// with a product Gaussian kernel. Each axis uses Scott's rule for its
// bandwidth, and the grid extends three bandwidths past the data. If
// n is 0, it is 50. ok is false if there are fewer than two finite
// points.
func Density2D(xs, ys []float64, n int) (grid *Grid, ok bool) {
	if n <= 0 {
		n = 50
	}
	var px, py []float64
	for i := range xs {
		x, y := xs[i], ys[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		px, py = append(px, x), append(py, y)
	}
	if len(px) < 2 {
		return nil, false
	}

	bw := func(v []float64) float64 {
		b := stats.BandwidthScott(stats.Sample{Xs: v})
		if b <= 0 || math.IsNaN(b) {
			b = 1
		}
		return b
	}
	bx, by := bw(px), bw(py)
	xmin, xmax, ymin, ymax, _ := bounds(px, py)
	grid = &Grid{
		Xs: vec.Linspace(xmin-3*bx, xmax+3*bx, n),
		Ys: vec.Linspace(ymin-3*by, ymax+3*by, n),
		Z:  make([][]float64, n),
	}

	kernel := stats.NormalDist{Mu: 0, Sigma: 1}
	norm := 1 / (float64(len(px)) * bx * by)
	for j, gy := range grid.Ys {
		row := make([]float64, n)
		for k := range px {
			ky := kernel.PDF((gy - py[k]) / by)
			if ky == 0 {
				continue
			}
			for i, gx := range grid.Xs {
				row[i] += ky * kernel.PDF((gx-px[k])/bx)
			}
		}
		for i := range row {
			row[i] *= norm
		}
		grid.Z[j] = row
	}
	return grid, true
}
