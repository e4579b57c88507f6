// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidystat

import (
	"math"
	"math/rand"
	"sort"
)

// Jitter returns n uniform random offsets in [-width, width].
func Jitter(rng *rand.Rand, n int, width float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * width
	}
	return out
}

// Swarm returns horizontal offsets that arrange the points ys into a
// beeswarm: points are placed in ascending order of y, each at the
// offset closest to 0 (alternating sides) that keeps it at least
// spacing away from every already placed point whose y is within
// yspacing. Offsets are capped to [-limit, limit]; points that do
// not fit are placed at the limit.
func Swarm(ys []float64, spacing, yspacing, limit float64) []float64 {
	type placed struct{ x, y float64 }
	order := make([]int, len(ys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return ys[order[i]] < ys[order[j]] })

	out := make([]float64, len(ys))
	if spacing <= 0 || yspacing <= 0 {
		return out
	}
	var done []placed
	for _, i := range order {
		y := ys[i]
		free := func(x float64) bool {
			for k := len(done) - 1; k >= 0; k-- {
				p := done[k]
				if y-p.y > yspacing {
					// done is sorted by y.
					break
				}
				dx, dy := (x-p.x)/spacing, (y-p.y)/yspacing
				if dx*dx+dy*dy < 1 {
					return false
				}
			}
			return true
		}
		x := 0.0
		for step := 0; ; step++ {
			cand := float64((step+1)/2) * spacing
			if step%2 == 1 {
				cand = -cand
			}
			if math.Abs(cand) > limit {
				x = math.Copysign(limit, cand)
				break
			}
			if free(cand) {
				x = cand
				break
			}
		}
		out[i] = x
		done = append(done, placed{x, y})
	}
	return out
}
