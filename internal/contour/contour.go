// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package contour traces iso-lines of a function sampled on a grid
// using marching squares.
package contour

// Segment is a single line segment of an iso-line.
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Lines returns the segments of the iso-line z == level of the grid
// z, where z[j][i] is the value at (xs[i], ys[j]). Segments are
// unordered; callers that need polylines should join them.
func Lines(xs, ys []float64, z [][]float64, level float64) []Segment {
	var segs []Segment
	for j := 0; j+1 < len(ys); j++ {
		for i := 0; i+1 < len(xs); i++ {
			segs = cell(segs, xs[i], xs[i+1], ys[j], ys[j+1],
				z[j][i], z[j][i+1], z[j+1][i+1], z[j+1][i], level)
		}
	}
	return segs
}

// cell appends the segments crossing one grid cell. The corner
// values are given counter-clockwise from the bottom-left.
func cell(segs []Segment, x0, x1, y0, y1, bl, br, tr, tl, level float64) []Segment {
	idx := 0
	if bl > level {
		idx |= 1
	}
	if br > level {
		idx |= 2
	}
	if tr > level {
		idx |= 4
	}
	if tl > level {
		idx |= 8
	}
	if idx == 0 || idx == 15 {
		return segs
	}

	lerp := func(a, b, va, vb float64) float64 {
		if va == vb {
			return (a + b) / 2
		}
		return a + (level-va)/(vb-va)*(b-a)
	}
	// Crossing points on each edge.
	bottom := func() (float64, float64) { return lerp(x0, x1, bl, br), y0 }
	right := func() (float64, float64) { return x1, lerp(y0, y1, br, tr) }
	top := func() (float64, float64) { return lerp(x0, x1, tl, tr), y1 }
	left := func() (float64, float64) { return x0, lerp(y0, y1, bl, tl) }

	add := func(a, b func() (float64, float64)) {
		ax, ay := a()
		bx, by := b()
		segs = append(segs, Segment{ax, ay, bx, by})
	}

	switch idx {
	case 1, 14:
		add(left, bottom)
	case 2, 13:
		add(bottom, right)
	case 3, 12:
		add(left, right)
	case 4, 11:
		add(right, top)
	case 6, 9:
		add(bottom, top)
	case 7, 8:
		add(left, top)
	case 5:
		// Saddle; resolve by the center value.
		if (bl+br+tr+tl)/4 > level {
			add(left, top)
			add(bottom, right)
		} else {
			add(left, bottom)
			add(right, top)
		}
	case 10:
		if (bl+br+tr+tl)/4 > level {
			add(left, bottom)
			add(right, top)
		} else {
			add(left, top)
			add(bottom, right)
		}
	}
	return segs
}

type point struct{ x, y float64 }

// Join chains segments that share endpoints into polylines. Each
// polyline is returned as parallel x and y slices. Closed loops
// repeat their first point at the end.
func Join(segs []Segment) (xs, ys [][]float64) {
	// Index segment endpoints.
	ends := make(map[point][]int)
	for i, s := range segs {
		a, b := point{s.X0, s.Y0}, point{s.X1, s.Y1}
		ends[a] = append(ends[a], i)
		ends[b] = append(ends[b], i)
	}
	used := make([]bool, len(segs))

	// next finds an unused segment touching p and returns its
	// other endpoint.
	next := func(p point) (point, bool) {
		for _, i := range ends[p] {
			if used[i] {
				continue
			}
			used[i] = true
			s := segs[i]
			if (point{s.X0, s.Y0}) == p {
				return point{s.X1, s.Y1}, true
			}
			return point{s.X0, s.Y0}, true
		}
		return point{}, false
	}

	for i, s := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		line := []point{{s.X0, s.Y0}, {s.X1, s.Y1}}
		// Extend forward from the tail.
		for {
			p, ok := next(line[len(line)-1])
			if !ok {
				break
			}
			line = append(line, p)
		}
		// Extend backward from the head.
		var head []point
		for p := line[0]; ; {
			q, ok := next(p)
			if !ok {
				break
			}
			head = append(head, q)
			p = q
		}
		lx := make([]float64, 0, len(head)+len(line))
		ly := make([]float64, 0, len(head)+len(line))
		for k := len(head) - 1; k >= 0; k-- {
			lx, ly = append(lx, head[k].x), append(ly, head[k].y)
		}
		for _, p := range line {
			lx, ly = append(lx, p.x), append(ly, p.y)
		}
		xs, ys = append(xs, lx), append(ys, ly)
	}
	return xs, ys
}
