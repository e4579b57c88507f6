// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package contour

import "testing"

func TestLinesPeak(t *testing.T) {
	xs := []float64{0, 1, 2}
	ys := []float64{0, 1, 2}
	z := [][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	}
	segs := Lines(xs, ys, z, 0.5)
	if len(segs) != 4 {
		t.Fatalf("want 4 segments around the peak, got %d: %v", len(segs), segs)
	}

	lx, ly := Join(segs)
	if len(lx) != 1 {
		t.Fatalf("want 1 polyline, got %d", len(lx))
	}
	if len(lx[0]) != 5 {
		t.Fatalf("want a closed loop of 5 points, got %v, %v", lx[0], ly[0])
	}
	if lx[0][0] != lx[0][4] || ly[0][0] != ly[0][4] {
		t.Errorf("loop is not closed: %v, %v", lx[0], ly[0])
	}
	for i := range lx[0] {
		d := abs(lx[0][i]-1) + abs(ly[0][i]-1)
		if d != 0.5 {
			t.Errorf("point (%v, %v) is not on the diamond", lx[0][i], ly[0][i])
		}
	}
}

func TestLinesFlat(t *testing.T) {
	z := [][]float64{{0, 0}, {0, 0}}
	if segs := Lines([]float64{0, 1}, []float64{0, 1}, z, 0.5); len(segs) != 0 {
		t.Errorf("flat grid: want no segments, got %v", segs)
	}
}

func TestJoinOpen(t *testing.T) {
	segs := []Segment{
		{1, 0, 2, 0},
		{0, 0, 1, 0},
		{2, 0, 3, 0},
	}
	lx, _ := Join(segs)
	if len(lx) != 1 || len(lx[0]) != 4 {
		t.Fatalf("want one polyline of 4 points, got %v", lx)
	}
	if lx[0][0] != 0 && lx[0][0] != 3 {
		t.Errorf("polyline should start at an end, got %v", lx[0])
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
