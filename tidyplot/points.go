// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/aclements/go-tidyplot/internal/mark"
	"github.com/aclements/go-tidyplot/tidystat"
)

// pointsMark returns a Points mark drawing rows at the given X
// positions, colored by level or continuous value.
func (c *compiler) pointsMark(rows []int, xs []float64, size, alpha float64) *mark.Mark {
	m := &mark.Mark{Kind: mark.Points, Radius: size}
	if c.value != nil {
		// Continuous color: one group per point.
		for i, r := range rows {
			fill := withAlpha(c.rowColor(r, defaultStroke), alpha)
			m.Groups = append(m.Groups, mark.Group{X: []float64{xs[i]}, Y: []float64{c.y[r]}, Fill: fill})
		}
		return m
	}
	byLevel := make(map[int]*mark.Group)
	var order []int
	for i, r := range rows {
		l := c.level[r]
		g, ok := byLevel[l]
		if !ok {
			g = &mark.Group{Fill: withAlpha(c.color(l, defaultStroke), alpha)}
			byLevel[l] = g
			order = append(order, l)
		}
		g.X = append(g.X, xs[i])
		g.Y = append(g.Y, c.y[r])
	}
	sort.Ints(order)
	for _, l := range order {
		m.Groups = append(m.Groups, *byLevel[l])
	}
	return m
}

// allRows returns the indexes of every kept row.
func (c *compiler) allRows() []int {
	rows := make([]int, len(c.x))
	for i := range rows {
		rows[i] = i
	}
	return rows
}

// cells splits rows by X position and color level, the unit of the
// per-group layers. Cells are ordered by X, then level.
func (c *compiler) cells(rows []int) [][]int {
	type key struct {
		x     float64
		level int
	}
	idx := make(map[key]int)
	var keys []key
	var out [][]int
	for _, r := range rows {
		k := key{c.x[r], c.level[r]}
		i, ok := idx[k]
		if !ok {
			i = len(keys)
			idx[k] = i
			keys = append(keys, k)
			out = append(out, nil)
		}
		out[i] = append(out[i], r)
	}
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := keys[order[i]], keys[order[j]]
		if a.x != b.x {
			return a.x < b.x
		}
		return a.level < b.level
	})
	sorted := make([][]int, len(out))
	for i, o := range order {
		sorted[i] = out[o]
	}
	return sorted
}

// Scatter draws a point at each row.
type Scatter struct {
	// Size is the point radius in points. If 0, it is 3.
	Size float64

	// Alpha is the point opacity. If 0, it is 0.5.
	Alpha float64
}

func (l Scatter) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("scatter"); err != nil {
		return nil, err
	}
	rows := c.allRows()
	xs := make([]float64, len(rows))
	for i, r := range rows {
		off, _ := c.dodge(c.level[r])
		xs[i] = c.x[r] + off
	}
	return []*mark.Mark{c.pointsMark(rows, xs, orDefault(l.Size, 3), orDefault(l.Alpha, 0.5))}, nil
}

// Jitter draws a point at each row, randomly offset along X to reduce
// overplotting.
type Jitter struct {
	// Width is the maximum offset in X category units. If 0, it
	// is 0.2.
	Width float64

	// Size is the point radius in points. If 0, it is 3.
	Size float64

	// Alpha is the point opacity. If 0, it is 0.5.
	Alpha float64
}

func (l Jitter) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("jitter"); err != nil {
		return nil, err
	}
	rows := c.allRows()
	width := orDefault(l.Width, 0.2)
	offs := tidystat.Jitter(c.rng(), len(rows), width)
	xs := make([]float64, len(rows))
	for i, r := range rows {
		off, scale := c.dodge(c.level[r])
		xs[i] = c.x[r] + off + offs[i]*scale
	}
	return []*mark.Mark{c.pointsMark(rows, xs, orDefault(l.Size, 3), orDefault(l.Alpha, 0.5))}, nil
}

// Beeswarm draws a point at each row, spread along X so points with
// similar Y values do not overlap.
type Beeswarm struct {
	// Size is the point radius in points. If 0, it is 3.
	Size float64

	// Alpha is the point opacity. If 0, it is 0.5.
	Alpha float64
}

func (l Beeswarm) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("beeswarm"); err != nil {
		return nil, err
	}
	size := orDefault(l.Size, 3)

	// Points are sized in points but placed in data units, so
	// approximate a point's extent as a fraction of each axis.
	ylo, yhi := finiteBounds(c.y)
	yspacing := (yhi - ylo) * 0.01 * size
	if yspacing == 0 {
		yspacing = 1
	}
	spacing := 0.02 * size / 3

	rows := c.allRows()
	xs := make([]float64, len(c.x))
	var all []int
	for _, cell := range c.cells(rows) {
		ys := make([]float64, len(cell))
		for i, r := range cell {
			ys[i] = c.y[r]
		}
		off, scale := c.dodge(c.level[cell[0]])
		offs := tidystat.Swarm(ys, spacing*scale, yspacing, 0.45*scale)
		for i, r := range cell {
			xs[len(all)+i] = c.x[r] + off + offs[i]
		}
		all = append(all, cell...)
	}
	return []*mark.Mark{c.pointsMark(all, xs[:len(all)], size, orDefault(l.Alpha, 0.5))}, nil
}

// Rug draws short ticks along the plot edges at each data value.
type Rug struct {
	// Sides selects the edges: any of "b" (bottom), "l" (left),
	// "t" (top), and "r" (right). If "", it is "bl".
	Sides string

	// Length is the tick length as a fraction of the axis range.
	// If 0, it is 0.03.
	Length float64

	// Alpha is the tick opacity. If 0, it is 0.5.
	Alpha float64
}

func (l Rug) validate(p *Plot) error {
	for _, s := range l.Sides {
		switch s {
		case 'b', 'l', 't', 'r':
		default:
			return fmt.Errorf("rug: sides must contain only b, l, t, r; got %q", l.Sides)
		}
	}
	return nil
}

func (l Rug) compile(c *compiler) ([]*mark.Mark, error) {
	sides := l.Sides
	if sides == "" {
		sides = "bl"
	}
	length, alpha := orDefault(l.Length, 0.03), orDefault(l.Alpha, 0.5)

	xlo, xhi := paddedBounds(c.x)
	ylo, yhi := 0.0, 1.0
	if c.y != nil {
		ylo, yhi = paddedBounds(c.y)
	}
	dx, dy := (xhi-xlo)*length, (yhi-ylo)*length

	m := &mark.Mark{Kind: mark.Path, Width: 0.5}
	tick := func(x0, y0, x1, y1 float64, stroke color.Color) {
		m.Groups = append(m.Groups, segment(x0, y0, x1, y1, stroke))
	}
	for r, x := range c.x {
		stroke := withAlpha(c.rowColor(r, defaultStroke), alpha)
		for _, s := range sides {
			switch s {
			case 'b':
				tick(x, ylo, x, ylo+dy, stroke)
			case 't':
				tick(x, yhi, x, yhi-dy, stroke)
			case 'l':
				if c.y != nil {
					tick(xlo, c.y[r], xlo+dx, c.y[r], stroke)
				}
			case 'r':
				if c.y != nil {
					tick(xhi, c.y[r], xhi-dx, c.y[r], stroke)
				}
			}
		}
	}
	return []*mark.Mark{m}, nil
}

// paddedBounds returns the range of xs widened by 4% on each side,
// matching the backends' axis padding.
func paddedBounds(xs []float64) (lo, hi float64) {
	lo, hi = finiteBounds(xs)
	if lo > hi {
		return 0, 1
	}
	pad := (hi - lo) * 0.04
	if pad == 0 {
		pad = 0.5
	}
	return lo - pad, hi + pad
}
