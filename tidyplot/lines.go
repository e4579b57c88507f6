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

// smoothColor is the default color of fitted lines.
var smoothColor color.Color = color.RGBA{0x33, 0x66, 0xff, 0xff}

// sortedByX returns rows ordered by X, keeping ties in row order.
func (c *compiler) sortedByX(rows []int) []int {
	out := append([]int(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool { return c.x[out[i]] < c.x[out[j]] })
	return out
}

// Line connects the rows of each color in order of X.
type Line struct {
	// Alpha is the line opacity. If 0, it is 1.
	Alpha float64
}

func (l Line) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("line"); err != nil {
		return nil, err
	}
	alpha := orDefault(l.Alpha, 1)
	m := &mark.Mark{Kind: mark.Path}
	for _, s := range c.series() {
		if len(s.rows) == 0 {
			continue
		}
		xs, ys := c.xy(c.sortedByX(s.rows))
		m.Groups = append(m.Groups, mark.Group{X: xs, Y: ys, Stroke: withAlpha(c.color(s.level, defaultStroke), alpha)})
	}
	return []*mark.Mark{m}, nil
}

// Step connects the rows of each color in order of X with horizontal
// and vertical segments.
type Step struct {
	// Direction is "hv" (horizontal, then vertical) or "vh". If
	// "", it is "hv".
	Direction string
}

func (l Step) validate(p *Plot) error {
	switch l.Direction {
	case "", "hv", "vh":
		return nil
	}
	return fmt.Errorf("step: direction must be \"hv\" or \"vh\"; got %q", l.Direction)
}

func (l Step) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("step"); err != nil {
		return nil, err
	}
	m := &mark.Mark{Kind: mark.Steps, Step: mark.StepHV}
	if l.Direction == "vh" {
		m.Step = mark.StepVH
	}
	for _, s := range c.series() {
		if len(s.rows) == 0 {
			continue
		}
		xs, ys := c.xy(c.sortedByX(s.rows))
		m.Groups = append(m.Groups, mark.Group{X: xs, Y: ys, Stroke: c.color(s.level, defaultStroke)})
	}
	return []*mark.Mark{m}, nil
}

// Bool returns a pointer to b, for optional fields such as
// Smooth.SE.
func Bool(b bool) *bool {
	return &b
}

// Smooth draws a regression of Y on X for each color, optionally with
// a confidence band.
type Smooth struct {
	// Method is "loess" (local quadratic regression) or "lm"
	// (least squares line). If "", it is "loess".
	Method string

	// SE enables the confidence band. If nil, the band is drawn.
	SE *bool
}

func (l Smooth) validate(p *Plot) error {
	_, err := tidystat.ParseSmoothMethod(l.Method)
	return err
}

func (l Smooth) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("smooth"); err != nil {
		return nil, err
	}
	method, err := tidystat.ParseSmoothMethod(l.Method)
	if err != nil {
		return nil, err
	}
	se := l.SE == nil || *l.SE
	ss := c.seriesWith(3)
	tabs := c.runStat(tidystat.Smooth{X: "x", Y: "y", Method: method, SE: se, Seed: 1}, ss)
	band := &mark.Mark{Kind: mark.Polygon}
	line := &mark.Mark{Kind: mark.Path, Width: 1.5}
	for i, s := range ss {
		xs, ys := column(tabs[i], "x"), column(tabs[i], "y")
		if len(xs) == 0 {
			continue
		}
		stroke := c.color(s.level, smoothColor)
		if se {
			band.Groups = append(band.Groups, ribbon(xs, column(tabs[i], "ymin"), column(tabs[i], "ymax"),
				withAlpha(c.color(s.level, color.Gray{0x99}), 0.4)))
		}
		line.Groups = append(line.Groups, mark.Group{X: xs, Y: ys, Stroke: stroke})
	}
	return []*mark.Mark{band, line}, nil
}

// ribbon returns the polygon between lo and hi over xs.
func ribbon(xs, lo, hi []float64, fill color.Color) mark.Group {
	g := mark.Group{Fill: fill}
	for i := range xs {
		g.X = append(g.X, xs[i])
		g.Y = append(g.Y, hi[i])
	}
	for i := len(xs) - 1; i >= 0; i-- {
		g.X = append(g.X, xs[i])
		g.Y = append(g.Y, lo[i])
	}
	return g
}

// Ribbon fills the area between the YMin and YMax columns for each
// color, in order of X.
type Ribbon struct {
	YMin, YMax string

	// Alpha is the fill opacity. If 0, it is 0.2.
	Alpha float64
}

func (l Ribbon) validate(p *Plot) error {
	if l.YMin == "" || l.YMax == "" {
		return fmt.Errorf("ribbon requires YMin and YMax columns")
	}
	for _, col := range []string{l.YMin, l.YMax} {
		if p.data != nil && p.data.Column(col) == nil {
			return fmt.Errorf("ribbon: unknown column %q", col)
		}
	}
	return nil
}

func (l Ribbon) compile(c *compiler) ([]*mark.Mark, error) {
	lo, err := c.yColumn(l.YMin)
	if err != nil {
		return nil, err
	}
	hi, err := c.yColumn(l.YMax)
	if err != nil {
		return nil, err
	}
	alpha := orDefault(l.Alpha, 0.2)
	m := &mark.Mark{Kind: mark.Polygon}
	for _, s := range c.series() {
		var xs, los, his []float64
		for _, r := range c.sortedByX(s.rows) {
			if !finite(lo[r]) || !finite(hi[r]) {
				continue
			}
			xs = append(xs, c.x[r])
			los = append(los, lo[r])
			his = append(his, hi[r])
		}
		if len(xs) == 0 {
			continue
		}
		m.Groups = append(m.Groups, ribbon(xs, los, his, withAlpha(c.color(s.level, defaultFill), alpha)))
	}
	return []*mark.Mark{m}, nil
}
