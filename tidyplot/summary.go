// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-tidyplot/internal/mark"
	"github.com/aclements/go-tidyplot/tidystat"
)

// orDefault returns v, or def if v is 0.
func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// rect returns a closed rectangle.
func rect(x0, x1, y0, y1 float64, stroke, fill color.Color) mark.Group {
	return mark.Group{
		X:      []float64{x0, x1, x1, x0, x0},
		Y:      []float64{y0, y0, y1, y1, y0},
		Stroke: stroke,
		Fill:   fill,
	}
}

// segment returns a single line segment.
func segment(x0, y0, x1, y1 float64, stroke color.Color) mark.Group {
	return mark.Group{X: []float64{x0, x1}, Y: []float64{y0, y1}, Stroke: stroke}
}

// errorbar returns a vertical bar from lo to hi at x with horizontal
// caps of the given total width.
func errorbar(x, lo, hi, width float64, stroke color.Color) []mark.Group {
	h := width / 2
	return []mark.Group{
		segment(x, lo, x, hi, stroke),
		segment(x-h, lo, x+h, lo, stroke),
		segment(x-h, hi, x+h, hi, stroke),
	}
}

// summarize computes fun of the Y values at each X in each color
// series and returns the results with their series.
func (c *compiler) summarize(fun tidystat.SummaryFunc, minN int) ([]series, [][]tidystat.Interval, [][]float64) {
	ss := c.series()
	tabs := c.runStat(tidystat.Summary{X: "x", Y: "y", Fun: fun, MinN: minN}, ss)
	ivs := make([][]tidystat.Interval, len(ss))
	xs := make([][]float64, len(ss))
	for i, t := range tabs {
		x, y, lo, hi := column(t, "x"), column(t, "y"), column(t, "ymin"), column(t, "ymax")
		xs[i] = x
		for j := range x {
			ivs[i] = append(ivs[i], tidystat.Interval{Y: y[j], YMin: lo[j], YMax: hi[j]})
		}
	}
	return ss, ivs, xs
}

// MeanBar draws a bar from 0 to the mean of Y at each X.
type MeanBar struct {
	// Alpha is the fill opacity. If 0, it is 0.4.
	Alpha float64

	// Width is the bar width in X category units. If 0, it is
	// 0.7.
	Width float64
}

func (l MeanBar) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("mean bar"); err != nil {
		return nil, err
	}
	alpha, width := orDefault(l.Alpha, 0.4), orDefault(l.Width, 0.7)
	ss, ivs, xs := c.summarize(tidystat.MeanOnly, 1)
	m := &mark.Mark{Kind: mark.Polygon}
	for i, s := range ss {
		off, scale := c.dodge(s.level)
		h := width * scale / 2
		fill := withAlpha(c.color(s.level, defaultFill), alpha)
		for j, iv := range ivs[i] {
			x := xs[i][j] + off
			m.Groups = append(m.Groups, rect(x-h, x+h, 0, iv.Y, nil, fill))
		}
	}
	return []*mark.Mark{m}, nil
}

// summaryErrorbar draws error bars of fun at each X.
func summaryErrorbar(c *compiler, name string, fun tidystat.SummaryFunc, minN int, width float64) ([]*mark.Mark, error) {
	if err := c.requireY(name); err != nil {
		return nil, err
	}
	width = orDefault(width, 0.2)
	ss, ivs, xs := c.summarize(fun, minN)
	m := &mark.Mark{Kind: mark.Path}
	for i, s := range ss {
		off, scale := c.dodge(s.level)
		stroke := c.color(s.level, defaultStroke)
		for j, iv := range ivs[i] {
			if !finite(iv.YMin) || !finite(iv.YMax) {
				continue
			}
			m.Groups = append(m.Groups, errorbar(xs[i][j]+off, iv.YMin, iv.YMax, width*scale, stroke)...)
		}
	}
	return []*mark.Mark{m}, nil
}

// SEMErrorbar draws the mean ± one standard error of the mean of Y at
// each X.
type SEMErrorbar struct {
	// Width is the cap width. If 0, it is 0.2.
	Width float64
}

func (l SEMErrorbar) compile(c *compiler) ([]*mark.Mark, error) {
	return summaryErrorbar(c, "SEM error bar", tidystat.MeanSE, 1, l.Width)
}

// SDErrorbar draws the mean ± one population standard deviation of Y
// at each X.
type SDErrorbar struct {
	// Width is the cap width. If 0, it is 0.2.
	Width float64
}

func (l SDErrorbar) compile(c *compiler) ([]*mark.Mark, error) {
	return summaryErrorbar(c, "SD error bar", tidystat.MeanSD, 1, l.Width)
}

// CIErrorbar draws a Student t confidence interval for the mean of Y
// at each X. Groups with fewer than two values are skipped.
type CIErrorbar struct {
	// Width is the cap width. If 0, it is 0.2.
	Width float64

	// Level is the confidence level. If 0, it is 0.95.
	Level float64
}

func (l CIErrorbar) validate(p *Plot) error {
	if l.Level < 0 || l.Level >= 1 {
		return fmt.Errorf("CI error bar: confidence level must be in (0, 1); got %v", l.Level)
	}
	return nil
}

func (l CIErrorbar) compile(c *compiler) ([]*mark.Mark, error) {
	level := orDefault(l.Level, 0.95)
	return summaryErrorbar(c, "CI error bar", tidystat.MeanCIFunc(level), 2, l.Width)
}

// Errorbar draws an error bar at each row from the values of the
// YMin column to those of the YMax column.
type Errorbar struct {
	YMin, YMax string

	// Width is the cap width. If 0, it is 0.2.
	Width float64
}

func (l Errorbar) validate(p *Plot) error {
	if l.YMin == "" || l.YMax == "" {
		return fmt.Errorf("error bar requires YMin and YMax columns")
	}
	for _, col := range []string{l.YMin, l.YMax} {
		if p.data != nil && p.data.Column(col) == nil {
			return fmt.Errorf("error bar: unknown column %q", col)
		}
	}
	return nil
}

func (l Errorbar) compile(c *compiler) ([]*mark.Mark, error) {
	lo, err := c.yColumn(l.YMin)
	if err != nil {
		return nil, err
	}
	hi, err := c.yColumn(l.YMax)
	if err != nil {
		return nil, err
	}
	width := orDefault(l.Width, 0.2)
	m := &mark.Mark{Kind: mark.Path}
	for r, x := range c.x {
		if !finite(lo[r]) || !finite(hi[r]) {
			continue
		}
		off, scale := c.dodge(c.level[r])
		stroke := c.rowColor(r, defaultStroke)
		m.Groups = append(m.Groups, errorbar(x+off, lo[r], hi[r], width*scale, stroke)...)
	}
	return []*mark.Mark{m}, nil
}
