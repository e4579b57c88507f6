// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggrender translates a mark.Figure into a go-gg plot.
package ggrender

import (
	"image/color"
	"log"
	"math"
	"os"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-tidyplot/internal/mark"
)

// Warning receives notices about figure features go-gg cannot
// express.
var Warning = log.New(os.Stderr, "[ggrender] ", 0)

// Column names of the per-mark tables.
const (
	colX      = "x"
	colY      = "y"
	colGroup  = "group"
	colStroke = "stroke"
	colFill   = "fill"
	colLabel  = "label"
	colSize   = "size"
)

// Build returns a gg.Plot that draws f.
func Build(f *mark.Figure) *gg.Plot {
	if len(f.Legend) > 0 && f.LegendPosition != "none" {
		Warning.Printf("legend is not supported by the SVG backend; use a raster format to include it")
	}
	if f.AxisTextAngle != 0 {
		Warning.Printf("axis text angle is not supported by the SVG backend")
	}
	for _, m := range f.Marks {
		if m.Kind == mark.Text && len(m.Groups) > 0 {
			Warning.Printf("text is drawn as offset tags by the SVG backend; use a raster format to place it exactly")
			break
		}
	}

	// go-gg cannot tick a zero-width scale, so the scales always
	// include the figure's extent.
	xmin, xmax, ymin, ymax := f.Extent()
	p := gg.NewPlot(new(table.Builder).Add(colX, []float64{}).Add(colY, []float64{}).Done())
	p.SetScale("x", axisScale(&f.X, xmin, xmax))
	p.SetScale("y", axisScale(&f.Y, ymin, ymax))
	if f.Title != "" {
		p.Add(gg.Title(f.Title))
	}
	p.Add(gg.AxisLabel("x", f.X.Label), gg.AxisLabel("y", f.Y.Label))

	drawn := false
	for _, m := range f.Marks {
		if addMark(p, m) {
			drawn = true
		}
	}
	if !drawn {
		// go-gg cannot lay out a plot without layers.
		addMark(p, &mark.Mark{Kind: mark.Points, Groups: []mark.Group{{
			X:    []float64{xmin, xmax},
			Y:    []float64{ymin, ymax},
			Fill: color.Transparent,
		}}})
	}
	return p
}

// axisScale returns a linear scale over at least [lo, hi] labeled
// according to a.
func axisScale(a *mark.Axis, lo, hi float64) gg.ContinuousScaler {
	s := gg.NewLinearScaler()
	s.Include(lo).Include(hi)
	s.SetFormatter(a.FormatTick)
	return s
}

// markTable flattens m's groups into a table with one row per finite
// point.
func markTable(m *mark.Mark) *table.Table {
	var xs, ys []float64
	var groups []int
	var strokes, fills []color.Color
	var labels []string
	var sizes []gg.Unscaled
	size := pointSize(m.Radius)
	for gi, g := range m.Groups {
		stroke, fill := g.Stroke, g.Fill
		if stroke == nil {
			stroke = color.Transparent
		}
		if fill == nil {
			fill = color.Transparent
		}
		for i := range g.X {
			if !finite(g.X[i]) || !finite(g.Y[i]) {
				// NaN would poison go-gg's scale ranges.
				continue
			}
			xs = append(xs, g.X[i])
			ys = append(ys, g.Y[i])
			groups = append(groups, gi)
			strokes = append(strokes, stroke)
			fills = append(fills, fill)
			sizes = append(sizes, size)
			if g.Labels != nil {
				labels = append(labels, g.Labels[i])
			} else {
				labels = append(labels, "")
			}
		}
	}
	return new(table.Builder).
		Add(colX, xs).Add(colY, ys).Add(colGroup, groups).
		Add(colStroke, strokes).Add(colFill, fills).
		Add(colLabel, labels).Add(colSize, sizes).
		Done()
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// pointSize maps a radius in points to gg's size aesthetic, which is
// a fraction of the smaller plot dimension between 1% and 10%. The
// mapping assumes a plot roughly 400 points across.
func pointSize(radius float64) gg.Unscaled {
	frac := radius / 400
	u := (frac - 0.01) / 0.09
	return gg.Unscaled(math.Max(0, math.Min(1, u)))
}

// addMark adds a layer drawing m to p and reports whether m had any
// points.
func addMark(p *gg.Plot, m *mark.Mark) bool {
	tab := markTable(m)
	if tab.Len() == 0 {
		return false
	}
	defer p.Save().Restore()
	p.SetData(tab)
	p.GroupBy(colGroup)

	switch m.Kind {
	case mark.Points:
		p.Add(gg.LayerPoints{X: colX, Y: colY, Color: colFill, Size: colSize})

	case mark.Path:
		p.Add(gg.LayerPaths{X: colX, Y: colY, Color: colStroke})

	case mark.Polygon:
		p.Add(gg.LayerPaths{X: colX, Y: colY, Color: colStroke, Fill: colFill})

	case mark.Steps:
		step := gg.StepHV
		if m.Step == mark.StepVH {
			step = gg.StepVH
		}
		p.Add(gg.LayerSteps{
			LayerPaths: gg.LayerPaths{X: colX, Y: colY, Color: colStroke},
			Step:       step,
		})

	case mark.Text:
		p.Add(gg.LayerTags{X: colX, Y: colY, Label: colLabel})
	}
	return true
}
