// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mark is the backend-neutral description of a rendered
// figure. tidyplot compiles its layers into a Figure, and each
// backend translates a Figure into calls on its plotting library.
//
// All coordinates are float64 positions in data space, after any
// axis transform and after categorical values have been mapped to
// positions.
package mark

import (
	"fmt"
	"image/color"
	"math"
)

// Kind is the type of visual primitive a Mark draws.
type Kind int

const (
	// Points draws a circle at each (X, Y).
	Points Kind = iota

	// Path connects each group's points in order with a line.
	Path

	// Polygon fills and/or strokes each group as a closed shape.
	Polygon

	// Steps connects each group's points with horizontal and
	// vertical segments.
	Steps

	// Text draws each group's Labels at (X, Y).
	Text
)

func (k Kind) String() string {
	switch k {
	case Points:
		return "points"
	case Path:
		return "path"
	case Polygon:
		return "polygon"
	case Steps:
		return "steps"
	case Text:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// StepMode controls how Steps connects subsequent points.
type StepMode int

const (
	// StepHV moves horizontally, then vertically.
	StepHV StepMode = iota

	// StepVH moves vertically, then horizontally.
	StepVH
)

// Group is a run of points drawn with one style.
type Group struct {
	X, Y []float64

	// Stroke and Fill may be nil for no stroke or no fill.
	// Alpha is folded into the colors.
	Stroke, Fill color.Color

	// Labels holds one label per point for Text marks.
	Labels []string
}

// Mark is one compiled layer primitive.
type Mark struct {
	Kind   Kind
	Groups []Group

	// Radius is the point radius in points (1/72 inch).
	Radius float64

	// Width is the line width in points. If 0, backends use
	// their default.
	Width float64

	// Dashes is the dash pattern in points; nil is solid.
	Dashes []float64

	// Step is the step direction for Steps marks.
	Step StepMode

	// HAlign and VAlign anchor Text marks: 0 is left/bottom, 0.5
	// is center, 1 is right/top.
	HAlign, VAlign float64
}

// Axis describes how positions on one axis are labeled.
type Axis struct {
	// Label is the axis title.
	Label string

	// Breaks and BreakLabels, if non-nil, give fixed tick
	// positions and their labels (used for categorical axes).
	Breaks      []float64
	BreakLabels []string

	// Format formats a tick position for display. If nil,
	// positions are printed with %.6g.
	Format func(float64) string
}

// FormatTick formats the tick at position v.
func (a *Axis) FormatTick(v float64) string {
	if a.Breaks != nil {
		for i, b := range a.Breaks {
			if math.Abs(b-v) < 1e-9 {
				return a.BreakLabels[i]
			}
		}
		return ""
	}
	if a.Format != nil {
		return a.Format(v)
	}
	return fmt.Sprintf("%.6g", v)
}

// LegendEntry is one key of the color legend.
type LegendEntry struct {
	Label string
	Color color.Color
}

// Figure is a complete plot.
type Figure struct {
	Title string
	X, Y  Axis
	Marks []*Mark

	// LegendTitle and Legend describe the color legend.
	LegendTitle string
	Legend      []LegendEntry

	// LegendPosition is "right", "left", "top", "bottom", or
	// "none".
	LegendPosition string

	// AxisTextAngle rotates the X tick labels, in degrees.
	AxisTextAngle float64
}

// Bounds returns the extent of the mark coordinates in f. Each axis
// is bounded separately, so the finite Y of a line spanning all of X
// counts toward the Y range. Points with a NaN coordinate are
// ignored. ok is false unless both axes have finite coordinates.
func (f *Figure) Bounds() (xmin, xmax, ymin, ymax float64, ok bool) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, m := range f.Marks {
		for _, g := range m.Groups {
			for i := range g.X {
				x, y := g.X[i], g.Y[i]
				if math.IsNaN(x) || math.IsNaN(y) {
					continue
				}
				if finite(x) {
					xmin, xmax = math.Min(xmin, x), math.Max(xmax, x)
				}
				if finite(y) {
					ymin, ymax = math.Min(ymin, y), math.Max(ymax, y)
				}
			}
		}
	}
	return xmin, xmax, ymin, ymax, xmin <= xmax && ymin <= ymax
}

// Extent returns the range each axis must show: the bounds of the
// finite points, widened to keep categorical breaks inside. A
// zero-width range is widened by 0.5 on each side, and an axis with
// no finite points spans [0, 1].
func (f *Figure) Extent() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, ymin, ymax, _ = f.Bounds()
	xmin, xmax = f.X.extent(xmin, xmax)
	ymin, ymax = f.Y.extent(ymin, ymax)
	return
}

func (a *Axis) extent(lo, hi float64) (float64, float64) {
	for _, b := range a.Breaks {
		lo, hi = math.Min(lo, b-0.6), math.Max(hi, b+0.6)
	}
	switch {
	case lo > hi:
		return 0, 1
	case lo == hi:
		return lo - 0.5, hi + 0.5
	}
	return lo, hi
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
