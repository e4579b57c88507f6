// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vgplot translates a mark.Figure into a gonum plot, which
// can be written as PNG, JPEG, TIFF, PDF, EPS, or SVG.
package vgplot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/aclements/go-tidyplot/internal/mark"
)

// Formats lists the file extensions Write understands.
var Formats = []string{"png", "jpg", "jpeg", "tif", "tiff", "pdf", "eps", "svg"}

// Supports reports whether path has an extension Write understands.
func Supports(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Formats {
		if f == ext {
			return true
		}
	}
	return false
}

// DefaultDPI is the resolution of raster output when none is given.
const DefaultDPI = 96

// Write renders f in the given format ("png", "pdf", ...) to w.
// Raster formats are drawn at dpi dots per inch.
func Write(f *mark.Figure, w io.Writer, width, height vg.Length, dpi int, format string) error {
	p, err := Build(f)
	if err != nil {
		return err
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	var wt io.WriterTo
	switch format {
	case "png", "jpg", "jpeg", "tif", "tiff":
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(dpi))
		p.Draw(draw.New(c))
		switch format {
		case "png":
			wt = vgimg.PngCanvas{Canvas: c}
		case "jpg", "jpeg":
			wt = vgimg.JpegCanvas{Canvas: c}
		default:
			wt = vgimg.TiffCanvas{Canvas: c}
		}
	default:
		wt, err = p.WriterTo(width, height, format)
		if err != nil {
			return err
		}
	}
	_, err = wt.WriteTo(w)
	return err
}

// Build returns a gonum plot that draws f.
func Build(f *mark.Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = f.X.Label
	p.Y.Label.Text = f.Y.Label
	p.X.Tick.Marker = ticker{&f.X}
	p.Y.Tick.Marker = ticker{&f.Y}
	if f.AxisTextAngle != 0 {
		p.X.Tick.Label.Rotation = f.AxisTextAngle * math.Pi / 180
		p.X.Tick.Label.XAlign = text.XRight
	}
	p.Add(plotter.NewGrid())

	for _, m := range f.Marks {
		if err := addMark(p, m); err != nil {
			return nil, fmt.Errorf("%s mark: %w", m.Kind, err)
		}
	}

	xmin, xmax, ymin, ymax := f.Extent()
	padAxis(&p.X, xmin, xmax)
	padAxis(&p.Y, ymin, ymax)

	addLegend(p, f)
	return p, nil
}

// padAxis sets the range of a to [min, max] plus a margin.
func padAxis(a *plot.Axis, min, max float64) {
	pad := (max - min) * 0.04
	a.Min, a.Max = min-pad, max+pad
}

func addLegend(p *plot.Plot, f *mark.Figure) {
	if len(f.Legend) == 0 || f.LegendPosition == "none" {
		return
	}
	switch f.LegendPosition {
	case "left":
		p.Legend.Left = true
		p.Legend.Top = true
	case "top":
		p.Legend.Top = true
	case "bottom":
		p.Legend.Top = false
	default:
		p.Legend.Top = true
	}
	for _, e := range f.Legend {
		sw, err := plotter.NewScatter(plotter.XYs{{}})
		if err != nil {
			continue
		}
		sw.GlyphStyle = draw.GlyphStyle{Color: e.Color, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}
		p.Legend.Add(e.Label, sw)
	}
}

// ticker places ticks according to a mark.Axis.
type ticker struct {
	axis *mark.Axis
}

func (t ticker) Ticks(min, max float64) []plot.Tick {
	if t.axis.Breaks != nil {
		ticks := make([]plot.Tick, len(t.axis.Breaks))
		for i, b := range t.axis.Breaks {
			ticks[i] = plot.Tick{Value: b, Label: t.axis.BreakLabels[i]}
		}
		return ticks
	}
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = t.axis.FormatTick(ticks[i].Value)
		}
	}
	return ticks
}

func xys(g mark.Group) plotter.XYs {
	pts := make(plotter.XYs, 0, len(g.X))
	for i := range g.X {
		x, y := g.X[i], g.Y[i]
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: y})
	}
	return pts
}

func lineStyle(m *mark.Mark, c color.Color) draw.LineStyle {
	ls := plotter.DefaultLineStyle
	ls.Color = c
	if m.Width > 0 {
		ls.Width = vg.Points(m.Width)
	}
	for _, d := range m.Dashes {
		ls.Dashes = append(ls.Dashes, vg.Points(d))
	}
	return ls
}

func addMark(p *plot.Plot, m *mark.Mark) error {
	for _, g := range m.Groups {
		pts := xys(g)
		if len(pts) == 0 {
			continue
		}
		switch m.Kind {
		case mark.Points:
			s, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			c := g.Fill
			if c == nil {
				c = g.Stroke
			}
			s.GlyphStyle = draw.GlyphStyle{Color: c, Radius: vg.Points(m.Radius), Shape: draw.CircleGlyph{}}
			p.Add(s)

		case mark.Path, mark.Steps:
			if g.Stroke == nil {
				continue
			}
			l, err := plotter.NewLine(pts)
			if err != nil {
				return err
			}
			l.LineStyle = lineStyle(m, g.Stroke)
			if m.Kind == mark.Steps {
				l.StepStyle = plotter.PostStep
				if m.Step == mark.StepVH {
					l.StepStyle = plotter.PreStep
				}
			}
			p.Add(l)

		case mark.Polygon:
			poly, err := plotter.NewPolygon(pts)
			if err != nil {
				return err
			}
			poly.Color = g.Fill
			if g.Stroke == nil {
				poly.LineStyle.Width = 0
			} else {
				poly.LineStyle = lineStyle(m, g.Stroke)
			}
			p.Add(poly)

		case mark.Text:
			labels := make([]string, 0, len(pts))
			for i := range g.X {
				x, y := g.X[i], g.Y[i]
				if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
					continue
				}
				labels = append(labels, g.Labels[i])
			}
			l, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
			if err != nil {
				return err
			}
			for i := range l.TextStyle {
				l.TextStyle[i].XAlign = text.XAlignment(-m.HAlign)
				l.TextStyle[i].YAlign = text.YAlignment(-m.VAlign)
				if g.Stroke != nil {
					l.TextStyle[i].Color = g.Stroke
				}
			}
			p.Add(l)
		}
	}
	return nil
}
