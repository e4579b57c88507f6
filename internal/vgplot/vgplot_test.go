// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vgplot

import (
	"bytes"
	"image/color"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/aclements/go-tidyplot/internal/mark"
)

func testFigure() *mark.Figure {
	red := color.RGBA{0xff, 0, 0, 0xff}
	return &mark.Figure{
		Title: "test",
		X:     mark.Axis{Label: "group", Breaks: []float64{1, 2}, BreakLabels: []string{"a", "b"}},
		Y:     mark.Axis{Label: "value"},
		Marks: []*mark.Mark{
			{Kind: mark.Points, Radius: 3, Groups: []mark.Group{{X: []float64{1, 2}, Y: []float64{3, 4}, Fill: red}}},
			{Kind: mark.Path, Dashes: []float64{4, 2}, Groups: []mark.Group{{X: []float64{1, 2}, Y: []float64{3, 4}, Stroke: red}}},
			{Kind: mark.Polygon, Groups: []mark.Group{{X: []float64{0.8, 1.2, 1.2, 0.8}, Y: []float64{0, 0, 3, 3}, Fill: red}}},
			{Kind: mark.Steps, Step: mark.StepVH, Groups: []mark.Group{{X: []float64{1, 2}, Y: []float64{1, 2}, Stroke: red}}},
			{Kind: mark.Text, HAlign: 0.5, VAlign: 0.5, Groups: []mark.Group{{X: []float64{1.5}, Y: []float64{5}, Labels: []string{"p = 0.01"}}}},
		},
		LegendTitle:    "group",
		Legend:         []mark.LegendEntry{{Label: "a", Color: red}},
		LegendPosition: "bottom",
		AxisTextAngle:  45,
	}
}

func TestBuild(t *testing.T) {
	p, err := Build(testFigure())
	if err != nil {
		t.Fatal(err)
	}
	// Categorical breaks widen the axis past the outer categories.
	if p.X.Min > 0.4 || p.X.Max < 2.6 {
		t.Errorf("x axis [%v, %v] does not cover the categories", p.X.Min, p.X.Max)
	}
	ticks := p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max)
	if len(ticks) != 2 || ticks[0].Label != "a" || ticks[1].Label != "b" {
		t.Errorf("want category ticks a, b; got %v", ticks)
	}
	if p.Legend.Top {
		t.Errorf("bottom legend should not be at the top")
	}
}

func TestWrite(t *testing.T) {
	for _, test := range []struct {
		format string
		prefix string
	}{
		{"png", "\x89PNG"},
		{"jpg", "\xff\xd8"},
		{"tiff", "II"},
		{"pdf", "%PDF"},
		{"eps", ""},
	} {
		t.Run(test.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(testFigure(), &buf, 4*vg.Inch, 3*vg.Inch, 0, test.format)
			if err != nil {
				t.Fatal(err)
			}
			if buf.Len() == 0 || !bytes.HasPrefix(buf.Bytes(), []byte(test.prefix)) {
				t.Errorf("output does not start with %q: %q", test.prefix, buf.Bytes()[:min(16, buf.Len())])
			}
		})
	}
}

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(testFigure(), &buf, 4*vg.Inch, 3*vg.Inch, 0, "svg"); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("<svg")) {
		t.Errorf("output is not SVG")
	}
}

func TestSupports(t *testing.T) {
	for path, want := range map[string]bool{
		"fig.png":  true,
		"fig.PDF":  true,
		"fig.tiff": true,
		"fig.gif":  false,
		"fig":      false,
	} {
		if got := Supports(path); got != want {
			t.Errorf("Supports(%q) = %v, want %v", path, got, want)
		}
	}
}
