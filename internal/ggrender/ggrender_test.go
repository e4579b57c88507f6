// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggrender

import (
	"bytes"
	"image/color"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/aclements/go-tidyplot/internal/mark"
)

func TestBuild(t *testing.T) {
	var warnings bytes.Buffer
	Warning.SetOutput(&warnings)
	defer Warning.SetOutput(io.Discard)

	blue := color.RGBA{0, 0, 0xff, 0xff}
	fig := &mark.Figure{
		Title: "scores",
		X:     mark.Axis{Label: "group", Breaks: []float64{1, 2}, BreakLabels: []string{"ctl", "trt"}},
		Y:     mark.Axis{Label: "score"},
		Marks: []*mark.Mark{
			{Kind: mark.Points, Radius: 3, Groups: []mark.Group{{X: []float64{1, 2}, Y: []float64{3, 4}, Fill: blue}}},
			{Kind: mark.Polygon, Groups: []mark.Group{{X: []float64{0.8, 1.2, 1.2, 0.8}, Y: []float64{0, 0, 3, 3}, Fill: blue}}},
			{Kind: mark.Steps, Groups: []mark.Group{{X: []float64{1, 2}, Y: []float64{1, 2}, Stroke: blue}}},
			{Kind: mark.Text, Groups: []mark.Group{{X: []float64{1.5}, Y: []float64{5}, Labels: []string{"p = 0.010"}}}},
			{Kind: mark.Path},
		},
		Legend:         []mark.LegendEntry{{Label: "ctl", Color: blue}},
		LegendPosition: "right",
	}
	p := Build(fig)

	var buf bytes.Buffer
	if err := p.WriteSVG(&buf, 400, 300); err != nil {
		t.Fatal(err)
	}
	svg := buf.String()
	for _, want := range []string{"<svg", "scores"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG does not contain %q", want)
		}
	}
	for _, want := range []string{"legend", "tags"} {
		if !strings.Contains(warnings.String(), want) {
			t.Errorf("want a %s warning, got %q", want, warnings.String())
		}
	}
}

func TestBuildDegenerate(t *testing.T) {
	point := func(x, y float64) mark.Group {
		return mark.Group{X: []float64{x}, Y: []float64{y}, Fill: color.Black}
	}
	for _, test := range []struct {
		name string
		fig  *mark.Figure
	}{
		{"empty", &mark.Figure{}},
		{"no points", &mark.Figure{Marks: []*mark.Mark{{Kind: mark.Points, Groups: []mark.Group{{}}}}}},
		{"one point", &mark.Figure{Marks: []*mark.Mark{{Kind: mark.Points, Groups: []mark.Group{point(5, 7)}}}}},
		{"constant x", &mark.Figure{Marks: []*mark.Mark{{Kind: mark.Path, Groups: []mark.Group{
			{X: []float64{1, 1}, Y: []float64{0, 3}, Stroke: color.Black},
		}}}}},
		{"text only", &mark.Figure{Marks: []*mark.Mark{{Kind: mark.Text, Groups: []mark.Group{
			{X: []float64{1.5}, Y: []float64{0.8}, Labels: []string{"p = 0.010"}},
		}}}}},
		{"empty categories", &mark.Figure{X: mark.Axis{Breaks: []float64{}, BreakLabels: []string{}}}},
	} {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Build(test.fig).WriteSVG(&buf, 400, 300); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(buf.String(), "<svg") {
				t.Errorf("output is not SVG")
			}
		})
	}
}

func TestPointSize(t *testing.T) {
	if got := pointSize(0); got != 0 {
		t.Errorf("pointSize(0) = %v, want 0", got)
	}
	if got := pointSize(1e6); got != 1 {
		t.Errorf("pointSize(huge) = %v, want 1", got)
	}
}

func init() {
	Warning = log.New(io.Discard, "", 0)
}
