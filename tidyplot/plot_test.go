// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"image/color"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
)

func init() {
	Warning = log.New(io.Discard, "", 0)
}

// groups is a small two-group experiment.
func groups() *table.Table {
	return new(table.Builder).
		Add("group", []string{"b", "a", "b", "a", "a", "b"}).
		Add("value", []float64{5, 1, 6, 2, 3, 7}).
		Add("dose", []float64{1, 10, 100, 1, 10, 100}).
		Add("sex", []string{"f", "m", "m", "f", "m", "f"}).
		Done()
}

func TestNewErrors(t *testing.T) {
	for _, test := range []struct {
		name string
		data *table.Table
		aes  Aes
		want string
	}{
		{"nil data", nil, Aes{X: "group"}, "no data"},
		{"no x", groups(), Aes{Y: "value"}, "X is required"},
		{"unknown y", groups(), Aes{X: "group", Y: "score"}, `"score"`},
		{"unknown color", groups(), Aes{X: "group", Color: "treatment"}, `"treatment"`},
	} {
		t.Run(test.name, func(t *testing.T) {
			err := New(test.data, test.aes).Err()
			if err == nil {
				t.Fatalf("want error containing %q", test.want)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("want error containing %q, got %v", test.want, err)
			}
		})
	}
	if err := New(groups(), Aes{X: "group", Y: "value", Color: "sex"}).Err(); err != nil {
		t.Errorf("valid plot: unexpected error %v", err)
	}
}

func TestAddInvalid(t *testing.T) {
	p := New(groups(), Aes{X: "group", Y: "value"}).
		Add(Count{Stat: "median"}, Scatter{}, Rug{Sides: "x"}, Step{Direction: "up"})
	if n := len(p.Layers()); n != 1 {
		t.Errorf("want only the valid layer added, got %d layers", n)
	}
	err := p.Err()
	if err == nil {
		t.Fatal("want errors for invalid layers")
	}
	for _, want := range []string{"median", "step", "rug"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("errors do not mention %q: %v", want, err)
		}
	}
}

func TestValidation(t *testing.T) {
	for _, test := range []struct {
		name  string
		layer Layer
	}{
		{"ci level", CIErrorbar{Level: 1.5}},
		{"errorbar columns", Errorbar{YMin: "lo"}},
		{"errorbar unknown", Errorbar{YMin: "lo", YMax: "hi"}},
		{"ribbon", Ribbon{YMin: "value"}},
		{"smooth", Smooth{Method: "spline"}},
		{"violin quantile", Violin{DrawQuantiles: []float64{1.5}}},
		{"quantiles", Quantiles{Quantiles: []float64{-1}}},
		{"hline linetype", HLine{Linetype: "wavy"}},
		{"vline color", VLine{Color: "notacolor"}},
		{"text align", Text{HAlign: "middle"}},
		{"pvalue test", TestPValue{Test: "anova"}},
		{"correlation", CorrelationText{Method: "kendall"}},
		{"histogram bins", Histogram{Bins: -1}},
		{"hex bins", Hex{Bins: -1}},
		{"count position", Count{Position: "fill"}},
	} {
		t.Run(test.name, func(t *testing.T) {
			p := New(groups(), Aes{X: "group", Y: "value"}).Add(test.layer)
			if p.Err() == nil {
				t.Errorf("want error for %#v", test.layer)
			}
			if len(p.Layers()) != 0 {
				t.Errorf("invalid layer was added")
			}
		})
	}
}

func TestAdjust(t *testing.T) {
	p := New(groups(), Aes{X: "group", Y: "value"}).
		AdjustLabels(Labels{Title: "Effect", Y: "Response"}).
		AdjustLabels(Labels{X: "Group"}).
		AdjustAxisTextAngle(45).
		AdjustLegendPosition("bottom").
		AdjustColors("Set2")
	if err := p.Err(); err != nil {
		t.Fatal(err)
	}
	if want := (Labels{Title: "Effect", X: "Group", Y: "Response"}); p.labels != want {
		t.Errorf("labels: want %+v, got %+v", want, p.labels)
	}
	if p.legendPos != "bottom" || p.axisTextAngle != 45 || p.palette != "Set2" {
		t.Errorf("adjustments not recorded: %q %v %q", p.legendPos, p.axisTextAngle, p.palette)
	}

	p.AdjustColors("NoSuchPalette").AdjustLegendPosition("middle")
	err := p.Err()
	if err == nil || !strings.Contains(err.Error(), "NoSuchPalette") || !strings.Contains(err.Error(), "middle") {
		t.Errorf("want palette and legend errors, got %v", err)
	}
	if p.palette != "Set2" || p.legendPos != "bottom" {
		t.Errorf("bad adjustments should not replace good ones")
	}
}

func TestBrewerPalettes(t *testing.T) {
	names := BrewerPalettes()
	found := false
	for _, n := range names {
		if n == "Blues" {
			found = true
		}
	}
	if !found {
		t.Errorf("Blues missing from %v", names)
	}
	cs, ok := brewerColors("Set1", 3)
	if !ok || len(cs) != 3 {
		t.Errorf("brewerColors(Set1, 3) = %v, %v", cs, ok)
	}
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#f00", color.RGBA{0xff, 0, 0, 0xff}, true},
		{"#00ff80", color.RGBA{0, 0xff, 0x80, 0xff}, true},
		{"navy", color.RGBA{0, 0, 0x80, 0xff}, true},
		{"Dark Grey", color.RGBA{0xa9, 0xa9, 0xa9, 0xff}, true},
		{"#12", color.RGBA{}, false},
		{"#gggggg", color.RGBA{}, false},
		{"nocolor", color.RGBA{}, false},
	} {
		got, err := ParseColor(test.in)
		if (err == nil) != test.ok {
			t.Errorf("ParseColor(%q): unexpected error state %v", test.in, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseColor(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestScaleColorGradient(t *testing.T) {
	p := New(groups(), Aes{X: "dose", Y: "value", Color: "value"}).ScaleColorGradient("", "")
	if err := p.Err(); err != nil {
		t.Fatal(err)
	}
	if len(p.gradient) != 2 || p.gradient[0] != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("default gradient: got %v", p.gradient)
	}
	p.ScaleColorGradient2("red", "", "notacolor")
	if p.Err() == nil {
		t.Errorf("want error for bad gradient color")
	}
}
