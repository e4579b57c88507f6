// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-tidyplot/tidyplot"
	"github.com/google/go-cmp/cmp"
)

func testData() *table.Table {
	return new(table.Builder).
		Add("group", []string{"a", "a", "b", "b"}).
		Add("value", []float64{1, 2, 3, 4}).
		Add("lo", []float64{0, 1, 2, 3}).
		Add("hi", []float64{2, 3, 4, 5}).
		Done()
}

func TestStepLayers(t *testing.T) {
	for _, test := range []struct {
		step string
		want tidyplot.Layer
	}{
		{"add_boxplot alpha=0.3", tidyplot.Boxplot{Alpha: 0.3}},
		{"add_ci_errorbar 0.1 0.9", tidyplot.CIErrorbar{Width: 0.1, Level: 0.9}},
		{"add_ci_errorbar level=0.9 0.1", tidyplot.CIErrorbar{Width: 0.1, Level: 0.9}},
		{"add_violin draw_quantiles=0.5,0.9", tidyplot.Violin{DrawQuantiles: []float64{0.5, 0.9}}},
		{"add_violin draw_quantiles=", tidyplot.Violin{DrawQuantiles: []float64{}}},
		{"add_smooth lm se=false", tidyplot.Smooth{Method: "lm", SE: tidyplot.Bool(false)}},
		{`add_text "a = b" x=1 y=2 halign=left`, tidyplot.Text{Label: "a = b", X: 1, Y: 2, HAlign: "left"}},
		{"add_text p=0.05 x=1 y=2", tidyplot.Text{Label: "p=0.05", X: 1, Y: 2}},
		{"add_text x=1 n=4", tidyplot.Text{Label: "n=4", X: 1}},
		{"add_text label=x=1", tidyplot.Text{Label: "x=1"}},
		{"add_errorbar ymin=lo ymax=hi", tidyplot.Errorbar{YMin: "lo", YMax: "hi"}},
		{"add_boxplot outlier_alpha=1", tidyplot.Boxplot{OutlierAlpha: 1}},
		{"add_hex bins=10", tidyplot.Hex{Bins: 10}},
		{"add_ecdf", tidyplot.ECDF{}},
		{"add_count proportion dodge", tidyplot.Count{Stat: "proportion", Position: "dodge"}},
	} {
		t.Run(test.step, func(t *testing.T) {
			p := tidyplot.New(testData(), tidyplot.Aes{X: "group", Y: "value"})
			if err := Apply(p, []string{test.step}); err != nil {
				t.Fatal(err)
			}
			if err := p.Err(); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff([]tidyplot.Layer{test.want}, p.Layers()); diff != "" {
				t.Errorf("layers mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStepErrors(t *testing.T) {
	for _, test := range []struct {
		step string
		want string
	}{
		{"add_nothing", "unknown step"},
		{"add_boxplot width=wide", "width"},
		{"add_boxplot shape=1", "unknown parameter"},
		{"add_text hi x=1 size=3", "unknown parameter"},
		{"add_boxplot 1 2 3 4", "too many arguments"},
		{"add_boxplot alpha=1 alpha=2", "given twice"},
		{"add_smooth se=maybe", "se"},
		{`add_text "unterminated`, "Unterminated"},
		{"", "empty step"},
	} {
		t.Run(test.step, func(t *testing.T) {
			p := tidyplot.New(testData(), tidyplot.Aes{X: "group", Y: "value"})
			err := Apply(p, []string{test.step})
			if err == nil {
				t.Fatalf("want error containing %q", test.want)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("want error containing %q, got %v", test.want, err)
			}
		})
	}
}

func TestStepAdjustments(t *testing.T) {
	p := tidyplot.New(testData(), tidyplot.Aes{X: "group", Y: "value", Color: "group"})
	err := Apply(p, []string{
		"adjust_colors Set2",
		`adjust_labels title="My plot" y=Value`,
		"adjust_axis_text_angle 45",
		"adjust_legend_position bottom",
		"scale_y_log10",
		"scale_color_gradient white navy",
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Err(); err != nil {
		t.Fatal(err)
	}

	// Bad values are detected by the plot, not the recipe.
	if err := Apply(p, []string{"adjust_legend_position middle"}); err != nil {
		t.Fatal(err)
	}
	if p.Err() == nil {
		t.Error("want plot error for bad legend position")
	}
}

func TestParams(t *testing.T) {
	if diff := cmp.Diff([]string{"alpha", "outlier_alpha", "width"}, Params("add_boxplot")); diff != "" {
		t.Errorf("add_boxplot params mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ymin", "ymax", "alpha"}, Params("add_ribbon")); diff != "" {
		t.Errorf("add_ribbon params mismatch (-want +got):\n%s", diff)
	}
	if Params("add_nothing") != nil {
		t.Error("want nil params for unknown step")
	}
	for _, name := range Steps() {
		if Params(name) == nil {
			t.Errorf("step %s has nil params", name)
		}
	}
}

func TestRead(t *testing.T) {
	const input = `
data: results.csv
x: group
y: value
width: 400
steps:
  - add_boxplot alpha=0.3
  - adjust_colors Blues
`
	rc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	want := &Recipe{
		Data:  "results.csv",
		X:     "group",
		Y:     "value",
		Width: 400,
		Steps: []string{"add_boxplot alpha=0.3", "adjust_colors Blues"},
	}
	if diff := cmp.Diff(want, rc); diff != "" {
		t.Errorf("recipe mismatch (-want +got):\n%s", diff)
	}

	p, err := rc.Plot(testData())
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Layers()) != 1 {
		t.Errorf("want 1 layer, got %d", len(p.Layers()))
	}

	if _, err := Read(strings.NewReader("x: a\ncolour: b\n")); err == nil {
		t.Error("want error for unknown key")
	}
	if _, err := Read(strings.NewReader("")); err == nil {
		t.Error("want error for empty recipe")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fig.yaml")
	if err := os.WriteFile(path, []byte("data: in.csv\nx: a\n"), 0666); err != nil {
		t.Fatal(err)
	}
	rc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "in.csv"); rc.Data != want {
		t.Errorf("want data %q, got %q", want, rc.Data)
	}
}
