// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/aclements/go-tidyplot/internal/mark"
	"github.com/aclements/go-tidyplot/tidystat"
)

// dashes maps line type names to dash patterns in points.
var dashes = map[string][]float64{
	"solid":    nil,
	"dashed":   {4, 4},
	"dotted":   {1, 3},
	"dotdash":  {1, 3, 4, 3},
	"longdash": {8, 4},
	"twodash":  {2, 2, 6, 2},
}

// hspan returns a horizontal line at y across the whole plot. The
// infinite ends are resolved to the plot's extent at render time.
func hspan(y float64, stroke color.Color) mark.Group {
	return segment(math.Inf(-1), y, math.Inf(1), y, stroke)
}

// vspan returns a vertical line at x across the whole plot.
func vspan(x float64, stroke color.Color) mark.Group {
	return segment(x, math.Inf(-1), x, math.Inf(1), stroke)
}

// parseAlign maps an alignment name to a fraction: 0 for left or
// bottom, 0.5 for center, 1 for right or top.
func parseAlign(s, low, high string) (float64, error) {
	switch s {
	case "", "center":
		return 0.5, nil
	case low:
		return 0, nil
	case high:
		return 1, nil
	}
	return 0, fmt.Errorf("alignment must be %q, \"center\", or %q; got %q", low, high, s)
}

// Text draws a label at a fixed position in data coordinates. On a
// categorical axis, the categories are at positions 1, 2, ....
type Text struct {
	Label string
	X, Y  float64

	// HAlign is "left", "center", or "right". VAlign is
	// "bottom", "center", or "top". "" means "center".
	HAlign, VAlign string
}

func (l Text) validate(p *Plot) error {
	if _, err := parseAlign(l.HAlign, "left", "right"); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	if _, err := parseAlign(l.VAlign, "bottom", "top"); err != nil {
		return fmt.Errorf("text: %w", err)
	}
	return nil
}

func (l Text) compile(c *compiler) ([]*mark.Mark, error) {
	h, err := parseAlign(l.HAlign, "left", "right")
	if err != nil {
		return nil, err
	}
	v, err := parseAlign(l.VAlign, "bottom", "top")
	if err != nil {
		return nil, err
	}
	x, y := l.X, l.Y
	if t := c.p.xTrans; t != nil && c.xMap.levels == nil {
		x = t.f(x)
	}
	if t := c.p.yTrans; t != nil && c.yMap.levels == nil {
		y = t.f(y)
	}
	return []*mark.Mark{textMark(x, y, l.Label, h, v)}, nil
}

func textMark(x, y float64, label string, h, v float64) *mark.Mark {
	return &mark.Mark{
		Kind:   mark.Text,
		HAlign: h,
		VAlign: v,
		Groups: []mark.Group{{X: []float64{x}, Y: []float64{y}, Stroke: defaultStroke, Labels: []string{label}}},
	}
}

// refLine holds the styling shared by HLine and VLine.
type refLine struct {
	linetype, color string
	alpha           float64
}

func (r refLine) validate(name string) error {
	if _, ok := dashes[r.linetype]; !ok && r.linetype != "" {
		return fmt.Errorf("%s: unknown line type %q", name, r.linetype)
	}
	if r.color != "" {
		if _, err := ParseColor(r.color); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (r refLine) mark(g mark.Group) *mark.Mark {
	stroke := defaultStroke
	if r.color != "" {
		if c, err := ParseColor(r.color); err == nil {
			stroke = c
		}
	}
	g.Stroke = withAlpha(stroke, orDefault(r.alpha, 1))
	return &mark.Mark{Kind: mark.Path, Dashes: dashes[r.linetype], Groups: []mark.Group{g}}
}

// HLine draws a horizontal reference line across the plot at Y.
type HLine struct {
	Y float64

	// Linetype is "solid", "dashed", "dotted", "dotdash",
	// "longdash", or "twodash". If "", it is "solid".
	Linetype string

	// Color is a color name or "#rrggbb". If "", it is black.
	Color string

	// Alpha is the line opacity. If 0, it is 1.
	Alpha float64
}

func (l HLine) validate(p *Plot) error {
	return refLine{l.Linetype, l.Color, l.Alpha}.validate("hline")
}

func (l HLine) compile(c *compiler) ([]*mark.Mark, error) {
	y := l.Y
	if t := c.p.yTrans; t != nil && c.yMap.levels == nil {
		y = t.f(y)
	}
	return []*mark.Mark{refLine{l.Linetype, l.Color, l.Alpha}.mark(hspan(y, nil))}, nil
}

// VLine draws a vertical reference line across the plot at X.
type VLine struct {
	X float64

	// Linetype, Color, and Alpha are as for HLine.
	Linetype string
	Color    string
	Alpha    float64
}

func (l VLine) validate(p *Plot) error {
	return refLine{l.Linetype, l.Color, l.Alpha}.validate("vline")
}

func (l VLine) compile(c *compiler) ([]*mark.Mark, error) {
	x := l.X
	if t := c.p.xTrans; t != nil && c.xMap.levels == nil {
		x = t.f(x)
	}
	return []*mark.Mark{refLine{l.Linetype, l.Color, l.Alpha}.mark(vspan(x, nil))}, nil
}

// numberFormat turns a format such as ".3f" or "%.3f" into a Printf
// verb.
func numberFormat(f string) string {
	if f == "" {
		return "%.3f"
	}
	if !strings.HasPrefix(f, "%") {
		return "%" + f
	}
	return f
}

// TestPValue compares Y between the two X groups and labels the plot
// with the p-value. With other than two groups, it logs a warning and
// draws nothing.
type TestPValue struct {
	// Test is "t" (two-sample t-test with pooled variance) or
	// "wilcoxon" (rank-sum test). If "", it is "t".
	Test string

	// Format formats the p-value, as in fmt. If "", it is "%.3f".
	Format string
}

func (l TestPValue) validate(p *Plot) error {
	switch l.Test {
	case "", "t", "wilcoxon":
		return nil
	}
	return fmt.Errorf("test p-value: test must be \"t\" or \"wilcoxon\"; got %q", l.Test)
}

func (l TestPValue) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("test p-value"); err != nil {
		return nil, err
	}
	groups := make(map[float64][]float64)
	var keys []float64
	for i, x := range c.x {
		if _, ok := groups[x]; !ok {
			keys = append(keys, x)
		}
		groups[x] = append(groups[x], c.y[i])
	}
	if len(keys) != 2 {
		Warning.Printf("p-value requires exactly 2 groups of %s; got %d", c.aes.X, len(keys))
		return nil, nil
	}
	a, b := groups[keys[0]], groups[keys[1]]

	var res tidystat.TestResult
	var err error
	if l.Test == "wilcoxon" {
		res, err = tidystat.RankSum(a, b)
	} else {
		res, err = tidystat.TTest(a, b)
	}
	if err != nil {
		Warning.Printf("p-value: %v", err)
		return nil, nil
	}
	label := "p = " + fmt.Sprintf(numberFormat(l.Format), res.P)
	return []*mark.Mark{textMark((keys[0]+keys[1])/2, c.labelY(), label, 0.5, 0.5)}, nil
}

// CorrelationText labels the plot with the correlation coefficient
// of X and Y and its p-value.
type CorrelationText struct {
	// Method is "pearson" or "spearman". If "", it is "pearson".
	Method string

	// Format formats both numbers, as in fmt. If "", it is
	// "%.3f".
	Format string
}

func (l CorrelationText) validate(p *Plot) error {
	switch l.Method {
	case "", "pearson", "spearman":
		return nil
	}
	return fmt.Errorf("correlation: method must be \"pearson\" or \"spearman\"; got %q", l.Method)
}

func (l CorrelationText) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("correlation"); err != nil {
		return nil, err
	}
	var res tidystat.TestResult
	var err error
	if l.Method == "spearman" {
		res, err = tidystat.Spearman(c.x, c.y)
	} else {
		res, err = tidystat.Pearson(c.x, c.y)
	}
	if err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	f := numberFormat(l.Format)
	label := fmt.Sprintf("r = "+f+"\np = "+f, res.Stat, res.P)
	x := stats.Mean(dataUnits(c.x, c.p.xTrans))
	if t := c.p.xTrans; t != nil {
		x = t.f(x)
	}
	return []*mark.Mark{textMark(x, c.labelY(), label, 0.5, 0.5)}, nil
}

// dataUnits returns positions mapped back through t, or ps if t is
// nil.
func dataUnits(ps []float64, t *transform) []float64 {
	if t == nil {
		return ps
	}
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = t.inv(p)
	}
	return out
}

// labelY returns the position of a label 10% above the largest Y
// value, measured in data units.
func (c *compiler) labelY() float64 {
	_, max := finiteBounds(dataUnits(c.y, c.p.yTrans))
	y := max * 1.1
	if t := c.p.yTrans; t != nil {
		y = t.f(y)
	}
	return y
}
