// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"

	"github.com/aclements/go-gg/ggstat"

	"github.com/aclements/go-tidyplot/internal/contour"
	"github.com/aclements/go-tidyplot/internal/mark"
	"github.com/aclements/go-tidyplot/tidystat"
)

// Boxplot draws a Tukey box plot of Y at each X: a box from the 25th
// to the 75th percentile with a line at the median, whiskers to the
// most extreme values within 1.5 IQR of the box, and the remaining
// values as outlier points.
type Boxplot struct {
	// Alpha is the box fill opacity. If 0, it is 0.4.
	Alpha float64

	// OutlierAlpha is the outlier point opacity. If 0, it is 0.5.
	OutlierAlpha float64

	// Width is the box width in X category units. If 0, it is
	// 0.6.
	Width float64
}

func (l Boxplot) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("box plot"); err != nil {
		return nil, err
	}
	alpha, outAlpha := orDefault(l.Alpha, 0.4), orDefault(l.OutlierAlpha, 0.5)
	width := orDefault(l.Width, 0.6)

	ss := c.series()
	tabs := c.runStat(tidystat.Boxplot{X: "x", Y: "y"}, ss)
	boxes := &mark.Mark{Kind: mark.Polygon}
	lines := &mark.Mark{Kind: mark.Path}
	outliers := &mark.Mark{Kind: mark.Points, Radius: 2}
	for i, s := range ss {
		t := tabs[i]
		if t == nil {
			continue
		}
		xs := column(t, "x")
		lower, middle, upper := column(t, "lower"), column(t, "middle"), column(t, "upper")
		lo, hi := column(t, "ymin"), column(t, "ymax")
		outs, _ := t.Column("outliers").([][]float64)

		off, scale := c.dodge(s.level)
		h := width * scale / 2
		stroke := c.color(s.level, defaultStroke)
		fill := withAlpha(c.color(s.level, defaultFill), alpha)
		for j, x := range xs {
			x += off
			boxes.Groups = append(boxes.Groups, rect(x-h, x+h, lower[j], upper[j], stroke, fill))
			lines.Groups = append(lines.Groups,
				segment(x-h, middle[j], x+h, middle[j], stroke),
				segment(x, upper[j], x, hi[j], stroke),
				segment(x, lower[j], x, lo[j], stroke))
			if j < len(outs) && len(outs[j]) > 0 {
				g := mark.Group{Fill: withAlpha(stroke, outAlpha)}
				for _, y := range outs[j] {
					g.X = append(g.X, x)
					g.Y = append(g.Y, y)
				}
				outliers.Groups = append(outliers.Groups, g)
			}
		}
	}
	return []*mark.Mark{boxes, lines, outliers}, nil
}

// defaultViolinQuantiles are the quantiles Violin marks by default.
var defaultViolinQuantiles = []float64{0.25, 0.5, 0.75}

// Violin draws a mirrored kernel density estimate of Y at each X.
type Violin struct {
	// Alpha is the fill opacity. If 0, it is 0.4.
	Alpha float64

	// DrawQuantiles lists the quantiles of Y to mark with
	// horizontal lines. If nil, it is {0.25, 0.5, 0.75}. Use an
	// empty, non-nil slice to draw none.
	DrawQuantiles []float64
}

func (l Violin) validate(p *Plot) error {
	for _, q := range l.DrawQuantiles {
		if q < 0 || q > 1 {
			return fmt.Errorf("violin: quantile %v outside [0, 1]", q)
		}
	}
	return nil
}

func (l Violin) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("violin"); err != nil {
		return nil, err
	}
	alpha := orDefault(l.Alpha, 0.4)
	qs := l.DrawQuantiles
	if qs == nil {
		qs = defaultViolinQuantiles
	}

	shapes := &mark.Mark{Kind: mark.Polygon}
	lines := &mark.Mark{Kind: mark.Path}
	for _, cell := range c.cells(c.allRows()) {
		level := c.level[cell[0]]
		_, ys := c.xy(cell)
		v, ok := tidystat.Violin(ys, 0)
		if !ok {
			continue
		}
		off, scale := c.dodge(level)
		x := c.x[cell[0]] + off
		h := 0.45 * scale
		stroke := c.color(level, defaultStroke)

		// Right side up, then left side down.
		g := mark.Group{Stroke: stroke, Fill: withAlpha(c.color(level, defaultFill), alpha)}
		for i, y := range v.Ys {
			g.X = append(g.X, x+v.Widths[i]*h)
			g.Y = append(g.Y, y)
		}
		for i := len(v.Ys) - 1; i >= 0; i-- {
			g.X = append(g.X, x-v.Widths[i]*h)
			g.Y = append(g.Y, v.Ys[i])
		}
		shapes.Groups = append(shapes.Groups, g)

		for _, q := range tidystat.Quantiles(ys, qs) {
			w := v.WidthAt(q) * h
			lines.Groups = append(lines.Groups, segment(x-w, q, x+w, q, stroke))
		}
	}
	return []*mark.Mark{shapes, lines}, nil
}

// Density draws a kernel density estimate of X for each color.
type Density struct {
	// Alpha is the fill opacity. If 0, it is 0.4.
	Alpha float64
}

func (l Density) compile(c *compiler) ([]*mark.Mark, error) {
	alpha := orDefault(l.Alpha, 0.4)
	c.suggestY("density")
	ss := c.seriesWith(2)
	tabs := c.runStat(ggstat.Density{X: "x"}, ss)
	m := &mark.Mark{Kind: mark.Polygon}
	for i, s := range ss {
		xs, ds := column(tabs[i], "x"), column(tabs[i], "probability density")
		if len(xs) == 0 {
			continue
		}
		g := mark.Group{
			X:      append(append([]float64(nil), xs...), xs[len(xs)-1], xs[0]),
			Y:      append(append([]float64(nil), ds...), 0, 0),
			Stroke: c.color(s.level, defaultStroke),
			Fill:   withAlpha(c.color(s.level, defaultFill), alpha),
		}
		m.Groups = append(m.Groups, g)
	}
	return []*mark.Mark{m}, nil
}

// density2DLevels is the number of contour levels Density2D draws.
const density2DLevels = 8

// Density2D draws contour lines of the joint kernel density of X and
// Y for each color.
type Density2D struct {
	// Alpha is the line opacity. If 0, it is 0.4.
	Alpha float64
}

func (l Density2D) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("2-D density"); err != nil {
		return nil, err
	}
	alpha := orDefault(l.Alpha, 0.4)
	m := &mark.Mark{Kind: mark.Path}
	for _, s := range c.series() {
		xs, ys := c.xy(s.rows)
		grid, ok := tidystat.Density2D(xs, ys, 0)
		if !ok {
			continue
		}
		max := grid.Max()
		if !(max > 0) {
			continue
		}
		stroke := withAlpha(c.color(s.level, defaultStroke), alpha)
		for k := 1; k <= density2DLevels; k++ {
			level := max * float64(k) / (density2DLevels + 1)
			lx, ly := contour.Join(contour.Lines(grid.Xs, grid.Ys, grid.Z, level))
			for i := range lx {
				m.Groups = append(m.Groups, mark.Group{X: lx[i], Y: ly[i], Stroke: stroke})
			}
		}
	}
	return []*mark.Mark{m}, nil
}

// Histogram draws the counts of X in equal-width bins.
type Histogram struct {
	// Bins is the number of bins. If 0, it is 30.
	Bins int

	// Alpha is the fill opacity. If 0, it is 0.4 with a color
	// aesthetic and 1 without.
	Alpha float64
}

func (l Histogram) validate(p *Plot) error {
	if l.Bins < 0 {
		return fmt.Errorf("histogram: bins must be positive; got %d", l.Bins)
	}
	return nil
}

func (l Histogram) compile(c *compiler) ([]*mark.Mark, error) {
	alpha := l.Alpha
	if alpha == 0 {
		alpha = 1
		if c.colors != nil {
			alpha = 0.4
		}
	}
	c.suggestY("count")
	ss := c.series()
	tabs := c.runStat(tidystat.Histogram{X: "x", Bins: l.Bins}, ss)
	m := &mark.Mark{Kind: mark.Polygon}
	for i, s := range ss {
		lo, hi, counts := column(tabs[i], "xmin"), column(tabs[i], "xmax"), column(tabs[i], "count")
		fill := withAlpha(c.color(s.level, defaultFill), alpha)
		for j := range counts {
			if counts[j] == 0 {
				continue
			}
			m.Groups = append(m.Groups, rect(lo[j], hi[j], 0, counts[j], nil, fill))
		}
	}
	return []*mark.Mark{m}, nil
}

// ECDF draws the empirical cumulative distribution of X for each
// color as a step function.
type ECDF struct{}

func (l ECDF) compile(c *compiler) ([]*mark.Mark, error) {
	c.suggestY("cumulative density")
	ss := c.seriesWith(1)
	tabs := c.runStat(ggstat.ECDF{X: "x"}, ss)
	m := &mark.Mark{Kind: mark.Steps, Step: mark.StepHV}
	for i, s := range ss {
		xs, ys := column(tabs[i], "x"), column(tabs[i], "cumulative density")
		if len(xs) == 0 {
			continue
		}
		m.Groups = append(m.Groups, mark.Group{X: xs, Y: ys, Stroke: c.color(s.level, defaultStroke)})
	}
	return []*mark.Mark{m}, nil
}

// Quantiles draws dashed horizontal lines across the plot at
// quantiles of Y.
type Quantiles struct {
	// Quantiles lists the quantiles to draw. If nil, it is
	// {0.25, 0.5, 0.75}.
	Quantiles []float64
}

func (l Quantiles) validate(p *Plot) error {
	for _, q := range l.Quantiles {
		if q < 0 || q > 1 {
			return fmt.Errorf("quantiles: quantile %v outside [0, 1]", q)
		}
	}
	return nil
}

func (l Quantiles) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("quantiles"); err != nil {
		return nil, err
	}
	qs := l.Quantiles
	if qs == nil {
		qs = defaultViolinQuantiles
	}
	m := &mark.Mark{Kind: mark.Path, Dashes: dashes["dashed"]}
	stroke := withAlpha(defaultStroke, 0.5)
	for _, y := range tidystat.Quantiles(c.y, qs) {
		if !finite(y) {
			continue
		}
		m.Groups = append(m.Groups, hspan(y, stroke))
	}
	return []*mark.Mark{m}, nil
}

// Hex bins X and Y into a grid and fills each non-empty bin by its
// count on the continuous color scale.
type Hex struct {
	// Bins is the number of bins along each axis. If 0, it is 20.
	Bins int
}

func (l Hex) validate(p *Plot) error {
	if l.Bins < 0 {
		return fmt.Errorf("hex: bins must be positive; got %d", l.Bins)
	}
	return nil
}

func (l Hex) compile(c *compiler) ([]*mark.Mark, error) {
	if err := c.requireY("hex"); err != nil {
		return nil, err
	}
	t := c.runStat(tidystat.Bin2D{X: "x", Y: "y", Bins: l.Bins}, []series{{level: -1, rows: c.allRows()}})[0]
	xs, ys := column(t, "x"), column(t, "y")
	ws, hs, counts := column(t, "width"), column(t, "height"), column(t, "count")
	_, max := finiteBounds(counts)
	m := &mark.Mark{Kind: mark.Polygon}
	for i := range xs {
		fill := c.scale.value(normalize(counts[i], 0, max))
		m.Groups = append(m.Groups, rect(xs[i]-ws[i]/2, xs[i]+ws[i]/2, ys[i]-hs[i]/2, ys[i]+hs[i]/2, nil, fill))
	}
	return []*mark.Mark{m}, nil
}
