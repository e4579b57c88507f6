// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/hashicorp/go-multierror"
	"gonum.org/v1/plot/vg"

	"github.com/aclements/go-tidyplot/internal/ggrender"
	"github.com/aclements/go-tidyplot/internal/mark"
	"github.com/aclements/go-tidyplot/internal/vgplot"
)

// Backend selects the library that draws a saved plot.
type Backend string

const (
	// BackendAuto draws SVG with go-gg and everything else with
	// gonum/plot.
	BackendAuto Backend = ""

	// BackendGG draws with go-gg, which only writes SVG.
	BackendGG Backend = "gg"

	// BackendGonum draws with gonum/plot.
	BackendGonum Backend = "gonum"
)

// ParseBackend parses a backend name: "", "auto", "gg", or "gonum".
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "", "auto":
		return BackendAuto, nil
	case "gg":
		return BackendGG, nil
	case "gonum":
		return BackendGonum, nil
	}
	return "", fmt.Errorf("unknown backend %q", s)
}

// SaveOptions control the size and rendering of saved plots.
type SaveOptions struct {
	// Width and Height are the image size in pixels. If 0, they
	// are 800 and 600.
	Width, Height int

	// DPI is the resolution of raster formats. If 0, it is 96.
	DPI int

	// Backend selects the drawing library.
	Backend Backend
}

func (o SaveOptions) withDefaults() SaveOptions {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.DPI <= 0 {
		o.DPI = vgplot.DefaultDPI
	}
	return o
}

// size returns the image size in gonum lengths.
func (o SaveOptions) size() (w, h vg.Length) {
	px := vg.Inch / vg.Length(o.DPI)
	return vg.Length(o.Width) * px, vg.Length(o.Height) * px
}

// figure compiles p's layers into a figure.
func (p *Plot) figure() (*mark.Figure, error) {
	if err := p.Err(); err != nil {
		return nil, err
	}
	c, err := newCompiler(p)
	if err != nil {
		return nil, err
	}
	fig := &mark.Figure{
		Title:          p.labels.Title,
		LegendPosition: p.legendPos,
		AxisTextAngle:  p.axisTextAngle,
	}
	var errs *multierror.Error
	for _, l := range p.layers {
		marks, err := l.compile(c)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		for _, m := range marks {
			if len(m.Groups) > 0 {
				fig.Marks = append(fig.Marks, m)
			}
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	fig.X, fig.Y = c.xAxis, c.yAxis
	if fig.Y.Label == "" {
		fig.Y.Label = c.yLabel
	}
	if p.labels.X != "" {
		fig.X.Label = p.labels.X
	}
	if p.labels.Y != "" {
		fig.Y.Label = p.labels.Y
	}
	if p.aes.Color != "" {
		fig.LegendTitle = p.aes.Color
		fig.Legend = c.legend()
	}

	if len(fig.Marks) == 0 {
		// Keep the axes of an empty plot fitted to the data.
		ys := c.y
		if ys == nil {
			ys = make([]float64, len(c.x))
		}
		fig.Marks = append(fig.Marks, &mark.Mark{
			Kind:   mark.Points,
			Groups: []mark.Group{{X: c.x, Y: ys, Fill: color.Transparent}},
		})
	}
	resolveSpans(fig)
	return fig, nil
}

// resolveSpans replaces infinite coordinates, used by lines that cross
// the whole plot, with the extent of the rest of the figure.
func resolveSpans(f *mark.Figure) {
	xmin, xmax, ymin, ymax := f.Extent()
	fix := func(vs []float64, lo, hi float64) {
		for i, v := range vs {
			if math.IsInf(v, -1) {
				vs[i] = lo
			} else if math.IsInf(v, 1) {
				vs[i] = hi
			}
		}
	}
	for _, m := range f.Marks {
		for _, g := range m.Groups {
			fix(g.X, xmin, xmax)
			fix(g.Y, ymin, ymax)
		}
	}
}

// Show renders p as a go-gg plot, which can be further customized
// with go-gg before writing it.
func (p *Plot) Show() (*gg.Plot, error) {
	fig, err := p.figure()
	if err != nil {
		return nil, err
	}
	return ggrender.Build(fig), nil
}

// WriteSVG renders p with go-gg and writes it to w as an SVG of the
// given size in pixels.
func (p *Plot) WriteSVG(w io.Writer, width, height int) error {
	gp, err := p.Show()
	if err != nil {
		return err
	}
	return gp.WriteSVG(w, width, height)
}

// Write renders p in format ("svg", "png", "pdf", ...) to w.
func (p *Plot) Write(w io.Writer, format string, opts ...SaveOptions) error {
	var o SaveOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	o = o.withDefaults()
	format = strings.ToLower(strings.TrimPrefix(format, "."))

	if format == "svg" && o.Backend != BackendGonum {
		return p.WriteSVG(w, o.Width, o.Height)
	}
	if o.Backend == BackendGG {
		return fmt.Errorf("the gg backend only writes SVG, not %s", format)
	}
	if !vgplot.Supports("x." + format) {
		return fmt.Errorf("unsupported image format %q", format)
	}
	fig, err := p.figure()
	if err != nil {
		return err
	}
	width, height := o.size()
	return vgplot.Write(fig, w, width, height, o.DPI, format)
}

// Save renders p to filename. The image format is chosen by the
// file extension: .svg, .png, .jpg, .jpeg, .tif, .tiff, .pdf, or
// .eps. Nothing is written if rendering fails.
func (p *Plot) Save(filename string, opts ...SaveOptions) error {
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	if format == "" {
		return fmt.Errorf("%s: no image format extension", filename)
	}
	var buf bytes.Buffer
	if err := p.Write(&buf, format, opts...); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return os.WriteFile(filename, buf.Bytes(), 0666)
}
