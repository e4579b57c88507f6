// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tidyplot builds statistical plots by chaining calls, in
// the style of R's tidyplots package.
//
// A Plot starts from a table and a mapping of columns to aesthetics:
//
//	tidyplot.New(tab, tidyplot.Aes{X: "group", Y: "value", Color: "group"}).
//		Add(tidyplot.Boxplot{Alpha: 0.3}, tidyplot.Jitter{}).
//		AdjustColors("Blues").
//		AdjustLabels(tidyplot.Labels{Title: "Value by group"}).
//		Save("boxplot.svg")
//
// Layers, appearance adjustments, and scale changes are only
// recorded when they are called. Nothing is computed until the plot
// is rendered by Show, WriteSVG, Write, or Save, at which point the
// recorded calls are translated into a go-gg plot (for SVG) or a
// gonum plot (for raster and PDF formats).
//
// Layer fields left at their zero value take the documented default.
//
// Chain methods never panic on bad arguments. Instead, they record
// the error, which is reported by Err and by every render method.
package tidyplot

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"github.com/aclements/go-gg/table"
	"github.com/hashicorp/go-multierror"
)

// Warning is a logger for conditions that don't prevent producing a
// plot but may give unexpected results.
var Warning = log.New(os.Stderr, "[tidyplot] ", log.Lshortfile)

// Aes maps table columns to visual aesthetics.
type Aes struct {
	// X names the column for the horizontal axis. It is required.
	X string

	// Y names the column for the vertical axis. It may be "" for
	// plots that only need X, such as counts and densities.
	Y string

	// Color names the column that colors (and, without Y, fills)
	// the data. It may be "".
	Color string
}

// Labels holds plot titles. Empty fields keep the default.
type Labels struct {
	Title, X, Y string
}

// Plot is a plot under construction.
type Plot struct {
	data *table.Table
	aes  Aes

	layers []Layer

	labels        Labels
	palette       string
	gradient      []color.RGBA
	legendPos     string
	axisTextAngle float64
	xTrans        *transform
	yTrans        *transform

	errs *multierror.Error
}

// New returns a plot of data with the given aesthetic mapping. It has
// no layers and a minimal theme.
func New(data *table.Table, aes Aes) *Plot {
	p := &Plot{data: data, aes: aes, legendPos: "right"}
	if data == nil {
		p.errorf("no data")
		return p
	}
	if aes.X == "" {
		p.errorf("aesthetic X is required")
	}
	for _, col := range []string{aes.X, aes.Y, aes.Color} {
		if col != "" && data.Column(col) == nil {
			p.errorf("unknown column %q", col)
		}
	}
	return p
}

// errorf records an error in p.
func (p *Plot) errorf(format string, args ...interface{}) {
	p.errs = multierror.Append(p.errs, fmt.Errorf(format, args...))
}

// Err returns the errors recorded while building p, or nil.
func (p *Plot) Err() error {
	return p.errs.ErrorOrNil()
}

// Data returns the table p plots.
func (p *Plot) Data() *table.Table {
	return p.data
}

// Aes returns p's aesthetic mapping.
func (p *Plot) Aes() Aes {
	return p.aes
}

// Layers returns the layers added to p so far, in order.
func (p *Plot) Layers() []Layer {
	return append([]Layer(nil), p.layers...)
}

// Add appends layers to p. Layers are drawn in the order they are
// added. Layers with invalid parameters are not added and their
// error is recorded.
func (p *Plot) Add(layers ...Layer) *Plot {
	for _, l := range layers {
		if v, ok := l.(validator); ok {
			if err := v.validate(p); err != nil {
				p.errs = multierror.Append(p.errs, err)
				continue
			}
		}
		p.layers = append(p.layers, l)
	}
	return p
}
