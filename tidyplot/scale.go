// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"image/color"
	"math"
)

// transform is an invertible axis transformation.
type transform struct {
	name   string
	f, inv func(float64) float64
}

var (
	log10Transform = &transform{
		name: "log10",
		f:    math.Log10,
		inv:  func(x float64) float64 { return math.Pow(10, x) },
	}
	sqrtTransform = &transform{
		name: "sqrt",
		f:    math.Sqrt,
		inv:  func(x float64) float64 { return x * x },
	}
	reverseTransform = &transform{
		name: "reverse",
		f:    func(x float64) float64 { return -x },
		inv:  func(x float64) float64 { return -x },
	}
)

// setTransform replaces the transform of an axis. Statistics are
// computed on transformed values.
func (p *Plot) setTransform(axis **transform, t *transform, name string) *Plot {
	if *axis != nil && *axis != t {
		Warning.Printf("%s scale replaces %s scale on %s axis", t.name, (*axis).name, name)
	}
	*axis = t
	return p
}

// ScaleXLog10 puts the X axis on a base-10 logarithmic scale. Rows
// with non-positive X are dropped.
func (p *Plot) ScaleXLog10() *Plot { return p.setTransform(&p.xTrans, log10Transform, "x") }

// ScaleYLog10 puts the Y axis on a base-10 logarithmic scale. Rows
// with non-positive Y are dropped.
func (p *Plot) ScaleYLog10() *Plot { return p.setTransform(&p.yTrans, log10Transform, "y") }

// ScaleXSqrt puts the X axis on a square root scale. Rows with
// negative X are dropped.
func (p *Plot) ScaleXSqrt() *Plot { return p.setTransform(&p.xTrans, sqrtTransform, "x") }

// ScaleYSqrt puts the Y axis on a square root scale. Rows with
// negative Y are dropped.
func (p *Plot) ScaleYSqrt() *Plot { return p.setTransform(&p.yTrans, sqrtTransform, "y") }

// ScaleXReverse reverses the direction of the X axis.
func (p *Plot) ScaleXReverse() *Plot { return p.setTransform(&p.xTrans, reverseTransform, "x") }

// ScaleYReverse reverses the direction of the Y axis.
func (p *Plot) ScaleYReverse() *Plot { return p.setTransform(&p.yTrans, reverseTransform, "y") }

// gradientStops parses color names into gradient stops, substituting
// defaults for empty names.
func (p *Plot) gradientStops(names, defaults []string) []color.RGBA {
	stops := make([]color.RGBA, len(names))
	for i, name := range names {
		if name == "" {
			name = defaults[i]
		}
		c, err := ParseColor(name)
		if err != nil {
			p.errorf("color gradient: %v", err)
			return nil
		}
		stops[i] = c
	}
	return stops
}

// ScaleColorGradient maps a numeric color column (and binned counts)
// onto a gradient from low to high. Empty names default to "white"
// and "blue".
func (p *Plot) ScaleColorGradient(low, high string) *Plot {
	if stops := p.gradientStops([]string{low, high}, []string{"white", "blue"}); stops != nil {
		p.gradient = stops
	}
	return p
}

// ScaleColorGradient2 maps a numeric color column (and binned counts)
// onto a diverging gradient from low through mid to high. Empty names
// default to "blue", "white", and "red".
func (p *Plot) ScaleColorGradient2(low, mid, high string) *Plot {
	if stops := p.gradientStops([]string{low, mid, high}, []string{"blue", "white", "red"}); stops != nil {
		p.gradient = stops
	}
	return p
}
