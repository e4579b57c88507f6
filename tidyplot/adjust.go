// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"github.com/aclements/go-gg/palette/brewer"
)

// AdjustColors sets the discrete color palette to the named
// ColorBrewer palette, such as "Blues" or "Set2". The palette also
// serves as the continuous color gradient unless ScaleColorGradient
// or ScaleColorGradient2 is used.
func (p *Plot) AdjustColors(palette string) *Plot {
	if _, ok := brewer.ByName[palette]; !ok {
		p.errorf("unknown color palette %q", palette)
		return p
	}
	p.palette = palette
	return p
}

// AdjustLabels sets the plot title and axis titles. Empty fields
// leave the current label unchanged.
func (p *Plot) AdjustLabels(l Labels) *Plot {
	if l.Title != "" {
		p.labels.Title = l.Title
	}
	if l.X != "" {
		p.labels.X = l.X
	}
	if l.Y != "" {
		p.labels.Y = l.Y
	}
	return p
}

// AdjustAxisTextAngle rotates the X axis tick labels by deg degrees
// counterclockwise.
func (p *Plot) AdjustAxisTextAngle(deg float64) *Plot {
	p.axisTextAngle = deg
	return p
}

// AdjustLegendPosition places the color legend. pos is "right",
// "left", "top", "bottom", or "none".
func (p *Plot) AdjustLegendPosition(pos string) *Plot {
	switch pos {
	case "right", "left", "top", "bottom", "none":
		p.legendPos = pos
	default:
		p.errorf("legend position must be right, left, top, bottom, or none; got %q", pos)
	}
	return p
}
