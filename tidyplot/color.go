// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
	"golang.org/x/image/colornames"
)

// friendlyPalette is the default discrete palette. The colors are
// distinguishable with common forms of color blindness.
var friendlyPalette = []color.Color{
	color.RGBA{0x00, 0x72, 0xb2, 0xff},
	color.RGBA{0x56, 0xb4, 0xe9, 0xff},
	color.RGBA{0x00, 0x9e, 0x73, 0xff},
	color.RGBA{0xf5, 0xc7, 0x10, 0xff},
	color.RGBA{0xe6, 0x9f, 0x00, 0xff},
	color.RGBA{0xd5, 0x5e, 0x00, 0xff},
	color.RGBA{0xcc, 0x79, 0xa7, 0xff},
}

var (
	defaultStroke color.Color = color.Black
	defaultFill   color.Color = color.RGBA{0x59, 0x59, 0x59, 0xff}
)

// ParseColor parses a color name (any SVG/CSS color keyword, such as
// "lightblue") or a hex color of the form "#rgb" or "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("bad hex color %q", s)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
	}
	name := strings.ToLower(strings.Replace(s, " ", "", -1))
	// R spells gray both ways; the SVG names mostly do too, but
	// not consistently.
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if c, ok := colornames.Map[strings.Replace(name, "grey", "gray", -1)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

// withAlpha returns c with its opacity multiplied by alpha.
func withAlpha(c color.Color, alpha float64) color.Color {
	if c == nil {
		return nil
	}
	alpha = math.Max(0, math.Min(1, alpha))
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * alpha))
	return n
}

// BrewerPalettes returns the names of the ColorBrewer palettes
// accepted by AdjustColors.
func BrewerPalettes() []string {
	names := make([]string, 0, len(brewer.ByName))
	for name := range brewer.ByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// brewerColors returns n colors from the named ColorBrewer palette.
// It uses the n-color variant if there is one, the smallest variant
// if n is smaller, and otherwise cycles the largest variant.
func brewerColors(name string, n int) ([]color.Color, bool) {
	variants, ok := brewer.ByName[name]
	if !ok {
		return nil, false
	}
	if v, ok := variants[n]; ok {
		return v, true
	}
	min, max := math.MaxInt32, 0
	for k := range variants {
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	if n < min {
		return variants[min][:n], true
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = variants[max][i%max]
	}
	return out, true
}

// largestBrewer returns the variant of the named palette with the
// most colors.
func largestBrewer(name string) []color.Color {
	var best []color.Color
	for _, v := range brewer.ByName[name] {
		if len(v) > len(best) {
			best = v
		}
	}
	return best
}

// colorScale maps color levels or normalized values to colors.
type colorScale struct {
	brewer   string
	gradient palette.Continuous
}

func newColorScale(p *Plot) *colorScale {
	s := &colorScale{brewer: p.palette}
	switch {
	case p.gradient != nil:
		s.gradient = palette.RGBGradient{Colors: p.gradient}
	case p.palette != "":
		var stops []color.RGBA
		for _, c := range largestBrewer(p.palette) {
			stops = append(stops, color.RGBAModel.Convert(c).(color.RGBA))
		}
		s.gradient = palette.RGBGradient{Colors: stops}
	default:
		s.gradient = palette.Viridis
	}
	return s
}

// levels returns colors for n discrete levels.
func (s *colorScale) levels(n int) []color.Color {
	if s.brewer != "" {
		if cs, ok := brewerColors(s.brewer, n); ok {
			return cs
		}
	}
	out := make([]color.Color, n)
	for i := range out {
		out[i] = friendlyPalette[i%len(friendlyPalette)]
	}
	return out
}

// value maps x in [0, 1] to a color on the continuous scale.
func (s *colorScale) value(x float64) color.Color {
	if math.IsNaN(x) {
		return color.Transparent
	}
	return s.gradient.Map(math.Max(0, math.Min(1, x)))
}
