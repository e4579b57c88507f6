// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"reflect"
	"sort"
	"strconv"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"

	"github.com/aclements/go-tidyplot/internal/mark"
)

// A Layer is one visual component of a plot, such as points, bars,
// or a fitted line.
type Layer interface {
	// compile translates the layer into marks.
	compile(c *compiler) ([]*mark.Mark, error)
}

// validator is implemented by layers whose parameters can be checked
// when they are added to a plot.
type validator interface {
	validate(p *Plot) error
}

// columnMap is a table column mapped to positions.
type columnMap struct {
	pos []float64

	// levels is non-nil if the column is categorical. pos[i] is
	// then the 1-based index of row i's level.
	levels []string

	// format formats a position for display.
	format func(float64) string
}

// mapColumn maps the values of a table column to float64 positions.
// Strings (and any type other than numbers, times, and durations) are
// categorical.
func mapColumn(col interface{}) (columnMap, error) {
	switch v := col.(type) {
	case []string:
		return mapLevels(v), nil

	case []time.Time:
		pos := make([]float64, len(v))
		dates := true
		for i, t := range v {
			pos[i] = float64(t.UnixNano()) / 1e9
			if !t.Equal(t.Truncate(24 * time.Hour)) {
				dates = false
			}
		}
		layout := "2006-01-02 15:04"
		if dates {
			layout = "2006-01-02"
		}
		return columnMap{pos: pos, format: func(x float64) string {
			return time.Unix(0, int64(x*1e9)).UTC().Format(layout)
		}}, nil

	case []time.Duration:
		pos := make([]float64, len(v))
		for i, d := range v {
			pos[i] = d.Seconds()
		}
		return columnMap{pos: pos, format: func(x float64) string {
			return time.Duration(x * 1e9).String()
		}}, nil

	case []float64:
		// Copy, since transforms rewrite positions in place. pos
		// must be non-nil even for an empty column.
		pos := make([]float64, len(v))
		copy(pos, v)
		return columnMap{pos: pos, format: formatNumber}, nil
	}

	rv := reflect.ValueOf(col)
	if rv.Kind() != reflect.Slice {
		return columnMap{}, fmt.Errorf("column of type %T is not a slice", col)
	}
	switch rv.Type().Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		pos := make([]float64, 0, rv.Len())
		slice.Convert(&pos, col)
		if pos == nil {
			pos = []float64{}
		}
		return columnMap{pos: pos, format: formatNumber}, nil
	}
	strs := make([]string, rv.Len())
	for i := range strs {
		strs[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return mapLevels(strs), nil
}

func formatNumber(x float64) string {
	return strconv.FormatFloat(x, 'g', 6, 64)
}

// mapLevels maps categorical values to the positions 1..n of their
// sorted distinct values. Values that all parse as numbers are sorted
// numerically.
func mapLevels(vals []string) columnMap {
	seen := make(map[string]bool)
	levels := []string{}
	for _, v := range vals {
		if !seen[v] {
			seen[v] = true
			levels = append(levels, v)
		}
	}
	numeric := true
	nums := make(map[string]float64)
	for _, l := range levels {
		f, err := strconv.ParseFloat(l, 64)
		if err != nil {
			numeric = false
			break
		}
		nums[l] = f
	}
	sort.SliceStable(levels, func(i, j int) bool {
		if numeric {
			return nums[levels[i]] < nums[levels[j]]
		}
		return levels[i] < levels[j]
	})
	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[l] = i + 1
	}
	pos := make([]float64, len(vals))
	for i, v := range vals {
		pos[i] = float64(index[v])
	}
	return columnMap{pos: pos, levels: levels}
}

// axis returns the mark.Axis describing m.
func (m *columnMap) axis(label string) mark.Axis {
	a := mark.Axis{Label: label, Format: m.format}
	if m.levels != nil {
		a.Breaks = make([]float64, len(m.levels))
		for i := range m.levels {
			a.Breaks[i] = float64(i + 1)
		}
		a.BreakLabels = append([]string(nil), m.levels...)
	}
	return a
}

// transform applies t to the positions of m and wraps its formatter
// so ticks are labeled in data units.
func (m *columnMap) transform(t *transform, axis string) error {
	if t == nil {
		return nil
	}
	if m.levels != nil {
		return fmt.Errorf("cannot apply %s scale to categorical %s axis", t.name, axis)
	}
	for i, v := range m.pos {
		m.pos[i] = t.f(v)
	}
	format := m.format
	m.format = func(x float64) string { return format(t.inv(x)) }
	return nil
}

// A compiler holds the plot data mapped to positions and colors,
// shared by all layers of one render.
type compiler struct {
	p   *Plot
	aes Aes

	// x and y are the positions of each kept row. y is nil if the
	// plot has no Y aesthetic.
	x, y         []float64
	xMap, yMap   columnMap
	xAxis, yAxis mark.Axis

	// level is the color level of each row, or -1. value is the
	// normalized color value of each row for continuous color.
	level  []int
	value  []float64
	colors []color.Color
	cmap   columnMap
	scale  *colorScale

	// keep is the index in the data of each kept row.
	keep []int

	// yLabel is the default Y label suggested by a layer.
	yLabel string
}

func newCompiler(p *Plot) (*compiler, error) {
	c := &compiler{p: p, aes: p.aes, scale: newColorScale(p)}
	data := p.data

	xm, err := mapColumn(data.MustColumn(p.aes.X))
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", p.aes.X, err)
	}
	if err := xm.transform(p.xTrans, "x"); err != nil {
		return nil, err
	}
	var ym columnMap
	if p.aes.Y != "" {
		ym, err = mapColumn(data.MustColumn(p.aes.Y))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", p.aes.Y, err)
		}
		if err := ym.transform(p.yTrans, "y"); err != nil {
			return nil, err
		}
	}
	var cm columnMap
	if p.aes.Color != "" {
		cm, err = mapColumn(data.MustColumn(p.aes.Color))
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", p.aes.Color, err)
		}
	}

	// Keep rows with finite positions.
	var keep []int
	for i, x := range xm.pos {
		if !finite(x) || (ym.pos != nil && !finite(ym.pos[i])) {
			continue
		}
		keep = append(keep, i)
	}
	if dropped := len(xm.pos) - len(keep); dropped > 0 {
		Warning.Printf("removed %d rows with missing or non-finite values", dropped)
	}

	c.keep = keep
	c.x = pick(xm.pos, keep)
	if ym.pos != nil {
		c.y = pick(ym.pos, keep)
	}
	c.xMap, c.yMap, c.cmap = xm, ym, cm
	c.xAxis = xm.axis(p.aes.X)
	c.yAxis = ym.axis(p.aes.Y)
	if ym.pos == nil && p.yTrans != nil {
		c.yAxis.Format = func(y float64) string { return formatNumber(p.yTrans.inv(y)) }
	}

	c.level = make([]int, len(keep))
	for i := range c.level {
		c.level[i] = -1
	}
	switch {
	case cm.levels != nil:
		c.colors = c.scale.levels(len(cm.levels))
		for i, r := range keep {
			c.level[i] = int(cm.pos[r]) - 1
		}
	case cm.pos != nil:
		vals := pick(cm.pos, keep)
		lo, hi := finiteBounds(vals)
		c.value = make([]float64, len(vals))
		for i, v := range vals {
			c.value[i] = normalize(v, lo, hi)
		}
	}
	return c, nil
}

func pick(xs []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, r := range idx {
		out[i] = xs[r]
	}
	return out
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func finiteBounds(xs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if finite(x) {
			lo, hi = math.Min(lo, x), math.Max(hi, x)
		}
	}
	return
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// legend returns the legend entries for the color aesthetic.
func (c *compiler) legend() []mark.LegendEntry {
	var out []mark.LegendEntry
	switch {
	case c.cmap.levels != nil:
		for i, l := range c.cmap.levels {
			out = append(out, mark.LegendEntry{Label: l, Color: c.colors[i]})
		}
	case c.value != nil:
		lo, hi := finiteBounds(c.cmap.pos)
		if lo > hi {
			return nil
		}
		for i := 0; i < 5; i++ {
			f := float64(i) / 4
			out = append(out, mark.LegendEntry{
				Label: c.cmap.format(lo + f*(hi-lo)),
				Color: c.scale.value(f),
			})
		}
	}
	return out
}

// requireY returns an error if the plot has no Y aesthetic.
func (c *compiler) requireY(layer string) error {
	if c.aes.Y == "" {
		return fmt.Errorf("%s requires a Y aesthetic", layer)
	}
	return nil
}

// suggestY sets the default Y axis label for plots without a Y
// aesthetic.
func (c *compiler) suggestY(label string) {
	if c.aes.Y == "" && c.yLabel == "" {
		c.yLabel = label
	}
}

// rng returns a deterministic random source for a layer.
func (c *compiler) rng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

// series is the rows of one color level.
type series struct {
	level int
	rows  []int
}

// series splits the rows by color level, in level order. Without
// discrete color, there is one series with level -1.
func (c *compiler) series() []series {
	if c.colors == nil {
		all := make([]int, len(c.x))
		for i := range all {
			all[i] = i
		}
		return []series{{level: -1, rows: all}}
	}
	out := make([]series, len(c.colors))
	for i := range out {
		out[i].level = i
	}
	for r, l := range c.level {
		out[l].rows = append(out[l].rows, r)
	}
	return out
}

// seriesWith returns the series with at least n rows.
func (c *compiler) seriesWith(n int) []series {
	var out []series
	for _, s := range c.series() {
		if len(s.rows) >= n {
			out = append(out, s)
		}
	}
	return out
}

// xy returns the positions of rows.
func (c *compiler) xy(rows []int) (xs, ys []float64) {
	xs = pick(c.x, rows)
	if c.y != nil {
		ys = pick(c.y, rows)
	}
	return
}

// color returns the color of a level, or def if level is -1.
func (c *compiler) color(level int, def color.Color) color.Color {
	if level < 0 || level >= len(c.colors) {
		return def
	}
	return c.colors[level]
}

// rowColor returns the color of row r under either a discrete or a
// continuous color scale.
func (c *compiler) rowColor(r int, def color.Color) color.Color {
	if c.value != nil {
		return c.scale.value(c.value[r])
	}
	return c.color(c.level[r], def)
}

// dodging reports whether elements of different colors at the same
// categorical X are placed side by side.
func (c *compiler) dodging() bool {
	return c.xMap.levels != nil && c.colors != nil && c.aes.Color != c.aes.X
}

// dodgeWidth is the total width shared by dodged elements.
const dodgeWidth = 0.9

// dodge returns the X offset for elements of level and the factor by
// which their widths shrink.
func (c *compiler) dodge(level int) (offset, scale float64) {
	if !c.dodging() || level < 0 {
		return 0, 1
	}
	n := float64(len(c.colors))
	return (float64(level) - (n-1)/2) * dodgeWidth / n, 1 / n
}

// yColumn returns the numeric column col for each kept row,
// transformed like the Y axis.
func (c *compiler) yColumn(col string) ([]float64, error) {
	v := c.p.data.Column(col)
	if v == nil {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	m, err := mapColumn(v)
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", col, err)
	}
	if m.levels != nil {
		return nil, fmt.Errorf("column %q is not numeric", col)
	}
	ys := pick(m.pos, c.keep)
	if t := c.p.yTrans; t != nil {
		for i, y := range ys {
			ys[i] = t.f(y)
		}
	}
	return ys, nil
}

// xyTable returns a table of the X and Y positions of rows, for use
// with the tidystat stats.
func (c *compiler) xyTable(rows []int) *table.Table {
	xs, ys := c.xy(rows)
	b := new(table.Builder).Add("x", xs)
	if ys != nil {
		b.Add("y", ys)
	}
	return b.Done()
}

// stat is a table transformation, such as those in tidystat.
type stat interface {
	F(table.Grouping) table.Grouping
}

// runStat applies s to all series at once and returns the result
// table of each series, which may be nil if s produced none.
func (c *compiler) runStat(s stat, ss []series) []*table.Table {
	if len(ss) == 0 {
		return nil
	}
	var gb table.GroupingBuilder
	for i, se := range ss {
		gb.Add(table.RootGroupID.Extend(i), c.xyTable(se.rows))
	}
	g := s.F(gb.Done())
	out := make([]*table.Table, len(ss))
	for _, gid := range g.Tables() {
		if i, ok := gid.Label().(int); ok && i < len(out) {
			out[i] = g.Table(gid)
		}
	}
	return out
}

// column returns column col of t as []float64, or nil if t is nil or
// lacks col.
func column(t *table.Table, col string) []float64 {
	if t == nil || t.Column(col) == nil {
		return nil
	}
	var xs []float64
	slice.Convert(&xs, t.Column(col))
	return xs
}
