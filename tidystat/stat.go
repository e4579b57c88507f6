// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidystat

import (
	"math"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// floats returns column col of t converted to []float64.
func floats(t *table.Table, col string) []float64 {
	var xs []float64
	slice.Convert(&xs, t.MustColumn(col))
	return xs
}

// byX splits the rows of (xs, ys) by distinct finite x value. It
// returns the distinct x values in ascending order and, for each, the
// finite y values at that x.
func byX(xs, ys []float64) ([]float64, [][]float64) {
	idx := make(map[float64]int)
	var keys []float64
	var vals [][]float64
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		y := ys[i]
		if math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		k, ok := idx[x]
		if !ok {
			k = len(keys)
			idx[x] = k
			keys = append(keys, x)
			vals = append(vals, nil)
		}
		vals[k] = append(vals[k], y)
	}

	// Sort keys, carrying vals along.
	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return keys[order[i]] < keys[order[j]] })
	sk, sv := make([]float64, len(keys)), make([][]float64, len(keys))
	for i, o := range order {
		sk[i], sv[i] = keys[o], vals[o]
	}
	return sk, sv
}

// preserveConsts copies the constant columns from t into nt.
func preserveConsts(nt *table.Builder, t *table.Table) {
	for _, col := range t.Columns() {
		if nt.Has(col) {
			continue
		}
		if cv, ok := t.Const(col); ok {
			nt.AddConst(col, cv)
		}
	}
}

// Summary reduces the Y values at each distinct X to an Interval.
//
// The result has columns X, Y, "ymin", and "ymax", plus the constant
// columns of the input.
type Summary struct {
	X, Y string

	// Fun computes the summary. If nil, it is MeanSE.
	Fun SummaryFunc

	// MinN is the minimum number of samples needed to summarize a
	// group. Smaller groups are omitted.
	MinN int
}

func (s Summary) F(g table.Grouping) table.Grouping {
	fun := s.Fun
	if fun == nil {
		fun = MeanSE
	}
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		keys, vals := byX(floats(t, s.X), floats(t, s.Y))
		var xo, yo, lo, hi []float64
		for i, v := range vals {
			if len(v) < s.MinN || len(v) == 0 {
				continue
			}
			iv := fun(v)
			xo = append(xo, keys[i])
			yo = append(yo, iv.Y)
			lo = append(lo, iv.YMin)
			hi = append(hi, iv.YMax)
		}
		nt := new(table.Builder).Add(s.X, nonNil(xo)).Add(s.Y, nonNil(yo)).Add("ymin", nonNil(lo)).Add("ymax", nonNil(hi))
		preserveConsts(nt, t)
		return nt.Done()
	})
}

func nonNil(xs []float64) []float64 {
	if xs == nil {
		return []float64{}
	}
	return xs
}

// Boxplot computes the box plot summary of Y at each distinct X.
//
// The result has columns X, "lower", "middle", "upper", "ymin",
// "ymax", and "outliers" (a [][]float64), plus the constant columns
// of the input.
type Boxplot struct {
	X, Y string
}

func (s Boxplot) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		keys, vals := byX(floats(t, s.X), floats(t, s.Y))
		var xo, lower, middle, upper, lo, hi []float64
		outliers := [][]float64{}
		for i, v := range vals {
			b, ok := Box(v)
			if !ok {
				continue
			}
			xo = append(xo, keys[i])
			lower = append(lower, b.Lower)
			middle = append(middle, b.Median)
			upper = append(upper, b.Upper)
			lo = append(lo, b.WhiskerLow)
			hi = append(hi, b.WhiskerHigh)
			outliers = append(outliers, b.Outliers)
		}
		nt := new(table.Builder).Add(s.X, nonNil(xo)).
			Add("lower", nonNil(lower)).Add("middle", nonNil(middle)).Add("upper", nonNil(upper)).
			Add("ymin", nonNil(lo)).Add("ymax", nonNil(hi)).
			Add("outliers", outliers)
		preserveConsts(nt, t)
		return nt.Done()
	})
}

// Count counts the rows at each distinct X.
//
// The result has columns X and "count", plus the constant columns of
// the input. If Proportion is set, "count" is divided by Total (or by
// the group's row count if Total is 0).
type Count struct {
	X string

	Proportion bool
	Total      float64
}

func (s Count) F(g table.Grouping) table.Grouping {
	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		xs := floats(t, s.X)
		keys, vals := byX(xs, xs)
		counts := make([]float64, len(keys))
		total := s.Total
		if total == 0 {
			for _, v := range vals {
				total += float64(len(v))
			}
		}
		for i, v := range vals {
			counts[i] = float64(len(v))
			if s.Proportion && total > 0 {
				counts[i] /= total
			}
		}
		nt := new(table.Builder).Add(s.X, nonNil(keys)).Add("count", counts)
		preserveConsts(nt, t)
		return nt.Done()
	})
}

// Histogram bins X into equal-width bins spanning the range of the
// whole grouping, so that histograms of different groups align.
//
// The result has columns X (bin centers), "xmin", "xmax", and
// "count", plus the constant columns of the input.
type Histogram struct {
	X string

	// Bins is the number of bins. If 0, it is 30.
	Bins int
}

func (s Histogram) F(g table.Grouping) table.Grouping {
	bins := s.Bins
	if bins <= 0 {
		bins = 30
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, gid := range g.Tables() {
		for _, x := range Finite(floats(g.Table(gid), s.X)) {
			min, max = math.Min(min, x), math.Max(max, x)
		}
	}
	if min > max {
		min, max = 0, 1
	} else if min == max {
		min, max = min-0.5, max+0.5
	}
	width := (max - min) / float64(bins)

	return table.MapTables(g, func(_ table.GroupID, t *table.Table) *table.Table {
		counts := make([]float64, bins)
		for _, x := range Finite(floats(t, s.X)) {
			i := int((x - min) / width)
			if i >= bins {
				// The maximum falls in the last bin.
				i = bins - 1
			}
			counts[i]++
		}
		centers, lo, hi := make([]float64, bins), make([]float64, bins), make([]float64, bins)
		for i := range centers {
			lo[i] = min + float64(i)*width
			hi[i] = lo[i] + width
			centers[i] = lo[i] + width/2
		}
		nt := new(table.Builder).Add(s.X, centers).Add("xmin", lo).Add("xmax", hi).Add("count", counts)
		preserveConsts(nt, t)
		return nt.Done()
	})
}
