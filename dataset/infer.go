// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset loads tabular data into go-gg tables.
//
// Loaders read every cell as text and then infer a type for each
// column: a column whose non-empty cells all parse as integers
// becomes []int, and likewise for float64, time.Duration, and
// time.Time (RFC 3339 or 2006-01-02), tried in that order. Any other
// column is []string.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/aclements/go-gg/table"
)

// A columnParser converts the raw cells of a column into a typed
// slice, or reports that some cell does not parse.
type columnParser func(cells []string) (interface{}, bool)

// columnParsers are tried in priority order by inferColumn.
var columnParsers = []columnParser{
	parseInts,
	parseFloats,
	parseDurations,
	parseTimes,
}

func parseInts(cells []string) (interface{}, bool) {
	out := make([]int, len(cells))
	for i, c := range cells {
		v, err := strconv.Atoi(c)
		if err != nil {
			// Includes empty cells, which ints cannot
			// represent.
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseFloats(cells []string) (interface{}, bool) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		if c == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func parseDurations(cells []string) (interface{}, bool) {
	out := make([]time.Duration, len(cells))
	for i, c := range cells {
		v, err := time.ParseDuration(c)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// timeLayouts are the layouts parseTimes accepts.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02"}

func parseTimes(cells []string) (interface{}, bool) {
	out := make([]time.Time, len(cells))
cells:
	for i, c := range cells {
		for _, layout := range timeLayouts {
			if v, err := time.Parse(layout, c); err == nil {
				out[i] = v
				continue cells
			}
		}
		return nil, false
	}
	return out, true
}

// inferColumn returns cells as the first typed slice whose parser
// accepts every cell, or as []string. Empty cells are accepted only
// by the float parser (as NaN) and the string fallback.
func inferColumn(cells []string) interface{} {
	nonEmpty := false
	for _, c := range cells {
		if c != "" {
			nonEmpty = true
			break
		}
	}
	if nonEmpty {
		for _, p := range columnParsers {
			if col, ok := p(cells); ok {
				return col
			}
		}
	}
	return append([]string(nil), cells...)
}

// fromRecords builds a table from a header row and data rows of text
// cells. Short rows are padded with empty cells. Blank or duplicate
// header names are replaced by "column N" (1-based).
func fromRecords(header []string, rows [][]string) (*table.Table, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	names := make([]string, len(header))
	seen := make(map[string]bool)
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" || seen[h] {
			h = fmt.Sprintf("column %d", i+1)
		}
		seen[h] = true
		names[i] = h
	}

	var b table.Builder
	for col, name := range names {
		cells := make([]string, len(rows))
		for r, row := range rows {
			if col < len(row) {
				cells[r] = strings.TrimSpace(row[col])
			}
		}
		b.Add(name, inferColumn(cells))
	}
	return b.Done(), nil
}
