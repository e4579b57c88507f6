// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"bufio"
	"io"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/aclements/go-gg/table"
)

// Benchmark is one result line of a Go benchmark results file.
//
// The format is specified at:
// https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
type Benchmark struct {
	// Name is the name of the benchmark, without the "Benchmark"
	// prefix, sub-benchmark configuration, or GOMAXPROCS suffix.
	Name string

	// Iterations is the number of times the benchmark ran.
	Iterations int

	// Config holds the configuration in effect for this result:
	// the file's configuration lines, "key:value" parts of the
	// sub-benchmark name, and "gomaxprocs".
	Config map[string]string

	// Result maps each unit ("ns/op", "B/op", ...) to its value.
	Result map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// ParseBenchmarks parses a Go benchmark results file. There may be
// many results for the same benchmark and configuration.
func ParseBenchmarks(r io.Reader) ([]*Benchmark, error) {
	benchmarks := []*Benchmark{}
	config := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()

		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if strings.HasPrefix(line, "Benchmark") {
			if b := parseBenchmarkLine(line, config); b != nil {
				benchmarks = append(benchmarks, b)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return benchmarks, nil
}

func parseBenchmarkLine(line string, fileConfig map[string]string) *Benchmark {
	f := strings.Fields(line)
	if len(f) < 4 {
		return nil
	}
	if f[0] != "Benchmark" {
		next, _ := utf8.DecodeRuneInString(f[0][len("Benchmark"):])
		if !unicode.IsUpper(next) {
			return nil
		}
	}
	n, err := strconv.Atoi(f[1])
	if err != nil || n <= 0 {
		return nil
	}

	b := &Benchmark{
		Iterations: n,
		Config:     make(map[string]string, len(fileConfig)+1),
		Result:     make(map[string]float64),
	}
	for k, v := range fileConfig {
		b.Config[k] = v
	}

	name := strings.TrimPrefix(f[0], "Benchmark")
	if i := strings.LastIndex(name, "-"); i >= 0 {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			b.Config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	parts := strings.Split(name, "/")
	b.Name = parts[0]
	for _, part := range parts[1:] {
		if i := strings.Index(part, ":"); i >= 0 {
			b.Config[part[:i]] = part[i+1:]
		} else {
			b.Name += "/" + part
		}
	}
	if _, ok := b.Config["gomaxprocs"]; !ok {
		b.Config["gomaxprocs"] = "1"
	}

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		b.Result[f[i+1]] = val
	}
	return b
}

// ReadBenchmarks parses a Go benchmark results file into a table. See
// BenchmarksTable.
func ReadBenchmarks(r io.Reader) (*table.Table, error) {
	bs, err := ParseBenchmarks(r)
	if err != nil {
		return nil, err
	}
	return BenchmarksTable(bs), nil
}

// BenchmarksTable returns a table with one row per benchmark result.
// It has a "name" column, an "iterations" column, one column per
// configuration key (typed as described in the package
// documentation), and one float64 column per result unit, with NaN
// where a result lacks the unit. If every result has an "ns/op"
// value, that unit becomes a time.Duration column named "time/op".
// Hyphens in column names are replaced with spaces.
func BenchmarksTable(bs []*Benchmark) *table.Table {
	names := make([]string, len(bs))
	iters := make([]int, len(bs))
	configs := map[string][]string{}
	results := map[string][]float64{}
	for i, b := range bs {
		names[i] = b.Name
		iters[i] = b.Iterations

		for k, v := range b.Config {
			col, ok := configs[k]
			if !ok {
				col = make([]string, len(bs))
				configs[k] = col
			}
			col[i] = v
		}

		for k, v := range b.Result {
			col, ok := results[k]
			if !ok {
				col = make([]float64, len(bs))
				for j := range col {
					col[j] = math.NaN()
				}
				results[k] = col
			}
			col[i] = v
		}
	}

	tab := new(table.Builder).Add("name", names).Add("iterations", iters)
	for _, key := range sortedKeys(configs) {
		tab.Add(niceName(key), inferColumn(configs[key]))
	}
	for _, key := range sortedKeys(results) {
		if key == "ns/op" && !hasNaN(results[key]) {
			durations := make([]time.Duration, len(results[key]))
			for i, x := range results[key] {
				durations[i] = time.Duration(x)
			}
			tab.Add("time/op", durations)
			continue
		}
		tab.Add(niceName(key), results[key])
	}
	return tab.Done()
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

func niceName(key string) string {
	return strings.Replace(key, "-", " ", -1)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
