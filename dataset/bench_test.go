// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseBenchmarks(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		want  []*Benchmark
	}{
		{"basic", `
BenchmarkX	1	2 ns/op 3 MB/s`,
			[]*Benchmark{
				{"X", 1, map[string]string{"gomaxprocs": "1"}, map[string]float64{"ns/op": 2, "MB/s": 3}},
			},
		},
		{"short name", `
Benchmark	1	2 ns/op`,
			[]*Benchmark{
				{"", 1, map[string]string{"gomaxprocs": "1"}, map[string]float64{"ns/op": 2}},
			},
		},
		{"bad names", `
Benchmarkx	1	2 ns/op
benchmarkx	1	2 ns/op
benchmarkX	1	2 ns/op`,
			[]*Benchmark{},
		},
		{"short lines", `
BenchmarkX
BenchmarkX	1
BenchmarkX	1	2`,
			[]*Benchmark{},
		},
		{"gomaxprocs", `
BenchmarkX-4	1	2 ns/op`,
			[]*Benchmark{
				{"X", 1, map[string]string{"gomaxprocs": "4"}, map[string]float64{"ns/op": 2}},
			},
		},
		{"sub-benchmark config", `
BenchmarkX/a:20/b:abc	1	2 ns/op
BenchmarkY/c:123/plain-8	2	4 ns/op`,
			[]*Benchmark{
				{"X", 1, map[string]string{"a": "20", "b": "abc", "gomaxprocs": "1"}, map[string]float64{"ns/op": 2}},
				{"Y/plain", 2, map[string]string{"c": "123", "gomaxprocs": "8"}, map[string]float64{"ns/op": 4}},
			},
		},
		{"block config", `
commit: 123456
date: Jan 1
colon:colon: 42
blank:
#not-config: x
spa ce: x
Not-config: x
BenchmarkX	1	2 ns/op`,
			[]*Benchmark{
				{"X", 1, map[string]string{
					"commit":      "123456",
					"date":        "Jan 1",
					"colon:colon": "42",
					"blank":       "",
					"gomaxprocs":  "1",
				}, map[string]float64{"ns/op": 2}},
			},
		},
		{"benchmark overrides block", `
commit: 123456
BenchmarkX/commit:abcdef	1	2 ns/op`,
			[]*Benchmark{
				{"X", 1, map[string]string{"commit": "abcdef", "gomaxprocs": "1"}, map[string]float64{"ns/op": 2}},
			},
		},
		{"block overrides block", `
commit: 123456
commit: abcdef
BenchmarkX	1	2 ns/op`,
			[]*Benchmark{
				{"X", 1, map[string]string{"commit": "abcdef", "gomaxprocs": "1"}, map[string]float64{"ns/op": 2}},
			},
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			bs, err := ParseBenchmarks(strings.NewReader(test.input))
			if err != nil {
				t.Fatal("unexpected error", err)
			}
			if !reflect.DeepEqual(bs, test.want) {
				t.Log("want:")
				for _, b := range test.want {
					t.Logf("%#v", b)
				}
				t.Log("got:")
				for _, b := range bs {
					t.Logf("%#v", b)
				}
				t.Fail()
			}
		})
	}
}

func TestReadBenchmarks(t *testing.T) {
	const input = `
goos: linux
BenchmarkFib/n:10-4	1000	250 ns/op	16 B/op
BenchmarkFib/n:20-4	100	30000 ns/op
`
	tab, err := ReadBenchmarks(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	wantCols := []string{"name", "iterations", "gomaxprocs", "goos", "n", "B/op", "time/op"}
	if got := tab.Columns(); !reflect.DeepEqual(got, wantCols) {
		t.Fatalf("columns: want %v, got %v", wantCols, got)
	}
	if got, want := tab.Column("name"), []string{"Fib", "Fib"}; !reflect.DeepEqual(got, want) {
		t.Errorf("name: want %v, got %v", want, got)
	}
	if got, want := tab.Column("n"), []int{10, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("n: want %v, got %v", want, got)
	}
	if got, want := tab.Column("goos"), []string{"linux", "linux"}; !reflect.DeepEqual(got, want) {
		t.Errorf("goos: want %v, got %v", want, got)
	}
	if got, want := tab.Column("time/op"), []time.Duration{250, 30000}; !reflect.DeepEqual(got, want) {
		t.Errorf("time/op: want %v, got %v", want, got)
	}
	bop := tab.Column("B/op").([]float64)
	if bop[0] != 16 || !math.IsNaN(bop[1]) {
		t.Errorf("B/op: want [16 NaN], got %v", bop)
	}
}
