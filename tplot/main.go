// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tplot plots tabular data with tidyplot.
//
// Usage:
//
//	tplot [flags] [input] [steps...]
//
// The input may be a CSV, TSV, or Excel file, or a file in Go benchmark
// format [1]. With no input, or input "-", tplot reads benchmark
// results from stdin. Each step is one recipe step, such as
//
//	tplot -x group -y value -o fig.png data.csv 'add_boxplot alpha=0.3' add_data_points_beeswarm
//
// With -recipe, the input, mappings, output, and steps come from a
// recipe file; flags override the recipe and extra arguments are
// appended to its steps. Run tplot -list for the available steps.
//
// The default image size and backend can be set in the environment
// with TIDYPLOT_WIDTH, TIDYPLOT_HEIGHT, TIDYPLOT_DPI, and
// TIDYPLOT_BACKEND.
//
// [1] https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/kelseyhightower/envconfig"

	"github.com/aclements/go-tidyplot/dataset"
	"github.com/aclements/go-tidyplot/recipe"
	"github.com/aclements/go-tidyplot/tidyplot"
)

// env holds defaults read from TIDYPLOT_* environment variables.
type env struct {
	Width   int    `envconfig:"WIDTH"`
	Height  int    `envconfig:"HEIGHT"`
	DPI     int    `envconfig:"DPI"`
	Backend string `envconfig:"BACKEND"`
}

func main() {
	log.SetPrefix("tplot: ")
	log.SetFlags(0)

	var defaults env
	if err := envconfig.Process("tidyplot", &defaults); err != nil {
		log.Fatal(err)
	}

	var (
		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
		flagMemProfile = flag.String("memprofile", "", "write heap profile to `file`")
		flagX          = flag.String("x", "", "map `column` to the X axis")
		flagY          = flag.String("y", "", "map `column` to the Y axis")
		flagColor      = flag.String("color", "", "map `column` to color")
		flagRecipe     = flag.String("recipe", "", "read input, mappings, and steps from recipe `file`")
		flagOut        = flag.String("o", "", "write output to `file`; the extension selects the format (default: SVG to stdout)")
		flagWidth      = flag.Int("W", defaults.Width, "image width in `pixels`")
		flagHeight     = flag.Int("H", defaults.Height, "image height in `pixels`")
		flagDPI        = flag.Int("dpi", defaults.DPI, "raster image resolution")
		flagBackend    = flag.String("backend", defaults.Backend, "drawing `library`: auto, gg, or gonum")
		flagSheet      = flag.String("sheet", "", "read `sheet` of an Excel input (default: first sheet)")
		flagTable      = flag.Bool("table", false, "output the input table instead of a plot")
		flagList       = flag.Bool("list", false, "list recipe steps and their parameters")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input] [steps...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagList {
		listSteps(os.Stdout)
		return
	}

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagMemProfile != "" {
		defer func() {
			runtime.GC()
			f, err := os.Create(*flagMemProfile)
			if err != nil {
				log.Fatal(err)
			}
			pprof.WriteHeapProfile(f)
			f.Close()
		}()
	}

	// Gather the input, mappings, and steps.
	rc := &recipe.Recipe{}
	args := flag.Args()
	if *flagRecipe != "" {
		var err error
		rc, err = recipe.Load(*flagRecipe)
		if err != nil {
			log.Fatal(err)
		}
	}
	if rc.Data == "" && len(args) > 0 {
		rc.Data, args = args[0], args[1:]
	}
	rc.Steps = append(rc.Steps, args...)
	override(&rc.X, *flagX)
	override(&rc.Y, *flagY)
	override(&rc.Color, *flagColor)
	override(&rc.Output, *flagOut)

	opts := rc.SaveOptions()
	if *flagWidth != 0 {
		opts.Width = *flagWidth
	}
	if *flagHeight != 0 {
		opts.Height = *flagHeight
	}
	opts.DPI = *flagDPI
	backend, err := tidyplot.ParseBackend(*flagBackend)
	if err != nil {
		log.Fatal(err)
	}
	opts.Backend = backend

	tab, err := load(rc.Data, *flagSheet)
	if err != nil {
		log.Fatal(err)
	}

	// Output table.
	if *flagTable {
		out := os.Stdout
		if rc.Output != "" {
			out, err = os.Create(rc.Output)
			if err != nil {
				log.Fatal(err)
			}
			defer out.Close()
		}
		table.Fprint(out, tab)
		return
	}

	if rc.X == "" {
		log.Fatalf("no X column; use -x (columns: %s)", strings.Join(tab.Columns(), ", "))
	}

	// Plot.
	p, err := rc.Plot(tab)
	if err != nil {
		log.Fatal(err)
	}
	if rc.Output == "" {
		err = p.Write(os.Stdout, "svg", opts)
	} else {
		err = p.Save(rc.Output, opts)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func override(dst *string, val string) {
	if val != "" {
		*dst = val
	}
}

// load reads the input table from path, or Go benchmark results from
// stdin if path is "" or "-".
func load(path, sheet string) (*table.Table, error) {
	if path == "" || path == "-" {
		return dataset.ReadBenchmarks(os.Stdin)
	}
	if sheet != "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			return dataset.ReadXLSX(path, sheet)
		}
		return nil, fmt.Errorf("%s: -sheet requires an Excel input", path)
	}
	return dataset.Load(path)
}

func listSteps(w io.Writer) {
	for _, name := range recipe.Steps() {
		params := recipe.Params(name)
		if len(params) == 0 {
			fmt.Fprintln(w, name)
			continue
		}
		fmt.Fprintf(w, "%s %s\n", name, strings.Join(params, " "))
	}
}
