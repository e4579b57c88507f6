// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package recipe describes tidyplot figures as text.
//
// A recipe is a YAML document naming a data file, the aesthetic
// mappings, and a list of steps:
//
//	data: results.csv
//	x: group
//	y: value
//	color: group
//	output: fig.png
//	steps:
//	  - add_boxplot alpha=0.3
//	  - add_data_points_beeswarm
//	  - add_test_pvalue test=wilcoxon
//	  - adjust_colors Set2
//	  - adjust_labels title="Treatment effect"
//
// Each step is a snake_case operation name followed by arguments,
// split with shell quoting. Arguments are positional or key=value;
// see Steps and Params for the available names.
package recipe

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-tidyplot/tidyplot"
	"gopkg.in/yaml.v3"
)

// Recipe is a parsed recipe file.
type Recipe struct {
	// Data is the path of the input data. A relative path read
	// by Load is relative to the recipe file.
	Data string `yaml:"data"`

	X     string `yaml:"x"`
	Y     string `yaml:"y"`
	Color string `yaml:"color"`

	// Width and Height are the output size in pixels. Zero means
	// the default size.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Output is the file to save the figure to.
	Output string `yaml:"output"`

	Steps []string `yaml:"steps"`
}

// Read parses a recipe from r. Unknown keys are an error.
func Read(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var rc Recipe
	if err := dec.Decode(&rc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty recipe")
		}
		return nil, err
	}
	return &rc, nil
}

// Load reads the recipe file at path.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	rc, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if rc.Data != "" && !filepath.IsAbs(rc.Data) {
		rc.Data = filepath.Join(filepath.Dir(path), rc.Data)
	}
	return rc, nil
}

// Aes returns the recipe's aesthetic mappings.
func (rc *Recipe) Aes() tidyplot.Aes {
	return tidyplot.Aes{X: rc.X, Y: rc.Y, Color: rc.Color}
}

// Plot builds a plot of data from the recipe's mappings and steps.
// Step errors are returned; the plot's own errors are left in the
// returned plot's Err.
func (rc *Recipe) Plot(data *table.Table) (*tidyplot.Plot, error) {
	p := tidyplot.New(data, rc.Aes())
	return p, Apply(p, rc.Steps)
}

// SaveOptions returns the recipe's output size as save options.
func (rc *Recipe) SaveOptions() tidyplot.SaveOptions {
	return tidyplot.SaveOptions{Width: rc.Width, Height: rc.Height}
}
