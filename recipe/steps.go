// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recipe

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/aclements/go-tidyplot/tidyplot"
	"github.com/kballard/go-shellquote"
)

// A step is one named recipe operation. args is a zero struct whose
// exported fields are the step's parameters, in positional order.
// apply receives a filled-in copy of args.
type step struct {
	args  interface{}
	apply func(p *tidyplot.Plot, args interface{})
}

func layer(l tidyplot.Layer) step {
	return step{l, func(p *tidyplot.Plot, args interface{}) {
		p.Add(args.(tidyplot.Layer))
	}}
}

func noArgs(f func(p *tidyplot.Plot) *tidyplot.Plot) step {
	return step{struct{}{}, func(p *tidyplot.Plot, _ interface{}) { f(p) }}
}

type colorsArgs struct{ Palette string }
type angleArgs struct{ Angle float64 }
type legendArgs struct{ Position string }
type gradientArgs struct{ Low, High string }
type gradient2Args struct{ Low, Mid, High string }

var steps = map[string]step{
	"add_mean_bar":             layer(tidyplot.MeanBar{}),
	"add_sem_errorbar":         layer(tidyplot.SEMErrorbar{}),
	"add_sd_errorbar":          layer(tidyplot.SDErrorbar{}),
	"add_ci_errorbar":          layer(tidyplot.CIErrorbar{}),
	"add_errorbar":             layer(tidyplot.Errorbar{}),
	"add_data_points":          layer(tidyplot.Scatter{}),
	"add_data_points_beeswarm": layer(tidyplot.Beeswarm{}),
	"add_data_points_jitter":   layer(tidyplot.Jitter{}),
	"add_violin":               layer(tidyplot.Violin{}),
	"add_boxplot":              layer(tidyplot.Boxplot{}),
	"add_density":              layer(tidyplot.Density{}),
	"add_density_2d":           layer(tidyplot.Density2D{}),
	"add_scatter":              layer(tidyplot.Scatter{}),
	"add_line":                 layer(tidyplot.Line{}),
	"add_smooth":               layer(tidyplot.Smooth{}),
	"add_count":                layer(tidyplot.Count{}),
	"add_text":                 layer(tidyplot.Text{}),
	"add_hline":                layer(tidyplot.HLine{}),
	"add_vline":                layer(tidyplot.VLine{}),
	"add_ribbon":               layer(tidyplot.Ribbon{}),
	"add_rug":                  layer(tidyplot.Rug{}),
	"add_step":                 layer(tidyplot.Step{}),
	"add_hex":                  layer(tidyplot.Hex{}),
	"add_quantiles":            layer(tidyplot.Quantiles{}),
	"add_test_pvalue":          layer(tidyplot.TestPValue{}),
	"add_correlation_text":     layer(tidyplot.CorrelationText{}),
	"add_histogram":            layer(tidyplot.Histogram{}),
	"add_ecdf":                 layer(tidyplot.ECDF{}),

	"adjust_colors": {colorsArgs{}, func(p *tidyplot.Plot, a interface{}) {
		p.AdjustColors(a.(colorsArgs).Palette)
	}},
	"adjust_labels": {tidyplot.Labels{}, func(p *tidyplot.Plot, a interface{}) {
		p.AdjustLabels(a.(tidyplot.Labels))
	}},
	"adjust_axis_text_angle": {angleArgs{}, func(p *tidyplot.Plot, a interface{}) {
		p.AdjustAxisTextAngle(a.(angleArgs).Angle)
	}},
	"adjust_legend_position": {legendArgs{}, func(p *tidyplot.Plot, a interface{}) {
		p.AdjustLegendPosition(a.(legendArgs).Position)
	}},

	"scale_x_log10":   noArgs((*tidyplot.Plot).ScaleXLog10),
	"scale_y_log10":   noArgs((*tidyplot.Plot).ScaleYLog10),
	"scale_x_sqrt":    noArgs((*tidyplot.Plot).ScaleXSqrt),
	"scale_y_sqrt":    noArgs((*tidyplot.Plot).ScaleYSqrt),
	"scale_x_reverse": noArgs((*tidyplot.Plot).ScaleXReverse),
	"scale_y_reverse": noArgs((*tidyplot.Plot).ScaleYReverse),
	"scale_color_gradient": {gradientArgs{}, func(p *tidyplot.Plot, a interface{}) {
		g := a.(gradientArgs)
		p.ScaleColorGradient(g.Low, g.High)
	}},
	"scale_color_gradient2": {gradient2Args{}, func(p *tidyplot.Plot, a interface{}) {
		g := a.(gradient2Args)
		p.ScaleColorGradient2(g.Low, g.Mid, g.High)
	}},
}

// Steps returns the names of all recipe steps in sorted order.
func Steps() []string {
	names := make([]string, 0, len(steps))
	for name := range steps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params returns the parameter names of step name, in positional
// order, or nil if there is no such step.
func Params(name string) []string {
	s, ok := steps[name]
	if !ok {
		return nil
	}
	t := reflect.TypeOf(s.args)
	params := []string{}
	for i := 0; i < t.NumField(); i++ {
		params = append(params, paramName(t.Field(i).Name))
	}
	return params
}

// paramName converts a field name like "OutlierAlpha" to
// "outlier_alpha". Runs of capitals stay together, so "YMin" is
// "ymin" and "SE" is "se".
func paramName(field string) string {
	var b strings.Builder
	rs := []rune(field)
	for i, r := range rs {
		lower := strings.ToLower(string(r))
		if i > 0 && lower != string(r) && strings.ToLower(string(rs[i-1])) == string(rs[i-1]) {
			b.WriteByte('_')
		}
		b.WriteString(lower)
	}
	return b.String()
}

// Parse parses a step string such as "add_boxplot alpha=0.3" into
// its name and arguments. Words are split with shell quoting rules.
func Parse(s string) (name string, args []string, err error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return "", nil, err
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("empty step")
	}
	return words[0], words[1:], nil
}

// Step applies a single parsed step to p.
//
// Arguments are either positional, filling parameters in order, or
// key=value. Argument errors are returned; errors the plot itself
// detects are recorded in p as usual.
func Step(p *tidyplot.Plot, name string, args []string) error {
	s, ok := steps[name]
	if !ok {
		return fmt.Errorf("unknown step %q", name)
	}
	v := reflect.New(reflect.TypeOf(s.args)).Elem()
	t := v.Type()
	set := make([]bool, t.NumField())
	pos := 0
	for _, arg := range args {
		for pos < t.NumField() && set[pos] {
			pos++
		}
		field, val := -1, arg
		if key, rest, ok := strings.Cut(arg, "="); ok && isParam(key) {
			field = fieldByParam(t, key)
			// A string parameter may take "key=value" text
			// positionally, such as the label "p=0.05".
			nextIsString := pos < t.NumField() && t.Field(pos).Type.Kind() == reflect.String
			switch {
			case field >= 0:
				val = rest
			case !nextIsString:
				return fmt.Errorf("%s: unknown parameter %q (have %s)", name, key, strings.Join(Params(name), ", "))
			}
		}
		if field < 0 {
			if pos >= t.NumField() {
				return fmt.Errorf("%s: too many arguments", name)
			}
			field = pos
		}
		if set[field] {
			return fmt.Errorf("%s: %s given twice", name, paramName(t.Field(field).Name))
		}
		if err := setField(v.Field(field), val); err != nil {
			return fmt.Errorf("%s: %s: %w", name, paramName(t.Field(field).Name), err)
		}
		set[field] = true
	}
	s.apply(p, v.Interface())
	return nil
}

// isParam reports whether key looks like a parameter name, so that
// positional values containing "=" (such as "a = b") are not
// mistaken for keyword arguments.
func isParam(key string) bool {
	if key == "" {
		return false
	}
	for _, r := range key {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func fieldByParam(t reflect.Type, key string) int {
	want := strings.ReplaceAll(key, "_", "")
	for i := 0; i < t.NumField(); i++ {
		if strings.EqualFold(t.Field(i).Name, want) {
			return i
		}
	}
	return -1
}

func setField(f reflect.Value, val string) error {
	switch f.Kind() {
	case reflect.String:
		f.SetString(val)
	case reflect.Float64:
		x, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		f.SetFloat(x)
	case reflect.Int:
		x, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		f.SetInt(int64(x))
	case reflect.Ptr:
		if f.Type().Elem().Kind() != reflect.Bool {
			return fmt.Errorf("unsupported parameter type %s", f.Type())
		}
		b, err := strconv.ParseBool(val)
		if err != nil {
			return err
		}
		f.Set(reflect.ValueOf(tidyplot.Bool(b)))
	case reflect.Slice:
		if f.Type().Elem().Kind() != reflect.Float64 {
			return fmt.Errorf("unsupported parameter type %s", f.Type())
		}
		// An empty list is distinct from an omitted one.
		xs := []float64{}
		for _, s := range strings.Split(val, ",") {
			if s = strings.TrimSpace(s); s == "" {
				continue
			}
			x, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			xs = append(xs, x)
		}
		f.Set(reflect.ValueOf(xs))
	default:
		return fmt.Errorf("unsupported parameter type %s", f.Type())
	}
	return nil
}

// Apply parses and applies each step to p in order. It stops at the
// first step that fails to parse or has bad arguments.
func Apply(p *tidyplot.Plot, list []string) error {
	for i, s := range list {
		name, args, err := Parse(s)
		if err == nil {
			err = Step(p, name, args)
		}
		if err != nil {
			return fmt.Errorf("step %d %q: %w", i+1, s, err)
		}
	}
	return nil
}
