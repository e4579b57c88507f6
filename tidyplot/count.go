// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidyplot

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-tidyplot/internal/mark"
	"github.com/aclements/go-tidyplot/tidystat"
)

// Count draws a bar at each X with the number of rows at that X.
// With a color aesthetic, the bars of each color are stacked or
// placed side by side.
type Count struct {
	// Stat is "count" or "proportion". Proportions divide each
	// count by the total count at its X. If "", it is "count".
	Stat string

	// Position is "stack" or "dodge". If "", it is "stack".
	Position string
}

func (l Count) validate(p *Plot) error {
	switch l.Stat {
	case "", "count", "proportion":
	default:
		return fmt.Errorf("count: stat must be \"count\" or \"proportion\"; got %q", l.Stat)
	}
	switch l.Position {
	case "", "stack", "dodge":
	default:
		return fmt.Errorf("count: position must be \"stack\" or \"dodge\"; got %q", l.Position)
	}
	return nil
}

// resolution returns the smallest gap between distinct values of xs,
// or 1 if there is none.
func resolution(xs []float64) float64 {
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	res := math.Inf(1)
	for i := 1; i < len(s); i++ {
		if d := s[i] - s[i-1]; d > 0 && d < res {
			res = d
		}
	}
	if math.IsInf(res, 1) {
		return 1
	}
	return res
}

func (l Count) compile(c *compiler) ([]*mark.Mark, error) {
	proportion := l.Stat == "proportion"
	dodge := l.Position == "dodge"
	if proportion {
		c.suggestY("proportion")
	} else {
		c.suggestY("count")
	}

	ss := c.series()
	tabs := c.runStat(tidystat.Count{X: "x"}, ss)
	totals := make(map[float64]float64)
	// present[x] is the number of series with a bar at x, and
	// slot[i][x] is series i's place among them.
	present := make(map[float64]int)
	slot := make([]map[float64]int, len(ss))
	for i, t := range tabs {
		xs, ns := column(t, "x"), column(t, "count")
		slot[i] = make(map[float64]int)
		for j, x := range xs {
			totals[x] += ns[j]
			if ns[j] > 0 {
				slot[i][x] = present[x]
				present[x]++
			}
		}
	}

	width := dodgeWidth * resolution(c.x)
	base := make(map[float64]float64)
	m := &mark.Mark{Kind: mark.Polygon}
	for i, s := range ss {
		xs, ns := column(tabs[i], "x"), column(tabs[i], "count")
		fill := c.color(s.level, defaultFill)
		for j, x := range xs {
			h := ns[j]
			if h == 0 {
				continue
			}
			if proportion && totals[x] > 0 {
				h /= totals[x]
			}
			if dodge {
				// Split the slot among the colors present at x.
				w := width / float64(present[x])
				x0 := x - width/2 + float64(slot[i][x])*w
				m.Groups = append(m.Groups, rect(x0, x0+w, 0, h, nil, fill))
				continue
			}
			// Stack in color level order.
			y0 := base[x]
			base[x] = y0 + h
			m.Groups = append(m.Groups, rect(x-width/2, x+width/2, y0, y0+h, nil, fill))
		}
	}
	return []*mark.Mark{m}, nil
}
