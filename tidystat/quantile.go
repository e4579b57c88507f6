// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tidystat

import (
	"math"
	"sort"
)

// Quantile returns the q quantile of xs using linear interpolation
// between order statistics (R's type 7, the default in R and NumPy).
// xs need not be sorted. Quantile returns NaN if xs is empty.
func Quantile(xs []float64, q float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	return quantileSorted(s, q)
}

func quantileSorted(s []float64, q float64) float64 {
	if q <= 0 {
		return s[0]
	} else if q >= 1 {
		return s[len(s)-1]
	}
	h := q * float64(len(s)-1)
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= len(s) {
		return s[i]
	}
	return s[i] + (h-lo)*(s[i+1]-s[i])
}

// Quantiles returns the quantiles qs of xs.
func Quantiles(xs []float64, qs []float64) []float64 {
	out := make([]float64, len(qs))
	if len(xs) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	for i, q := range qs {
		out[i] = quantileSorted(s, q)
	}
	return out
}

// BoxStats is the Tukey box plot summary of a sample.
type BoxStats struct {
	// Lower, Median, and Upper are the 25th, 50th, and 75th
	// percentiles.
	Lower, Median, Upper float64

	// WhiskerLow and WhiskerHigh are the most extreme samples
	// within 1.5 IQR of the hinges.
	WhiskerLow, WhiskerHigh float64

	// Outliers are the samples outside the whiskers, in
	// ascending order.
	Outliers []float64
}

// Box computes the box plot summary of xs. ok is false if xs is
// empty.
func Box(xs []float64) (b BoxStats, ok bool) {
	if len(xs) == 0 {
		return b, false
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	b.Lower = quantileSorted(s, 0.25)
	b.Median = quantileSorted(s, 0.5)
	b.Upper = quantileSorted(s, 0.75)

	fence := 1.5 * (b.Upper - b.Lower)
	lo, hi := b.Lower-fence, b.Upper+fence
	b.WhiskerLow, b.WhiskerHigh = math.NaN(), math.NaN()
	for _, x := range s {
		if x < lo || x > hi {
			b.Outliers = append(b.Outliers, x)
			continue
		}
		if math.IsNaN(b.WhiskerLow) {
			b.WhiskerLow = x
		}
		b.WhiskerHigh = x
	}
	return b, true
}
