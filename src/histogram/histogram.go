// Package histogram computes derived aggregates over a filtered record set:
// equal-width bins, summary statistics, and the shared title fragments the
// viewer and the daemon both display. Everything here is a pure function of
// its inputs; results are recomputed from scratch on every filter change and
// never patched incrementally.
package histogram

import (
	"math"

	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// BinConfig specifies which numeric field to bin on and how many bins to
// use. Bins <= 0 selects a data-driven count (Sturges' rule).
type BinConfig struct {
	Field string
	Bins  int
}

// Bin is one aggregate bucket: a value range, a count, and the share of the
// filtered total it represents. Ranges are half-open [Low,High) except the
// final bin of a histogram, which is closed so the domain maximum lands
// inside it.
type Bin struct {
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Histogram is the ordered sequence of bins over one field's domain.
// Zero bins means the filtered input had no usable values; renderers must
// show a placeholder for that case rather than fail.
type Histogram struct {
	Field string  `json:"field"`
	Bins  []Bin   `json:"bins"`
	Total int     `json:"total"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	// Dropped counts records excluded from this computation because the
	// field was missing or non-numeric. Exclusion is local: a malformed
	// record never fails the whole aggregate.
	Dropped int `json:"dropped,omitempty"`
}

// Empty reports whether the histogram has no bins.
func (h Histogram) Empty() bool { return len(h.Bins) == 0 }

// MaxCount returns the largest bin count, 0 when empty.
func (h Histogram) MaxCount() int {
	max := 0
	for _, b := range h.Bins {
		if b.Count > max {
			max = b.Count
		}
	}
	return max
}

// Compute bins records on cfg.Field with equal-width partitioning over the
// observed [min,max]. Records without a usable numeric value for the field
// are skipped and counted in Dropped. Empty usable input yields a
// zero-bin histogram and no error.
func Compute(records []types.Record, cfg BinConfig) Histogram {
	h := Histogram{Field: cfg.Field}
	vals := make([]float64, 0, len(records))
	for _, r := range records {
		v, ok := r.Num(cfg.Field)
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			h.Dropped++
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return h
	}

	min, max := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	h.Min, h.Max = min, max
	h.Total = len(vals)

	n := cfg.Bins
	if n <= 0 {
		n = sturges(len(vals))
	}
	if max == min {
		// Degenerate domain: every value identical. One bin holds all of
		// them; the renderer's scale clamps the zero span.
		h.Bins = []Bin{{Low: min, High: max, Count: len(vals), Percent: 100}}
		return h
	}

	width := (max - min) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Low = min + float64(i)*width
		bins[i].High = min + float64(i+1)*width
	}
	// keep the last edge exact despite float accumulation
	bins[n-1].High = max

	for _, v := range vals {
		i := int((v - min) / width)
		if i >= n { // v == max falls into the closed final bin
			i = n - 1
		}
		bins[i].Count++
	}
	for i := range bins {
		bins[i].Percent = float64(bins[i].Count) / float64(h.Total) * 100
	}
	h.Bins = bins
	return h
}

// sturges returns ceil(log2(n))+1 clamped to [1,50].
func sturges(n int) int {
	if n <= 1 {
		return 1
	}
	k := int(math.Ceil(math.Log2(float64(n)))) + 1
	if k < 1 {
		k = 1
	}
	if k > 50 {
		k = 50
	}
	return k
}
