package histogram

import (
	"fmt"
	"sort"

	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// Summary holds basic descriptive statistics over one numeric field of a
// filtered record set.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Stats computes Summary for the named field. Records without a usable
// value are skipped. A zero Count means nothing else is meaningful.
func Stats(records []types.Record, field string) Summary {
	vals := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Num(field); ok {
			vals = append(vals, v)
		}
	}
	s := Summary{Count: len(vals)}
	if len(vals) == 0 {
		return s
	}
	sort.Float64s(vals)
	s.Min = vals[0]
	s.Max = vals[len(vals)-1]
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	s.Mean = sum / float64(len(vals))
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		s.Median = vals[mid]
	} else {
		s.Median = (vals[mid-1] + vals[mid]) / 2
	}
	return s
}

// YearSpanLabel returns a human label for the span of years present in the
// dataset, e.g. "2013" or "2012-2016", or "no data" when the field never
// occurs. Both the viewer window title and the daemon's summary endpoint
// call this, so the wording stays in one place.
func YearSpanLabel(ds types.Dataset, yearField string) string {
	minY, maxY, seen := 0, 0, false
	for _, r := range ds.Records {
		y, ok := r.Year(yearField)
		if !ok {
			continue
		}
		if !seen {
			minY, maxY, seen = y, y, true
			continue
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}
	}
	if !seen {
		return "no data"
	}
	if minY == maxY {
		return fmt.Sprintf("%d", minY)
	}
	return fmt.Sprintf("%d-%d", minY, maxY)
}

// Years returns the sorted distinct years present in the dataset's year
// field; the control panel builds its toggle group from this.
func Years(ds types.Dataset, yearField string) []int {
	set := map[int]struct{}{}
	for _, r := range ds.Records {
		if y, ok := r.Year(yearField); ok {
			set[y] = struct{}{}
		}
	}
	out := make([]int, 0, len(set))
	for y := range set {
		out = append(out, y)
	}
	sort.Ints(out)
	return out
}

// DistinctStrings returns the sorted distinct non-empty values of a
// categorical field, for building secondary toggle groups.
func DistinctStrings(ds types.Dataset, field string) []string {
	set := map[string]struct{}{}
	for _, r := range ds.Records {
		if s, ok := r.Str(field); ok && s != "" {
			set[s] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
