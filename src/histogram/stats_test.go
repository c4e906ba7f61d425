package histogram

import (
	"testing"

	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

func TestStatsOddAndEvenMedian(t *testing.T) {
	odd := []types.Record{rec(2013, 10), rec(2013, 30), rec(2013, 20)}
	s := Stats(odd, "salary")
	if s.Count != 3 || s.Median != 20 || s.Min != 10 || s.Max != 30 || s.Mean != 20 {
		t.Fatalf("odd stats wrong: %+v", s)
	}
	even := append(odd, rec(2013, 40))
	s = Stats(even, "salary")
	if s.Count != 4 || s.Median != 25 {
		t.Fatalf("even median %v, want 25", s.Median)
	}
}

func TestStatsSkipsUnusableRecords(t *testing.T) {
	recs := []types.Record{
		rec(2013, 100),
		types.NewRecord(map[string]types.Value{"year": types.YearValue(2013)}),
	}
	s := Stats(recs, "salary")
	if s.Count != 1 || s.Mean != 100 {
		t.Fatalf("stats over partial data wrong: %+v", s)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := Stats(nil, "salary")
	if s.Count != 0 {
		t.Fatalf("empty stats count %d", s.Count)
	}
}

func TestYearSpanLabel(t *testing.T) {
	ds := types.Dataset{Records: []types.Record{rec(2013, 1), rec(2013, 2)}}
	if got := YearSpanLabel(ds, "year"); got != "2013" {
		t.Fatalf("single-year label %q", got)
	}
	ds.Records = append(ds.Records, rec(2016, 3), rec(2012, 4))
	if got := YearSpanLabel(ds, "year"); got != "2012-2016" {
		t.Fatalf("range label %q", got)
	}
	if got := YearSpanLabel(types.Dataset{}, "year"); got != "no data" {
		t.Fatalf("empty label %q", got)
	}
}

func TestYearsSortedDistinct(t *testing.T) {
	ds := types.Dataset{Records: []types.Record{
		rec(2014, 1), rec(2012, 2), rec(2014, 3), rec(2013, 4),
	}}
	got := Years(ds, "year")
	want := []int{2012, 2013, 2014}
	if len(got) != len(want) {
		t.Fatalf("years %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("years %v, want %v", got, want)
		}
	}
}

func TestDistinctStrings(t *testing.T) {
	ds := types.Dataset{Records: []types.Record{
		types.NewRecord(map[string]types.Value{"experience": types.StringValue("senior")}),
		types.NewRecord(map[string]types.Value{"experience": types.StringValue("junior")}),
		types.NewRecord(map[string]types.Value{"experience": types.StringValue("senior")}),
	}}
	got := DistinctStrings(ds, "experience")
	if len(got) != 2 || got[0] != "junior" || got[1] != "senior" {
		t.Fatalf("distinct strings %v", got)
	}
}
