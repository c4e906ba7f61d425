package flow

import (
	"testing"

	"github.com/leeric92/SalaryHistogramExplorer/src/filter"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

func rec(year int, salary float64) types.Record {
	return types.NewRecord(map[string]types.Value{
		"year":   types.YearValue(year),
		"salary": types.NumberValue(salary),
	})
}

func testDataset() types.Dataset {
	return types.Dataset{Records: []types.Record{
		rec(2012, 80000),
		rec(2013, 90000),
		rec(2013, 95000),
	}}
}

func yearPred(y string) filter.Predicate {
	return filter.ForGroup("year", y, filter.YearEquals("year"))
}

func TestSubscribeDeliversCurrentState(t *testing.T) {
	s := NewStore(testDataset())
	var got Snapshot
	calls := 0
	s.Subscribe(func(sn Snapshot) { got = sn; calls++ })
	if calls != 1 {
		t.Fatalf("subscriber called %d times on registration, want 1", calls)
	}
	if len(got.Filtered) != 3 {
		t.Fatalf("initial snapshot filtered=%d, want 3 (identity filter)", len(got.Filtered))
	}
}

func TestSetFilterRecomputesAndNotifiesOnce(t *testing.T) {
	s := NewStore(testDataset())
	calls := 0
	var last Snapshot
	s.Subscribe(func(sn Snapshot) { last = sn; calls++ })
	calls = 0 // ignore the registration call

	if !s.SetFilter(yearPred("2013")) {
		t.Fatalf("first SetFilter reported no-op")
	}
	if calls != 1 {
		t.Fatalf("subscriber called %d times, want exactly 1", calls)
	}
	if len(last.Filtered) != 2 {
		t.Fatalf("filtered=%d after year filter, want 2", len(last.Filtered))
	}
}

func TestRedundantFilterIsSuppressed(t *testing.T) {
	s := NewStore(testDataset())
	calls := 0
	s.Subscribe(func(Snapshot) { calls++ })
	calls = 0

	s.SetFilter(yearPred("2013"))
	// a structurally new but behaviorally equal predicate must be a no-op
	if s.SetFilter(yearPred("2013")) {
		t.Fatalf("behaviorally equal filter triggered a recompute")
	}
	if calls != 1 {
		t.Fatalf("downstream recomputed %d times, want exactly 1", calls)
	}
}

func TestReplaceDatasetReappliesCurrentFilter(t *testing.T) {
	s := NewStore(testDataset())
	s.SetFilter(yearPred("2013"))

	next := types.Dataset{Records: []types.Record{
		rec(2013, 50000),
		rec(2014, 60000),
		rec(2013, 70000),
		rec(2013, 71000),
	}}
	s.ReplaceDataset(next)
	snap := s.Snapshot()
	if len(snap.Filtered) != 3 {
		t.Fatalf("filter not re-applied after replace: filtered=%d, want 3", len(snap.Filtered))
	}
	if snap.Filter.Key() != "year=2013" {
		t.Fatalf("filter state lost across replace: %q", snap.Filter.Key())
	}
}

func TestClearFilterRestoresFullDataset(t *testing.T) {
	s := NewStore(testDataset())
	s.SetFilter(yearPred("2013"))
	if !s.SetFilter(filter.All()) {
		t.Fatalf("clearing the filter should recompute")
	}
	if got := len(s.Snapshot().Filtered); got != 3 {
		t.Fatalf("filtered=%d after clear, want 3", got)
	}
}
