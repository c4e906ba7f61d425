package uihelpers

import (
	"testing"

	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
)

func TestComputeChartDimensionsClamps(t *testing.T) {
	cases := []struct {
		rawW       int
		wantW      int
		minH, maxH int
	}{
		{100, 640, 300, 560},
		{1000, 1000, 300, 560},
		{5000, 1600, 300, 560},
	}
	for _, c := range cases {
		w, h := ComputeChartDimensions(c.rawW)
		if w != c.wantW {
			t.Errorf("width for raw %d = %d, want %d", c.rawW, w, c.wantW)
		}
		if h < c.minH || h > c.maxH {
			t.Errorf("height %d outside [%d,%d]", h, c.minH, c.maxH)
		}
	}
}

func TestBinChoiceRoundTrip(t *testing.T) {
	for _, v := range BinChoices() {
		n := ParseBinChoice(v)
		if got := FormatBinChoice(n); got != v {
			t.Errorf("round trip %q -> %d -> %q", v, n, got)
		}
	}
	if ParseBinChoice("garbage") != 0 {
		t.Errorf("garbage should map to auto")
	}
}

func TestSummaryLine(t *testing.T) {
	s := histogram.Summary{Count: 2, Min: 90000, Max: 95000, Mean: 92500, Median: 92500}
	got := SummaryLine(s, 10)
	want := "2 of 10 records · min 90k · median 92k · mean 92k · max 95k"
	if got != want {
		t.Errorf("summary line %q, want %q", got, want)
	}
	if SummaryLine(histogram.Summary{}, 10) != "No matching records" {
		t.Errorf("empty summary should degrade to a message")
	}
}

func TestFormatSalary(t *testing.T) {
	if got := FormatSalary(9500); got != "9500" {
		t.Errorf("small salary %q", got)
	}
	if got := FormatSalary(125000); got != "125k" {
		t.Errorf("large salary %q", got)
	}
}

func TestTruncatePathKeepsBase(t *testing.T) {
	p := "/very/long/directory/tree/holding/data/salaries.csv"
	got := TruncatePath(p, 30)
	if len(got) > 34 {
		t.Errorf("not truncated: %q", got)
	}
	if got[len(got)-len("salaries.csv"):] != "salaries.csv" {
		t.Errorf("base name lost: %q", got)
	}
	if TruncatePath("short.csv", 30) != "short.csv" {
		t.Errorf("short path should pass through")
	}
}
