package uihelpers

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
)

// ComputeChartDimensions applies the width/height clamp rules used for the
// histogram canvas. Input: desired raw width (e.g., window width). Returns
// clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 640 {
		w = 640
	}
	if w > 1600 {
		w = 1600
	}
	h := int(float32(w) * 0.45)
	if h < 300 {
		h = 300
	}
	if h > 560 {
		h = 560
	}
	return w, h
}

// BinChoices returns the options shown in the bin-count selector. "Auto"
// lets the histogram pick a data-driven count.
func BinChoices() []string {
	return []string{"Auto", "5", "10", "15", "20", "30", "50"}
}

// ParseBinChoice maps a selector option to a bin count; 0 means data-driven.
func ParseBinChoice(v string) int {
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return 0
}

// FormatBinChoice is the inverse of ParseBinChoice, for restoring the
// selector from saved preferences.
func FormatBinChoice(n int) string {
	if n <= 0 {
		return "Auto"
	}
	return strconv.Itoa(n)
}

// SummaryLine renders the one-line stats readout shown under the chart.
func SummaryLine(s histogram.Summary, total int) string {
	if s.Count == 0 {
		return "No matching records"
	}
	return fmt.Sprintf("%d of %d records · min %s · median %s · mean %s · max %s",
		s.Count, total,
		FormatSalary(s.Min), FormatSalary(s.Median), FormatSalary(s.Mean), FormatSalary(s.Max))
}

// FormatSalary renders a salary compactly: whole dollars, k-suffix from
// 10000 up.
func FormatSalary(v float64) string {
	if v >= 10000 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}

// TruncatePath shortens a path for display keeping the base name visible.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
