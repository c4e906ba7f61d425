// salaryreader prints a quick textual view of a salary CSV: summary stats
// and the binned distribution, optionally filtered the same way the viewer
// filters. Useful for sanity-checking a file before pointing the viewer or
// the daemon at it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/leeric92/SalaryHistogramExplorer/src/config"
	"github.com/leeric92/SalaryHistogramExplorer/src/dataset"
	"github.com/leeric92/SalaryHistogramExplorer/src/filter"
	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
)

func main() {
	var (
		file       string
		configPath string
		year       string
		experience string
		bins       int
		logLevel   string
	)
	flag.StringVar(&file, "file", "", "Path to the salary CSV (overrides config)")
	flag.StringVar(&configPath, "config", "", "Optional config.yaml path")
	flag.StringVar(&year, "year", "", "Filter to one year, e.g. 2013")
	flag.StringVar(&experience, "experience", "", "Filter to one experience level")
	flag.IntVar(&bins, "bins", 0, "Bin count (0 = from config, which may be data-driven)")
	flag.StringVar(&logLevel, "log", "warn", "Log level (debug|info|warn|error)")
	flag.Parse()
	logging.SetLevel(logLevel)

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if file == "" {
		file = cfg.Data.Path
	}
	if bins == 0 {
		bins = cfg.Histogram.Bins
	}

	ds, err := dataset.Load(file, cfg.Mapping())
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	pred := filter.And(
		filter.ForGroup("year", year, filter.YearEquals(cfg.Groups.YearField)),
		filter.ForGroup("experience", experience, filter.FieldEquals(cfg.Groups.StringField)),
	)
	filtered := filter.Apply(ds.Records, pred)

	fmt.Printf("File: %s (%s)\n", file, histogram.YearSpanLabel(ds, cfg.Groups.YearField))
	fmt.Printf("Records: %d loaded, %d dropped at load, %d after filter\n",
		ds.Len(), ds.RowsDropped, len(filtered))
	if key := pred.Key(); key != "" {
		fmt.Printf("Filter: %s\n", key)
	}

	s := histogram.Stats(filtered, cfg.Histogram.Field)
	if s.Count == 0 {
		fmt.Println("No data for this selection.")
		return
	}
	fmt.Printf("%s: min=%.0f max=%.0f mean=%.0f median=%.0f\n",
		cfg.Histogram.Field, s.Min, s.Max, s.Mean, s.Median)

	h := histogram.Compute(filtered, histogram.BinConfig{Field: cfg.Histogram.Field, Bins: bins})
	fmt.Println()
	maxCount := h.MaxCount()
	for _, b := range h.Bins {
		barLen := 0
		if maxCount > 0 {
			barLen = b.Count * 40 / maxCount
		}
		fmt.Printf("%10.0f - %10.0f  %6d  %5.1f%%  %s\n",
			b.Low, b.High, b.Count, b.Percent, strings.Repeat("#", barLen))
	}
	if h.Dropped > 0 {
		fmt.Printf("(%d records lacked a usable %s value)\n", h.Dropped, cfg.Histogram.Field)
	}
}
