package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/leeric92/SalaryHistogramExplorer/src/chartimg"
	"github.com/leeric92/SalaryHistogramExplorer/src/config"
	"github.com/leeric92/SalaryHistogramExplorer/src/dataset"
	"github.com/leeric92/SalaryHistogramExplorer/src/filter"
	"github.com/leeric92/SalaryHistogramExplorer/src/histogram"
	"github.com/leeric92/SalaryHistogramExplorer/src/render"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// RunSnapshotMode renders histogram PNGs into outDir without creating a UI
// window: the overall distribution for the requested selection, plus one
// chart per year when no year filter was given.
func RunSnapshotMode(cfg config.Config, outDir, year, experience string, bins int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	ds, err := dataset.Load(cfg.Data.Path, cfg.Mapping())
	if err != nil {
		return err
	}
	if bins == 0 {
		bins = cfg.Histogram.Bins
	}

	writeOne := func(name, y, exp string) error {
		pred := filter.And(
			filter.ForGroup("year", y, filter.YearEquals(cfg.Groups.YearField)),
			filter.ForGroup("experience", exp, filter.FieldEquals(cfg.Groups.StringField)),
		)
		filtered := filter.Apply(ds.Records, pred)
		hg := histogram.Compute(filtered, histogram.BinConfig{Field: cfg.Histogram.Field, Bins: bins})
		frame := render.Layout(hg, cfg.RenderOptions())
		frame.Title = snapshotTitle(cfg.Histogram.Field, ds, cfg.Groups.YearField, y, exp)
		data, err := chartimg.EncodePNG(frame)
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		outPath := filepath.Join(outDir, name)
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}
		return nil
	}

	if err := writeOne("histogram.png", year, experience); err != nil {
		return err
	}
	if year != "" {
		return nil
	}
	for _, y := range histogram.Years(ds, cfg.Groups.YearField) {
		ys := strconv.Itoa(y)
		if err := writeOne("histogram_"+ys+".png", ys, experience); err != nil {
			return err
		}
	}
	return nil
}

func snapshotTitle(field string, ds types.Dataset, yearField, year, exp string) string {
	t := field + " histogram"
	switch {
	case year != "":
		t += " · " + year
	default:
		t += " · " + histogram.YearSpanLabel(ds, yearField)
	}
	if exp != "" {
		t += " · " + exp
	}
	return t
}
