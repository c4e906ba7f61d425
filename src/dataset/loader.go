// Package dataset loads and normalizes the tabular input: header renaming,
// date and numeric parsing, and dropping rows unusable for the aggregate.
// It also provides the asynchronous load path and a file watcher so the
// viewer can re-load when the source changes on disk.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// Column describes one normalized output field and the source header it is
// renamed from. Kind is "number", "year" or "string". A required column
// whose value is missing or unparseable drops the whole row from the
// dataset (the row is unusable for the aggregate, not an error).
type Column struct {
	Source   string `yaml:"source"`
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Required bool   `yaml:"required"`
}

// Mapping is the full normalization specification for a source file.
type Mapping struct {
	Columns []Column `yaml:"columns"`
}

// DefaultMapping targets the common salary-survey CSV shape.
func DefaultMapping() Mapping {
	return Mapping{Columns: []Column{
		{Source: "work_year", Name: "year", Kind: "year"},
		{Source: "salary_in_usd", Name: "salary", Kind: "number", Required: true},
		{Source: "experience_level", Name: "experience", Kind: "string"},
		{Source: "job_title", Name: "title", Kind: "string"},
	}}
}

// Load reads and normalizes a CSV file synchronously.
func Load(path string, m Mapping) (types.Dataset, error) {
	start := time.Now()
	f, err := os.Open(path)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	ds, err := Read(f, m)
	if err != nil {
		return types.Dataset{}, fmt.Errorf("read dataset %s: %w", path, err)
	}
	ds.Source = path
	logging.Infof("dataset: loaded %s: %d records, %d rows dropped, in %s",
		path, ds.Len(), ds.RowsDropped, time.Since(start))
	return ds, nil
}

// Read normalizes CSV content from r. The first row must be a header row;
// mapped source columns that are absent from the header make only their own
// field missing, not the whole load, unless the column is required.
func Read(r io.Reader, m Mapping) (types.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-field
	header, err := cr.Read()
	if err != nil {
		return types.Dataset{}, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[normalizeHeader(h)] = i
	}
	for _, c := range m.Columns {
		if _, ok := idx[normalizeHeader(c.Source)]; !ok && c.Required {
			return types.Dataset{}, fmt.Errorf("required column %q not in header", c.Source)
		}
	}

	ds := types.Dataset{LoadedAt: time.Now()}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// a malformed line drops that line only
			ds.RowsDropped++
			continue
		}
		rec, ok := normalizeRow(row, idx, m)
		if !ok {
			ds.RowsDropped++
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

func normalizeRow(row []string, idx map[string]int, m Mapping) (types.Record, bool) {
	fields := map[string]types.Value{}
	for _, c := range m.Columns {
		i, ok := idx[normalizeHeader(c.Source)]
		if !ok || i >= len(row) {
			if c.Required {
				return types.Record{}, false
			}
			continue
		}
		raw := strings.TrimSpace(row[i])
		if raw == "" {
			if c.Required {
				return types.Record{}, false
			}
			continue
		}
		switch c.Kind {
		case "year":
			y, ok := parseYear(raw)
			if !ok {
				if c.Required {
					return types.Record{}, false
				}
				continue
			}
			fields[c.Name] = types.YearValue(y)
		case "number":
			v, ok := parseNumber(raw)
			if !ok {
				if c.Required {
					return types.Record{}, false
				}
				continue
			}
			fields[c.Name] = types.NumberValue(v)
		default:
			fields[c.Name] = types.StringValue(raw)
		}
	}
	if len(fields) == 0 {
		return types.Record{}, false
	}
	return types.NewRecord(fields), true
}

// normalizeHeader lowers and snake-cases a header so "Work Year" and
// "work_year" map to the same column.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.ReplaceAll(h, " ", "_")
	h = strings.ReplaceAll(h, "-", "_")
	return h
}

// parseNumber accepts plain floats plus common currency formatting:
// "$85,000" and "85 000.50" both parse.
func parseNumber(s string) (float64, bool) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	if clean == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// dateLayouts are tried in order for date-like fields. Bare 4-digit years
// are handled before these.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseYear extracts the year from a bare year or any accepted date layout.
func parseYear(s string) (int, bool) {
	if len(s) == 4 {
		if y, err := strconv.Atoi(s); err == nil && y >= 1000 && y <= 9999 {
			return y, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}
