package dataset

import (
	"strings"
	"testing"
)

const sampleCSV = `work_year,experience_level,job_title,salary_in_usd
2012,junior,Developer,"$80,000"
2013,senior,Developer,90000
2013,senior,Data Scientist,95000.50
2014,junior,Developer,
2015,mid,Analyst,not-a-number
`

func TestReadNormalizesAndDropsUnusableRows(t *testing.T) {
	ds, err := Read(strings.NewReader(sampleCSV), DefaultMapping())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("kept %d records, want 3", ds.Len())
	}
	if ds.RowsDropped != 2 {
		t.Fatalf("dropped %d rows, want 2 (missing and unparseable salary)", ds.RowsDropped)
	}

	r := ds.Records[0]
	if y, ok := r.Year("year"); !ok || y != 2012 {
		t.Fatalf("year field: %v %v", y, ok)
	}
	if v, ok := r.Num("salary"); !ok || v != 80000 {
		t.Fatalf("currency-formatted salary parsed as %v (ok=%v), want 80000", v, ok)
	}
	if s, ok := r.Str("experience"); !ok || s != "junior" {
		t.Fatalf("experience field: %q %v", s, ok)
	}
	if s, ok := r.Str("title"); !ok || s != "Developer" {
		t.Fatalf("title field: %q %v", s, ok)
	}
}

func TestHeaderRenamingIsCaseAndSeparatorInsensitive(t *testing.T) {
	csv := "Work Year,Experience-Level,Job Title,Salary In USD\n2013,senior,Dev,90000\n"
	ds, err := Read(strings.NewReader(csv), DefaultMapping())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("kept %d records, want 1", ds.Len())
	}
	if y, ok := ds.Records[0].Year("year"); !ok || y != 2013 {
		t.Fatalf("renamed header not mapped: %v %v", y, ok)
	}
}

func TestDateFormsParseToYears(t *testing.T) {
	cases := map[string]int{
		"2013":       2013,
		"2013-06-01": 2013,
		"6/1/2013":   2013,
	}
	for in, want := range cases {
		got, ok := parseYear(in)
		if !ok || got != want {
			t.Fatalf("parseYear(%q)=%d,%v want %d", in, got, ok, want)
		}
	}
	if _, ok := parseYear("junk"); ok {
		t.Fatalf("parseYear accepted junk")
	}
}

func TestMissingRequiredColumnFailsLoad(t *testing.T) {
	csv := "work_year,job_title\n2013,Dev\n"
	if _, err := Read(strings.NewReader(csv), DefaultMapping()); err == nil {
		t.Fatalf("expected error for missing required salary column")
	}
}

func TestOptionalFieldAbsenceKeepsRow(t *testing.T) {
	csv := "work_year,salary_in_usd\nbad-year,90000\n"
	ds, err := Read(strings.NewReader(csv), DefaultMapping())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ds.Len() != 1 {
		t.Fatalf("row with bad optional year should survive, kept %d", ds.Len())
	}
	if _, ok := ds.Records[0].Year("year"); ok {
		t.Fatalf("unparseable year should read as missing")
	}
}

func TestRaggedRowsHandledPerField(t *testing.T) {
	csv := "work_year,experience_level,job_title,salary_in_usd\n2013,senior\n"
	ds, err := Read(strings.NewReader(csv), DefaultMapping())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// salary column index is beyond the short row, so the row is unusable
	if ds.Len() != 0 || ds.RowsDropped != 1 {
		t.Fatalf("short row: kept=%d dropped=%d", ds.Len(), ds.RowsDropped)
	}
}
