// Package types holds the shared data model: immutable records, the loaded
// dataset, and the typed field values both carry. Everything downstream
// (filtering, binning, rendering) consumes these and nothing here imports
// anything downstream.
package types

import "time"

// Kind identifies the parsed type of a field value.
type Kind int

const (
	KindNumber Kind = iota
	KindYear
	KindString
)

// Value is one typed field of a record. Num is populated for both number and
// year kinds so numeric consumers (binning, scales) don't care which one the
// loader produced.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Year int
}

// NumberValue builds a numeric field value.
func NumberValue(v float64) Value { return Value{Kind: KindNumber, Num: v} }

// YearValue builds a year field value; Num mirrors the year so the field can
// also be binned directly.
func YearValue(y int) Value { return Value{Kind: KindYear, Year: y, Num: float64(y)} }

// StringValue builds a categorical field value.
func StringValue(s string) Value { return Value{Kind: KindString, Str: s} }

// Record is one observation: a mapping of normalized field names to typed
// values. Records are immutable once built; the backing map is copied on
// construction and only reachable through accessors.
type Record struct {
	fields map[string]Value
}

// NewRecord copies fields into a fresh record.
func NewRecord(fields map[string]Value) Record {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Record{fields: cp}
}

// Has reports whether the named field is present.
func (r Record) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Num returns the numeric value of a number or year field.
// ok is false for missing fields and for string fields, so callers can treat
// "unusable for this computation" uniformly.
func (r Record) Num(name string) (float64, bool) {
	v, ok := r.fields[name]
	if !ok || v.Kind == KindString {
		return 0, false
	}
	return v.Num, true
}

// Year returns the year of a year-kind field.
func (r Record) Year(name string) (int, bool) {
	v, ok := r.fields[name]
	if !ok || v.Kind != KindYear {
		return 0, false
	}
	return v.Year, true
}

// Str returns the string value of a categorical field.
func (r Record) Str(name string) (string, bool) {
	v, ok := r.fields[name]
	if !ok || v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Fields returns the sorted-insensitive set of field names present.
func (r Record) Fields() []string {
	out := make([]string, 0, len(r.fields))
	for k := range r.fields {
		out = append(out, k)
	}
	return out
}

// Dataset is the full loaded collection of records plus provenance counters.
// It is built once by the loader and then only ever replaced wholesale,
// never mutated in place.
type Dataset struct {
	Records []Record
	// Source is the path the dataset was loaded from.
	Source string
	// LoadedAt is when the load finished.
	LoadedAt time.Time
	// RowsDropped counts input rows discarded during normalization
	// (missing required numeric field, unparseable values).
	RowsDropped int
}

// Len returns the number of usable records.
func (d Dataset) Len() int { return len(d.Records) }
