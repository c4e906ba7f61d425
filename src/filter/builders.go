package filter

import (
	"strconv"
	"strings"

	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// A Builder turns a control group's active choice into a match function.
// The coordinator holds one builder per group and calls it whenever the
// group's selection changes.
type Builder func(choice string) func(types.Record) bool

// YearEquals builds year-group predicates over the named field. A record
// whose field is missing or not a year is excluded, and an unparseable
// choice matches nothing (a bad control label should never widen a filter).
func YearEquals(field string) Builder {
	return func(choice string) func(types.Record) bool {
		want, err := strconv.Atoi(strings.TrimSpace(choice))
		if err != nil {
			return func(types.Record) bool { return false }
		}
		return func(r types.Record) bool {
			y, ok := r.Year(field)
			return ok && y == want
		}
	}
}

// FieldEquals builds categorical predicates over the named string field,
// compared case-insensitively. Records missing the field are excluded.
func FieldEquals(field string) Builder {
	return func(choice string) func(types.Record) bool {
		want := strings.TrimSpace(choice)
		return func(r types.Record) bool {
			s, ok := r.Str(field)
			return ok && strings.EqualFold(s, want)
		}
	}
}

// ForGroup wraps a builder result into a full predicate carrying its
// selection metadata.
func ForGroup(group, choice string, b Builder) Predicate {
	if choice == "" {
		return All()
	}
	return New(Selection{group: choice}, b(choice))
}
