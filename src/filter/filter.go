// Package filter defines record predicates and the selection state that
// produces them. Two predicates are considered equal when their selections
// are equal; function identity is never compared, since structurally
// distinct closures can be behaviorally identical.
package filter

import (
	"sort"
	"strings"

	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// Selection maps a control-group id to its active choice. A group that is
// cleared is simply absent (or holds the empty string, which normalizes to
// absent in the key).
type Selection map[string]string

// Key returns a canonical, order-independent string form of the selection,
// used for predicate equality and recompute suppression.
func (s Selection) Key() string {
	if len(s) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s))
	for g, c := range s {
		if c == "" {
			continue
		}
		parts = append(parts, g+"="+c)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}

// Equal reports whether two selections produce behaviorally equal predicates.
func (s Selection) Equal(o Selection) bool { return s.Key() == o.Key() }

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	cp := make(Selection, len(s))
	for k, v := range s {
		cp[k] = v
	}
	return cp
}

// Predicate selects a subset of a dataset. It pairs the pure match function
// with the selection metadata that produced it.
type Predicate struct {
	sel Selection
	fn  func(types.Record) bool
}

// New builds a predicate from its producing selection and match function.
func New(sel Selection, fn func(types.Record) bool) Predicate {
	return Predicate{sel: sel.Clone(), fn: fn}
}

// All returns the identity predicate: accepts every record, empty selection.
func All() Predicate { return Predicate{} }

// Match reports whether the record passes. The identity predicate accepts
// everything.
func (p Predicate) Match(r types.Record) bool {
	if p.fn == nil {
		return true
	}
	return p.fn(r)
}

// Selection returns a copy of the producing selection.
func (p Predicate) Selection() Selection { return p.sel.Clone() }

// Key returns the canonical selection key.
func (p Predicate) Key() string { return p.sel.Key() }

// Equal compares predicates by the selection state that produced them.
func (p Predicate) Equal(q Predicate) bool { return p.Key() == q.Key() }

// And composes predicates with logical AND. Selections are merged; on a
// group-id collision the later predicate wins, which matches how the
// coordinator rebuilds the composite from scratch on every change.
func And(ps ...Predicate) Predicate {
	merged := Selection{}
	fns := make([]func(types.Record) bool, 0, len(ps))
	for _, p := range ps {
		for g, c := range p.sel {
			merged[g] = c
		}
		if p.fn != nil {
			fns = append(fns, p.fn)
		}
	}
	if len(fns) == 0 {
		return Predicate{sel: merged}
	}
	return Predicate{sel: merged, fn: func(r types.Record) bool {
		for _, fn := range fns {
			if !fn(r) {
				return false
			}
		}
		return true
	}}
}

// Apply returns the subset of records matching p, preserving order.
func Apply(records []types.Record, p Predicate) []types.Record {
	out := make([]types.Record, 0, len(records))
	for _, r := range records {
		if p.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
