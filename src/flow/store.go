// Package flow implements the unidirectional pipeline that wires the pieces
// together: a single state-owning Store, toggle groups that emit selection
// events upward, and a Coordinator that folds selections into one composite
// predicate. State changes originate at the Store and propagate down to
// subscribers; nothing downstream mutates the Store or a sibling directly.
package flow

import (
	"sync"

	"github.com/leeric92/SalaryHistogramExplorer/src/filter"
	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// Snapshot is the immutable view handed to subscribers: the full dataset,
// the subset passing the active filter, and the filter itself.
type Snapshot struct {
	Dataset  types.Dataset
	Filtered []types.Record
	Filter   filter.Predicate
}

// Store owns the dataset and the active filter state. SetFilter is the only
// filter mutation entry point; ReplaceDataset the only dataset one. All
// access is mutex-serialized (single-writer discipline) so the UI event
// loop and background loaders can both feed it safely.
type Store struct {
	mu       sync.Mutex
	ds       types.Dataset
	pred     filter.Predicate
	filtered []types.Record
	subs     []func(Snapshot)
}

// NewStore builds a store over ds with the identity filter active.
func NewStore(ds types.Dataset) *Store {
	s := &Store{ds: ds, pred: filter.All()}
	s.filtered = filter.Apply(ds.Records, s.pred)
	return s
}

// Subscribe registers fn for snapshot notifications. The new subscriber is
// immediately called with the current state so it never renders stale.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	s.subs = append(s.subs, fn)
	snap := s.snapshotLocked()
	s.mu.Unlock()
	fn(snap)
}

// SetFilter replaces the active predicate and recomputes the filtered
// subset. Applying a predicate behaviorally equal to the current one (same
// producing selection) is a no-op: no recompute, no notification. Returns
// whether a recompute happened.
func (s *Store) SetFilter(p filter.Predicate) bool {
	s.mu.Lock()
	if p.Equal(s.pred) {
		s.mu.Unlock()
		logging.Debugf("store: filter unchanged (key=%q), suppressing recompute", p.Key())
		return false
	}
	s.pred = p
	s.filtered = filter.Apply(s.ds.Records, p)
	snap := s.snapshotLocked()
	subs := append([]func(Snapshot){}, s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
	return true
}

// ReplaceDataset swaps in a freshly loaded dataset wholesale and re-applies
// the current filter. This is the load-completion path; records are never
// appended or edited in place.
func (s *Store) ReplaceDataset(ds types.Dataset) {
	s.mu.Lock()
	s.ds = ds
	s.filtered = filter.Apply(ds.Records, s.pred)
	snap := s.snapshotLocked()
	subs := append([]func(Snapshot){}, s.subs...)
	s.mu.Unlock()
	logging.Infof("store: dataset replaced (%d records, %d dropped at load)", ds.Len(), ds.RowsDropped)
	for _, fn := range subs {
		fn(snap)
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{Dataset: s.ds, Filtered: s.filtered, Filter: s.pred}
}
