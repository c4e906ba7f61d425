package flow

import (
	"sort"
	"sync"

	"github.com/leeric92/SalaryHistogramExplorer/src/filter"
	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
)

// Coordinator receives toggle events and translates the full set of active
// selections into one composite predicate (logical AND across groups; a
// cleared group contributes accept-all), then pushes it into the store.
// Redundant applications are suppressed twice over: once here by selection
// key, and again inside Store.SetFilter, so an unchanged selection can
// never trigger a downstream recompute.
type Coordinator struct {
	store    *Store
	mu       sync.Mutex
	builders map[string]filter.Builder
	sel      filter.Selection
}

// NewCoordinator wires a coordinator to its store.
func NewCoordinator(store *Store) *Coordinator {
	return &Coordinator{
		store:    store,
		builders: map[string]filter.Builder{},
		sel:      filter.Selection{},
	}
}

// RegisterGroup associates a control group id with the builder that turns
// its choice into a predicate.
func (c *Coordinator) RegisterGroup(id string, b filter.Builder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.builders[id] = b
}

// HandleToggle folds one toggle event into the selection set and applies
// the recomposed filter. Returns whether a downstream recompute happened.
func (c *Coordinator) HandleToggle(ev ToggleEvent) bool {
	c.mu.Lock()
	if ev.Cleared {
		delete(c.sel, ev.Group)
	} else {
		c.sel[ev.Group] = ev.Choice
	}
	p := c.compositeLocked()
	c.mu.Unlock()
	changed := c.store.SetFilter(p)
	if !changed {
		logging.Debugf("coordinator: selection %q already applied", p.Key())
	}
	return changed
}

// Selection returns a copy of the current selection set.
func (c *Coordinator) Selection() filter.Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sel.Clone()
}

// compositeLocked rebuilds the composite predicate from scratch. Iterating
// groups in sorted order keeps composition deterministic, though behavior
// is order-independent since the parts combine with AND.
func (c *Coordinator) compositeLocked() filter.Predicate {
	ids := make([]string, 0, len(c.sel))
	for id := range c.sel {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]filter.Predicate, 0, len(ids))
	for _, id := range ids {
		b, ok := c.builders[id]
		if !ok {
			logging.Warnf("coordinator: no builder for group %q, ignoring its selection", id)
			continue
		}
		parts = append(parts, filter.ForGroup(id, c.sel[id], b))
	}
	return filter.And(parts...)
}
