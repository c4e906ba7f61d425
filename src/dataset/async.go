package dataset

import (
	"sync"

	"github.com/leeric92/SalaryHistogramExplorer/src/logging"
	"github.com/leeric92/SalaryHistogramExplorer/src/types"
)

// Loader runs bulk loads off the caller's goroutine so the interface can
// show a loading indicator while the file is read. At most one load is in
// flight: a second request arriving before the first completes is ignored
// rather than queued or cancelled.
type Loader struct {
	mapping Mapping

	mu       sync.Mutex
	inFlight bool
}

// NewLoader builds a loader with the given normalization mapping.
func NewLoader(m Mapping) *Loader {
	return &Loader{mapping: m}
}

// LoadAsync starts loading path in the background and invokes cb exactly
// once with the result. Returns false (and never calls cb) when a load is
// already in flight.
func (l *Loader) LoadAsync(path string, cb func(types.Dataset, error)) bool {
	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		logging.Debugf("dataset: load of %s ignored, another load in flight", path)
		return false
	}
	l.inFlight = true
	l.mu.Unlock()

	go func() {
		ds, err := Load(path, l.mapping)
		l.mu.Lock()
		l.inFlight = false
		l.mu.Unlock()
		cb(ds, err)
	}()
	return true
}

// Loading reports whether a load is currently in flight.
func (l *Loader) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inFlight
}
