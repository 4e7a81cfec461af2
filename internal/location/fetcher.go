// Package location remembers the position reported by the device once the user has allowed
// location tracking.
package location

import (
	"sync"

	"gitlab.com/dirk.krummacker/youthere/internal/logger"
	"gitlab.com/dirk.krummacker/youthere/internal/model"
)

// Fetcher keeps the last known position of the device.
type Fetcher struct {
	mu        sync.Mutex
	lggr      logger.Logger
	tracking  bool
	lastKnown *model.Coordinate
}

// NewFetcher creates a Fetcher that ignores position updates until Start is called.
func NewFetcher(lggr logger.Logger) *Fetcher {
	return &Fetcher{lggr: lggr}
}

// Start begins accepting position updates.
func (f *Fetcher) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.tracking {
		f.tracking = true
		f.lggr.Infow("user's location will be stored with permission")
	}
}

// Tracking reports whether Start has been called.
func (f *Fetcher) Tracking() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tracking
}

// Update records the first of the reported positions. It returns false if tracking has not been
// started or no position was reported.
func (f *Fetcher) Update(locations []model.Coordinate) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.tracking || len(locations) == 0 {
		return false
	}
	first := locations[0]
	f.lastKnown = &first
	f.lggr.Debugw("location updated", "latitude", first.Latitude, "longitude", first.Longitude)
	return true
}

// LastKnownLocation returns the most recent position, if there is one.
func (f *Fetcher) LastKnownLocation() (model.Coordinate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastKnown == nil {
		return model.Coordinate{}, false
	}
	return *f.lastKnown, true
}
