package booking

import (
	"context"
	"fmt"

	"github.com/venuegrid/room-reservation/internal/model"
	"github.com/venuegrid/room-reservation/internal/repository"
)

// ConflictChecker decides whether a candidate window collides with an
// existing non-terminal reservation on a resource.  It is an interface so
// tests can interpose a counting spy and so the linear Detector can later
// be replaced by an interval-indexed implementation without touching the
// Manager.
type ConflictChecker interface {
	// HasConflict reports whether any non-terminal reservation on the
	// resource overlaps window.  excludeID, when non-empty, names a
	// reservation to skip — used when re-validating an update against
	// everything except its own pre-update interval.
	HasConflict(ctx context.Context, resourceID string, window model.Interval, excludeID string) (bool, error)
}

// Detector is the straightforward O(k) checker: it scans the store's
// reservations for the resource and applies the half-open overlap
// predicate.  Pure query, no side effects.
type Detector struct {
	store repository.ReservationStore
}

// NewDetector returns a Detector reading from the given store.
func NewDetector(store repository.ReservationStore) *Detector {
	return &Detector{store: store}
}

func (d *Detector) HasConflict(ctx context.Context, resourceID string, window model.Interval, excludeID string) (bool, error) {
	existing, err := d.store.ListByResource(ctx, resourceID)
	if err != nil {
		return false, fmt.Errorf("list reservations for conflict check: %w", err)
	}
	for _, res := range existing {
		if res.Status.Terminal() {
			continue
		}
		if excludeID != "" && res.ID == excludeID {
			continue
		}
		if window.Overlaps(res.Window()) {
			return true, nil
		}
	}
	return false, nil
}
