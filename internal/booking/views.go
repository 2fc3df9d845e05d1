package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/venuegrid/room-reservation/internal/model"
	"github.com/venuegrid/room-reservation/internal/repository"
)

// Read-only derived views over the reservation store.  Every view applies
// the lazy completion rule, so a reservation whose end has passed is never
// observed as CONFIRMED.  All lists come back ascending by start time.

// Get returns one reservation by id.
func (m *Manager) Get(ctx context.Context, id string) (*model.Reservation, error) {
	res, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.finishIfEnded(ctx, res)
}

// ListForResource returns every reservation on a resource, any status.
func (m *Manager) ListForResource(ctx context.Context, resourceID string) ([]*model.Reservation, error) {
	if _, err := m.catalog.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}
	list, err := m.store.ListByResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return m.finishAll(ctx, list)
}

// ListForCustomer returns every reservation booked under the contact.
func (m *Manager) ListForCustomer(ctx context.Context, contact string) ([]*model.Reservation, error) {
	list, err := m.store.ListByCustomer(ctx, contact)
	if err != nil {
		return nil, err
	}
	return m.finishAll(ctx, list)
}

// ListUpcoming returns non-terminal reservations starting within the next
// withinDays days.
func (m *Manager) ListUpcoming(ctx context.Context, withinDays int) ([]*model.Reservation, error) {
	if withinDays < 1 {
		return nil, fmt.Errorf("%w: withinDays must be at least 1", ErrInvalidRequest)
	}
	now := m.clock.Now().UTC()
	horizon := now.Add(time.Duration(withinDays) * 24 * time.Hour)

	all, err := m.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Reservation, 0)
	for _, r := range all {
		if r.Status.Terminal() {
			continue
		}
		if r.Start.Before(now) || r.Start.After(horizon) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ListActive returns in-progress reservations: start ≤ now < end and a
// non-terminal status.
func (m *Manager) ListActive(ctx context.Context) ([]*model.Reservation, error) {
	now := m.clock.Now().UTC()

	all, err := m.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Reservation, 0)
	for _, r := range all {
		if r.Status.Terminal() {
			continue
		}
		if r.Window().Contains(now) {
			out = append(out, r)
		}
	}
	return out, nil
}

// OccupancyRate reports the fraction of bookable hours actually reserved
// over the trailing windowDays days, bounded to [0, 1].  Non-cancelled
// reservations whose start falls inside the window contribute the hours
// they overlap with it.  The bookable day is a full 24 hours — there is no
// business-hours concept, which is a deliberate simplification.  With a
// resourceID the denominator is that one resource's hours; without one it
// is the combined hours of all active resources (0 active resources yields
// a rate of 0).
func (m *Manager) OccupancyRate(ctx context.Context, resourceID string, windowDays int) (float64, error) {
	if windowDays < 1 {
		return 0, fmt.Errorf("%w: windowDays must be at least 1", ErrInvalidRequest)
	}

	now := m.clock.Now().UTC()
	window := model.Interval{Start: now.Add(-time.Duration(windowDays) * 24 * time.Hour), End: now}
	windowHours := window.Duration().Hours()

	var reservations []*model.Reservation
	var resourceCount int
	var err error

	if resourceID != "" {
		if _, err = m.catalog.GetByID(ctx, resourceID); err != nil {
			return 0, err
		}
		resourceCount = 1
		reservations, err = m.store.ListByResource(ctx, resourceID)
		if err != nil {
			return 0, err
		}
	} else {
		var actives []*model.Resource
		actives, err = m.catalog.List(ctx, true)
		if err != nil {
			return 0, err
		}
		resourceCount = len(actives)
		if resourceCount == 0 {
			return 0, nil
		}
		counted := make(map[string]bool, resourceCount)
		for _, r := range actives {
			counted[r.ID] = true
		}
		all, err := m.store.ListAll(ctx)
		if err != nil {
			return 0, err
		}
		for _, r := range all {
			if counted[r.ResourceID] {
				reservations = append(reservations, r)
			}
		}
	}

	var bookedHours float64
	for _, r := range reservations {
		if r.Status == model.StatusCancelled {
			continue
		}
		if r.Start.Before(window.Start) || !r.Start.Before(window.End) {
			continue
		}
		overlap := r.Window().Clamp(window)
		if overlap.Valid() {
			bookedHours += overlap.Duration().Hours()
		}
	}

	rate := bookedHours / (windowHours * float64(resourceCount))
	if rate < 0 {
		rate = 0
	}
	if rate > 1 {
		rate = 1
	}
	return rate, nil
}

// Sweep transitions every ended non-terminal reservation to COMPLETED and
// returns how many were flipped.  The lazy read-path completion makes this
// optional for correctness; the worker runs it periodically so history
// converges even when nothing is being read.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	all, err := m.store.ListAll(ctx)
	if err != nil {
		return 0, err
	}

	flipped := 0
	for _, r := range all {
		now := m.clock.Now().UTC()
		if r.Status.Terminal() || r.End.After(now) {
			continue
		}
		updated, err := m.finishIfEnded(ctx, r)
		if err != nil {
			return flipped, err
		}
		if updated.Status == model.StatusCompleted {
			flipped++
		}
	}
	return flipped, nil
}

func (m *Manager) finishAll(ctx context.Context, list []*model.Reservation) ([]*model.Reservation, error) {
	out := make([]*model.Reservation, 0, len(list))
	for _, r := range list {
		finished, err := m.finishIfEnded(ctx, r)
		if err != nil {
			// A record deleted between list and re-read is skipped, any
			// other storage fault aborts the view.
			if errors.Is(err, repository.ErrReservationNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, finished)
	}
	return out, nil
}
