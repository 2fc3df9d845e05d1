package booking

import (
	"context"
	"fmt"
	"sort"

	"github.com/venuegrid/room-reservation/internal/model"
)

// FindAvailable returns the active resources that can host a party of the
// given size over the window with zero conflicting reservations.
// resourceType, when non-empty, restricts the candidates to that category.
// Results are ordered ascending by hourly rate with ascending id as the
// tie-break — callers may rely on that ordering.  An empty slice (never an
// error) means nothing matched.
func (m *Manager) FindAvailable(ctx context.Context, window model.Interval, partySize int, resourceType model.ResourceType) ([]*model.Resource, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("%w: party size must be at least 1", ErrInvalidRequest)
	}
	window = model.NewInterval(window.Start, window.End)
	if !window.Valid() {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidRequest)
	}
	if !window.End.After(m.clock.Now().UTC()) {
		return nil, fmt.Errorf("%w: window lies entirely in the past", ErrInvalidRequest)
	}

	candidates, err := m.catalog.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	available := make([]*model.Resource, 0, len(candidates))
	for _, r := range candidates {
		if resourceType != "" && r.Type != resourceType {
			continue
		}
		if r.Capacity < partySize {
			continue
		}
		conflict, err := m.checker.HasConflict(ctx, r.ID, window, "")
		if err != nil {
			return nil, err
		}
		if conflict {
			continue
		}
		available = append(available, r)
	}

	sort.Slice(available, func(i, j int) bool {
		if available[i].HourlyRateCents == available[j].HourlyRateCents {
			return available[i].ID < available[j].ID
		}
		return available[i].HourlyRateCents < available[j].HourlyRateCents
	})
	return available, nil
}
