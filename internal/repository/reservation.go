package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/venuegrid/room-reservation/internal/model"
)

// ReservationStore holds reservation records keyed by id with a secondary
// index by resource id for conflict lookups.  Implementations must hand
// out copies: callers never share memory with indexed state.  List results
// are ordered ascending by start time, which callers rely on.
type ReservationStore interface {
	// Create persists a new reservation.  The id must be unique.
	Create(ctx context.Context, res *model.Reservation) error
	// GetByID returns the reservation or ErrReservationNotFound.
	GetByID(ctx context.Context, id string) (*model.Reservation, error)
	// Update replaces an existing reservation's record wholesale.
	Update(ctx context.Context, res *model.Reservation) error
	// ListByResource returns every reservation on the resource, any status.
	ListByResource(ctx context.Context, resourceID string) ([]*model.Reservation, error)
	// ListByCustomer returns every reservation with the given contact.
	ListByCustomer(ctx context.Context, contact string) ([]*model.Reservation, error)
	// ListAll returns every reservation in the store.
	ListAll(ctx context.Context) ([]*model.Reservation, error)
}

// MemoryReservationStore keeps reservations in maps guarded by a
// sync.RWMutex: byID for direct lookups and byResource for the conflict
// detector's per-resource scans.
type MemoryReservationStore struct {
	mu         sync.RWMutex
	byID       map[string]*model.Reservation
	byResource map[string][]*model.Reservation
}

// NewMemoryReservationStore returns an empty in-memory store.
func NewMemoryReservationStore() *MemoryReservationStore {
	return &MemoryReservationStore{
		byID:       make(map[string]*model.Reservation),
		byResource: make(map[string][]*model.Reservation),
	}
}

func (s *MemoryReservationStore) Create(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[res.ID]; exists {
		return fmt.Errorf("reservation %q: %w", res.ID, ErrDuplicateID)
	}
	cp := res.Clone()
	s.byID[cp.ID] = cp
	s.byResource[cp.ResourceID] = append(s.byResource[cp.ResourceID], cp)
	return nil
}

func (s *MemoryReservationStore) GetByID(_ context.Context, id string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.byID[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return res.Clone(), nil
}

func (s *MemoryReservationStore) Update(_ context.Context, res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.byID[res.ID]
	if !ok {
		return ErrReservationNotFound
	}

	cp := res.Clone()
	s.byID[cp.ID] = cp

	// Reservations never move between resources, so the index entry is
	// replaced in place.
	bucket := s.byResource[cur.ResourceID]
	for i, r := range bucket {
		if r.ID == cp.ID {
			bucket[i] = cp
			break
		}
	}
	return nil
}

func (s *MemoryReservationStore) ListByResource(_ context.Context, resourceID string) ([]*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.byResource[resourceID]
	out := make([]*model.Reservation, 0, len(bucket))
	for _, r := range bucket {
		out = append(out, r.Clone())
	}
	sortReservationsByStart(out)
	return out, nil
}

func (s *MemoryReservationStore) ListByCustomer(_ context.Context, contact string) ([]*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*model.Reservation
	for _, r := range s.byID {
		if r.CustomerContact == contact {
			out = append(out, r.Clone())
		}
	}
	sortReservationsByStart(out)
	return out, nil
}

func (s *MemoryReservationStore) ListAll(_ context.Context) ([]*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Reservation, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r.Clone())
	}
	sortReservationsByStart(out)
	return out, nil
}

func sortReservationsByStart(rs []*model.Reservation) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Start.Equal(rs[j].Start) {
			return rs[i].ID < rs[j].ID
		}
		return rs[i].Start.Before(rs[j].Start)
	})
}
