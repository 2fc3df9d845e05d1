package booking

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/venuegrid/room-reservation/internal/model"
	"github.com/venuegrid/room-reservation/internal/repository"
)

// MaxNotesLen bounds the free-text notes attached to a reservation.
const MaxNotesLen = 500

// MaxNameLen bounds the customer display name.
const MaxNameLen = 120

// EventSink receives lifecycle notifications after a reservation has been
// committed.  Implementations must not block the booking path for long and
// must swallow their own delivery failures; the engine treats publication
// as fire-and-forget.
type EventSink interface {
	ReservationConfirmed(ctx context.Context, res *model.Reservation)
	ReservationCancelled(ctx context.Context, res *model.Reservation)
}

// Manager orchestrates the reservation lifecycle over a resource catalog,
// a reservation store and a conflict checker.  All mutations of a given
// resource's schedule are serialized by a per-resource mutex held across
// the whole read-check-write sequence, so two concurrent creates for
// overlapping windows on the same resource can never both succeed, while
// calls against different resources proceed independently.
type Manager struct {
	catalog repository.ResourceCatalog
	store   repository.ReservationStore
	checker ConflictChecker
	clock   Clock
	events  EventSink

	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewManager constructs a Manager.  catalog and store must be non-nil;
// a nil checker defaults to the linear Detector over the store, a nil
// clock to the wall clock, and a nil events sink disables publication.
func NewManager(catalog repository.ResourceCatalog, store repository.ReservationStore, checker ConflictChecker, clock Clock, events EventSink) *Manager {
	if catalog == nil || store == nil {
		panic("nil dependency passed to NewManager")
	}
	if checker == nil {
		checker = NewDetector(store)
	}
	if clock == nil {
		clock = RealClock{}
	}
	return &Manager{
		catalog: catalog,
		store:   store,
		checker: checker,
		clock:   clock,
		events:  events,
		locks:   make(map[string]*sync.Mutex),
	}
}

// resourceLock returns the mutex serializing mutations for one resource,
// creating it on first use.  Locks are never removed; the map grows with
// the number of distinct resources, which is small and bounded.
func (m *Manager) resourceLock(resourceID string) *sync.Mutex {
	m.lockMu.Lock()
	defer m.lockMu.Unlock()

	mu, ok := m.locks[resourceID]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[resourceID] = mu
	}
	return mu
}

// CreateInput carries a structured booking request from the caller.
type CreateInput struct {
	ResourceID      string
	CustomerName    string
	CustomerContact string
	Start           time.Time
	End             time.Time
	PartySize       int
	Notes           string
}

func (in *CreateInput) validate() error {
	if in.ResourceID == "" {
		return fmt.Errorf("%w: resource id is required", ErrInvalidRequest)
	}
	if err := validateCustomer(in.CustomerName, in.CustomerContact); err != nil {
		return err
	}
	if in.PartySize < 1 {
		return fmt.Errorf("%w: party size must be at least 1", ErrInvalidRequest)
	}
	if len(in.Notes) > MaxNotesLen {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidRequest, MaxNotesLen)
	}
	return nil
}

func validateCustomer(name, contact string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidRequest)
	}
	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: customer name exceeds %d characters", ErrInvalidRequest, MaxNameLen)
	}
	if _, err := mail.ParseAddress(contact); err != nil {
		return fmt.Errorf("%w: customer contact must be a valid email address", ErrInvalidRequest)
	}
	return nil
}

// validateWindow enforces the window rules shared by create, update and
// availability search: strictly ordered, and not entirely in the past.
// A window already in progress (start past, end future) is acceptable.
func validateWindow(window model.Interval, now time.Time) error {
	if !window.Valid() {
		return fmt.Errorf("%w: start must be before end", ErrInvalidWindow)
	}
	if !window.End.After(now) {
		return fmt.Errorf("%w: window lies entirely in the past", ErrInvalidWindow)
	}
	return nil
}

// Create books a resource.  The checks run in a fixed, contractual order,
// each with its own failure mode: (a) resource exists and is active,
// (b) the party fits the capacity, (c) the window is valid, (d) no
// overlapping non-terminal reservation exists, then (e) the cost is
// snapshotted and (f) the reservation is persisted as CONFIRMED.  A
// capacity failure is reported before the conflict check is attempted.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*model.Reservation, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	mu := m.resourceLock(in.ResourceID)
	mu.Lock()
	defer mu.Unlock()

	now := m.clock.Now().UTC()

	resource, err := m.catalog.GetByID(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if !resource.Active {
		return nil, fmt.Errorf("resource %q: %w", resource.ID, ErrResourceInactive)
	}

	if in.PartySize > resource.Capacity {
		return nil, fmt.Errorf("%w: party of %d, capacity %d", ErrCapacityExceeded, in.PartySize, resource.Capacity)
	}

	window := model.NewInterval(in.Start, in.End)
	if err := validateWindow(window, now); err != nil {
		return nil, err
	}

	conflict, err := m.checker.HasConflict(ctx, in.ResourceID, window, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, fmt.Errorf("resource %q: %w", resource.ID, ErrSlotConflict)
	}

	res := &model.Reservation{
		ID:              uuid.NewString(),
		ResourceID:      resource.ID,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerContact: in.CustomerContact,
		Start:           window.Start,
		End:             window.End,
		PartySize:       in.PartySize,
		TotalCents:      Price(resource, window),
		Status:          model.StatusConfirmed,
		Notes:           in.Notes,
		CreatedAt:       now,
	}
	if err := m.store.Create(ctx, res); err != nil {
		return nil, fmt.Errorf("persist reservation: %w", err)
	}

	if m.events != nil {
		m.events.ReservationConfirmed(ctx, res.Clone())
	}
	return res, nil
}

// UpdateInput carries a partial update; nil fields are left untouched.
// A window change (either bound) re-runs window validation, conflict
// detection against every other reservation, and re-pricing.  A party
// size change re-runs the capacity check.  Customer and notes changes
// touch neither the conflict checker nor the price.
type UpdateInput struct {
	Start           *time.Time
	End             *time.Time
	PartySize       *int
	CustomerName    *string
	CustomerContact *string
	Notes           *string
}

func (in *UpdateInput) windowChanged() bool { return in.Start != nil || in.End != nil }

// Update modifies a reservation that is non-terminal and has not yet
// started; anything else is ErrMutationNotAllowed.
func (m *Manager) Update(ctx context.Context, id string, in UpdateInput) (*model.Reservation, error) {
	// First read locates the resource so the right lock can be taken;
	// the record is re-read under the lock before any decision is made.
	probe, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mu := m.resourceLock(probe.ResourceID)
	mu.Lock()
	defer mu.Unlock()

	res, err := m.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := m.clock.Now().UTC()
	res, err = m.completeIfEndedLocked(ctx, res, now)
	if err != nil {
		return nil, err
	}
	if res.Status.Terminal() {
		return nil, fmt.Errorf("reservation %q is %s: %w", res.ID, res.Status, ErrMutationNotAllowed)
	}
	if !now.Before(res.Start) {
		return nil, fmt.Errorf("reservation %q already started: %w", res.ID, ErrMutationNotAllowed)
	}

	updated := res.Clone()
	if in.CustomerName != nil {
		updated.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	if in.CustomerContact != nil {
		updated.CustomerContact = *in.CustomerContact
	}
	if in.CustomerName != nil || in.CustomerContact != nil {
		if err := validateCustomer(updated.CustomerName, updated.CustomerContact); err != nil {
			return nil, err
		}
	}
	if in.Notes != nil {
		if len(*in.Notes) > MaxNotesLen {
			return nil, fmt.Errorf("%w: notes exceed %d characters", ErrInvalidRequest, MaxNotesLen)
		}
		updated.Notes = *in.Notes
	}
	if in.Start != nil {
		updated.Start = in.Start.UTC()
	}
	if in.End != nil {
		updated.End = in.End.UTC()
	}
	if in.PartySize != nil {
		updated.PartySize = *in.PartySize
		if updated.PartySize < 1 {
			return nil, fmt.Errorf("%w: party size must be at least 1", ErrInvalidRequest)
		}
	}

	if in.PartySize != nil || in.windowChanged() {
		resource, err := m.catalog.GetByID(ctx, updated.ResourceID)
		if err != nil {
			return nil, err
		}
		if updated.PartySize > resource.Capacity {
			return nil, fmt.Errorf("%w: party of %d, capacity %d", ErrCapacityExceeded, updated.PartySize, resource.Capacity)
		}
		if in.windowChanged() {
			window := updated.Window()
			if err := validateWindow(window, now); err != nil {
				return nil, err
			}
			conflict, err := m.checker.HasConflict(ctx, updated.ResourceID, window, updated.ID)
			if err != nil {
				return nil, err
			}
			if conflict {
				return nil, fmt.Errorf("resource %q: %w", updated.ResourceID, ErrSlotConflict)
			}
			// The window moved, so the snapshotted cost is re-priced.
			updated.TotalCents = Price(resource, window)
		}
	}

	if err := m.store.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("persist reservation update: %w", err)
	}
	return updated, nil
}

// Cancel marks a reservation CANCELLED.  Only a non-terminal reservation
// whose start is still in the future can be cancelled.
func (m *Manager) Cancel(ctx context.Context, id string) error {
	probe, err := m.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	mu := m.resourceLock(probe.ResourceID)
	mu.Lock()
	defer mu.Unlock()

	res, err := m.store.GetByID(ctx, id)
	if err != nil {
		return err
	}

	now := m.clock.Now().UTC()
	res, err = m.completeIfEndedLocked(ctx, res, now)
	if err != nil {
		return err
	}
	if res.Status.Terminal() {
		return fmt.Errorf("reservation %q is %s: %w", res.ID, res.Status, ErrAlreadyTerminal)
	}
	if !now.Before(res.Start) {
		return fmt.Errorf("reservation %q: %w", res.ID, ErrTooLateToCancel)
	}

	res.Status = model.StatusCancelled
	if err := m.store.Update(ctx, res); err != nil {
		return fmt.Errorf("persist cancellation: %w", err)
	}

	if m.events != nil {
		m.events.ReservationCancelled(ctx, res.Clone())
	}
	return nil
}

// completeIfEndedLocked lazily transitions an ended reservation to
// COMPLETED.  The caller must hold the reservation's resource lock.
func (m *Manager) completeIfEndedLocked(ctx context.Context, res *model.Reservation, now time.Time) (*model.Reservation, error) {
	if res.Status.Terminal() || res.End.After(now) {
		return res, nil
	}
	res.Status = model.StatusCompleted
	if err := m.store.Update(ctx, res); err != nil {
		return nil, fmt.Errorf("persist completion: %w", err)
	}
	return res, nil
}

// finishIfEnded is the read-path variant of the lazy completion: it takes
// the resource lock, re-reads the record and flips it when still needed.
func (m *Manager) finishIfEnded(ctx context.Context, res *model.Reservation) (*model.Reservation, error) {
	now := m.clock.Now().UTC()
	if res.Status.Terminal() || res.End.After(now) {
		return res, nil
	}

	mu := m.resourceLock(res.ResourceID)
	mu.Lock()
	defer mu.Unlock()

	current, err := m.store.GetByID(ctx, res.ID)
	if err != nil {
		return nil, err
	}
	return m.completeIfEndedLocked(ctx, current, now)
}
