package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/venuegrid/room-reservation/internal/model"
	"github.com/venuegrid/room-reservation/internal/repository"
)

// fixedClock pins now so lifecycle rules are deterministic under test.
type fixedClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFixedClock(t time.Time) *fixedClock { return &fixedClock{t: t.UTC()} }

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t.UTC()
}

// spyChecker counts HasConflict calls on its way through to the real
// detector.
type spyChecker struct {
	inner ConflictChecker
	mu    sync.Mutex
	calls int
}

func (s *spyChecker) HasConflict(ctx context.Context, resourceID string, w model.Interval, excludeID string) (bool, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.inner.HasConflict(ctx, resourceID, w, excludeID)
}

func (s *spyChecker) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// sinkSpy records published lifecycle events.
type sinkSpy struct {
	mu        sync.Mutex
	confirmed []string
	cancelled []string
}

func (s *sinkSpy) ReservationConfirmed(_ context.Context, res *model.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed = append(s.confirmed, res.ID)
}

func (s *sinkSpy) ReservationCancelled(_ context.Context, res *model.Reservation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelled = append(s.cancelled, res.ID)
}

// testEngine bundles a Manager with its collaborators for inspection.
type testEngine struct {
	manager *Manager
	catalog *repository.MemoryCatalog
	store   *repository.MemoryReservationStore
	clock   *fixedClock
	spy     *spyChecker
	sink    *sinkSpy
}

// testNow is the pinned instant every engine test starts from.
var testNow = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *testEngine {
	t.Helper()

	catalog := repository.NewMemoryCatalog()
	store := repository.NewMemoryReservationStore()
	clock := newFixedClock(testNow)
	spy := &spyChecker{inner: NewDetector(store)}
	sink := &sinkSpy{}

	return &testEngine{
		manager: NewManager(catalog, store, spy, clock, sink),
		catalog: catalog,
		store:   store,
		clock:   clock,
		spy:     spy,
		sink:    sink,
	}
}

func (e *testEngine) addResource(t *testing.T, id string, typ model.ResourceType, capacity int, rateCents int64, active bool) *model.Resource {
	t.Helper()
	r := &model.Resource{
		ID:              id,
		Name:            "Room " + id,
		Type:            typ,
		Capacity:        capacity,
		HourlyRateCents: rateCents,
		Active:          active,
	}
	if err := e.catalog.Create(context.Background(), r); err != nil {
		t.Fatalf("create resource %s: %v", id, err)
	}
	return r
}

func (e *testEngine) book(t *testing.T, resourceID, start, end string, party int) *model.Reservation {
	t.Helper()
	res, err := e.manager.Create(context.Background(), CreateInput{
		ResourceID:      resourceID,
		CustomerName:    "Dana Velasquez",
		CustomerContact: "dana@example.com",
		Start:           parseTime(t, start),
		End:             parseTime(t, end),
		PartySize:       party,
	})
	if err != nil {
		t.Fatalf("book %s [%s, %s): %v", resourceID, start, end, err)
	}
	return res
}

func parseTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}
