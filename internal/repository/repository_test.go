package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/venuegrid/room-reservation/internal/model"
)

func validResource(id string) *model.Resource {
	return &model.Resource{
		ID:              id,
		Name:            "Room " + id,
		Type:            model.TypeMeeting,
		Capacity:        6,
		HourlyRateCents: 1500,
		Active:          true,
	}
}

func TestMemoryCatalogValidation(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog()

	cases := []struct {
		name   string
		mutate func(*model.Resource)
	}{
		{"empty id", func(r *model.Resource) { r.ID = "" }},
		{"blank name", func(r *model.Resource) { r.Name = "  " }},
		{"oversized name", func(r *model.Resource) {
			for len(r.Name) <= MaxResourceNameLen {
				r.Name += r.Name
			}
		}},
		{"unknown type", func(r *model.Resource) { r.Type = "garage" }},
		{"zero capacity", func(r *model.Resource) { r.Capacity = 0 }},
		{"negative rate", func(r *model.Resource) { r.HourlyRateCents = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := validResource("x")
			tc.mutate(r)
			if err := c.Create(ctx, r); !errors.Is(err, ErrInvalidResource) {
				t.Fatalf("got %v, want ErrInvalidResource", err)
			}
		})
	}

	if err := c.Create(ctx, validResource("r1")); err != nil {
		t.Fatalf("valid create: %v", err)
	}
	if err := c.Create(ctx, validResource("r1")); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate create: got %v, want ErrDuplicateID", err)
	}
}

func TestMemoryCatalogDeactivateKeepsResource(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog()
	if err := c.Create(ctx, validResource("r1")); err != nil {
		t.Fatal(err)
	}

	if err := c.Deactivate(ctx, "r1"); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetByID(ctx, "r1")
	if err != nil {
		t.Fatalf("deactivated resource must remain readable: %v", err)
	}
	if got.Active {
		t.Fatal("still active after Deactivate")
	}

	active, err := c.List(ctx, true)
	if err != nil || len(active) != 0 {
		t.Fatalf("active list = %v err=%v, want empty", active, err)
	}
	all, err := c.List(ctx, false)
	if err != nil || len(all) != 1 {
		t.Fatalf("full list = %v err=%v, want 1 entry", all, err)
	}

	if err := c.Deactivate(ctx, "ghost"); !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("got %v, want ErrResourceNotFound", err)
	}
}

func TestMemoryCatalogFindByCapacity(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCatalog()

	small := validResource("small")
	small.Capacity = 2
	big := validResource("big")
	big.Capacity = 12
	dormant := validResource("dormant")
	dormant.Capacity = 12
	dormant.Active = false

	for _, r := range []*model.Resource{small, big, dormant} {
		if err := c.Create(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := c.FindByCapacityAtLeast(ctx, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "big" {
		t.Fatalf("got %v, want [big]", got)
	}
}

func reservationAt(id, resourceID string, start time.Time) *model.Reservation {
	return &model.Reservation{
		ID:              id,
		ResourceID:      resourceID,
		CustomerName:    "Dana Velasquez",
		CustomerContact: "dana@example.com",
		Start:           start,
		End:             start.Add(time.Hour),
		PartySize:       2,
		TotalCents:      1500,
		Status:          model.StatusConfirmed,
		CreatedAt:       start.Add(-24 * time.Hour),
	}
}

func TestMemoryReservationStoreIndexesAndOrders(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReservationStore()
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	late := reservationAt("late", "r1", base.Add(4*time.Hour))
	early := reservationAt("early", "r1", base)
	other := reservationAt("other", "r2", base)
	for _, r := range []*model.Reservation{late, early, other} {
		if err := s.Create(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListByResource(ctx, "r1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "early" || got[1].ID != "late" {
		t.Fatalf("ListByResource order wrong: %v", got)
	}

	all, err := s.ListAll(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("ListAll = %v err=%v", all, err)
	}

	if err := s.Create(ctx, reservationAt("early", "r1", base)); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate id: got %v, want ErrDuplicateID", err)
	}
	if _, err := s.GetByID(ctx, "missing"); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("got %v, want ErrReservationNotFound", err)
	}
}

func TestMemoryReservationStoreHandsOutCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReservationStore()
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	if err := s.Create(ctx, reservationAt("r", "r1", base)); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(ctx, "r")
	if err != nil {
		t.Fatal(err)
	}
	got.Status = model.StatusCancelled // caller-side scribbling

	again, err := s.GetByID(ctx, "r")
	if err != nil {
		t.Fatal(err)
	}
	if again.Status != model.StatusConfirmed {
		t.Fatal("mutating a returned reservation leaked into the store")
	}
}

func TestMemoryReservationStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryReservationStore()
	base := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	res := reservationAt("r", "r1", base)
	if err := s.Create(ctx, res); err != nil {
		t.Fatal(err)
	}

	res.Status = model.StatusCancelled
	if err := s.Update(ctx, res); err != nil {
		t.Fatal(err)
	}

	// Both indexes observe the update.
	got, err := s.GetByID(ctx, "r")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusCancelled {
		t.Fatalf("byID status=%v, want CANCELLED", got.Status)
	}
	byRes, err := s.ListByResource(ctx, "r1")
	if err != nil || len(byRes) != 1 || byRes[0].Status != model.StatusCancelled {
		t.Fatalf("byResource=%v err=%v", byRes, err)
	}

	if err := s.Update(ctx, reservationAt("ghost", "r1", base)); !errors.Is(err, ErrReservationNotFound) {
		t.Fatalf("got %v, want ErrReservationNotFound", err)
	}
}
