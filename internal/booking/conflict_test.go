package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/venuegrid/room-reservation/internal/model"
)

func TestConflictIsOrderIndependent(t *testing.T) {
	i1 := []string{"2025-01-10T09:00:00Z", "2025-01-10T11:00:00Z"}
	i2 := []string{"2025-01-10T10:00:00Z", "2025-01-10T12:00:00Z"}

	for name, order := range map[string][][]string{
		"i1 then i2": {i1, i2},
		"i2 then i1": {i2, i1},
	} {
		t.Run(name, func(t *testing.T) {
			e := newTestEngine(t)
			e.addResource(t, "r1", model.TypeMeeting, 8, 2000, true)

			e.book(t, "r1", order[0][0], order[0][1], 2)
			_, err := e.manager.Create(context.Background(), CreateInput{
				ResourceID:      "r1",
				CustomerName:    "Omar Haddad",
				CustomerContact: "omar@example.com",
				Start:           parseTime(t, order[1][0]),
				End:             parseTime(t, order[1][1]),
				PartySize:       2,
			})
			if !errors.Is(err, ErrSlotConflict) {
				t.Fatalf("second overlapping booking: got %v, want ErrSlotConflict", err)
			}
		})
	}
}

func TestTouchingIntervalsNeverConflict(t *testing.T) {
	e := newTestEngine(t)
	e.addResource(t, "r1", model.TypeMeeting, 8, 2000, true)

	e.book(t, "r1", "2025-01-10T09:00:00Z", "2025-01-10T10:00:00Z", 2)
	e.book(t, "r1", "2025-01-10T10:00:00Z", "2025-01-10T11:00:00Z", 2)
}

func TestNonOverlappingIntervalsBothSucceed(t *testing.T) {
	e := newTestEngine(t)
	e.addResource(t, "r1", model.TypeMeeting, 8, 2000, true)

	e.book(t, "r1", "2025-01-10T09:00:00Z", "2025-01-10T10:00:00Z", 2)
	e.book(t, "r1", "2025-01-10T14:00:00Z", "2025-01-10T15:00:00Z", 2)
}

func TestTerminalReservationsDoNotBlockSlots(t *testing.T) {
	e := newTestEngine(t)
	e.addResource(t, "r1", model.TypeMeeting, 8, 2000, true)

	first := e.book(t, "r1", "2025-01-10T09:00:00Z", "2025-01-10T11:00:00Z", 2)
	if err := e.manager.Cancel(context.Background(), first.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The cancelled interval is free again.
	e.book(t, "r1", "2025-01-10T09:00:00Z", "2025-01-10T11:00:00Z", 2)
}

func TestHasConflictExcludesGivenReservation(t *testing.T) {
	e := newTestEngine(t)
	e.addResource(t, "r1", model.TypeMeeting, 8, 2000, true)
	res := e.book(t, "r1", "2025-01-10T09:00:00Z", "2025-01-10T11:00:00Z", 2)

	detector := NewDetector(e.store)
	w := res.Window()

	conflict, err := detector.HasConflict(context.Background(), "r1", w, "")
	if err != nil || !conflict {
		t.Fatalf("without exclusion: conflict=%v err=%v, want true", conflict, err)
	}
	conflict, err = detector.HasConflict(context.Background(), "r1", w, res.ID)
	if err != nil || conflict {
		t.Fatalf("excluding own id: conflict=%v err=%v, want false", conflict, err)
	}
}

func TestConflictsAreScopedToResource(t *testing.T) {
	e := newTestEngine(t)
	e.addResource(t, "r1", model.TypeMeeting, 8, 2000, true)
	e.addResource(t, "r2", model.TypeMeeting, 8, 2000, true)

	e.book(t, "r1", "2025-01-10T09:00:00Z", "2025-01-10T11:00:00Z", 2)
	// Same window on another resource is fine.
	e.book(t, "r2", "2025-01-10T09:00:00Z", "2025-01-10T11:00:00Z", 2)
}
