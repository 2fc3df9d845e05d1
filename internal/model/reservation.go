package model

import "time"

// Status is the lifecycle state of a reservation.
type Status string

const (
	StatusPending   Status = "PENDING"   // created, awaiting confirmation
	StatusConfirmed Status = "CONFIRMED" // booked; blocks the slot
	StatusCancelled Status = "CANCELLED" // cancelled before start; terminal
	StatusCompleted Status = "COMPLETED" // end has passed; terminal
)

// Terminal reports whether s is a final state.  Terminal reservations are
// excluded from conflict checks but retained for history and statistics.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Reservation records one customer's booking of one resource for one
// half-open time interval.  TotalCents is snapshotted at pricing time and
// is never recomputed retroactively when a resource's rate changes; only
// an explicit re-price (triggered by a window change) may replace it.
//
// Fields:
//  ID              – stable identifier (uuid).
//  ResourceID      – the booked resource; must exist at creation time.
//  CustomerName    – display name of the booking customer.
//  CustomerContact – email-shaped contact string, validated on input.
//  Start           – inclusive start instant (UTC).
//  End             – exclusive end instant (UTC); strictly after Start.
//  PartySize       – occupants; ≥ 1 and ≤ resource capacity at booking time.
//  TotalCents      – snapshotted total cost in integer cents.
//  Status          – lifecycle state, see Status.
//  Notes           – optional free text.
//  CreatedAt       – creation timestamp (UTC).
type Reservation struct {
	ID              string    // reservations.id
	ResourceID      string    // reservations.resource_id
	CustomerName    string    // reservations.customer_name
	CustomerContact string    // reservations.customer_contact
	Start           time.Time // reservations.starts_at
	End             time.Time // reservations.ends_at
	PartySize       int       // reservations.party_size
	TotalCents      int64     // reservations.total_cents
	Status          Status    // reservations.status
	Notes           string    // reservations.notes
	CreatedAt       time.Time // reservations.created_at
}

// Window returns the reservation's interval as a value.
func (r *Reservation) Window() Interval {
	return Interval{Start: r.Start, End: r.End}
}

// Clone returns a shallow copy.  Stores hand out clones so callers can
// never mutate indexed state behind the store's lock.
func (r *Reservation) Clone() *Reservation {
	cp := *r
	return &cp
}
