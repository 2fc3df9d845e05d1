// Package queue defines the reservation lifecycle events exchanged over
// the message broker, the publisher that emits them, and the background
// consumer that turns them into an audit log.
package queue

import (
	"time"

	"github.com/venuegrid/room-reservation/internal/model"
)

// Event kinds carried in ReservationEvent.Kind.
const (
	KindConfirmed = "confirmed"
	KindCancelled = "cancelled"
)

// ReservationEvent is published whenever a reservation is confirmed or
// cancelled.  It carries enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary store.
type ReservationEvent struct {
	Kind            string `json:"kind"`
	ReservationID   string `json:"reservation_id"`
	ResourceID      string `json:"resource_id"`
	CustomerName    string `json:"customer_name"`
	CustomerContact string `json:"customer_contact"`
	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	PartySize       int    `json:"party_size"`
	TotalCents      int64  `json:"total_cents"`
	OccurredAt      string `json:"occurred_at"`
}

// NewReservationEvent snapshots a reservation into an event payload.
func NewReservationEvent(kind string, res *model.Reservation) ReservationEvent {
	return ReservationEvent{
		Kind:            kind,
		ReservationID:   res.ID,
		ResourceID:      res.ResourceID,
		CustomerName:    res.CustomerName,
		CustomerContact: res.CustomerContact,
		StartsAt:        res.Start.UTC().Format(time.RFC3339),
		EndsAt:          res.End.UTC().Format(time.RFC3339),
		PartySize:       res.PartySize,
		TotalCents:      res.TotalCents,
		OccurredAt:      time.Now().UTC().Format(time.RFC3339),
	}
}
