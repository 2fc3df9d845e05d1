// Package booking implements the reservation engine: conflict detection,
// availability search, pricing and the reservation lifecycle.  Every error
// below is an expected, recoverable outcome of normal use and is returned
// to the caller for errors.Is checks; only storage faults propagate as
// wrapped unexpected errors outside this taxonomy.
package booking

import "errors"

var (
	// ErrResourceInactive: the resource exists but is deactivated.
	ErrResourceInactive = errors.New("resource is inactive")
	// ErrCapacityExceeded: party size exceeds the resource capacity.
	ErrCapacityExceeded = errors.New("party size exceeds resource capacity")
	// ErrInvalidWindow: start ≥ end, or the window lies entirely in the past.
	ErrInvalidWindow = errors.New("invalid booking window")
	// ErrSlotConflict: an overlapping non-terminal reservation exists.
	ErrSlotConflict = errors.New("slot conflicts with an existing reservation")
	// ErrMutationNotAllowed: update on a terminal or already-started reservation.
	ErrMutationNotAllowed = errors.New("reservation can no longer be modified")
	// ErrAlreadyTerminal: cancel on a cancelled or completed reservation.
	ErrAlreadyTerminal = errors.New("reservation is already terminal")
	// ErrTooLateToCancel: cancel after the reservation has started.
	ErrTooLateToCancel = errors.New("reservation has already started")
	// ErrInvalidRequest: malformed input (bad customer fields, party size
	// < 1, invalid search window, ...).
	ErrInvalidRequest = errors.New("invalid request")
)
