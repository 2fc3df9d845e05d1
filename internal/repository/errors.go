// Package repository holds data access for resources and reservations.
// Two backends are provided for each contract: an in-memory one, which is
// the default single-process consistency domain, and a MySQL one for
// deployments that want reservations in a transactional table.  The
// sentinel errors below are shared by both so higher layers can branch
// with errors.Is without knowing which backend is wired.
package repository

import "errors"

// ErrResourceNotFound is returned when a resource lookup fails.
var ErrResourceNotFound = errors.New("resource not found")

// ErrReservationNotFound is returned when a reservation lookup fails.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrInvalidResource is returned when an administrative create or update
// carries an invalid resource definition (empty or oversized name,
// capacity < 1, negative hourly rate, unknown type).
var ErrInvalidResource = errors.New("invalid resource definition")

// ErrDuplicateID is returned when a create collides with an existing id.
var ErrDuplicateID = errors.New("duplicate id")
