package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/venuegrid/room-reservation/internal/model"
)

// MySQLReservationStore backs the ReservationStore with a `reservations`
// table.  Assumed schema (all DATETIME columns in UTC, connection opened
// with parseTime=true&loc=UTC):
//
//	CREATE TABLE reservations (
//	    id               VARCHAR(36)  PRIMARY KEY,
//	    resource_id      VARCHAR(64)  NOT NULL,
//	    customer_name    VARCHAR(120) NOT NULL,
//	    customer_contact VARCHAR(254) NOT NULL,
//	    starts_at        DATETIME     NOT NULL,
//	    ends_at          DATETIME     NOT NULL,
//	    party_size       INT          NOT NULL,
//	    total_cents      BIGINT       NOT NULL,
//	    status           VARCHAR(16)  NOT NULL,
//	    notes            TEXT         NOT NULL,
//	    created_at       DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    KEY idx_reservations_resource (resource_id, starts_at),
//	    KEY idx_reservations_contact  (customer_contact, starts_at)
//	);
//
// The (resource_id, starts_at) index serves the conflict detector's
// per-resource scans; ordering is pushed into ORDER BY so both backends
// return lists ascending by start time.
type MySQLReservationStore struct {
	db *sql.DB
}

// NewMySQLReservationStore returns a store bound to the given database.
func NewMySQLReservationStore(db *sql.DB) *MySQLReservationStore {
	return &MySQLReservationStore{db: db}
}

const reservationColumns = `id, resource_id, customer_name, customer_contact,
	starts_at, ends_at, party_size, total_cents, status, notes, created_at`

func scanReservation(row interface{ Scan(...any) error }) (*model.Reservation, error) {
	var r model.Reservation
	var status string
	if err := row.Scan(&r.ID, &r.ResourceID, &r.CustomerName, &r.CustomerContact,
		&r.Start, &r.End, &r.PartySize, &r.TotalCents, &status, &r.Notes, &r.CreatedAt); err != nil {
		return nil, err
	}
	r.Status = model.Status(status)
	r.Start = r.Start.UTC()
	r.End = r.End.UTC()
	r.CreatedAt = r.CreatedAt.UTC()
	return &r, nil
}

func (s *MySQLReservationStore) Create(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (id, resource_id, customer_name, customer_contact, starts_at, ends_at,
	            party_size, total_cents, status, notes, created_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, res.ID, res.ResourceID, res.CustomerName,
		res.CustomerContact, res.Start, res.End, res.PartySize, res.TotalCents,
		string(res.Status), res.Notes, res.CreatedAt); err != nil {
		return fmt.Errorf("insert reservation: %w", err)
	}
	return nil
}

func (s *MySQLReservationStore) GetByID(ctx context.Context, id string) (*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations WHERE id = ?`
	r, err := scanReservation(s.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return r, nil
}

func (s *MySQLReservationStore) Update(ctx context.Context, res *model.Reservation) error {
	const q = `UPDATE reservations
	           SET customer_name = ?, customer_contact = ?, starts_at = ?, ends_at = ?,
	               party_size = ?, total_cents = ?, status = ?, notes = ?
	           WHERE id = ?`
	result, err := s.db.ExecContext(ctx, q, res.CustomerName, res.CustomerContact,
		res.Start, res.End, res.PartySize, res.TotalCents, string(res.Status),
		res.Notes, res.ID)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if n == 0 {
		// No-op updates also report 0; confirm existence before failing.
		if _, err := s.GetByID(ctx, res.ID); err != nil {
			return err
		}
	}
	return nil
}

func (s *MySQLReservationStore) ListByResource(ctx context.Context, resourceID string) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE resource_id = ? ORDER BY starts_at, id`
	return s.queryReservations(ctx, q, resourceID)
}

func (s *MySQLReservationStore) ListByCustomer(ctx context.Context, contact string) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations
	           WHERE customer_contact = ? ORDER BY starts_at, id`
	return s.queryReservations(ctx, q, contact)
}

func (s *MySQLReservationStore) ListAll(ctx context.Context) ([]*model.Reservation, error) {
	const q = `SELECT ` + reservationColumns + ` FROM reservations ORDER BY starts_at, id`
	return s.queryReservations(ctx, q)
}

func (s *MySQLReservationStore) queryReservations(ctx context.Context, q string, args ...any) ([]*model.Reservation, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}
