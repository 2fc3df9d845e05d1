package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/venuegrid/room-reservation/internal/model"
)

// MySQLCatalog backs the ResourceCatalog with a `resources` table.  It
// assumes the schema:
//
//	CREATE TABLE resources (
//	    id                VARCHAR(64)  PRIMARY KEY,
//	    name              VARCHAR(120) NOT NULL,
//	    type              VARCHAR(32)  NOT NULL,
//	    capacity          INT          NOT NULL,
//	    hourly_rate_cents BIGINT       NOT NULL,
//	    amenities         TEXT         NOT NULL,
//	    is_active         TINYINT(1)   NOT NULL DEFAULT 1,
//	    created_at        DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
//	    updated_at        DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP
//	                      ON UPDATE CURRENT_TIMESTAMP
//	);
//
// Amenity tags are stored as a comma-joined string; tags therefore must
// not contain commas, which the validation layer does not currently
// enforce for exotic tag names.
type MySQLCatalog struct {
	db *sql.DB
}

// NewMySQLCatalog returns a catalog bound to the given database handle.
func NewMySQLCatalog(db *sql.DB) *MySQLCatalog { return &MySQLCatalog{db: db} }

const resourceColumns = `id, name, type, capacity, hourly_rate_cents, amenities, is_active, created_at, updated_at`

func scanResource(row interface{ Scan(...any) error }) (*model.Resource, error) {
	var r model.Resource
	var typ, amenities string
	if err := row.Scan(&r.ID, &r.Name, &typ, &r.Capacity, &r.HourlyRateCents,
		&amenities, &r.Active, &r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.Type = model.ResourceType(typ)
	if amenities != "" {
		r.Amenities = strings.Split(amenities, ",")
	}
	return &r, nil
}

func (c *MySQLCatalog) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources WHERE id = ?`
	r, err := scanResource(c.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return r, nil
}

func (c *MySQLCatalog) List(ctx context.Context, activeOnly bool) ([]*model.Resource, error) {
	q := `SELECT ` + resourceColumns + ` FROM resources`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY id`
	return c.queryResources(ctx, q)
}

func (c *MySQLCatalog) FindByCapacityAtLeast(ctx context.Context, n int) ([]*model.Resource, error) {
	const q = `SELECT ` + resourceColumns + ` FROM resources
	           WHERE is_active = 1 AND capacity >= ? ORDER BY id`
	return c.queryResources(ctx, q, n)
}

func (c *MySQLCatalog) queryResources(ctx context.Context, q string, args ...any) ([]*model.Resource, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	out := make([]*model.Resource, 0)
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return out, nil
}

func (c *MySQLCatalog) Create(ctx context.Context, r *model.Resource) error {
	if err := ValidateResource(r); err != nil {
		return err
	}
	const q = `INSERT INTO resources (id, name, type, capacity, hourly_rate_cents, amenities, is_active)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := c.db.ExecContext(ctx, q, r.ID, r.Name, string(r.Type), r.Capacity,
		r.HourlyRateCents, strings.Join(r.Amenities, ","), r.Active); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	// Read the row back so timestamp defaults are populated.
	stored, err := c.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	*r = *stored
	return nil
}

func (c *MySQLCatalog) Update(ctx context.Context, r *model.Resource) error {
	if err := ValidateResource(r); err != nil {
		return err
	}
	const q = `UPDATE resources
	           SET name = ?, type = ?, capacity = ?, hourly_rate_cents = ?, amenities = ?, is_active = ?
	           WHERE id = ?`
	res, err := c.db.ExecContext(ctx, q, r.Name, string(r.Type), r.Capacity,
		r.HourlyRateCents, strings.Join(r.Amenities, ","), r.Active, r.ID)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	// RowsAffected is 0 both for a missing row and for a no-op update, so
	// resolve the difference by reading the row back.
	if _, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	stored, err := c.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	*r = *stored
	return nil
}

func (c *MySQLCatalog) Deactivate(ctx context.Context, id string) error {
	const q = `UPDATE resources SET is_active = 0 WHERE id = ?`
	res, err := c.db.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("deactivate resource: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deactivate resource: %w", err)
	}
	if n == 0 {
		// Either missing or already inactive; only the former is an error.
		if _, err := c.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
