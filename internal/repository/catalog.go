package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/venuegrid/room-reservation/internal/model"
)

// MaxResourceNameLen bounds the display name accepted by the catalog.
const MaxResourceNameLen = 120

// ResourceCatalog is the read-mostly room catalog.  The lookup methods are
// the scheduling hot path; the mutating methods are a simple administrative
// collaborator and are validated independently of the booking flow.
type ResourceCatalog interface {
	// GetByID returns the resource or ErrResourceNotFound.
	GetByID(ctx context.Context, id string) (*model.Resource, error)
	// List returns resources ordered by id, optionally only active ones.
	List(ctx context.Context, activeOnly bool) ([]*model.Resource, error)
	// FindByCapacityAtLeast returns active resources whose capacity is ≥ n,
	// ordered by id.
	FindByCapacityAtLeast(ctx context.Context, n int) ([]*model.Resource, error)

	// Create registers a new resource after validating it.
	Create(ctx context.Context, r *model.Resource) error
	// Update replaces the mutable fields of an existing resource.
	Update(ctx context.Context, r *model.Resource) error
	// Deactivate flips Active off.  Resources are never deleted while
	// reservations reference them; history stays valid.
	Deactivate(ctx context.Context, id string) error
}

// ValidateResource checks the administrative invariants of a resource
// definition.  It returns an error wrapping ErrInvalidResource naming the
// offending field, or nil.
func ValidateResource(r *model.Resource) error {
	if r.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidResource)
	}
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidResource)
	}
	if len(name) > MaxResourceNameLen {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidResource, MaxResourceNameLen)
	}
	if !model.KnownResourceType(r.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidResource, r.Type)
	}
	if r.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrInvalidResource)
	}
	if r.HourlyRateCents < 0 {
		return fmt.Errorf("%w: hourly rate must not be negative", ErrInvalidResource)
	}
	return nil
}

// MemoryCatalog is the in-memory ResourceCatalog.  A sync.RWMutex guards
// the map so list/lookup reads observe a consistent snapshot while the
// administrative writers mutate.
type MemoryCatalog struct {
	mu        sync.RWMutex
	resources map[string]*model.Resource
}

// NewMemoryCatalog returns an empty in-memory catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{resources: make(map[string]*model.Resource)}
}

func (c *MemoryCatalog) GetByID(_ context.Context, id string) (*model.Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.resources[id]
	if !ok {
		return nil, ErrResourceNotFound
	}
	cp := *r
	return &cp, nil
}

func (c *MemoryCatalog) List(_ context.Context, activeOnly bool) ([]*model.Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*model.Resource, 0, len(c.resources))
	for _, r := range c.resources {
		if activeOnly && !r.Active {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sortResourcesByID(out)
	return out, nil
}

func (c *MemoryCatalog) FindByCapacityAtLeast(_ context.Context, n int) ([]*model.Resource, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*model.Resource
	for _, r := range c.resources {
		if !r.Active || r.Capacity < n {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	sortResourcesByID(out)
	return out, nil
}

func (c *MemoryCatalog) Create(_ context.Context, r *model.Resource) error {
	if err := ValidateResource(r); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.resources[r.ID]; exists {
		return fmt.Errorf("resource %q: %w", r.ID, ErrDuplicateID)
	}
	now := time.Now().UTC()
	cp := *r
	cp.CreatedAt = now
	cp.UpdatedAt = now
	c.resources[cp.ID] = &cp
	*r = cp
	return nil
}

func (c *MemoryCatalog) Update(_ context.Context, r *model.Resource) error {
	if err := ValidateResource(r); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.resources[r.ID]
	if !ok {
		return ErrResourceNotFound
	}
	cp := *r
	cp.CreatedAt = cur.CreatedAt
	cp.UpdatedAt = time.Now().UTC()
	c.resources[cp.ID] = &cp
	*r = cp
	return nil
}

func (c *MemoryCatalog) Deactivate(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.resources[id]
	if !ok {
		return ErrResourceNotFound
	}
	r.Active = false
	r.UpdatedAt = time.Now().UTC()
	return nil
}

func sortResourcesByID(rs []*model.Resource) {
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID < rs[j].ID })
}
