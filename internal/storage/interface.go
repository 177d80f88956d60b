// Package storage implements the record store behind the lifecycle and
// resolution engines: a link table keyed by identifier and a tenant index
// keyed by the environment/tenant pair. Every call reports a capacity cost
// so engine invocations can expose the price of a logical operation.
package storage

import (
	"context"
	"errors"

	"github.com/linkward/linkward/internal/models"
)

var (
	// ErrNotFound is returned by UpdateLink when the identifier is absent.
	// GetLink reports a miss as a nil record instead, because a miss there
	// is an ordinary outcome that still carries a cost.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned by PutLink when the identifier already
	// exists. The allocator makes this unlikely but not impossible.
	ErrConflict = errors.New("record already exists")
)

// RecordStore is the persistence contract shared by all store backends.
//
// Each method returns the capacity units consumed by the call, including on
// misses. No method retries and no call spans both tables; the sequential
// link-table and tenant-index writes during a create are independent and a
// partial failure between them is possible.
type RecordStore interface {
	// GetLink fetches a link record. A miss returns (nil, cost, nil).
	GetLink(ctx context.Context, id string) (*models.LinkRecord, float64, error)

	// PutLink inserts a new link record, failing with ErrConflict when the
	// identifier is taken.
	PutLink(ctx context.Context, record *models.LinkRecord) (float64, error)

	// UpdateLink applies a typed patch to an existing record. The field
	// mutations and the log append of the patch are applied as one unit.
	UpdateLink(ctx context.Context, id string, patch LinkPatch) (float64, error)

	// HasTenantLink reports whether the identifier is listed under the
	// tenant index entry.
	HasTenantLink(ctx context.Context, tenantKey, id string) (bool, float64, error)

	// AddTenantLink adds the identifier to the tenant index entry,
	// creating the entry if needed.
	AddTenantLink(ctx context.Context, tenantKey, id string) (float64, error)

	// Ping verifies connectivity to the backend.
	Ping(ctx context.Context) error
}

// TenantKey builds the composite tenant index key from an environment and
// tenant identifier pair.
func TenantKey(environmentID, tenantID string) string {
	return environmentID + "." + tenantID
}
