package service

import (
	"context"

	"github.com/linkward/linkward/internal/models"
	"github.com/linkward/linkward/internal/storage"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_store.go -package=mocks

// Store is the slice of the record store the engines depend on. Every
// method reports the capacity units the call consumed.
type Store interface {
	GetLink(ctx context.Context, id string) (*models.LinkRecord, float64, error)
	PutLink(ctx context.Context, record *models.LinkRecord) (float64, error)
	UpdateLink(ctx context.Context, id string, patch storage.LinkPatch) (float64, error)
	HasTenantLink(ctx context.Context, tenantKey, id string) (bool, float64, error)
	AddTenantLink(ctx context.Context, tenantKey, id string) (float64, error)
	Ping(ctx context.Context) error
}
