package storage

import (
	"context"
	"sync"

	"github.com/linkward/linkward/internal/models"
)

// Capacity figures reported by backends without a native capacity metric.
// A miss is billed at half a unit, the way an eventually consistent read
// would be.
const (
	costHit  = 1.0
	costMiss = 0.5
)

// MemoryStore is a map-backed RecordStore used by tests and local runs.
type MemoryStore struct {
	mu      sync.RWMutex
	links   map[string]*models.LinkRecord
	tenants map[string]map[string]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:   make(map[string]*models.LinkRecord),
		tenants: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryStore) GetLink(_ context.Context, id string) (*models.LinkRecord, float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.links[id]
	if !ok {
		return nil, costMiss, nil
	}
	return rec.Clone(), costHit, nil
}

func (m *MemoryStore) PutLink(_ context.Context, record *models.LinkRecord) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[record.ID]; exists {
		return costHit, ErrConflict
	}
	m.links[record.ID] = record.Clone()
	return costHit, nil
}

func (m *MemoryStore) UpdateLink(_ context.Context, id string, patch LinkPatch) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.links[id]
	if !ok {
		return costMiss, ErrNotFound
	}
	patch.Apply(rec)
	return costHit, nil
}

func (m *MemoryStore) HasTenantLink(_ context.Context, tenantKey, id string) (bool, float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids, ok := m.tenants[tenantKey]
	if !ok {
		return false, costMiss, nil
	}
	if _, ok := ids[id]; !ok {
		return false, costMiss, nil
	}
	return true, costHit, nil
}

func (m *MemoryStore) AddTenantLink(_ context.Context, tenantKey, id string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids, ok := m.tenants[tenantKey]
	if !ok {
		ids = make(map[string]struct{})
		m.tenants[tenantKey] = ids
	}
	ids[id] = struct{}{}
	return costHit, nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}
