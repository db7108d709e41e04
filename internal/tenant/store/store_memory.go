package store

import (
	"context"
	"sync"

	"comply/internal/tenant/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

// InMemory is the map-backed tenant store.
type InMemory struct {
	mu      sync.RWMutex
	tenants map[id.TenantID]*models.Tenant
}

func NewInMemory() *InMemory {
	return &InMemory{tenants: make(map[id.TenantID]*models.Tenant)}
}

func cloneTenant(t *models.Tenant) *models.Tenant {
	cp := *t
	return &cp
}

func (s *InMemory) Create(ctx context.Context, tenant *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[tenant.ID]; exists {
		return sentinel.ErrConflict
	}
	s.tenants[tenant.ID] = cloneTenant(tenant)
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tenants[tenantID]
	if !exists || !t.Active {
		return nil, sentinel.ErrNotFound
	}
	return cloneTenant(t), nil
}

func (s *InMemory) FindAll(ctx context.Context) ([]*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Tenant
	for _, t := range s.tenants {
		if t.Active {
			out = append(out, cloneTenant(t))
		}
	}
	return out, nil
}

func (s *InMemory) Update(ctx context.Context, tenant *models.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tenants[tenant.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.tenants[tenant.ID] = cloneTenant(tenant)
	return nil
}
