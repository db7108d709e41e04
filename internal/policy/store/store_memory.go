package store

import (
	"context"
	"sync"

	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"

	"comply/internal/policy/models"
)

// InMemory is the map-backed policy store used by unit tests and local runs.
// It mirrors the Postgres store's contract, including the conflict backstop
// on (tenant, name, type) for active rows.
type InMemory struct {
	mu       sync.RWMutex
	policies map[id.PolicyID]*models.Policy
}

func NewInMemory() *InMemory {
	return &InMemory{policies: make(map[id.PolicyID]*models.Policy)}
}

func clonePolicy(p *models.Policy) *models.Policy {
	cp := *p
	if p.Configuration != nil {
		cfg := make(models.Configuration, len(p.Configuration))
		for k, v := range p.Configuration {
			cfg[k] = v
		}
		cp.Configuration = cfg
	}
	return &cp
}

func (s *InMemory) Create(ctx context.Context, policy *models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.policies[policy.ID]; exists {
		return sentinel.ErrConflict
	}
	s.policies[policy.ID] = clonePolicy(policy)
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, exists := s.policies[policyID]
	if !exists || p.TenantID != tenantID || !p.Active {
		return nil, sentinel.ErrNotFound
	}
	return clonePolicy(p), nil
}

func (s *InMemory) Update(ctx context.Context, policy *models.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.policies[policy.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.policies[policy.ID] = clonePolicy(policy)
	return nil
}

// FindActiveByNameAndType returns any active row matching the identity,
// regardless of approval status. Used for the create/update uniqueness check.
func (s *InMemory) FindActiveByNameAndType(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.policies {
		if p.Active && p.TenantID == tenantID && p.Name == name && p.Type == policyType {
			return clonePolicy(p), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// FindApprovedActive returns the approved+active row of the identity group,
// if one exists. Used by the supersession rule on approval.
func (s *InMemory) FindApprovedActive(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) (*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.policies {
		if p.Active && p.IsApproved() && p.TenantID == tenantID && p.Name == name && p.Type == policyType {
			return clonePolicy(p), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListGroup returns all active rows sharing the (tenant, name, type) identity.
func (s *InMemory) ListGroup(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var group []*models.Policy
	for _, p := range s.policies {
		if p.Active && p.TenantID == tenantID && p.Name == name && p.Type == policyType {
			group = append(group, clonePolicy(p))
		}
	}
	return group, nil
}

func (s *InMemory) ListByTenant(ctx context.Context, tenantID id.TenantID, filters Filters) ([]*models.Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Policy
	for _, p := range s.policies {
		if !p.Active || p.TenantID != tenantID {
			continue
		}
		if filters.Status != nil && p.Status != *filters.Status {
			continue
		}
		if filters.Type != nil && p.Type != *filters.Type {
			continue
		}
		out = append(out, clonePolicy(p))
	}
	return out, nil
}
