package store

import (
	"context"
	"strings"
	"sync"

	"comply/internal/employee/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

// InMemory is the map-backed employee store.
type InMemory struct {
	mu        sync.RWMutex
	employees map[id.EmployeeID]*models.Employee
}

func NewInMemory() *InMemory {
	return &InMemory{employees: make(map[id.EmployeeID]*models.Employee)}
}

func cloneEmployee(e *models.Employee) *models.Employee {
	cp := *e
	return &cp
}

// Create rejects a duplicate email within the tenant (case-insensitive).
func (s *InMemory) Create(ctx context.Context, employee *models.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.employees {
		if e.TenantID == employee.TenantID && strings.EqualFold(e.Email, employee.Email) {
			return sentinel.ErrConflict
		}
	}
	s.employees[employee.ID] = cloneEmployee(employee)
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) (*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.employees[employeeID]
	if !exists || e.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	return cloneEmployee(e), nil
}

func (s *InMemory) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Employee
	for _, e := range s.employees {
		if e.TenantID == tenantID {
			out = append(out, cloneEmployee(e))
		}
	}
	return out, nil
}
