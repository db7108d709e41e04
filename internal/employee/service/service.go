// Package service manages employees within a tenant.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"comply/internal/employee/models"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/sentinel"
	"comply/pkg/requestcontext"
)

// Store is the persistence contract for employees. Email uniqueness is
// per tenant and case-insensitive.
type Store interface {
	Create(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) (*models.Employee, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Employee, error)
}

// Service manages the employee roster per tenant.
type Service struct {
	employees Store
	logger    *slog.Logger
	newID     func() id.EmployeeID
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithIDGenerator overrides employee ID generation, for deterministic tests.
func WithIDGenerator(gen func() id.EmployeeID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func New(employees Store, opts ...Option) *Service {
	s := &Service{
		employees: employees,
		logger:    slog.Default(),
		newID:     id.NewEmployeeID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput carries a new employee record.
type CreateInput struct {
	Name  string
	Email string
	Role  models.Role
}

// Create registers an employee. Conflicts when the email is already taken
// within the tenant.
func (s *Service) Create(ctx context.Context, tenantID id.TenantID, in CreateInput) (*models.Employee, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}

	employee, err := models.NewEmployee(s.newID(), tenantID, strings.TrimSpace(in.Name), strings.TrimSpace(in.Email), in.Role, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "an employee with this email already exists for this tenant")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create employee")
	}
	return employee, nil
}

// Get returns one employee within the tenant.
func (s *Service) Get(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) (*models.Employee, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	employee, err := s.employees.FindByID(ctx, tenantID, employeeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "employee not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "employee store failure")
	}
	return employee, nil
}

// List returns the tenant's employees.
func (s *Service) List(ctx context.Context, tenantID id.TenantID) ([]*models.Employee, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	employees, err := s.employees.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list employees")
	}
	return employees, nil
}
