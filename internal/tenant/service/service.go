// Package service manages tenant companies. Tenant management sits behind
// the admin token, not the tenant-scoped API.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"comply/internal/tenant/models"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/sentinel"
	"comply/pkg/requestcontext"
)

// Store is the persistence contract for tenants.
type Store interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	FindByID(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error)
	FindAll(ctx context.Context) ([]*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
}

type Service struct {
	tenants Store
	logger  *slog.Logger
	newID   func() id.TenantID
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithIDGenerator overrides tenant ID generation, for deterministic tests.
func WithIDGenerator(gen func() id.TenantID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func New(tenants Store, opts ...Option) *Service {
	s := &Service{
		tenants: tenants,
		logger:  slog.Default(),
		newID:   id.NewTenantID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a tenant company.
func (s *Service) Create(ctx context.Context, name string) (*models.Tenant, error) {
	tenant, err := models.NewTenant(s.newID(), strings.TrimSpace(name), requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.tenants.Create(ctx, tenant); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "tenant already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create tenant")
	}
	s.logger.InfoContext(ctx, "tenant created", "tenant_id", tenant.ID, "name", tenant.Name)
	return tenant, nil
}

// Get returns one active tenant.
func (s *Service) Get(ctx context.Context, tenantID id.TenantID) (*models.Tenant, error) {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return nil, wrapTenantErr(err)
	}
	return tenant, nil
}

// List returns every active tenant.
func (s *Service) List(ctx context.Context) ([]*models.Tenant, error) {
	tenants, err := s.tenants.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tenants")
	}
	return tenants, nil
}

// Delete soft-deletes a tenant. Its data is retained but the tenant no
// longer resolves for API requests.
func (s *Service) Delete(ctx context.Context, tenantID id.TenantID) error {
	tenant, err := s.tenants.FindByID(ctx, tenantID)
	if err != nil {
		return wrapTenantErr(err)
	}
	tenant.Active = false
	tenant.UpdatedAt = requestcontext.Now(ctx)
	if err := s.tenants.Update(ctx, tenant); err != nil {
		return wrapTenantErr(err)
	}
	return nil
}

func wrapTenantErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "tenant not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "tenant conflicts with an existing tenant")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "tenant store failure")
	}
}
