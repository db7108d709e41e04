// Package service implements the policy lifecycle engine: creation with
// uniqueness enforcement, configuration-driven re-versioning, the approval
// state machine with supersession, and the derived obligation set the
// acknowledgment engine consumes.
package service

import (
	"context"
	"log/slog"
	"time"

	policymetrics "comply/internal/policy/metrics"
	"comply/internal/policy/models"
	"comply/internal/policy/store"
	templatemodels "comply/internal/template/models"
	id "comply/pkg/domain"
)

// DefaultValidity is the effective window stamped on approval.
const DefaultValidity = 5 * 365 * 24 * time.Hour

// Store is the persistence contract the engine needs. Implementations must
// provide read-your-writes consistency per tenant: Create/Update uniqueness
// is check-then-act and relies on a storage unique constraint as the race
// backstop.
type Store interface {
	Create(ctx context.Context, policy *models.Policy) error
	FindByID(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*models.Policy, error)
	Update(ctx context.Context, policy *models.Policy) error
	FindActiveByNameAndType(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) (*models.Policy, error)
	FindApprovedActive(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) (*models.Policy, error)
	ListGroup(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) ([]*models.Policy, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID, filters store.Filters) ([]*models.Policy, error)
}

// TemplateDirectory resolves template back-references for staleness checks.
type TemplateDirectory interface {
	FindByID(ctx context.Context, templateID id.TemplateID) (*templatemodels.Template, error)
	LatestByName(ctx context.Context, name string) (*templatemodels.Template, error)
}

// ObligationCache caches the per-tenant active-approved set. Optional; a nil
// cache disables caching. Errors from the cache degrade to a miss.
type ObligationCache interface {
	Get(ctx context.Context, tenantID id.TenantID) ([]*models.Policy, bool, error)
	Set(ctx context.Context, tenantID id.TenantID, policies []*models.Policy) error
	Invalidate(ctx context.Context, tenantID id.TenantID) error
}

// Service orchestrates the policy lifecycle for all tenants.
type Service struct {
	policies  Store
	templates TemplateDirectory
	cache     ObligationCache
	logger    *slog.Logger
	metrics   *policymetrics.Metrics
	validity  time.Duration
	newID     func() id.PolicyID
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *policymetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithObligationCache(cache ObligationCache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithValidity overrides the approval effective window.
func WithValidity(validity time.Duration) Option {
	return func(s *Service) {
		if validity > 0 {
			s.validity = validity
		}
	}
}

// WithIDGenerator overrides policy ID generation, for deterministic tests.
func WithIDGenerator(gen func() id.PolicyID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs the lifecycle engine.
func New(policies Store, templates TemplateDirectory, opts ...Option) *Service {
	s := &Service{
		policies:  policies,
		templates: templates,
		logger:    slog.Default(),
		validity:  DefaultValidity,
		newID:     id.NewPolicyID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
