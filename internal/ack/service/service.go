// Package service implements the acknowledgment engine: role-driven
// obligation generation for new hires and manual campaigns, idempotent
// completion, the overdue sweep, and escalation of overdue obligations.
package service

import (
	"context"
	"log/slog"
	"time"

	"comply/internal/ack/config"
	ackmetrics "comply/internal/ack/metrics"
	"comply/internal/ack/models"
	"comply/internal/ack/store"
	employeemodels "comply/internal/employee/models"
	"comply/internal/escalation"
	policymodels "comply/internal/policy/models"
	id "comply/pkg/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// Store is the persistence contract for acknowledgment rows. Rows from
// different employees in one batch have no ordering dependency; BulkCreate
// may write them in any order.
type Store interface {
	BulkCreate(ctx context.Context, acks []*models.Acknowledgment) error
	FindByID(ctx context.Context, ackID id.AcknowledgmentID) (*models.Acknowledgment, error)
	Update(ctx context.Context, ack *models.Acknowledgment) error
	ListByFilters(ctx context.Context, filters store.Filters) ([]*models.Acknowledgment, error)
	SweepOverdue(ctx context.Context, now time.Time) (int, error)
	ListOverdue(ctx context.Context) ([]*models.Acknowledgment, error)
}

// EmployeeDirectory resolves employees within a tenant.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) (*employeemodels.Employee, error)
	ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*employeemodels.Employee, error)
}

// PolicyProvider exposes the policy lifecycle engine's obligation set and
// tenant-scoped lookups.
type PolicyProvider interface {
	ActiveForAcknowledgments(ctx context.Context, tenantID id.TenantID) ([]*policymodels.Policy, error)
	Get(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*policymodels.AnnotatedPolicy, error)
}

// EscalationSink receives one record per overdue obligation during an
// escalation run.
type EscalationSink interface {
	Emit(ctx context.Context, record escalation.Record) error
}

// Service orchestrates acknowledgment obligations for all tenants.
type Service struct {
	acks        Store
	employees   EmployeeDirectory
	policies    PolicyProvider
	escalations EscalationSink
	mapping     config.RoleMapping
	cfg         config.Config
	logger      *slog.Logger
	metrics     *ackmetrics.Metrics
	newID       func() id.AcknowledgmentID
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *ackmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithEscalationSink wires the sink escalation records are emitted to.
// Without one, EscalateOverdue still sweeps but emits nothing.
func WithEscalationSink(sink EscalationSink) Option {
	return func(s *Service) { s.escalations = sink }
}

// WithConfig overrides the timing knobs.
func WithConfig(cfg config.Config) Option {
	return func(s *Service) {
		if cfg.NewHireDueDays > 0 {
			s.cfg.NewHireDueDays = cfg.NewHireDueDays
		}
		if cfg.PeriodicYears >= 0 {
			s.cfg.PeriodicYears = cfg.PeriodicYears
		}
	}
}

// WithRoleMapping overrides the role mapping table.
func WithRoleMapping(mapping config.RoleMapping) Option {
	return func(s *Service) {
		if mapping != nil {
			s.mapping = mapping
		}
	}
}

// WithIDGenerator overrides acknowledgment ID generation, for deterministic
// tests.
func WithIDGenerator(gen func() id.AcknowledgmentID) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// New constructs the acknowledgment engine.
func New(acks Store, employees EmployeeDirectory, policies PolicyProvider, opts ...Option) *Service {
	s := &Service{
		acks:      acks,
		employees: employees,
		policies:  policies,
		mapping:   config.DefaultRoleMapping(),
		cfg:       config.DefaultConfig(),
		logger:    slog.Default(),
		newID:     id.NewAcknowledgmentID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
