package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"

	"comply/internal/policy/models"
)

// Postgres persists policies in PostgreSQL.
//
// A partial unique index on (tenant_id, name, type) WHERE is_active AND
// status = 'APPROVED' backs up the service-level supersession invariant
// against races between concurrent approvals.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const policyColumns = `id, tenant_id, template_id, name, type, version, content, configuration,
	status, is_active, approved_by, approved_at, effective_from, effective_to, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, policy *models.Policy) error {
	cfg, err := marshalConfiguration(policy.Configuration)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO policies (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(policy.ID), uuid.UUID(policy.TenantID), templateIDValue(policy.TemplateID),
		policy.Name, string(policy.Type), policy.Version, policy.Content, cfg,
		string(policy.Status), policy.Active, employeeIDValue(policy.ApprovedBy),
		nullTime(policy.ApprovedAt), nullTime(policy.EffectiveFrom), nullTime(policy.EffectiveTo),
		policy.CreatedAt, policy.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create policy: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*models.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1 AND tenant_id = $2 AND is_active`
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(policyID), uuid.UUID(tenantID))
	return scanPolicy(row)
}

func (s *Postgres) Update(ctx context.Context, policy *models.Policy) error {
	cfg, err := marshalConfiguration(policy.Configuration)
	if err != nil {
		return err
	}
	query := `
		UPDATE policies SET
			template_id = $2, name = $3, type = $4, version = $5, content = $6,
			configuration = $7, status = $8, is_active = $9, approved_by = $10,
			approved_at = $11, effective_from = $12, effective_to = $13, updated_at = $14
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(policy.ID), templateIDValue(policy.TemplateID), policy.Name, string(policy.Type),
		policy.Version, policy.Content, cfg, string(policy.Status), policy.Active,
		employeeIDValue(policy.ApprovedBy), nullTime(policy.ApprovedAt),
		nullTime(policy.EffectiveFrom), nullTime(policy.EffectiveTo), policy.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update policy: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update policy: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindActiveByNameAndType(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) (*models.Policy, error) {
	query := `
		SELECT ` + policyColumns + ` FROM policies
		WHERE tenant_id = $1 AND name = $2 AND type = $3 AND is_active
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(tenantID), name, string(policyType))
	return scanPolicy(row)
}

func (s *Postgres) FindApprovedActive(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) (*models.Policy, error) {
	query := `
		SELECT ` + policyColumns + ` FROM policies
		WHERE tenant_id = $1 AND name = $2 AND type = $3 AND is_active AND status = 'APPROVED'
		LIMIT 1
	`
	row := s.db.QueryRowContext(ctx, query, uuid.UUID(tenantID), name, string(policyType))
	return scanPolicy(row)
}

// ListGroup returns all active rows of one (tenant, name, type) identity.
// Version ordering is decided by the caller in Go; SQL string ordering would
// sort "9.9" after "9.10".
func (s *Postgres) ListGroup(ctx context.Context, tenantID id.TenantID, name string, policyType models.PolicyType) ([]*models.Policy, error) {
	query := `
		SELECT ` + policyColumns + ` FROM policies
		WHERE tenant_id = $1 AND name = $2 AND type = $3 AND is_active
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(tenantID), name, string(policyType))
	if err != nil {
		return nil, fmt.Errorf("list policy group: %w", err)
	}
	defer rows.Close()
	return scanPolicies(rows)
}

func (s *Postgres) ListByTenant(ctx context.Context, tenantID id.TenantID, filters Filters) ([]*models.Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM policies WHERE tenant_id = $1 AND is_active`
	args := []any{uuid.UUID(tenantID)}
	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.Type != nil {
		args = append(args, string(*filters.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}
	defer rows.Close()
	return scanPolicies(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolicy(row rowScanner) (*models.Policy, error) {
	var (
		p           models.Policy
		policyID    uuid.UUID
		tenantID    uuid.UUID
		templateID  uuid.NullUUID
		policyType  string
		cfg         []byte
		status      string
		approvedBy  uuid.NullUUID
		approvedAt  sql.NullTime
		effFrom     sql.NullTime
		effTo       sql.NullTime
	)
	err := row.Scan(&policyID, &tenantID, &templateID, &p.Name, &policyType, &p.Version,
		&p.Content, &cfg, &status, &p.Active, &approvedBy, &approvedAt, &effFrom, &effTo,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan policy: %w", err)
	}
	p.ID = id.PolicyID(policyID)
	p.TenantID = id.TenantID(tenantID)
	p.Type = models.PolicyType(policyType)
	p.Status = models.PolicyStatus(status)
	if templateID.Valid {
		tid := id.TemplateID(templateID.UUID)
		p.TemplateID = &tid
	}
	if approvedBy.Valid {
		eid := id.EmployeeID(approvedBy.UUID)
		p.ApprovedBy = &eid
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		p.ApprovedAt = &t
	}
	if effFrom.Valid {
		t := effFrom.Time
		p.EffectiveFrom = &t
	}
	if effTo.Valid {
		t := effTo.Time
		p.EffectiveTo = &t
	}
	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &p.Configuration); err != nil {
			return nil, fmt.Errorf("decode policy configuration: %w", err)
		}
	}
	return &p, nil
}

func scanPolicies(rows *sql.Rows) ([]*models.Policy, error) {
	var out []*models.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate policies: %w", err)
	}
	return out, nil
}

// marshalConfiguration encodes for the JSONB column, which is NOT NULL: a nil
// map round-trips as the empty object.
func marshalConfiguration(cfg models.Configuration) ([]byte, error) {
	if cfg == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode policy configuration: %w", err)
	}
	return b, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func templateIDValue(tid *id.TemplateID) uuid.NullUUID {
	if tid == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*tid), Valid: true}
}

func employeeIDValue(eid *id.EmployeeID) uuid.NullUUID {
	if eid == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: uuid.UUID(*eid), Valid: true}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
