package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"comply/internal/employee/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

// Postgres persists employees in PostgreSQL. A unique index on
// (tenant_id, lower(email)) backs up the service-level duplicate check.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const employeeColumns = `id, tenant_id, name, email, role, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, employee *models.Employee) error {
	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(employee.ID), uuid.UUID(employee.TenantID), employee.Name,
		employee.Email, string(employee.Role), employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create employee: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) (*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND tenant_id = $2`
	return scanEmployee(s.db.QueryRowContext(ctx, query, uuid.UUID(employeeID), uuid.UUID(tenantID)))
}

func (s *Postgres) ListByTenant(ctx context.Context, tenantID id.TenantID) ([]*models.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(tenantID))
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var out []*models.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*models.Employee, error) {
	var (
		e          models.Employee
		employeeID uuid.UUID
		tenantID   uuid.UUID
		role       string
	)
	err := row.Scan(&employeeID, &tenantID, &e.Name, &e.Email, &role, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan employee: %w", err)
	}
	e.ID = id.EmployeeID(employeeID)
	e.TenantID = id.TenantID(tenantID)
	e.Role = models.Role(role)
	return &e, nil
}
