package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	policymodels "comply/internal/policy/models"
	"comply/internal/template/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

// Postgres persists policy templates in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const templateColumns = `id, name, type, version, is_active, created_at, updated_at`

func (s *Postgres) Create(ctx context.Context, template *models.Template) error {
	query := `
		INSERT INTO policy_templates (` + templateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.UUID(template.ID), template.Name, string(template.Type), template.Version,
		template.Active, template.CreatedAt, template.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, templateID id.TemplateID) (*models.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM policy_templates WHERE id = $1 AND is_active`
	return scanTemplate(s.db.QueryRowContext(ctx, query, uuid.UUID(templateID)))
}

func (s *Postgres) Update(ctx context.Context, template *models.Template) error {
	query := `
		UPDATE policy_templates
		SET name = $2, type = $3, version = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		uuid.UUID(template.ID), template.Name, string(template.Type), template.Version,
		template.Active, template.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) FindAll(ctx context.Context) ([]*models.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM policy_templates WHERE is_active ORDER BY name, created_at`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []*models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	return out, nil
}

func (s *Postgres) FindActiveByNameAndType(ctx context.Context, name string, policyType policymodels.PolicyType) (*models.Template, error) {
	query := `
		SELECT ` + templateColumns + ` FROM policy_templates
		WHERE name = $1 AND type = $2 AND is_active
		LIMIT 1
	`
	return scanTemplate(s.db.QueryRowContext(ctx, query, name, string(policyType)))
}

// LatestByName fetches the active rows for a name and orders versions in Go;
// SQL string ordering misorders numeric versions past ".9".
func (s *Postgres) LatestByName(ctx context.Context, name string) (*models.Template, error) {
	query := `SELECT ` + templateColumns + ` FROM policy_templates WHERE name = $1 AND is_active`
	rows, err := s.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("latest template by name: %w", err)
	}
	defer rows.Close()

	var latest *models.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		if latest == nil || policymodels.CompareVersions(t.Version, latest.Version) > 0 {
			latest = t
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}
	if latest == nil {
		return nil, sentinel.ErrNotFound
	}
	return latest, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row rowScanner) (*models.Template, error) {
	var (
		t            models.Template
		templateID   uuid.UUID
		templateType string
	)
	err := row.Scan(&templateID, &t.Name, &templateType, &t.Version, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan template: %w", err)
	}
	t.ID = id.TemplateID(templateID)
	t.Type = policymodels.PolicyType(templateType)
	return &t, nil
}
