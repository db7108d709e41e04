package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"comply/internal/ack/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

// Postgres persists acknowledgments in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const ackColumns = `id, employee_id, policy_id, type, status, due_date, completed_at, created_at, updated_at`

// BulkCreate inserts the batch in one round trip using unnest.
func (s *Postgres) BulkCreate(ctx context.Context, acks []*models.Acknowledgment) error {
	if len(acks) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(acks))
	employeeIDs := make([]uuid.UUID, len(acks))
	policyIDs := make([]uuid.UUID, len(acks))
	types := make([]string, len(acks))
	statuses := make([]string, len(acks))
	dueDates := make([]time.Time, len(acks))
	createdAts := make([]time.Time, len(acks))
	for i, a := range acks {
		ids[i] = uuid.UUID(a.ID)
		employeeIDs[i] = uuid.UUID(a.EmployeeID)
		policyIDs[i] = uuid.UUID(a.PolicyID)
		types[i] = string(a.Type)
		statuses[i] = string(a.Status)
		dueDates[i] = a.DueDate
		createdAts[i] = a.CreatedAt
	}

	query := `
		INSERT INTO acknowledgments (id, employee_id, policy_id, type, status, due_date, created_at, updated_at)
		SELECT * FROM unnest($1::uuid[], $2::uuid[], $3::uuid[], $4::text[], $5::text[], $6::timestamptz[], $7::timestamptz[], $7::timestamptz[])
	`
	_, err := s.db.ExecContext(ctx, query,
		pq.Array(ids), pq.Array(employeeIDs), pq.Array(policyIDs),
		pq.Array(types), pq.Array(statuses), pq.Array(dueDates), pq.Array(createdAts),
	)
	if err != nil {
		return fmt.Errorf("bulk create acknowledgments: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, ackID id.AcknowledgmentID) (*models.Acknowledgment, error) {
	query := `SELECT ` + ackColumns + ` FROM acknowledgments WHERE id = $1`
	return scanAck(s.db.QueryRowContext(ctx, query, uuid.UUID(ackID)))
}

func (s *Postgres) Update(ctx context.Context, ack *models.Acknowledgment) error {
	query := `
		UPDATE acknowledgments
		SET status = $2, completed_at = $3, updated_at = $4
		WHERE id = $1
	`
	var completedAt sql.NullTime
	if ack.CompletedAt != nil {
		completedAt = sql.NullTime{Time: *ack.CompletedAt, Valid: true}
	}
	res, err := s.db.ExecContext(ctx, query, uuid.UUID(ack.ID), string(ack.Status), completedAt, ack.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update acknowledgment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update acknowledgment: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *Postgres) ListByFilters(ctx context.Context, filters Filters) ([]*models.Acknowledgment, error) {
	query := `SELECT ` + ackColumns + ` FROM acknowledgments WHERE 1=1`
	var args []any
	if len(filters.EmployeeIDs) > 0 {
		ids := make([]uuid.UUID, len(filters.EmployeeIDs))
		for i, eid := range filters.EmployeeIDs {
			ids[i] = uuid.UUID(eid)
		}
		args = append(args, pq.Array(ids))
		query += fmt.Sprintf(" AND employee_id = ANY($%d)", len(args))
	}
	if filters.Type != nil {
		args = append(args, string(*filters.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	if filters.Status != nil {
		args = append(args, string(*filters.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filters.PendingPastDue != nil {
		args = append(args, *filters.PendingPastDue)
		query += fmt.Sprintf(" AND status = 'PENDING' AND due_date < $%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list acknowledgments: %w", err)
	}
	defer rows.Close()
	return scanAcks(rows)
}

// SweepOverdue is one UPDATE: the batch transition has no per-row ordering
// dependency, and already-OVERDUE rows never match the predicate.
func (s *Postgres) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE acknowledgments
		SET status = 'OVERDUE', updated_at = $1
		WHERE status = 'PENDING' AND due_date < $1
	`
	res, err := s.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("sweep overdue acknowledgments: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep overdue acknowledgments: %w", err)
	}
	return int(affected), nil
}

func (s *Postgres) ListOverdue(ctx context.Context) ([]*models.Acknowledgment, error) {
	query := `SELECT ` + ackColumns + ` FROM acknowledgments WHERE status = 'OVERDUE' ORDER BY due_date`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list overdue acknowledgments: %w", err)
	}
	defer rows.Close()
	return scanAcks(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAck(row rowScanner) (*models.Acknowledgment, error) {
	var (
		a           models.Acknowledgment
		ackID       uuid.UUID
		employeeID  uuid.UUID
		policyID    uuid.UUID
		ackType     string
		status      string
		completedAt sql.NullTime
	)
	err := row.Scan(&ackID, &employeeID, &policyID, &ackType, &status, &a.DueDate, &completedAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan acknowledgment: %w", err)
	}
	a.ID = id.AcknowledgmentID(ackID)
	a.EmployeeID = id.EmployeeID(employeeID)
	a.PolicyID = id.PolicyID(policyID)
	a.Type = models.Type(ackType)
	a.Status = models.Status(status)
	if completedAt.Valid {
		t := completedAt.Time
		a.CompletedAt = &t
	}
	return &a, nil
}

func scanAcks(rows *sql.Rows) ([]*models.Acknowledgment, error) {
	var out []*models.Acknowledgment
	for rows.Next() {
		a, err := scanAck(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate acknowledgments: %w", err)
	}
	return out, nil
}
