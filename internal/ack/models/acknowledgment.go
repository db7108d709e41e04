package models

import (
	"time"

	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
)

// Type classifies why an acknowledgment obligation exists.
type Type string

const (
	TypeNewHire  Type = "NEW_HIRE"
	TypePeriodic Type = "PERIODIC"
	TypeManual   Type = "MANUAL"
)

// ParseType validates an acknowledgment type string.
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeNewHire, TypePeriodic, TypeManual:
		return t, nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown acknowledgment type %q", s)
}

// Status is the completion state of one obligation.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusOverdue   Status = "OVERDUE"
)

// ParseStatus validates an acknowledgment status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCompleted, StatusOverdue:
		return st, nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown acknowledgment status %q", s)
}

// Acknowledgment links one employee to one policy version with a due date.
//
// State machine:
//
//	PENDING  -> COMPLETED  (Complete)
//	PENDING  -> OVERDUE    (MarkOverdue, time-triggered by the sweep)
//	OVERDUE  -> COMPLETED  (Complete)
//
// COMPLETED is terminal. An employee may hold several rows for the same
// policy, one per obligation instance (a new-hire row plus future periodic
// rows). Rows are created only by the engine, always in PENDING.
type Acknowledgment struct {
	ID          id.AcknowledgmentID `json:"id"`
	EmployeeID  id.EmployeeID       `json:"employee_id"`
	PolicyID    id.PolicyID         `json:"policy_id"`
	Type        Type                `json:"type"`
	Status      Status              `json:"status"`
	DueDate     time.Time           `json:"due_date"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// NewAcknowledgment constructs a PENDING obligation.
func NewAcknowledgment(ackID id.AcknowledgmentID, employeeID id.EmployeeID, policyID id.PolicyID, ackType Type, dueDate, now time.Time) *Acknowledgment {
	return &Acknowledgment{
		ID:         ackID,
		EmployeeID: employeeID,
		PolicyID:   policyID,
		Type:       ackType,
		Status:     StatusPending,
		DueDate:    dueDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Complete transitions to COMPLETED and stamps the completion time. Completing
// an already-completed row is a no-op: the first CompletedAt wins. Returns
// whether the call changed state.
func (a *Acknowledgment) Complete(now time.Time) bool {
	if a.Status == StatusCompleted {
		return false
	}
	a.Status = StatusCompleted
	a.CompletedAt = &now
	a.UpdatedAt = now
	return true
}

// IsPastDue reports whether the due date has strictly passed.
func (a *Acknowledgment) IsPastDue(now time.Time) bool {
	return a.DueDate.Before(now)
}

// MarkOverdue transitions a past-due PENDING row to OVERDUE. Rows in any
// other state are left alone so repeated sweeps stay no-ops. Returns whether
// the call changed state.
func (a *Acknowledgment) MarkOverdue(now time.Time) bool {
	if a.Status != StatusPending || !a.IsPastDue(now) {
		return false
	}
	a.Status = StatusOverdue
	a.UpdatedAt = now
	return true
}
