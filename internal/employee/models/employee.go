package models

import (
	"time"

	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
)

// Role is the closed enumeration of employee roles. The acknowledgment
// engine's role mapping table keys on it.
type Role string

const (
	RoleHR          Role = "HR"
	RoleEngineering Role = "ENGINEERING"
	RoleSales       Role = "SALES"
	RoleExecutive   Role = "EXECUTIVE"
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleHR, RoleEngineering, RoleSales, RoleExecutive:
		return r, nil
	}
	return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown employee role %q", s)
}

// Employee belongs to exactly one tenant and holds one role.
// Email is unique per tenant.
type Employee struct {
	ID        id.EmployeeID `json:"id"`
	TenantID  id.TenantID   `json:"tenant_id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      Role          `json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewEmployee constructs an employee after basic invariant checks.
func NewEmployee(employeeID id.EmployeeID, tenantID id.TenantID, name, email string, role Role, now time.Time) (*Employee, error) {
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "employee name cannot be empty")
	}
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "employee email cannot be empty")
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	return &Employee{
		ID:        employeeID,
		TenantID:  tenantID,
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
