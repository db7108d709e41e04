// Package domain defines typed identifiers shared across modules.
//
// Each entity gets its own UUID-backed type so the compiler rejects
// cross-entity assignment (passing an EmployeeID where a PolicyID is
// expected). Parse functions enforce the trust-boundary invariant that IDs
// are valid, non-nil UUIDs.
package domain

import (
	"github.com/google/uuid"

	dErrors "comply/pkg/domain-errors"
)

type (
	// TenantID identifies a company, the unit of data isolation.
	TenantID uuid.UUID
	// PolicyID identifies one version row of a policy.
	PolicyID uuid.UUID
	// TemplateID identifies a policy template.
	TemplateID uuid.UUID
	// EmployeeID identifies an employee within a tenant.
	EmployeeID uuid.UUID
	// AcknowledgmentID identifies one acknowledgment obligation.
	AcknowledgmentID uuid.UUID
)

// NewTenantID returns a freshly generated tenant ID.
func NewTenantID() TenantID { return TenantID(uuid.New()) }

// NewPolicyID returns a freshly generated policy ID.
func NewPolicyID() PolicyID { return PolicyID(uuid.New()) }

// NewTemplateID returns a freshly generated template ID.
func NewTemplateID() TemplateID { return TemplateID(uuid.New()) }

// NewEmployeeID returns a freshly generated employee ID.
func NewEmployeeID() EmployeeID { return EmployeeID(uuid.New()) }

// NewAcknowledgmentID returns a freshly generated acknowledgment ID.
func NewAcknowledgmentID() AcknowledgmentID { return AcknowledgmentID(uuid.New()) }

func (id TenantID) String() string          { return uuid.UUID(id).String() }
func (id PolicyID) String() string          { return uuid.UUID(id).String() }
func (id TemplateID) String() string        { return uuid.UUID(id).String() }
func (id EmployeeID) String() string        { return uuid.UUID(id).String() }
func (id AcknowledgmentID) String() string  { return uuid.UUID(id).String() }
func (id TenantID) IsZero() bool            { return uuid.UUID(id) == uuid.Nil }
func (id PolicyID) IsZero() bool            { return uuid.UUID(id) == uuid.Nil }
func (id TemplateID) IsZero() bool          { return uuid.UUID(id) == uuid.Nil }
func (id EmployeeID) IsZero() bool          { return uuid.UUID(id) == uuid.Nil }
func (id AcknowledgmentID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }

// MarshalText/UnmarshalText keep the canonical UUID string form in JSON,
// which defined types do not inherit from uuid.UUID.

func (id TenantID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id PolicyID) MarshalText() ([]byte, error)         { return []byte(id.String()), nil }
func (id TemplateID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id EmployeeID) MarshalText() ([]byte, error)       { return []byte(id.String()), nil }
func (id AcknowledgmentID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func (id *TenantID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = TenantID(u)
	return err
}

func (id *PolicyID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = PolicyID(u)
	return err
}

func (id *TemplateID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = TemplateID(u)
	return err
}

func (id *EmployeeID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = EmployeeID(u)
	return err
}

func (id *AcknowledgmentID) UnmarshalText(b []byte) error {
	u, err := uuid.ParseBytes(b)
	*id = AcknowledgmentID(u)
	return err
}

func parse(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}

// ParseTenantID parses and validates a tenant ID from its string form.
func ParseTenantID(raw string) (TenantID, error) {
	u, err := parse(raw)
	return TenantID(u), err
}

// ParsePolicyID parses and validates a policy ID from its string form.
func ParsePolicyID(raw string) (PolicyID, error) {
	u, err := parse(raw)
	return PolicyID(u), err
}

// ParseTemplateID parses and validates a template ID from its string form.
func ParseTemplateID(raw string) (TemplateID, error) {
	u, err := parse(raw)
	return TemplateID(u), err
}

// ParseEmployeeID parses and validates an employee ID from its string form.
func ParseEmployeeID(raw string) (EmployeeID, error) {
	u, err := parse(raw)
	return EmployeeID(u), err
}

// ParseAcknowledgmentID parses and validates an acknowledgment ID from its string form.
func ParseAcknowledgmentID(raw string) (AcknowledgmentID, error) {
	u, err := parse(raw)
	return AcknowledgmentID(u), err
}
