package handler

import (
	"time"

	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
)

// GenerateNewHireRequest is the wire shape for POST /acknowledgments.
type GenerateNewHireRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r GenerateNewHireRequest) Validate() error {
	if _, err := id.ParseEmployeeID(r.EmployeeID); err != nil {
		return err
	}
	return nil
}

// GenerateManualRequest is the wire shape for POST /acknowledgments/manual.
type GenerateManualRequest struct {
	EmployeeIDs []string `json:"employee_ids"`
	DueDate     string   `json:"due_date"`
}

func (r GenerateManualRequest) Validate() error {
	if len(r.EmployeeIDs) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "employee_ids is required")
	}
	for _, raw := range r.EmployeeIDs {
		if _, err := id.ParseEmployeeID(raw); err != nil {
			return err
		}
	}
	if _, err := time.Parse(time.RFC3339, r.DueDate); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "due_date must be an RFC 3339 timestamp")
	}
	return nil
}

// ParsedEmployeeIDs returns the typed employee IDs. Call after Validate.
func (r GenerateManualRequest) ParsedEmployeeIDs() []id.EmployeeID {
	out := make([]id.EmployeeID, 0, len(r.EmployeeIDs))
	for _, raw := range r.EmployeeIDs {
		employeeID, _ := id.ParseEmployeeID(raw)
		out = append(out, employeeID)
	}
	return out
}

// ParsedDueDate returns the typed due date. Call after Validate.
func (r GenerateManualRequest) ParsedDueDate() time.Time {
	t, _ := time.Parse(time.RFC3339, r.DueDate)
	return t
}
