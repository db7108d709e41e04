package escalation

import (
	"fmt"
	"time"

	id "comply/pkg/domain"
)

// Record is emitted for each overdue acknowledgment during an escalation run.
// Keep it transport-agnostic so stores and delivery sinks can fan out; the
// core only produces records, it does not decide how they are delivered.
type Record struct {
	Timestamp        time.Time           `json:"timestamp"`
	AcknowledgmentID id.AcknowledgmentID `json:"acknowledgment_id"`
	EmployeeID       id.EmployeeID       `json:"employee_id"`
	EmployeeName     string              `json:"employee_name"`
	PolicyID         id.PolicyID         `json:"policy_id"`
	PolicyName       string              `json:"policy_name"`
	DueDate          time.Time           `json:"due_date"`
	Message          string              `json:"message"`
}

// FormatMessage renders the human-readable escalation line.
func FormatMessage(employeeName string, employeeID id.EmployeeID, policyName string, policyID id.PolicyID, dueDate time.Time) string {
	return fmt.Sprintf("Employee %s (%s) has overdue policy %s (%s) due on %s",
		employeeName, employeeID, policyName, policyID, dueDate.Format("2006-01-02"))
}
