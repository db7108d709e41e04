package store

import (
	"time"

	"comply/internal/ack/models"
	id "comply/pkg/domain"
)

// Filters narrows acknowledgment listings. Zero-valued fields are ignored.
type Filters struct {
	// EmployeeIDs restricts results to these employees. The service layer
	// uses it both for the explicit employee filter and for tenant scoping
	// of overdue queries.
	EmployeeIDs []id.EmployeeID
	Type        *models.Type
	Status      *models.Status
	// PendingPastDue, when set, restricts to PENDING rows whose due date is
	// strictly before the given instant (the overdue=true query shape).
	PendingPastDue *time.Time
}
