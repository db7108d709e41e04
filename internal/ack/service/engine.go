package service

import (
	"context"
	"errors"
	"time"

	"comply/internal/ack/models"
	"comply/internal/ack/store"
	"comply/internal/escalation"
	policymodels "comply/internal/policy/models"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/sentinel"
	"comply/pkg/requestcontext"
)

// periodicInterval is the spacing between scheduled re-acknowledgment rows.
const periodicInterval = 365 * 24 * time.Hour

// matchingPolicies resolves the obligation set for a role: the role's
// required policy types intersected with the tenant's active-approved set.
func (s *Service) matchingPolicies(ctx context.Context, tenantID id.TenantID, required []policymodels.PolicyType) ([]*policymodels.Policy, error) {
	if len(required) == 0 {
		return nil, nil
	}
	active, err := s.policies.ActiveForAcknowledgments(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[policymodels.PolicyType]struct{}, len(required))
	for _, t := range required {
		wanted[t] = struct{}{}
	}
	var matched []*policymodels.Policy
	for _, p := range active {
		if _, ok := wanted[p.Type]; ok {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// GenerateNewHire creates the onboarding obligation set for one employee:
// per matching policy, one NEW_HIRE row due in the configured window plus one
// PENDING PERIODIC row per configured year. An employee whose role requires
// nothing, or a tenant with no matching approved policies, yields an empty
// result rather than an error.
func (s *Service) GenerateNewHire(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) ([]*models.Acknowledgment, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}

	employee, err := s.employees.FindByID(ctx, tenantID, employeeID)
	if err != nil {
		return nil, wrapEmployeeErr(err)
	}

	matched, err := s.matchingPolicies(ctx, tenantID, s.mapping.RequiredTypes(employee.Role))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve obligation policies")
	}
	if len(matched) == 0 {
		return nil, nil
	}

	now := requestcontext.Now(ctx)
	newHireDue := now.AddDate(0, 0, s.cfg.NewHireDueDays)

	rows := make([]*models.Acknowledgment, 0, len(matched)*(1+s.cfg.PeriodicYears))
	for _, policy := range matched {
		rows = append(rows, models.NewAcknowledgment(s.newID(), employee.ID, policy.ID, models.TypeNewHire, newHireDue, now))
		for n := 1; n <= s.cfg.PeriodicYears; n++ {
			due := now.Add(time.Duration(n) * periodicInterval)
			rows = append(rows, models.NewAcknowledgment(s.newID(), employee.ID, policy.ID, models.TypePeriodic, due, now))
		}
	}

	if err := s.acks.BulkCreate(ctx, rows); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create acknowledgments")
	}

	s.metrics.IncrementGenerated(string(models.TypeNewHire), len(matched))
	s.metrics.IncrementGenerated(string(models.TypePeriodic), len(matched)*s.cfg.PeriodicYears)
	s.logger.InfoContext(ctx, "generated new-hire acknowledgments",
		"tenant_id", tenantID, "employee_id", employee.ID, "count", len(rows))
	return rows, nil
}

// GenerateManual assigns one MANUAL obligation per matching policy to each
// listed employee, all at the caller-supplied due date. Best-effort per
// employee: a missing employee or a failed insert skips that employee and
// never rolls back rows already written for others.
func (s *Service) GenerateManual(ctx context.Context, tenantID id.TenantID, employeeIDs []id.EmployeeID, dueDate time.Time) ([]*models.Acknowledgment, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	if dueDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "due date is required")
	}
	if len(employeeIDs) == 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "at least one employee id is required")
	}

	now := requestcontext.Now(ctx)
	var created []*models.Acknowledgment
	for _, employeeID := range employeeIDs {
		employee, err := s.employees.FindByID(ctx, tenantID, employeeID)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping employee in manual acknowledgment batch",
				"tenant_id", tenantID, "employee_id", employeeID, "error", err)
			continue
		}

		matched, err := s.matchingPolicies(ctx, tenantID, s.mapping.RequiredTypes(employee.Role))
		if err != nil {
			s.logger.WarnContext(ctx, "skipping employee in manual acknowledgment batch",
				"tenant_id", tenantID, "employee_id", employeeID, "error", err)
			continue
		}
		if len(matched) == 0 {
			continue
		}

		rows := make([]*models.Acknowledgment, 0, len(matched))
		for _, policy := range matched {
			rows = append(rows, models.NewAcknowledgment(s.newID(), employee.ID, policy.ID, models.TypeManual, dueDate, now))
		}
		if err := s.acks.BulkCreate(ctx, rows); err != nil {
			s.logger.WarnContext(ctx, "failed to insert manual acknowledgments for employee",
				"tenant_id", tenantID, "employee_id", employeeID, "error", err)
			continue
		}
		created = append(created, rows...)
	}

	s.metrics.IncrementGenerated(string(models.TypeManual), len(created))
	return created, nil
}

// Complete marks an obligation COMPLETED. Completing an already-completed
// row returns it unchanged; the first completion time wins.
func (s *Service) Complete(ctx context.Context, ackID id.AcknowledgmentID) (*models.Acknowledgment, error) {
	ack, err := s.acks.FindByID(ctx, ackID)
	if err != nil {
		return nil, wrapAckErr(err)
	}

	if ack.Complete(requestcontext.Now(ctx)) {
		if err := s.acks.Update(ctx, ack); err != nil {
			return nil, wrapAckErr(err)
		}
		s.metrics.IncrementCompleted()
	}
	return ack, nil
}

// SweepOverdue transitions every past-due PENDING row to OVERDUE and returns
// the count transitioned. Safe to call repeatedly.
func (s *Service) SweepOverdue(ctx context.Context) (int, error) {
	count, err := s.acks.SweepOverdue(ctx, requestcontext.Now(ctx))
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "overdue sweep failed")
	}
	if count > 0 {
		s.metrics.AddMarkedOverdue(count)
		s.logger.InfoContext(ctx, "marked acknowledgments overdue", "count", count)
	}
	return count, nil
}

// QueryFilters narrows a tenant-scoped acknowledgment listing.
type QueryFilters struct {
	EmployeeID *id.EmployeeID
	Type       *models.Type
	Status     *models.Status
	// Overdue restricts to PENDING rows strictly past their due date.
	Overdue bool
}

// Query lists acknowledgments scoped to the tenant's employees. An explicit
// employee filter is validated against the tenant first.
func (s *Service) Query(ctx context.Context, tenantID id.TenantID, q QueryFilters) ([]*models.Acknowledgment, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}

	filters := store.Filters{Type: q.Type, Status: q.Status}

	if q.EmployeeID != nil {
		if _, err := s.employees.FindByID(ctx, tenantID, *q.EmployeeID); err != nil {
			return nil, wrapEmployeeErr(err)
		}
		filters.EmployeeIDs = []id.EmployeeID{*q.EmployeeID}
	} else {
		employees, err := s.employees.ListByTenant(ctx, tenantID)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve tenant employees")
		}
		if len(employees) == 0 {
			return []*models.Acknowledgment{}, nil
		}
		filters.EmployeeIDs = make([]id.EmployeeID, 0, len(employees))
		for _, e := range employees {
			filters.EmployeeIDs = append(filters.EmployeeIDs, e.ID)
		}
	}

	if q.Overdue {
		now := requestcontext.Now(ctx)
		filters.PendingPastDue = &now
	}

	acks, err := s.acks.ListByFilters(ctx, filters)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list acknowledgments")
	}
	return acks, nil
}

// EscalateOverdue sweeps first, then emits one escalation record per overdue
// obligation belonging to the tenant, with employee and policy context.
// Best-effort per row: a row whose employee or policy cannot be resolved is
// skipped with a log line.
func (s *Service) EscalateOverdue(ctx context.Context, tenantID id.TenantID) ([]escalation.Record, error) {
	if tenantID.IsZero() {
		return nil, dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}

	if _, err := s.SweepOverdue(ctx); err != nil {
		return nil, err
	}

	overdue, err := s.acks.ListOverdue(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list overdue acknowledgments")
	}

	now := requestcontext.Now(ctx)
	var records []escalation.Record
	for _, ack := range overdue {
		employee, err := s.employees.FindByID(ctx, tenantID, ack.EmployeeID)
		if err != nil {
			// Overdue rows from other tenants resolve as not found here.
			if !errors.Is(err, sentinel.ErrNotFound) {
				s.logger.WarnContext(ctx, "skipping overdue acknowledgment, employee lookup failed",
					"acknowledgment_id", ack.ID, "employee_id", ack.EmployeeID, "error", err)
			}
			continue
		}
		policy, err := s.policies.Get(ctx, tenantID, ack.PolicyID)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping overdue acknowledgment, policy lookup failed",
				"acknowledgment_id", ack.ID, "policy_id", ack.PolicyID, "error", err)
			continue
		}

		record := escalation.Record{
			Timestamp:        now,
			AcknowledgmentID: ack.ID,
			EmployeeID:       employee.ID,
			EmployeeName:     employee.Name,
			PolicyID:         policy.ID,
			PolicyName:       policy.Name,
			DueDate:          ack.DueDate,
			Message:          escalation.FormatMessage(employee.Name, employee.ID, policy.Name, policy.ID, ack.DueDate),
		}
		if s.escalations != nil {
			if err := s.escalations.Emit(ctx, record); err != nil {
				s.logger.WarnContext(ctx, "failed to emit escalation record",
					"acknowledgment_id", ack.ID, "error", err)
				continue
			}
		}
		s.metrics.IncrementEscalationsIssued()
		records = append(records, record)
	}
	return records, nil
}

func wrapAckErr(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "acknowledgment not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, "acknowledgment conflicts with an existing acknowledgment")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "acknowledgment store failure")
	}
}

func wrapEmployeeErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "employee not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "employee store failure")
}
