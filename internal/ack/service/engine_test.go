package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"comply/internal/ack/models"
	"comply/internal/ack/service/mocks"
	"comply/internal/ack/store"
	employeemodels "comply/internal/employee/models"
	employeestore "comply/internal/employee/store"
	"comply/internal/escalation"
	policymodels "comply/internal/policy/models"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/requestcontext"
)

// stubPolicyDirectory serves a fixed approved policy set per tenant.
type stubPolicyDirectory struct {
	policies []*policymodels.Policy
}

func (d *stubPolicyDirectory) ActiveForAcknowledgments(_ context.Context, tenantID id.TenantID) ([]*policymodels.Policy, error) {
	var out []*policymodels.Policy
	for _, p := range d.policies {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (d *stubPolicyDirectory) Get(_ context.Context, tenantID id.TenantID, policyID id.PolicyID) (*policymodels.AnnotatedPolicy, error) {
	for _, p := range d.policies {
		if p.TenantID == tenantID && p.ID == policyID {
			return &policymodels.AnnotatedPolicy{Policy: p}, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "policy not found")
}

type EngineSuite struct {
	suite.Suite
	acks      *store.InMemory
	employees *employeestore.InMemory
	policies  *stubPolicyDirectory
	service   *Service

	tenantID id.TenantID
	now      time.Time
	ctx      context.Context

	dataPrivacy   *policymodels.Policy
	acceptableUse *policymodels.Policy
	infoSec       *policymodels.Policy
	crypto        *policymodels.Policy
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.acks = store.NewInMemory()
	s.employees = employeestore.NewInMemory()
	s.tenantID = id.NewTenantID()
	s.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	s.dataPrivacy = s.approvedPolicy("Data Privacy Policy", policymodels.PolicyTypeDataPrivacy)
	s.acceptableUse = s.approvedPolicy("Acceptable Use Policy", policymodels.PolicyTypeAcceptableUse)
	s.infoSec = s.approvedPolicy("InfoSec Baseline", policymodels.PolicyTypeInfoSec)
	s.crypto = s.approvedPolicy("Crypto Standard", policymodels.PolicyTypeCryptographic)
	s.policies = &stubPolicyDirectory{policies: []*policymodels.Policy{
		s.dataPrivacy, s.acceptableUse, s.infoSec, s.crypto,
	}}

	s.service = New(s.acks, s.employees, s.policies,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func (s *EngineSuite) approvedPolicy(name string, policyType policymodels.PolicyType) *policymodels.Policy {
	p, err := policymodels.NewPolicy(id.NewPolicyID(), s.tenantID, name, policyType, "1.0", "", nil,
		policymodels.PolicyStatusApproved, s.now)
	s.Require().NoError(err)
	return p
}

func (s *EngineSuite) hire(role employeemodels.Role) *employeemodels.Employee {
	return s.hireInTenant(s.tenantID, role)
}

func (s *EngineSuite) hireInTenant(tenantID id.TenantID, role employeemodels.Role) *employeemodels.Employee {
	employee, err := employeemodels.NewEmployee(id.NewEmployeeID(), tenantID,
		"Employee "+string(role), string(role)+"-"+id.NewEmployeeID().String()+"@example.com", role, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.employees.Create(s.ctx, employee))
	return employee
}

func (s *EngineSuite) TestGenerateNewHire() {
	s.Run("engineering gets the full obligation schedule", func() {
		engineer := s.hire(employeemodels.RoleEngineering)

		rows, err := s.service.GenerateNewHire(s.ctx, s.tenantID, engineer.ID)
		s.Require().NoError(err)
		// Four matching policies, each with one NEW_HIRE row and three
		// scheduled PERIODIC rows.
		s.Require().Len(rows, 16)

		byType := map[models.Type][]*models.Acknowledgment{}
		for _, row := range rows {
			s.Equal(engineer.ID, row.EmployeeID)
			s.Equal(models.StatusPending, row.Status)
			byType[row.Type] = append(byType[row.Type], row)
		}
		s.Len(byType[models.TypeNewHire], 4)
		s.Len(byType[models.TypePeriodic], 12)

		for _, row := range byType[models.TypeNewHire] {
			s.Equal(s.now.AddDate(0, 0, 30), row.DueDate)
		}

		periodicDues := map[time.Time]int{}
		for _, row := range byType[models.TypePeriodic] {
			periodicDues[row.DueDate]++
		}
		for n := 1; n <= 3; n++ {
			s.Equal(4, periodicDues[s.now.Add(time.Duration(n)*periodicInterval)])
		}
	})

	s.Run("sales is limited to acceptable use", func() {
		rep := s.hire(employeemodels.RoleSales)

		rows, err := s.service.GenerateNewHire(s.ctx, s.tenantID, rep.ID)
		s.Require().NoError(err)
		s.Require().Len(rows, 4)
		for _, row := range rows {
			s.Equal(s.acceptableUse.ID, row.PolicyID)
		}
	})

	s.Run("no matching approved policies yields an empty result", func() {
		emptyTenant := id.NewTenantID()
		employee := s.hireInTenant(emptyTenant, employeemodels.RoleExecutive)

		rows, err := s.service.GenerateNewHire(s.ctx, emptyTenant, employee.ID)
		s.NoError(err)
		s.Empty(rows)
	})

	s.Run("unknown employee is not found", func() {
		_, err := s.service.GenerateNewHire(s.ctx, s.tenantID, id.NewEmployeeID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("employee from another tenant is not found", func() {
		stranger := s.hireInTenant(id.NewTenantID(), employeemodels.RoleHR)
		_, err := s.service.GenerateNewHire(s.ctx, s.tenantID, stranger.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *EngineSuite) TestGenerateManual() {
	dueDate := s.now.AddDate(0, 1, 0)

	s.Run("validates input", func() {
		_, err := s.service.GenerateManual(s.ctx, s.tenantID, []id.EmployeeID{id.NewEmployeeID()}, time.Time{})
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))

		_, err = s.service.GenerateManual(s.ctx, s.tenantID, nil, dueDate)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	s.Run("skips unresolvable employees and keeps going", func() {
		exec := s.hire(employeemodels.RoleExecutive)
		rep := s.hire(employeemodels.RoleSales)

		rows, err := s.service.GenerateManual(s.ctx, s.tenantID,
			[]id.EmployeeID{exec.ID, id.NewEmployeeID(), rep.ID}, dueDate)
		s.Require().NoError(err)

		// One MANUAL row per matching policy per resolvable employee.
		s.Require().Len(rows, 2)
		for _, row := range rows {
			s.Equal(models.TypeManual, row.Type)
			s.Equal(dueDate, row.DueDate)
			s.Equal(models.StatusPending, row.Status)
		}
		s.Equal(s.crypto.ID, rows[0].PolicyID)
		s.Equal(s.acceptableUse.ID, rows[1].PolicyID)
	})
}

func (s *EngineSuite) TestComplete() {
	exec := s.hire(employeemodels.RoleExecutive)
	rows, err := s.service.GenerateNewHire(s.ctx, s.tenantID, exec.ID)
	s.Require().NoError(err)
	target := rows[0]

	s.Run("marks pending rows completed", func() {
		completed, err := s.service.Complete(s.ctx, target.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusCompleted, completed.Status)
		s.Require().NotNil(completed.CompletedAt)
		s.Equal(s.now, *completed.CompletedAt)
	})

	s.Run("repeat completion keeps the first completion time", func() {
		later := requestcontext.WithTime(context.Background(), s.now.Add(48*time.Hour))
		completed, err := s.service.Complete(later, target.ID)
		s.Require().NoError(err)
		s.Equal(s.now, *completed.CompletedAt)
	})

	s.Run("overdue rows can still be completed", func() {
		overdueRow := rows[1]
		afterDue := requestcontext.WithTime(context.Background(), overdueRow.DueDate.Add(time.Hour))
		_, err := s.service.SweepOverdue(afterDue)
		s.Require().NoError(err)

		completed, err := s.service.Complete(afterDue, overdueRow.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusCompleted, completed.Status)
	})

	s.Run("unknown acknowledgment is not found", func() {
		_, err := s.service.Complete(s.ctx, id.NewAcknowledgmentID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *EngineSuite) TestSweepOverdue() {
	rep := s.hire(employeemodels.RoleSales)
	_, err := s.service.GenerateManual(s.ctx, s.tenantID, []id.EmployeeID{rep.ID}, s.now.Add(24*time.Hour))
	s.Require().NoError(err)

	s.Run("rows are untouched before their due date", func() {
		count, err := s.service.SweepOverdue(s.ctx)
		s.Require().NoError(err)
		s.Zero(count)
	})

	afterDue := requestcontext.WithTime(context.Background(), s.now.Add(48*time.Hour))

	s.Run("past-due pending rows transition once", func() {
		count, err := s.service.SweepOverdue(afterDue)
		s.Require().NoError(err)
		s.Equal(1, count)
	})

	s.Run("repeated sweeps are no-ops", func() {
		count, err := s.service.SweepOverdue(afterDue)
		s.Require().NoError(err)
		s.Zero(count)
	})
}

func (s *EngineSuite) TestQuery() {
	engineer := s.hire(employeemodels.RoleEngineering)
	rep := s.hire(employeemodels.RoleSales)
	_, err := s.service.GenerateNewHire(s.ctx, s.tenantID, engineer.ID)
	s.Require().NoError(err)
	_, err = s.service.GenerateNewHire(s.ctx, s.tenantID, rep.ID)
	s.Require().NoError(err)

	otherTenant := id.NewTenantID()
	s.policies.policies = append(s.policies.policies, func() *policymodels.Policy {
		p, err := policymodels.NewPolicy(id.NewPolicyID(), otherTenant, "Other AUP",
			policymodels.PolicyTypeAcceptableUse, "1.0", "", nil, policymodels.PolicyStatusApproved, s.now)
		s.Require().NoError(err)
		return p
	}())
	outsider := s.hireInTenant(otherTenant, employeemodels.RoleSales)
	_, err = s.service.GenerateNewHire(s.ctx, otherTenant, outsider.ID)
	s.Require().NoError(err)

	s.Run("lists only the tenant's rows", func() {
		rows, err := s.service.Query(s.ctx, s.tenantID, QueryFilters{})
		s.Require().NoError(err)
		s.Len(rows, 20)
		for _, row := range rows {
			s.NotEqual(outsider.ID, row.EmployeeID)
		}
	})

	s.Run("filters by employee", func() {
		rows, err := s.service.Query(s.ctx, s.tenantID, QueryFilters{EmployeeID: &rep.ID})
		s.Require().NoError(err)
		s.Len(rows, 4)
	})

	s.Run("filters by type", func() {
		newHire := models.TypeNewHire
		rows, err := s.service.Query(s.ctx, s.tenantID, QueryFilters{Type: &newHire})
		s.Require().NoError(err)
		s.Len(rows, 5)
	})

	s.Run("overdue filter selects pending rows past due", func() {
		afterNewHireDue := requestcontext.WithTime(context.Background(), s.now.AddDate(0, 0, 31))
		rows, err := s.service.Query(afterNewHireDue, s.tenantID, QueryFilters{Overdue: true})
		s.Require().NoError(err)
		s.Len(rows, 5)
		for _, row := range rows {
			s.Equal(models.StatusPending, row.Status)
		}
	})

	s.Run("rejects an employee filter outside the tenant", func() {
		_, err := s.service.Query(s.ctx, s.tenantID, QueryFilters{EmployeeID: &outsider.ID})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("a tenant without employees lists empty", func() {
		rows, err := s.service.Query(s.ctx, id.NewTenantID(), QueryFilters{})
		s.Require().NoError(err)
		s.NotNil(rows)
		s.Empty(rows)
	})
}

func (s *EngineSuite) TestEscalateOverdue() {
	exec := s.hire(employeemodels.RoleExecutive)
	dueDate := s.now.Add(24 * time.Hour)
	_, err := s.service.GenerateManual(s.ctx, s.tenantID, []id.EmployeeID{exec.ID}, dueDate)
	s.Require().NoError(err)

	afterDue := requestcontext.WithTime(context.Background(), dueDate.Add(time.Hour))

	ctrl := gomock.NewController(s.T())
	sink := mocks.NewMockEscalationSink(ctrl)
	WithEscalationSink(sink)(s.service)

	s.Run("sweeps, emits and reports one record per overdue row", func() {
		var emitted escalation.Record
		sink.EXPECT().Emit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, record escalation.Record) error {
				emitted = record
				return nil
			})

		records, err := s.service.EscalateOverdue(afterDue, s.tenantID)
		s.Require().NoError(err)
		s.Require().Len(records, 1)

		record := records[0]
		s.Equal(record, emitted)
		s.Equal(exec.ID, record.EmployeeID)
		s.Equal(s.crypto.ID, record.PolicyID)
		s.Equal(dueDate, record.DueDate)
		s.Equal("Employee "+exec.Name+" ("+exec.ID.String()+") has overdue policy "+
			s.crypto.Name+" ("+s.crypto.ID.String()+") due on "+dueDate.Format("2006-01-02"),
			record.Message)
	})

	s.Run("a failing sink skips the row", func() {
		sink.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(context.DeadlineExceeded)

		records, err := s.service.EscalateOverdue(afterDue, s.tenantID)
		s.Require().NoError(err)
		s.Empty(records)
	})

	s.Run("other tenants' overdue rows are invisible", func() {
		sink.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		records, err := s.service.EscalateOverdue(afterDue, id.NewTenantID())
		s.Require().NoError(err)
		s.Empty(records)
	})
}
