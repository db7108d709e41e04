package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"comply/internal/employee/models"
	"comply/internal/employee/store"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/requestcontext"
)

type EmployeeServiceSuite struct {
	suite.Suite
	ctx      context.Context
	service  *Service
	tenantID id.TenantID
}

func TestEmployeeServiceSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceSuite))
}

func (s *EmployeeServiceSuite) SetupTest() {
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(store.NewInMemory())
	s.tenantID = id.NewTenantID()
}

func (s *EmployeeServiceSuite) TestCreate() {
	s.Run("registers an employee", func() {
		employee, err := s.service.Create(s.ctx, s.tenantID, CreateInput{
			Name:  "  Riley Chen ",
			Email: " riley@example.com ",
			Role:  models.RoleEngineering,
		})
		s.Require().NoError(err)
		s.Equal("Riley Chen", employee.Name)
		s.Equal("riley@example.com", employee.Email)
		s.Equal(s.tenantID, employee.TenantID)
	})

	s.Run("rejects a duplicate email regardless of case", func() {
		_, err := s.service.Create(s.ctx, s.tenantID, CreateInput{
			Name:  "Riley Impostor",
			Email: "RILEY@example.com",
			Role:  models.RoleSales,
		})
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	s.Run("allows the same email in another tenant", func() {
		_, err := s.service.Create(s.ctx, id.NewTenantID(), CreateInput{
			Name:  "Riley Chen",
			Email: "riley@example.com",
			Role:  models.RoleEngineering,
		})
		s.NoError(err)
	})

	s.Run("rejects an unknown role", func() {
		_, err := s.service.Create(s.ctx, s.tenantID, CreateInput{
			Name:  "Casey Park",
			Email: "casey@example.com",
			Role:  models.Role("CONTRACTOR"),
		})
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})

	s.Run("rejects a zero tenant", func() {
		_, err := s.service.Create(s.ctx, id.TenantID{}, CreateInput{
			Name:  "Casey Park",
			Email: "casey@example.com",
			Role:  models.RoleHR,
		})
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})
}

func (s *EmployeeServiceSuite) TestGet() {
	created, err := s.service.Create(s.ctx, s.tenantID, CreateInput{
		Name:  "Riley Chen",
		Email: "riley@example.com",
		Role:  models.RoleHR,
	})
	s.Require().NoError(err)

	s.Run("returns the employee within its tenant", func() {
		employee, err := s.service.Get(s.ctx, s.tenantID, created.ID)
		s.Require().NoError(err)
		s.Equal(created.ID, employee.ID)
	})

	s.Run("is invisible from another tenant", func() {
		_, err := s.service.Get(s.ctx, id.NewTenantID(), created.ID)
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}

func (s *EmployeeServiceSuite) TestList() {
	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := s.service.Create(s.ctx, s.tenantID, CreateInput{
			Name:  "Employee",
			Email: email,
			Role:  models.RoleSales,
		})
		s.Require().NoError(err)
	}

	employees, err := s.service.List(s.ctx, s.tenantID)
	s.Require().NoError(err)
	s.Len(employees, 2)

	other, err := s.service.List(s.ctx, id.NewTenantID())
	s.Require().NoError(err)
	s.Empty(other)
}
