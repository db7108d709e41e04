//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"comply/internal/policy/models"
	"comply/internal/policy/store"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
	"comply/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	tenantID id.TenantID
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "policies"))
	s.tenantID = id.NewTenantID()
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) newPolicy(name string, policyType models.PolicyType, version string, status models.PolicyStatus) *models.Policy {
	p, err := models.NewPolicy(id.NewPolicyID(), s.tenantID, name, policyType, version, "content", nil, status, s.now)
	s.Require().NoError(err)
	return p
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()

	templateID := id.NewTemplateID()
	approver := id.NewEmployeeID()
	p := s.newPolicy("Data Privacy Policy", models.PolicyTypeDataPrivacy, "1.0", models.PolicyStatusPendingApproval)
	p.TemplateID = &templateID
	p.Configuration = models.Configuration{"retentionDays": float64(90)}
	s.Require().NoError(s.store.Create(ctx, p))

	found, err := s.store.FindByID(ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Equal(p.Name, found.Name)
	s.Equal(p.Version, found.Version)
	s.Require().NotNil(found.TemplateID)
	s.Equal(templateID, *found.TemplateID)
	s.Equal(p.Configuration, found.Configuration)
	s.Nil(found.ApprovedBy)

	p.ApplyApproval(approver, s.now, 24*time.Hour)
	s.Require().NoError(s.store.Update(ctx, p))

	approved, err := s.store.FindByID(ctx, s.tenantID, p.ID)
	s.Require().NoError(err)
	s.Equal(models.PolicyStatusApproved, approved.Status)
	s.Require().NotNil(approved.ApprovedBy)
	s.Equal(approver, *approved.ApprovedBy)
	s.Require().NotNil(approved.EffectiveTo)
	s.WithinDuration(s.now.Add(24*time.Hour), *approved.EffectiveTo, time.Millisecond)
}

func (s *PostgresStoreSuite) TestTenantScoping() {
	ctx := context.Background()

	p := s.newPolicy("InfoSec Baseline", models.PolicyTypeInfoSec, "1.0", models.PolicyStatusApproved)
	s.Require().NoError(s.store.Create(ctx, p))

	_, err := s.store.FindByID(ctx, id.NewTenantID(), p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDeactivatedRowsAreInvisible() {
	ctx := context.Background()

	p := s.newPolicy("Retired Policy", models.PolicyTypeAcceptableUse, "1.0", models.PolicyStatusApproved)
	s.Require().NoError(s.store.Create(ctx, p))

	p.ApplyDeactivation(s.now)
	s.Require().NoError(s.store.Update(ctx, p))

	_, err := s.store.FindByID(ctx, s.tenantID, p.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = s.store.FindActiveByNameAndType(ctx, s.tenantID, p.Name, p.Type)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

// TestApprovedIdentityUniqueness exercises the partial unique index backing
// the supersession invariant: at most one active APPROVED row per
// (tenant, name, type).
func (s *PostgresStoreSuite) TestApprovedIdentityUniqueness() {
	ctx := context.Background()

	first := s.newPolicy("Crypto Standard", models.PolicyTypeCryptographic, "1.0", models.PolicyStatusApproved)
	s.Require().NoError(s.store.Create(ctx, first))

	second := s.newPolicy("Crypto Standard", models.PolicyTypeCryptographic, "1.1", models.PolicyStatusApproved)
	s.ErrorIs(s.store.Create(ctx, second), sentinel.ErrConflict)

	// Pending rows of the same identity coexist; only APPROVED is guarded.
	pending := s.newPolicy("Crypto Standard", models.PolicyTypeCryptographic, "1.1", models.PolicyStatusPendingApproval)
	s.Require().NoError(s.store.Create(ctx, pending))

	// Deactivating the approved row frees the identity.
	first.ApplyDeactivation(s.now)
	s.Require().NoError(s.store.Update(ctx, first))
	replacement := s.newPolicy("Crypto Standard", models.PolicyTypeCryptographic, "1.2", models.PolicyStatusApproved)
	s.Require().NoError(s.store.Create(ctx, replacement))
}

// TestConcurrentApprovedCreation verifies exactly one approved row wins a
// race on the same identity.
func (s *PostgresStoreSuite) TestConcurrentApprovedCreation() {
	ctx := context.Background()
	const goroutines = 20

	var wg sync.WaitGroup
	var successCount, conflictCount atomic.Int32

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := s.newPolicy("Race Policy", models.PolicyTypeInfoSec, "1.0", models.PolicyStatusApproved)
			switch err := s.store.Create(ctx, p); {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflictCount.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successCount.Load(), "exactly one create should succeed")
	s.Equal(int32(goroutines-1), conflictCount.Load(), "all others should conflict")
}

func (s *PostgresStoreSuite) TestListGroupAndFilters() {
	ctx := context.Background()

	v1 := s.newPolicy("AUP", models.PolicyTypeAcceptableUse, "9.9", models.PolicyStatusApproved)
	v2 := s.newPolicy("AUP", models.PolicyTypeAcceptableUse, "9.10", models.PolicyStatusPendingApproval)
	other := s.newPolicy("InfoSec Baseline", models.PolicyTypeInfoSec, "1.0", models.PolicyStatusApproved)
	for _, p := range []*models.Policy{v1, v2, other} {
		s.Require().NoError(s.store.Create(ctx, p))
	}

	group, err := s.store.ListGroup(ctx, s.tenantID, "AUP", models.PolicyTypeAcceptableUse)
	s.Require().NoError(err)
	s.Len(group, 2)

	approvedStatus := models.PolicyStatusApproved
	approved, err := s.store.ListByTenant(ctx, s.tenantID, store.Filters{Status: &approvedStatus})
	s.Require().NoError(err)
	s.Len(approved, 2)

	infosec := models.PolicyTypeInfoSec
	byType, err := s.store.ListByTenant(ctx, s.tenantID, store.Filters{Type: &infosec})
	s.Require().NoError(err)
	s.Require().Len(byType, 1)
	s.Equal(other.ID, byType[0].ID)
}

func (s *PostgresStoreSuite) TestUpdateNotFound() {
	p := s.newPolicy("Ghost", models.PolicyTypeInfoSec, "1.0", models.PolicyStatusPendingApproval)
	s.ErrorIs(s.store.Update(context.Background(), p), sentinel.ErrNotFound)
}
