//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"comply/internal/ack/models"
	"comply/internal/ack/store"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
	"comply/pkg/testutil/containers"
)

type AckPostgresSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
	now      time.Time
}

func TestAckPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AckPostgresSuite))
}

func (s *AckPostgresSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *AckPostgresSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "acknowledgments"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *AckPostgresSuite) newAck(employeeID id.EmployeeID, ackType models.Type, dueDate time.Time) *models.Acknowledgment {
	return models.NewAcknowledgment(id.NewAcknowledgmentID(), employeeID, id.NewPolicyID(), ackType, dueDate, s.now)
}

func (s *AckPostgresSuite) TestBulkCreateAndFind() {
	ctx := context.Background()
	employeeID := id.NewEmployeeID()

	batch := []*models.Acknowledgment{
		s.newAck(employeeID, models.TypeNewHire, s.now.AddDate(0, 0, 30)),
		s.newAck(employeeID, models.TypePeriodic, s.now.AddDate(1, 0, 0)),
		s.newAck(id.NewEmployeeID(), models.TypeManual, s.now.AddDate(0, 1, 0)),
	}
	s.Require().NoError(s.store.BulkCreate(ctx, batch))

	found, err := s.store.FindByID(ctx, batch[0].ID)
	s.Require().NoError(err)
	s.Equal(batch[0].EmployeeID, found.EmployeeID)
	s.Equal(models.TypeNewHire, found.Type)
	s.Equal(models.StatusPending, found.Status)
	s.Nil(found.CompletedAt)
	s.WithinDuration(batch[0].DueDate, found.DueDate, time.Millisecond)

	byEmployee, err := s.store.ListByFilters(ctx, store.Filters{EmployeeIDs: []id.EmployeeID{employeeID}})
	s.Require().NoError(err)
	s.Len(byEmployee, 2)

	s.Require().NoError(s.store.BulkCreate(ctx, nil))
}

func (s *AckPostgresSuite) TestUpdateCompletion() {
	ctx := context.Background()

	ack := s.newAck(id.NewEmployeeID(), models.TypeNewHire, s.now.AddDate(0, 0, 30))
	s.Require().NoError(s.store.BulkCreate(ctx, []*models.Acknowledgment{ack}))

	s.Require().True(ack.Complete(s.now))
	s.Require().NoError(s.store.Update(ctx, ack))

	found, err := s.store.FindByID(ctx, ack.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, found.Status)
	s.Require().NotNil(found.CompletedAt)
	s.WithinDuration(s.now, *found.CompletedAt, time.Millisecond)

	ghost := s.newAck(id.NewEmployeeID(), models.TypeManual, s.now)
	s.ErrorIs(s.store.Update(ctx, ghost), sentinel.ErrNotFound)
}

func (s *AckPostgresSuite) TestSweepOverdue() {
	ctx := context.Background()
	employeeID := id.NewEmployeeID()

	pastDue := s.newAck(employeeID, models.TypeManual, s.now.Add(-48*time.Hour))
	alsoPastDue := s.newAck(employeeID, models.TypeManual, s.now.Add(-24*time.Hour))
	future := s.newAck(employeeID, models.TypeNewHire, s.now.AddDate(0, 0, 30))
	completed := s.newAck(employeeID, models.TypeManual, s.now.Add(-time.Hour))
	s.Require().NoError(s.store.BulkCreate(ctx, []*models.Acknowledgment{pastDue, alsoPastDue, future, completed}))
	s.Require().True(completed.Complete(s.now))
	s.Require().NoError(s.store.Update(ctx, completed))

	count, err := s.store.SweepOverdue(ctx, s.now)
	s.Require().NoError(err)
	s.Equal(2, count)

	// Repeat sweeps have nothing left to transition.
	count, err = s.store.SweepOverdue(ctx, s.now)
	s.Require().NoError(err)
	s.Zero(count)

	overdue, err := s.store.ListOverdue(ctx)
	s.Require().NoError(err)
	s.Require().Len(overdue, 2)
	// Oldest due date first.
	s.Equal(pastDue.ID, overdue[0].ID)
	s.Equal(alsoPastDue.ID, overdue[1].ID)

	untouched, err := s.store.FindByID(ctx, future.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusPending, untouched.Status)
}

func (s *AckPostgresSuite) TestListByFilters() {
	ctx := context.Background()
	employeeID := id.NewEmployeeID()

	pending := s.newAck(employeeID, models.TypeNewHire, s.now.Add(-time.Hour))
	manual := s.newAck(employeeID, models.TypeManual, s.now.AddDate(0, 1, 0))
	s.Require().NoError(s.store.BulkCreate(ctx, []*models.Acknowledgment{pending, manual}))

	newHire := models.TypeNewHire
	byType, err := s.store.ListByFilters(ctx, store.Filters{Type: &newHire})
	s.Require().NoError(err)
	s.Require().Len(byType, 1)
	s.Equal(pending.ID, byType[0].ID)

	pastDue, err := s.store.ListByFilters(ctx, store.Filters{PendingPastDue: &s.now})
	s.Require().NoError(err)
	s.Require().Len(pastDue, 1)
	s.Equal(pending.ID, pastDue[0].ID)

	none, err := s.store.ListByFilters(ctx, store.Filters{EmployeeIDs: []id.EmployeeID{id.NewEmployeeID()}})
	s.Require().NoError(err)
	s.Empty(none)
}
