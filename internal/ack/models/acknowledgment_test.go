package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "comply/pkg/domain"
)

type AcknowledgmentSuite struct {
	suite.Suite
	now time.Time
}

func TestAcknowledgmentSuite(t *testing.T) {
	suite.Run(t, new(AcknowledgmentSuite))
}

func (s *AcknowledgmentSuite) SetupTest() {
	s.now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
}

func (s *AcknowledgmentSuite) newAck(dueDate time.Time) *Acknowledgment {
	return NewAcknowledgment(id.NewAcknowledgmentID(), id.NewEmployeeID(), id.NewPolicyID(),
		TypeNewHire, dueDate, s.now)
}

func (s *AcknowledgmentSuite) TestComplete() {
	s.Run("pending to completed", func() {
		ack := s.newAck(s.now.AddDate(0, 0, 30))

		s.True(ack.Complete(s.now))
		s.Equal(StatusCompleted, ack.Status)
		s.Require().NotNil(ack.CompletedAt)
		s.Equal(s.now, *ack.CompletedAt)
	})

	s.Run("overdue to completed", func() {
		ack := s.newAck(s.now.Add(-time.Hour))
		s.True(ack.MarkOverdue(s.now))

		s.True(ack.Complete(s.now))
		s.Equal(StatusCompleted, ack.Status)
	})

	s.Run("completed is terminal, first completion time wins", func() {
		ack := s.newAck(s.now.AddDate(0, 0, 30))
		s.True(ack.Complete(s.now))

		later := s.now.Add(72 * time.Hour)
		s.False(ack.Complete(later))
		s.Equal(s.now, *ack.CompletedAt)
	})
}

func (s *AcknowledgmentSuite) TestMarkOverdue() {
	s.Run("past-due pending transitions", func() {
		ack := s.newAck(s.now.Add(-time.Minute))
		s.True(ack.MarkOverdue(s.now))
		s.Equal(StatusOverdue, ack.Status)
	})

	s.Run("due date not yet passed is left alone", func() {
		ack := s.newAck(s.now.Add(time.Minute))
		s.False(ack.MarkOverdue(s.now))
		s.Equal(StatusPending, ack.Status)
	})

	s.Run("due exactly now is not past due", func() {
		ack := s.newAck(s.now)
		s.False(ack.MarkOverdue(s.now))
	})

	s.Run("already overdue is a no-op", func() {
		ack := s.newAck(s.now.Add(-time.Hour))
		s.True(ack.MarkOverdue(s.now))
		s.False(ack.MarkOverdue(s.now.Add(time.Hour)))
	})

	s.Run("completed rows never regress", func() {
		ack := s.newAck(s.now.Add(-time.Hour))
		s.True(ack.Complete(s.now))
		s.False(ack.MarkOverdue(s.now.Add(time.Hour)))
		s.Equal(StatusCompleted, ack.Status)
	})
}

func (s *AcknowledgmentSuite) TestParseType() {
	for _, valid := range []string{"NEW_HIRE", "PERIODIC", "MANUAL"} {
		parsed, err := ParseType(valid)
		s.Require().NoError(err)
		s.Equal(Type(valid), parsed)
	}

	_, err := ParseType("new_hire")
	s.Error(err)
}

func (s *AcknowledgmentSuite) TestParseStatus() {
	for _, valid := range []string{"PENDING", "COMPLETED", "OVERDUE"} {
		parsed, err := ParseStatus(valid)
		s.Require().NoError(err)
		s.Equal(Status(valid), parsed)
	}

	_, err := ParseStatus("DONE")
	s.Error(err)
}
