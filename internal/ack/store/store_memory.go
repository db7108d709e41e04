package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"comply/internal/ack/models"
	id "comply/pkg/domain"
	"comply/pkg/platform/sentinel"
)

// InMemory is the map-backed acknowledgment store.
type InMemory struct {
	mu   sync.RWMutex
	acks map[id.AcknowledgmentID]*models.Acknowledgment
}

func NewInMemory() *InMemory {
	return &InMemory{acks: make(map[id.AcknowledgmentID]*models.Acknowledgment)}
}

func cloneAck(a *models.Acknowledgment) *models.Acknowledgment {
	cp := *a
	if a.CompletedAt != nil {
		t := *a.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

// BulkCreate inserts a batch of obligations. Rows are independent; there is
// no ordering dependency within a batch.
func (s *InMemory) BulkCreate(ctx context.Context, acks []*models.Acknowledgment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range acks {
		s.acks[a.ID] = cloneAck(a)
	}
	return nil
}

func (s *InMemory) FindByID(ctx context.Context, ackID id.AcknowledgmentID) (*models.Acknowledgment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.acks[ackID]
	if !exists {
		return nil, sentinel.ErrNotFound
	}
	return cloneAck(a), nil
}

func (s *InMemory) Update(ctx context.Context, ack *models.Acknowledgment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.acks[ack.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.acks[ack.ID] = cloneAck(ack)
	return nil
}

func (s *InMemory) ListByFilters(ctx context.Context, filters Filters) ([]*models.Acknowledgment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Acknowledgment
	for _, a := range s.acks {
		if !matches(a, filters) {
			continue
		}
		out = append(out, cloneAck(a))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// SweepOverdue transitions every past-due PENDING row to OVERDUE and returns
// the number transitioned. Already-OVERDUE rows are skipped, so repeated
// sweeps with no new expirations return zero.
func (s *InMemory) SweepOverdue(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, a := range s.acks {
		if a.MarkOverdue(now) {
			count++
		}
	}
	return count, nil
}

// ListOverdue returns rows already in OVERDUE, oldest due date first.
func (s *InMemory) ListOverdue(ctx context.Context) ([]*models.Acknowledgment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Acknowledgment
	for _, a := range s.acks {
		if a.Status == models.StatusOverdue {
			out = append(out, cloneAck(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out, nil
}

func matches(a *models.Acknowledgment, filters Filters) bool {
	if len(filters.EmployeeIDs) > 0 {
		found := false
		for _, eid := range filters.EmployeeIDs {
			if a.EmployeeID == eid {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filters.Type != nil && a.Type != *filters.Type {
		return false
	}
	if filters.Status != nil && a.Status != *filters.Status {
		return false
	}
	if filters.PendingPastDue != nil {
		if a.Status != models.StatusPending || !a.DueDate.Before(*filters.PendingPastDue) {
			return false
		}
	}
	return true
}
