package escalation

import (
	"context"

	id "comply/pkg/domain"
)

// Store is the append-only persistence behind the publisher.
type Store interface {
	Append(ctx context.Context, record Record) error
	ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]Record, error)
}

// Publisher captures escalation records. It is append-only and delegates to
// the store so tests can swap sinks easily; delivery (email, paging) hangs
// off the worker, not here.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, record Record) error {
	if record.Timestamp.IsZero() {
		record.Timestamp = ctxNow(ctx)
	}
	return p.store.Append(ctx, record)
}

func (p *Publisher) List(ctx context.Context, employeeID id.EmployeeID) ([]Record, error) {
	return p.store.ListByEmployee(ctx, employeeID)
}
