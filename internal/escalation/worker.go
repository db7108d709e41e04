package escalation

import (
	"context"
	"time"

	"comply/pkg/requestcontext"
)

func ctxNow(ctx context.Context) time.Time {
	return requestcontext.Now(ctx)
}

// Worker consumes escalation records from a channel and hands them to the
// publisher. It keeps background processing testable without wiring a
// delivery integration yet; an email or paging sink would replace the
// publisher here.
type Worker struct {
	publisher *Publisher
	inbox     <-chan Record
}

func NewWorker(publisher *Publisher, inbox <-chan Record) *Worker {
	return &Worker{publisher: publisher, inbox: inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case record := <-w.inbox:
			if err := w.publisher.Emit(ctx, record); err != nil {
				return err
			}
		}
	}
}
