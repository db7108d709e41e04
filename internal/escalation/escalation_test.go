package escalation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "comply/pkg/domain"
	"comply/pkg/requestcontext"
)

func TestFormatMessage(t *testing.T) {
	employeeID := id.NewEmployeeID()
	policyID := id.NewPolicyID()
	dueDate := time.Date(2025, 4, 15, 23, 0, 0, 0, time.UTC)

	got := FormatMessage("Riley Chen", employeeID, "InfoSec Baseline", policyID, dueDate)
	want := "Employee Riley Chen (" + employeeID.String() + ") has overdue policy InfoSec Baseline (" +
		policyID.String() + ") due on 2025-04-15"
	assert.Equal(t, want, got)
}

func TestPublisherDefaultsTimestamp(t *testing.T) {
	store := NewInMemoryStore()
	publisher := NewPublisher(store)
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	employeeID := id.NewEmployeeID()
	require.NoError(t, publisher.Emit(ctx, Record{EmployeeID: employeeID}))

	explicit := now.Add(-time.Hour)
	require.NoError(t, publisher.Emit(ctx, Record{EmployeeID: employeeID, Timestamp: explicit}))

	records, err := publisher.List(ctx, employeeID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, now, records[0].Timestamp)
	assert.Equal(t, explicit, records[1].Timestamp)
}

func TestStoreFiltersByEmployee(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	mine := id.NewEmployeeID()
	require.NoError(t, store.Append(ctx, Record{EmployeeID: mine}))
	require.NoError(t, store.Append(ctx, Record{EmployeeID: id.NewEmployeeID()}))

	records, err := store.ListByEmployee(ctx, mine)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWorkerPersistsInboxRecords(t *testing.T) {
	store := NewInMemoryStore()
	inbox := make(chan Record, 2)
	worker := NewWorker(NewPublisher(store), inbox)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	employeeID := id.NewEmployeeID()
	inbox <- Record{EmployeeID: employeeID, Message: "overdue"}

	require.Eventually(t, func() bool {
		records, err := store.ListByEmployee(context.Background(), employeeID)
		return err == nil && len(records) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
