package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/services"
	"go.uber.org/zap"
)

func TestDeliver_FailureKeepsTaskPending(t *testing.T) {
	outbox := newMockOutboxRepository()
	dispatcher := services.NewOutboxDispatcher(outbox, services.NewShelterClient(downServer(t), zap.NewNop()), zap.NewNop())

	task := &models.StatusSyncTask{ID: 1, PetID: 1, Status: "adopted", State: models.SyncPending}
	dispatcher.Deliver(context.Background(), task)

	assert.Equal(t, models.SyncPending, task.State)
	assert.Equal(t, 1, task.Attempts)
	assert.NotEmpty(t, task.LastError)

	stored := outbox.tasks[1]
	require.NotNil(t, stored)
	assert.Equal(t, models.SyncPending, stored.State)
}

func TestDeliver_ExhaustedAttemptsMarkFailed(t *testing.T) {
	outbox := newMockOutboxRepository()
	dispatcher := services.NewOutboxDispatcher(outbox, services.NewShelterClient(downServer(t), zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	task := &models.StatusSyncTask{ID: 1, PetID: 1, Status: "adopted", State: models.SyncPending}
	for i := 0; i < 10; i++ {
		dispatcher.Deliver(ctx, task)
	}

	assert.Equal(t, models.SyncFailed, task.State)
	assert.Equal(t, 10, task.Attempts)

	// A failed task is out of the retry loop for good.
	pending, err := outbox.FindPending(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRunPass_OnlyTouchesPendingTasks(t *testing.T) {
	var statusUpdates int
	shelter := newShelterServer(t, &statusUpdates)
	defer shelter.Close()

	outbox := newMockOutboxRepository()
	ctx := context.Background()
	require.NoError(t, outbox.Update(ctx, &models.StatusSyncTask{ID: 1, PetID: 1, Status: "adopted", State: models.SyncPending}))
	require.NoError(t, outbox.Update(ctx, &models.StatusSyncTask{ID: 2, PetID: 2, Status: "adopted", State: models.SyncDelivered}))
	require.NoError(t, outbox.Update(ctx, &models.StatusSyncTask{ID: 3, PetID: 3, Status: "adopted", State: models.SyncFailed}))

	dispatcher := services.NewOutboxDispatcher(outbox, services.NewShelterClient(shelter.URL, zap.NewNop()), zap.NewNop())
	dispatcher.RunPass(ctx)

	assert.Equal(t, 1, statusUpdates)
	assert.Equal(t, models.SyncDelivered, outbox.tasks[1].State)
	assert.Equal(t, models.SyncFailed, outbox.tasks[3].State)
}
