package services

import (
	"context"
	"time"

	"github.com/whiteheadbella/vet-management/services/adoption-service/models"
	"github.com/whiteheadbella/vet-management/services/adoption-service/repository"
	"go.uber.org/zap"
)

const (
	defaultDispatchInterval = 30 * time.Second
	defaultMaxAttempts      = 10
	dispatchBatchSize       = 50
)

// OutboxDispatcher delivers pending StatusSyncTask rows to the shelter.
// A task survives process restarts; it leaves the pending state only when
// the shelter acknowledges the write or the attempt budget runs out.
type OutboxDispatcher struct {
	outbox      repository.OutboxRepository
	shelter     *ShelterClient
	logger      *zap.Logger
	interval    time.Duration
	maxAttempts int
}

func NewOutboxDispatcher(outbox repository.OutboxRepository, shelter *ShelterClient, logger *zap.Logger) *OutboxDispatcher {
	return &OutboxDispatcher{
		outbox:      outbox,
		shelter:     shelter,
		logger:      logger,
		interval:    defaultDispatchInterval,
		maxAttempts: defaultMaxAttempts,
	}
}

// Run retries pending tasks until the context is cancelled. Meant to be
// started as a goroutine next to the HTTP server.
func (d *OutboxDispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.RunPass(ctx)
		}
	}
}

// RunPass attempts delivery of one batch of pending tasks.
func (d *OutboxDispatcher) RunPass(ctx context.Context) {
	tasks, err := d.outbox.FindPending(ctx, dispatchBatchSize)
	if err != nil {
		d.logger.Error("failed to load pending sync tasks", zap.Error(err))
		return
	}
	for i := range tasks {
		d.Deliver(ctx, &tasks[i])
	}
}

// Deliver makes one delivery attempt and records the outcome. Failure
// keeps the task pending until maxAttempts is reached.
func (d *OutboxDispatcher) Deliver(ctx context.Context, task *models.StatusSyncTask) {
	task.Attempts++

	if err := d.shelter.UpdatePetStatus(ctx, task.PetID, task.Status); err != nil {
		task.LastError = err.Error()
		if task.Attempts >= d.maxAttempts {
			task.State = models.SyncFailed
			d.logger.Error("status sync task exhausted its attempts",
				zap.Int64("task_id", task.ID),
				zap.Int64("pet_id", task.PetID),
				zap.Int("attempts", task.Attempts))
		} else {
			d.logger.Warn("status sync attempt failed",
				zap.Int64("task_id", task.ID),
				zap.Int64("pet_id", task.PetID),
				zap.Int("attempt", task.Attempts),
				zap.Error(err))
		}
	} else {
		now := time.Now().UTC()
		task.State = models.SyncDelivered
		task.DeliveredAt = &now
		task.LastError = ""
		d.logger.Info("status sync delivered",
			zap.Int64("task_id", task.ID),
			zap.Int64("pet_id", task.PetID),
			zap.String("status", task.Status),
			zap.Int("attempts", task.Attempts))
	}

	if err := d.outbox.Update(ctx, task); err != nil {
		d.logger.Error("failed to persist sync task state",
			zap.Int64("task_id", task.ID), zap.Error(err))
	}
}
