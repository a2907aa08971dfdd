package scheduler

import (
	"context"
	"errors"

	appcontent "github.com/rarerevisit/backend/internal/application/content"
	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LifecycleExecutor publishes due items through the content lifecycle service
type LifecycleExecutor struct {
	service *appcontent.LifecycleService
	logger  *zap.Logger
}

// NewLifecycleExecutor creates a new lifecycle executor
func NewLifecycleExecutor(service *appcontent.LifecycleService, logger *zap.Logger) *LifecycleExecutor {
	return &LifecycleExecutor{
		service: service,
		logger:  logger,
	}
}

// Execute attempts to publish the job's content item.
// A lost claim race or a vanished item is not a job failure: the item was
// taken by a concurrent publisher or deleted after the poll picked it up.
// A publish failure recorded on the item itself also completes the job;
// the failure lives on the item for the operator to requeue.
func (e *LifecycleExecutor) Execute(ctx context.Context, job *PublishJob) error {
	resp, err := e.service.AttemptPublish(ctx, job.ItemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			e.logger.Debug("item gone before publish attempt",
				zap.String("item_id", job.ItemID.String()),
			)
			return nil
		}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "INVALID_STATE" {
			e.logger.Debug("item already claimed by another publisher",
				zap.String("item_id", job.ItemID.String()),
			)
			return nil
		}
		return err
	}

	if resp.Status == string(content.StatusFailed) {
		e.logger.Warn("publish attempt concluded as failed",
			zap.String("item_id", job.ItemID.String()),
		)
	}
	return nil
}

// Ensure LifecycleExecutor implements JobExecutor
var _ JobExecutor = (*LifecycleExecutor)(nil)
