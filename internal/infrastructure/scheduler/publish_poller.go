package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rarerevisit/backend/internal/domain/content"
	"go.uber.org/zap"
)

// PublishPoller periodically scans for due scheduled items and submits
// publish jobs for them. Submitting the same item twice is harmless:
// only one claim wins, the other job completes as a no-op.
type PublishPoller struct {
	config    Config
	items     content.ItemRepository
	scheduler *PublishScheduler
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPublishPoller creates a new publish poller
func NewPublishPoller(config Config, items content.ItemRepository, scheduler *PublishScheduler, logger *zap.Logger) *PublishPoller {
	return &PublishPoller{
		config:    config,
		items:     items,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start starts the poll loop
func (p *PublishPoller) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = true
	p.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.runLoop(ctx)

	p.logger.Info("Publish poller started",
		zap.Duration("poll_interval", p.config.PollInterval),
	)

	return nil
}

// Stop stops the poll loop
func (p *PublishPoller) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.isRunning {
		p.mu.Unlock()
		return nil
	}
	p.isRunning = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("Publish poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop polls for due items until the context is cancelled
func (p *PublishPoller) runLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	// Run immediately on start
	p.pollOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollOnce(ctx)
		}
	}
}

// pollOnce finds due items and submits a publish job for each
func (p *PublishPoller) pollOnce(ctx context.Context) {
	due, err := p.items.FindDue(ctx, time.Now())
	if err != nil {
		p.logger.Error("Failed to find due items", zap.Error(err))
		return
	}

	if len(due) == 0 {
		return
	}

	p.logger.Debug("Found due items", zap.Int("count", len(due)))

	for _, item := range due {
		if err := p.scheduler.SubmitJob(NewPublishJob(item.ID)); err != nil {
			if errors.Is(err, ErrJobQueueFull) {
				// Leave the rest for the next tick
				p.logger.Warn("Job queue full, deferring remaining due items")
				return
			}
			p.logger.Error("Failed to submit publish job",
				zap.String("item_id", item.ID.String()),
				zap.Error(err),
			)
		}
	}
}
