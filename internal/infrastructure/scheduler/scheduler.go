package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JobStatus represents the status of a publish job
type JobStatus string

const (
	JobStatusPending JobStatus = "PENDING"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusSuccess JobStatus = "SUCCESS"
	JobStatusFailed  JobStatus = "FAILED"
)

// PublishJob represents a single publish attempt for a due content item
type PublishJob struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	Status      JobStatus
	Error       string
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// NewPublishJob creates a new publish job for a content item
func NewPublishJob(itemID uuid.UUID) *PublishJob {
	return &PublishJob{
		ID:     uuid.New(),
		ItemID: itemID,
		Status: JobStatusPending,
	}
}

// Start marks the job as running
func (j *PublishJob) Start() {
	now := time.Now()
	j.Status = JobStatusRunning
	j.StartedAt = &now
	j.Error = ""
}

// Complete marks the job as successful
func (j *PublishJob) Complete() {
	now := time.Now()
	j.Status = JobStatusSuccess
	j.CompletedAt = &now
}

// Fail marks the job as failed
func (j *PublishJob) Fail(err string) {
	now := time.Now()
	j.Status = JobStatusFailed
	j.CompletedAt = &now
	j.Error = err
}

// JobExecutor is the interface for executing publish jobs
type JobExecutor interface {
	Execute(ctx context.Context, job *PublishJob) error
}

// Config holds publish scheduler configuration
type Config struct {
	Enabled      bool
	PollInterval time.Duration
	Workers      int
	JobTimeout   time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		PollInterval: 30 * time.Second,
		Workers:      4,
		JobTimeout:   time.Minute,
	}
}

// PublishScheduler runs publish jobs on a bounded worker pool.
// Losing a claim race inside a job is not a job failure; the item
// was simply taken by another worker or a manual publish.
type PublishScheduler struct {
	config   Config
	executor JobExecutor
	logger   *zap.Logger

	jobs      chan *PublishJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewPublishScheduler creates a new publish scheduler instance
func NewPublishScheduler(config Config, executor JobExecutor, logger *zap.Logger) *PublishScheduler {
	return &PublishScheduler{
		config:   config,
		executor: executor,
		logger:   logger,
		jobs:     make(chan *PublishJob, 100),
	}
}

// Start starts the scheduler worker pool
func (s *PublishScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.config.Workers; i++ {
		s.wg.Add(1)
		go s.worker(ctx, i)
	}

	s.logger.Info("Publish scheduler started",
		zap.Int("workers", s.config.Workers),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler
func (s *PublishScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	close(s.jobs)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Publish scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Publish scheduler stop timed out")
		return ctx.Err()
	}
}

// SubmitJob submits a publish job for execution
func (s *PublishScheduler) SubmitJob(job *PublishJob) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	s.mu.Unlock()

	select {
	case s.jobs <- job:
		s.logger.Debug("Publish job submitted",
			zap.String("job_id", job.ID.String()),
			zap.String("item_id", job.ItemID.String()),
		)
		return nil
	default:
		return ErrJobQueueFull
	}
}

// worker processes jobs from the queue
func (s *PublishScheduler) worker(ctx context.Context, workerID int) {
	defer s.wg.Done()

	s.logger.Debug("Worker started", zap.Int("worker_id", workerID))

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Worker stopping", zap.Int("worker_id", workerID))
			return
		case job, ok := <-s.jobs:
			if !ok {
				s.logger.Debug("Job channel closed", zap.Int("worker_id", workerID))
				return
			}
			s.processJob(ctx, job, workerID)
		}
	}
}

// processJob executes a single publish job
func (s *PublishScheduler) processJob(ctx context.Context, job *PublishJob, workerID int) {
	job.Start()
	s.logger.Info("Processing publish job",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("item_id", job.ItemID.String()),
	)

	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	if err := s.executor.Execute(jobCtx, job); err != nil {
		job.Fail(err.Error())
		s.logger.Error("Publish job failed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("item_id", job.ItemID.String()),
			zap.Error(err),
		)
		return
	}

	job.Complete()
	s.logger.Info("Publish job completed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("item_id", job.ItemID.String()),
	)
}
