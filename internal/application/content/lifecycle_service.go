package content

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// PublisherResolver finds the platform adapter for a content item
type PublisherResolver interface {
	For(platform social.Platform) (content.Publisher, bool)
}

// LifecycleService drives content items through their publishing lifecycle
type LifecycleService struct {
	itemRepo       content.ItemRepository
	accountRepo    social.AccountRepository
	publishers     PublisherResolver
	eventBus       shared.EventPublisher
	publishTimeout time.Duration
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	itemRepo content.ItemRepository,
	accountRepo social.AccountRepository,
	publishers PublisherResolver,
	eventBus shared.EventPublisher,
	publishTimeout time.Duration,
) *LifecycleService {
	if publishTimeout <= 0 {
		publishTimeout = 45 * time.Second
	}
	return &LifecycleService{
		itemRepo:       itemRepo,
		accountRepo:    accountRepo,
		publishers:     publishers,
		eventBus:       eventBus,
		publishTimeout: publishTimeout,
	}
}

// CreateDraft creates a new content item
// When a scheduled time is supplied, the item is scheduled in the same call;
// the draft survives if scheduling fails
func (s *LifecycleService) CreateDraft(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := content.NewContentItem(social.Platform(req.Platform), req.Content, content.Tone(req.Tone), req.ProductID)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, item)

	if req.ScheduledTime == nil {
		response := ToItemResponse(item)
		return &response, nil
	}

	return s.scheduleItem(ctx, item, ScheduleItemRequest{ScheduledTime: req.ScheduledTime})
}

// Schedule puts a draft or failed item on the schedule
// The platform must be connected; the item is untouched when it is not.
// A missing or past time publishes immediately.
func (s *LifecycleService) Schedule(ctx context.Context, id uuid.UUID, req ScheduleItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.scheduleItem(ctx, item, req)
}

func (s *LifecycleService) scheduleItem(ctx context.Context, item *content.ContentItem, req ScheduleItemRequest) (*ItemResponse, error) {
	if err := s.requireConnected(ctx, item.Platform); err != nil {
		return nil, err
	}

	at := time.Time{}
	if req.ScheduledTime != nil {
		at = *req.ScheduledTime
	}
	immediate := req.ScheduledTime == nil || !at.After(time.Now())

	transition := item.Schedule
	if item.Status == content.StatusFailed {
		transition = item.Requeue
	}
	if err := transition(at); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, item)

	if immediate {
		return s.AttemptPublish(ctx, item.ID)
	}

	response := ToItemResponse(item)
	return &response, nil
}

// AttemptPublish claims a scheduled item and runs one publish attempt
// Exactly one of two concurrent callers wins the claim; the loser gets an
// INVALID_STATE error. The outcome is always published or failed, never a
// dangling publishing row.
func (s *LifecycleService) AttemptPublish(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.ClaimForPublishing(ctx, id)
	if err != nil {
		return nil, err
	}

	// The account may have been disconnected after scheduling
	account, err := s.connectedAccount(ctx, item.Platform)
	if err != nil {
		return s.concludeFailure(ctx, item, content.FailureCausePlatformNotConnected, err.Error())
	}

	publisher, ok := s.publishers.For(item.Platform)
	if !ok {
		return s.concludeFailure(ctx, item, content.FailureCauseUnknown, "no publisher adapter for "+item.Platform.String())
	}

	pubCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	result, err := publisher.Publish(pubCtx, content.PublishRequest{
		Item:        item,
		Credentials: account.GetCredentials(),
	})
	if err != nil {
		cause, message := classifyAttemptError(ctx, err)
		return s.concludeFailure(ctx, item, cause, message)
	}

	if err := item.MarkPublished(result.ExternalRef, result.Engagement); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.drainEvents(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// Get returns a single content item
func (s *LifecycleService) Get(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List returns content items matching the filter, newest first
func (s *LifecycleService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.Platform != "" {
		domainFilter.Filters["platform"] = filter.Platform
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ItemResponse, len(items))
	for i := range items {
		responses[i] = ToItemResponse(&items[i])
	}

	return responses, total, nil
}

// Delete removes a content item
func (s *LifecycleService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *LifecycleService) requireConnected(ctx context.Context, platform social.Platform) error {
	_, err := s.connectedAccount(ctx, platform)
	return err
}

func (s *LifecycleService) connectedAccount(ctx context.Context, platform social.Platform) (*social.SocialAccount, error) {
	account, err := s.accountRepo.FindByPlatform(ctx, platform)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrPlatformNotConnected
		}
		return nil, err
	}
	if !account.Connected {
		return nil, shared.ErrPlatformNotConnected
	}
	return account, nil
}

func (s *LifecycleService) concludeFailure(ctx context.Context, item *content.ContentItem, cause content.FailureCause, message string) (*ItemResponse, error) {
	if err := item.MarkFailed(cause, message); err != nil {
		return nil, err
	}
	// The caller's context may already be cancelled; the outcome must still
	// be persisted or the item stays claimed as publishing forever.
	saveCtx := context.WithoutCancel(ctx)
	if err := s.itemRepo.Save(saveCtx, item); err != nil {
		return nil, err
	}
	s.drainEvents(saveCtx, item)

	response := ToItemResponse(item)
	return &response, nil
}

func (s *LifecycleService) drainEvents(ctx context.Context, item *content.ContentItem) {
	if s.eventBus == nil {
		return
	}
	events := item.GetDomainEvents()
	item.ClearDomainEvents()
	if len(events) > 0 {
		// Event delivery is best-effort; the state change is already persisted
		_ = s.eventBus.Publish(ctx, events...)
	}
}

// classifyAttemptError maps an adapter or context error to a failure cause
func classifyAttemptError(ctx context.Context, err error) (content.FailureCause, string) {
	if ctx.Err() != nil && errors.Is(ctx.Err(), context.Canceled) {
		return content.FailureCauseCancelled, "publish attempt cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return content.FailureCauseNetwork, "publish attempt timed out"
	}
	return content.ClassifyPublishError(err)
}
