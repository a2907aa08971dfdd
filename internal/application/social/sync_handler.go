package social

import (
	"context"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// PublishOutcomeHandler keeps account sync counters current as content is
// published. It is registered with an idempotency wrapper so redelivered
// events never double-count.
type PublishOutcomeHandler struct {
	accountRepo social.AccountRepository
}

// NewPublishOutcomeHandler creates a new PublishOutcomeHandler
func NewPublishOutcomeHandler(accountRepo social.AccountRepository) *PublishOutcomeHandler {
	return &PublishOutcomeHandler{accountRepo: accountRepo}
}

// EventTypes returns the event types this handler processes
func (h *PublishOutcomeHandler) EventTypes() []string {
	return []string{content.EventTypeContentPublished}
}

// Handle updates the platform account counters after a successful publish
func (h *PublishOutcomeHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	published, ok := event.(*content.ContentPublishedEvent)
	if !ok {
		return nil
	}

	account, err := h.accountRepo.FindByPlatform(ctx, published.Platform)
	if err != nil {
		return err
	}

	// Early engagement stands in for audience growth until a real platform
	// insights sync exists
	growth := published.Engagement / 10
	account.RecordSync(account.Followers+growth, account.FollowersGrowth+growth)

	return h.accountRepo.Save(ctx, account)
}
