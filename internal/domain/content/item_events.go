package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// Aggregate type constant
const AggregateTypeContentItem = "ContentItem"

// Event type constants
const (
	EventTypeContentDrafted       = "ContentDrafted"
	EventTypeContentScheduled     = "ContentScheduled"
	EventTypeContentPublished     = "ContentPublished"
	EventTypeContentPublishFailed = "ContentPublishFailed"
)

// ContentDraftedEvent is published when a new draft is created
type ContentDraftedEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID       `json:"item_id"`
	Platform social.Platform `json:"platform"`
	Tone     Tone            `json:"tone"`
}

// NewContentDraftedEvent creates a new ContentDraftedEvent
func NewContentDraftedEvent(item *ContentItem) *ContentDraftedEvent {
	return &ContentDraftedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContentDrafted, AggregateTypeContentItem, item.ID),
		ItemID:          item.ID,
		Platform:        item.Platform,
		Tone:            item.Tone,
	}
}

// ContentScheduledEvent is published when content enters the schedule
type ContentScheduledEvent struct {
	shared.BaseDomainEvent
	ItemID      uuid.UUID       `json:"item_id"`
	Platform    social.Platform `json:"platform"`
	ScheduledAt time.Time       `json:"scheduled_at"`
}

// NewContentScheduledEvent creates a new ContentScheduledEvent
func NewContentScheduledEvent(item *ContentItem) *ContentScheduledEvent {
	scheduledAt := time.Now()
	if item.ScheduledAt != nil {
		scheduledAt = *item.ScheduledAt
	}
	return &ContentScheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContentScheduled, AggregateTypeContentItem, item.ID),
		ItemID:          item.ID,
		Platform:        item.Platform,
		ScheduledAt:     scheduledAt,
	}
}

// ContentPublishedEvent is published when a publish attempt succeeds
type ContentPublishedEvent struct {
	shared.BaseDomainEvent
	ItemID      uuid.UUID       `json:"item_id"`
	Platform    social.Platform `json:"platform"`
	ExternalRef string          `json:"external_ref"`
	Engagement  int64           `json:"engagement"`
}

// NewContentPublishedEvent creates a new ContentPublishedEvent
func NewContentPublishedEvent(item *ContentItem) *ContentPublishedEvent {
	return &ContentPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContentPublished, AggregateTypeContentItem, item.ID),
		ItemID:          item.ID,
		Platform:        item.Platform,
		ExternalRef:     item.ExternalRef,
		Engagement:      item.Engagement,
	}
}

// ContentPublishFailedEvent is published when a publish attempt fails
type ContentPublishFailedEvent struct {
	shared.BaseDomainEvent
	ItemID   uuid.UUID       `json:"item_id"`
	Platform social.Platform `json:"platform"`
	Cause    FailureCause    `json:"cause"`
	Message  string          `json:"message"`
}

// NewContentPublishFailedEvent creates a new ContentPublishFailedEvent
func NewContentPublishFailedEvent(item *ContentItem, cause FailureCause, message string) *ContentPublishFailedEvent {
	return &ContentPublishFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContentPublishFailed, AggregateTypeContentItem, item.ID),
		ItemID:          item.ID,
		Platform:        item.Platform,
		Cause:           cause,
		Message:         message,
	}
}
