package content

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// Status represents the lifecycle state of a content item
type Status string

const (
	StatusDraft      Status = "draft"
	StatusScheduled  Status = "scheduled"
	StatusPublishing Status = "publishing"
	StatusPublished  Status = "published"
	StatusFailed     Status = "failed"
)

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusScheduled
	case StatusScheduled:
		return target == StatusPublishing
	case StatusPublishing:
		return target == StatusPublished || target == StatusFailed
	case StatusFailed:
		return target == StatusScheduled
	case StatusPublished:
		return false // Terminal state
	}
	return false
}

// IsValid returns true if the status is a known lifecycle state
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusPublishing, StatusPublished, StatusFailed:
		return true
	}
	return false
}

// Tone represents the voice of a generated or authored caption
type Tone string

const (
	ToneElegant      Tone = "elegant"
	TonePlayful      Tone = "playful"
	ToneProfessional Tone = "professional"
)

// AllTones returns every supported tone
func AllTones() []Tone {
	return []Tone{ToneElegant, TonePlayful, ToneProfessional}
}

// IsValid returns true if the tone is supported
func (t Tone) IsValid() bool {
	switch t {
	case ToneElegant, TonePlayful, ToneProfessional:
		return true
	}
	return false
}

// FailureCause classifies why a publish attempt failed
type FailureCause string

const (
	FailureCauseNetwork              FailureCause = "network"
	FailureCauseAuth                 FailureCause = "auth"
	FailureCauseRateLimit            FailureCause = "rate-limit"
	FailureCausePlatformNotConnected FailureCause = "platform_not_connected"
	FailureCauseCancelled            FailureCause = "cancelled"
	FailureCauseUnknown              FailureCause = "unknown"
)

// ErrorRecord captures the outcome of a failed publish attempt
type ErrorRecord struct {
	Cause      FailureCause `json:"cause"`
	Message    string       `json:"message"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// ContentItem represents a single piece of content bound to one platform
// It is the aggregate root for the publishing lifecycle
type ContentItem struct {
	shared.BaseAggregateRoot
	Platform    social.Platform `gorm:"type:varchar(20);not null;index"`
	Body        string          `gorm:"type:text;not null"`
	Tone        Tone            `gorm:"type:varchar(20);not null"`
	Status      Status          `gorm:"type:varchar(20);not null;default:'draft';index"`
	ScheduledAt *time.Time      `gorm:"index"`
	PublishedAt *time.Time      `gorm:"index"`
	ExternalRef string          `gorm:"type:varchar(100)"`
	Engagement  int64           `gorm:"not null;default:0"`
	LastError   string          `gorm:"type:jsonb"` // ErrorRecord JSON, present only when failed
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ContentItem) TableName() string {
	return "content_items"
}

// NewContentItem creates a draft item for a platform
func NewContentItem(platform social.Platform, body string, tone Tone, productID *uuid.UUID) (*ContentItem, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform: "+platform.String())
	}
	if !tone.IsValid() {
		return nil, shared.NewDomainError("INVALID_TONE", "Unknown tone: "+string(tone))
	}
	if err := validateBody(platform, body); err != nil {
		return nil, err
	}

	item := &ContentItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Platform:          platform,
		Body:              body,
		Tone:              tone,
		Status:            StatusDraft,
		ProductID:         productID,
	}

	item.AddDomainEvent(NewContentDraftedEvent(item))

	return item, nil
}

// UpdateBody replaces the item body
// Only draft items may be edited
func (i *ContentItem) UpdateBody(body string) error {
	if i.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot edit content in %s status", i.Status))
	}
	if err := validateBody(i.Platform, body); err != nil {
		return err
	}

	i.Body = body
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Schedule moves the item into the scheduled state
// A zero or past time is normalized to now, meaning "publish immediately"
func (i *ContentItem) Schedule(at time.Time) error {
	if !i.Status.CanTransitionTo(StatusScheduled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot schedule content in %s status", i.Status))
	}

	now := time.Now()
	if at.IsZero() || at.Before(now) {
		at = now
	}

	i.Status = StatusScheduled
	i.ScheduledAt = &at
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewContentScheduledEvent(i))

	return nil
}

// Requeue puts a failed item back on the schedule
// The previous error record is kept until the next attempt concludes
func (i *ContentItem) Requeue(at time.Time) error {
	if i.Status != StatusFailed {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot requeue content in %s status", i.Status))
	}
	return i.Schedule(at)
}

// BeginPublish claims the item for an in-flight publish attempt
func (i *ContentItem) BeginPublish() error {
	if !i.Status.CanTransitionTo(StatusPublishing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot publish content in %s status", i.Status))
	}

	i.Status = StatusPublishing
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// MarkPublished records a successful publish attempt
func (i *ContentItem) MarkPublished(externalRef string, engagement int64) error {
	if !i.Status.CanTransitionTo(StatusPublished) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark content published in %s status", i.Status))
	}

	now := time.Now()
	i.Status = StatusPublished
	i.PublishedAt = &now
	i.ExternalRef = externalRef
	i.Engagement = engagement
	i.ScheduledAt = nil
	i.LastError = ""
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewContentPublishedEvent(i))

	return nil
}

// MarkFailed records a failed publish attempt with a classified cause
func (i *ContentItem) MarkFailed(cause FailureCause, message string) error {
	if !i.Status.CanTransitionTo(StatusFailed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark content failed in %s status", i.Status))
	}

	now := time.Now()
	record := ErrorRecord{Cause: cause, Message: message, OccurredAt: now}
	data, err := json.Marshal(record)
	if err != nil {
		return shared.NewDomainError("INVALID_INPUT", "Error record must be serializable")
	}

	i.Status = StatusFailed
	i.ScheduledAt = nil
	i.LastError = string(data)
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewContentPublishFailedEvent(i, cause, message))

	return nil
}

// GetLastError returns the most recent failure record, if any
func (i *ContentItem) GetLastError() *ErrorRecord {
	if i.LastError == "" {
		return nil
	}
	var record ErrorRecord
	if err := json.Unmarshal([]byte(i.LastError), &record); err != nil {
		return nil
	}
	return &record
}

// IsPublished returns true if the item reached its terminal state
func (i *ContentItem) IsPublished() bool {
	return i.Status == StatusPublished
}

func validateBody(platform social.Platform, body string) error {
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError("EMPTY_CONTENT", "Content body cannot be empty")
	}
	if config, ok := platform.Config(); ok && len(body) > config.MaxBodyLength {
		return shared.NewDomainError("BODY_TOO_LONG",
			fmt.Sprintf("Content body exceeds the %d character limit for %s", config.MaxBodyLength, config.DisplayName))
	}
	return nil
}
