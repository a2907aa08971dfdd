package content

import (
	"time"

	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/content"
)

// GenerateRequest represents a request to generate caption text
type GenerateRequest struct {
	Prompt      string `json:"prompt" binding:"required,min=1,max=2000"`
	Platform    string `json:"platform" binding:"required,platform"`
	Tone        string `json:"tone" binding:"required,tone"`
	ProductName string `json:"product_name" binding:"max=200"`
}

// GenerateResponse represents generated caption text
type GenerateResponse struct {
	Content     string    `json:"content"`
	Platform    string    `json:"platform"`
	Tone        string    `json:"tone"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CreateItemRequest represents a request to create a content item
type CreateItemRequest struct {
	Platform      string     `json:"platform" binding:"required,platform"`
	Content       string     `json:"content" binding:"required"`
	Tone          string     `json:"tone" binding:"required,tone"`
	ScheduledTime *time.Time `json:"scheduled_time"`
	ProductID     *uuid.UUID `json:"product_id"`
}

// ScheduleItemRequest represents a request to schedule a content item
// A missing or past time means "publish immediately"
type ScheduleItemRequest struct {
	ScheduledTime *time.Time `json:"scheduled_time"`
}

// ErrorRecordResponse represents the last failure of a content item
type ErrorRecordResponse struct {
	Cause      string    `json:"cause"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemResponse represents a content item in API responses
type ItemResponse struct {
	ID          uuid.UUID            `json:"id"`
	Platform    string               `json:"platform"`
	Content     string               `json:"content"`
	Tone        string               `json:"tone"`
	Status      string               `json:"status"`
	ScheduledAt *time.Time           `json:"scheduled_at,omitempty"`
	PublishedAt *time.Time           `json:"published_at,omitempty"`
	ExternalRef string               `json:"external_ref,omitempty"`
	Engagement  int64                `json:"engagement"`
	LastError   *ErrorRecordResponse `json:"last_error,omitempty"`
	ProductID   *uuid.UUID           `json:"product_id,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Version     int                  `json:"version"`
}

// ItemListFilter represents filter options for the content list
type ItemListFilter struct {
	Platform string `form:"platform" binding:"omitempty,platform"`
	Status   string `form:"status" binding:"omitempty,oneof=draft scheduled publishing published failed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ToItemResponse converts a domain ContentItem to ItemResponse
func ToItemResponse(item *content.ContentItem) ItemResponse {
	response := ItemResponse{
		ID:          item.ID,
		Platform:    item.Platform.String(),
		Content:     item.Body,
		Tone:        string(item.Tone),
		Status:      string(item.Status),
		ScheduledAt: item.ScheduledAt,
		PublishedAt: item.PublishedAt,
		ExternalRef: item.ExternalRef,
		Engagement:  item.Engagement,
		ProductID:   item.ProductID,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
		Version:     item.Version,
	}
	if record := item.GetLastError(); record != nil {
		response.LastError = &ErrorRecordResponse{
			Cause:      string(record.Cause),
			Message:    record.Message,
			OccurredAt: record.OccurredAt,
		}
	}
	return response
}
