package content

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// ItemRepository defines the interface for content item persistence
type ItemRepository interface {
	// FindByID finds an item by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*ContentItem, error)

	// FindAll finds items matching the filter, newest first
	// Filters["platform"] and Filters["status"] narrow the result set
	FindAll(ctx context.Context, filter shared.Filter) ([]ContentItem, error)

	// FindDue returns scheduled items whose scheduled time is at or before now
	FindDue(ctx context.Context, now time.Time) ([]ContentItem, error)

	// Save creates or updates an item
	Save(ctx context.Context, item *ContentItem) error

	// Delete deletes an item
	Delete(ctx context.Context, id uuid.UUID) error

	// ClaimForPublishing atomically moves a scheduled item into publishing
	// and returns the claimed item. Returns an INVALID_STATE error when the
	// item exists but is not scheduled, so concurrent claimers lose cleanly.
	ClaimForPublishing(ctx context.Context, id uuid.UUID) (*ContentItem, error)

	// Count counts items matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts items in a given lifecycle state
	CountByStatus(ctx context.Context, status Status) (int64, error)

	// CountPublishedByPlatform returns published item counts keyed by platform
	CountPublishedByPlatform(ctx context.Context) (map[social.Platform]int64, error)

	// SumEngagementPublished sums engagement over published items
	SumEngagementPublished(ctx context.Context) (int64, error)
}
