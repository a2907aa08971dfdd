package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
	"gorm.io/gorm"
)

// GormContentItemRepository implements ItemRepository using GORM
type GormContentItemRepository struct {
	db *gorm.DB
}

// NewGormContentItemRepository creates a new GormContentItemRepository
func NewGormContentItemRepository(db *gorm.DB) *GormContentItemRepository {
	return &GormContentItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormContentItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.ContentItem, error) {
	var item content.ContentItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds items matching the filter, newest first
func (r *GormContentItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.ContentItem, error) {
	var items []content.ContentItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&content.ContentItem{}), filter)

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindDue returns scheduled items whose scheduled time is at or before now
func (r *GormContentItemRepository) FindDue(ctx context.Context, now time.Time) ([]content.ContentItem, error) {
	var items []content.ContentItem
	if err := r.db.WithContext(ctx).
		Where("status = ? AND scheduled_at <= ?", content.StatusScheduled, now).
		Order("scheduled_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item
func (r *GormContentItemRepository) Save(ctx context.Context, item *content.ContentItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes an item
func (r *GormContentItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&content.ContentItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClaimForPublishing atomically moves a scheduled item into publishing.
// The guarded UPDATE means exactly one of any concurrent claimers wins;
// the rest find zero rows affected and get an INVALID_STATE error.
func (r *GormContentItemRepository) ClaimForPublishing(ctx context.Context, id uuid.UUID) (*content.ContentItem, error) {
	result := r.db.WithContext(ctx).
		Model(&content.ContentItem{}).
		Where("id = ? AND status = ?", id, content.StatusScheduled).
		Updates(map[string]interface{}{
			"status":     content.StatusPublishing,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		item, err := r.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot begin publishing from status %s", item.Status))
	}
	return r.FindByID(ctx, id)
}

// Count counts items matching the filter
func (r *GormContentItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&content.ContentItem{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts items in a given lifecycle state
func (r *GormContentItemRepository) CountByStatus(ctx context.Context, status content.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&content.ContentItem{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPublishedByPlatform returns published item counts keyed by platform
func (r *GormContentItemRepository) CountPublishedByPlatform(ctx context.Context) (map[social.Platform]int64, error) {
	type platformCount struct {
		Platform social.Platform
		Total    int64
	}

	var rows []platformCount
	if err := r.db.WithContext(ctx).
		Model(&content.ContentItem{}).
		Select("platform, COUNT(*) AS total").
		Where("status = ?", content.StatusPublished).
		Group("platform").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[social.Platform]int64, len(rows))
	for _, row := range rows {
		counts[row.Platform] = row.Total
	}
	return counts, nil
}

// SumEngagementPublished sums engagement over published items
func (r *GormContentItemRepository) SumEngagementPublished(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&content.ContentItem{}).
		Select("COALESCE(SUM(engagement), 0)").
		Where("status = ?", content.StatusPublished).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// applyFilter applies filter options to the query
func (r *GormContentItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormContentItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("body LIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "platform":
			query = query.Where("platform = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormContentItemRepository implements ItemRepository
var _ content.ItemRepository = (*GormContentItemRepository)(nil)
