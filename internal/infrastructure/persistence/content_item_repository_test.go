package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupItemTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&content.ContentItem{})
	require.NoError(t, err)

	return db
}

func newDraftItem(t *testing.T, platform social.Platform, body string) *content.ContentItem {
	t.Helper()
	item, err := content.NewContentItem(platform, body, content.ToneElegant, nil)
	require.NoError(t, err)
	return item
}

func TestGormContentItemRepository_SaveAndFindByID(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormContentItemRepository(db)
	ctx := context.Background()

	item := newDraftItem(t, social.PlatformInstagram, "An evening in amber and oud.")
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, content.StatusDraft, found.Status)
	assert.Equal(t, content.ToneElegant, found.Tone)
}

func TestGormContentItemRepository_FindByID_NotFound(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormContentItemRepository(db)

	found, err := repo.FindByID(context.Background(), uuid.New())

	assert.Nil(t, found)
	assert.Equal(t, shared.ErrNotFound, err)
}

func TestGormContentItemRepository_FindAll_Filters(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormContentItemRepository(db)
	ctx := context.Background()

	igDraft := newDraftItem(t, social.PlatformInstagram, "Notes of iris at dawn.")
	require.NoError(t, repo.Save(ctx, igDraft))

	twScheduled := newDraftItem(t, social.PlatformTwitter, "New drop Friday.")
	require.NoError(t, twScheduled.Schedule(time.Now().Add(time.Hour)))
	require.NoError(t, repo.Save(ctx, twScheduled))

	t.Run("platform filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"platform": social.PlatformTwitter}

		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, twScheduled.ID, items[0].ID)
	})

	t.Run("status filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"status": content.StatusDraft}

		items, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, igDraft.ID, items[0].ID)
	})
}

func TestGormContentItemRepository_FindDue(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormContentItemRepository(db)
	ctx := context.Background()
	now := time.Now()

	due := newDraftItem(t, social.PlatformInstagram, "Due now.")
	require.NoError(t, due.Schedule(now.Add(-time.Minute)))
	require.NoError(t, repo.Save(ctx, due))

	future := newDraftItem(t, social.PlatformFacebook, "Due later.")
	require.NoError(t, future.Schedule(now.Add(2*time.Hour)))
	require.NoError(t, repo.Save(ctx, future))

	draft := newDraftItem(t, social.PlatformPinterest, "Never scheduled.")
	require.NoError(t, repo.Save(ctx, draft))

	items, err := repo.FindDue(ctx, now.Add(time.Minute))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, due.ID, items[0].ID)
}

func TestGormContentItemRepository_ClaimForPublishing(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormContentItemRepository(db)
	ctx := context.Background()

	t.Run("claims a scheduled item", func(t *testing.T) {
		item := newDraftItem(t, social.PlatformInstagram, "Claim me.")
		require.NoError(t, item.Schedule(time.Now()))
		require.NoError(t, repo.Save(ctx, item))

		claimed, err := repo.ClaimForPublishing(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, content.StatusPublishing, claimed.Status)
	})

	t.Run("second claim loses with INVALID_STATE", func(t *testing.T) {
		item := newDraftItem(t, social.PlatformInstagram, "Race target.")
		require.NoError(t, item.Schedule(time.Now()))
		require.NoError(t, repo.Save(ctx, item))

		_, err := repo.ClaimForPublishing(ctx, item.ID)
		require.NoError(t, err)

		_, err = repo.ClaimForPublishing(ctx, item.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("draft cannot be claimed", func(t *testing.T) {
		item := newDraftItem(t, social.PlatformFacebook, "Still a draft.")
		require.NoError(t, repo.Save(ctx, item))

		_, err := repo.ClaimForPublishing(ctx, item.ID)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("missing item reports not found", func(t *testing.T) {
		_, err := repo.ClaimForPublishing(ctx, uuid.New())
		assert.Equal(t, shared.ErrNotFound, err)
	})
}

func TestGormContentItemRepository_AnalyticsQueries(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormContentItemRepository(db)
	ctx := context.Background()

	publish := func(platform social.Platform, engagement int64) {
		item := newDraftItem(t, platform, "Published content.")
		require.NoError(t, item.Schedule(time.Now()))
		require.NoError(t, item.BeginPublish())
		require.NoError(t, item.MarkPublished("ext-"+uuid.NewString()[:8], engagement))
		require.NoError(t, repo.Save(ctx, item))
	}

	publish(social.PlatformInstagram, 120)
	publish(social.PlatformInstagram, 80)
	publish(social.PlatformTwitter, 40)

	draft := newDraftItem(t, social.PlatformFacebook, "Unpublished.")
	require.NoError(t, repo.Save(ctx, draft))

	t.Run("CountByStatus", func(t *testing.T) {
		count, err := repo.CountByStatus(ctx, content.StatusPublished)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("CountPublishedByPlatform", func(t *testing.T) {
		counts, err := repo.CountPublishedByPlatform(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts[social.PlatformInstagram])
		assert.Equal(t, int64(1), counts[social.PlatformTwitter])
		assert.NotContains(t, counts, social.PlatformFacebook)
	})

	t.Run("SumEngagementPublished", func(t *testing.T) {
		total, err := repo.SumEngagementPublished(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(240), total)
	})

	t.Run("Count with filter", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters = map[string]interface{}{"platform": social.PlatformInstagram}

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormContentItemRepository_Delete(t *testing.T) {
	db := setupItemTestDB(t)
	repo := NewGormContentItemRepository(db)
	ctx := context.Background()

	item := newDraftItem(t, social.PlatformInstagram, "To be removed.")
	require.NoError(t, repo.Save(ctx, item))

	require.NoError(t, repo.Delete(ctx, item.ID))

	_, err := repo.FindByID(ctx, item.ID)
	assert.Equal(t, shared.ErrNotFound, err)

	err = repo.Delete(ctx, item.ID)
	assert.Equal(t, shared.ErrNotFound, err)
}
