package content

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rarerevisit/backend/internal/domain/social"
)

func newDraft(t *testing.T) *ContentItem {
	t.Helper()
	item, err := NewContentItem(social.PlatformInstagram, "Golden hour, bottled.", ToneElegant, nil)
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func TestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusScheduled, true},
		{StatusDraft, StatusPublishing, false},
		{StatusDraft, StatusPublished, false},
		{StatusScheduled, StatusPublishing, true},
		{StatusScheduled, StatusPublished, false},
		{StatusScheduled, StatusDraft, false},
		{StatusPublishing, StatusPublished, true},
		{StatusPublishing, StatusFailed, true},
		{StatusPublishing, StatusScheduled, false},
		{StatusFailed, StatusScheduled, true},
		{StatusFailed, StatusPublishing, false},
		{StatusPublished, StatusScheduled, false},
		{StatusPublished, StatusFailed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestNewContentItem(t *testing.T) {
	t.Run("creates draft", func(t *testing.T) {
		productID := uuid.New()
		item, err := NewContentItem(social.PlatformTwitter, "New drop.", TonePlayful, &productID)
		require.NoError(t, err)

		assert.Equal(t, StatusDraft, item.Status)
		assert.Equal(t, social.PlatformTwitter, item.Platform)
		assert.Equal(t, TonePlayful, item.Tone)
		assert.Equal(t, &productID, item.ProductID)
		assert.Nil(t, item.ScheduledAt)
		assert.Nil(t, item.PublishedAt)
		assert.Nil(t, item.GetLastError())

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeContentDrafted, events[0].EventType())
	})

	t.Run("rejects blank body", func(t *testing.T) {
		_, err := NewContentItem(social.PlatformInstagram, "   \n\t", ToneElegant, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("rejects unknown platform", func(t *testing.T) {
		_, err := NewContentItem(social.Platform("myspace"), "hello", ToneElegant, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown platform")
	})

	t.Run("rejects unknown tone", func(t *testing.T) {
		_, err := NewContentItem(social.PlatformInstagram, "hello", Tone("sassy"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unknown tone")
	})

	t.Run("enforces platform body limit", func(t *testing.T) {
		long := strings.Repeat("x", 281)
		_, err := NewContentItem(social.PlatformTwitter, long, TonePlayful, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "character limit")
	})
}

func TestContentItemUpdateBody(t *testing.T) {
	t.Run("edits draft body", func(t *testing.T) {
		item := newDraft(t)
		require.NoError(t, item.UpdateBody("Rewritten caption."))
		assert.Equal(t, "Rewritten caption.", item.Body)
	})

	t.Run("rejects edit after scheduling", func(t *testing.T) {
		item := newDraft(t)
		require.NoError(t, item.Schedule(time.Now().Add(time.Hour)))

		err := item.UpdateBody("too late")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scheduled")
	})
}

func TestContentItemSchedule(t *testing.T) {
	t.Run("schedules draft for the future", func(t *testing.T) {
		item := newDraft(t)
		at := time.Now().Add(2 * time.Hour)

		require.NoError(t, item.Schedule(at))

		assert.Equal(t, StatusScheduled, item.Status)
		require.NotNil(t, item.ScheduledAt)
		assert.True(t, item.ScheduledAt.Equal(at))

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeContentScheduled, events[0].EventType())
	})

	t.Run("normalizes past time to now", func(t *testing.T) {
		item := newDraft(t)
		before := time.Now()

		require.NoError(t, item.Schedule(before.Add(-time.Hour)))

		require.NotNil(t, item.ScheduledAt)
		assert.False(t, item.ScheduledAt.Before(before))
	})

	t.Run("normalizes zero time to now", func(t *testing.T) {
		item := newDraft(t)
		before := time.Now()

		require.NoError(t, item.Schedule(time.Time{}))

		require.NotNil(t, item.ScheduledAt)
		assert.False(t, item.ScheduledAt.Before(before))
	})

	t.Run("rejects scheduling a published item", func(t *testing.T) {
		item := publishedItem(t)
		err := item.Schedule(time.Now())
		require.Error(t, err)
	})
}

func TestContentItemPublishFlow(t *testing.T) {
	t.Run("full success path", func(t *testing.T) {
		item := newDraft(t)
		require.NoError(t, item.Schedule(time.Now()))
		require.NoError(t, item.BeginPublish())
		assert.Equal(t, StatusPublishing, item.Status)

		item.ClearDomainEvents()
		require.NoError(t, item.MarkPublished("ig_post_42", 128))

		assert.Equal(t, StatusPublished, item.Status)
		assert.Equal(t, "ig_post_42", item.ExternalRef)
		assert.Equal(t, int64(128), item.Engagement)
		assert.Nil(t, item.ScheduledAt)
		assert.Nil(t, item.GetLastError())
		require.NotNil(t, item.PublishedAt)

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeContentPublished, events[0].EventType())
	})

	t.Run("cannot publish straight from draft", func(t *testing.T) {
		item := newDraft(t)
		err := item.BeginPublish()
		require.Error(t, err)
	})

	t.Run("failure records the cause", func(t *testing.T) {
		item := newDraft(t)
		require.NoError(t, item.Schedule(time.Now()))
		require.NoError(t, item.BeginPublish())

		item.ClearDomainEvents()
		require.NoError(t, item.MarkFailed(FailureCauseNetwork, "connection reset"))

		assert.Equal(t, StatusFailed, item.Status)
		assert.Nil(t, item.ScheduledAt)

		record := item.GetLastError()
		require.NotNil(t, record)
		assert.Equal(t, FailureCauseNetwork, record.Cause)
		assert.Equal(t, "connection reset", record.Message)
		assert.False(t, record.OccurredAt.IsZero())

		events := item.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeContentPublishFailed, events[0].EventType())
	})

	t.Run("requeue then success clears the error", func(t *testing.T) {
		item := newDraft(t)
		require.NoError(t, item.Schedule(time.Now()))
		require.NoError(t, item.BeginPublish())
		require.NoError(t, item.MarkFailed(FailureCauseRateLimit, "429"))

		require.NoError(t, item.Requeue(time.Now().Add(time.Minute)))
		assert.Equal(t, StatusScheduled, item.Status)
		assert.NotNil(t, item.GetLastError(), "error record survives until the next outcome")

		require.NoError(t, item.BeginPublish())
		require.NoError(t, item.MarkPublished("ig_post_7", 5))
		assert.Nil(t, item.GetLastError())
	})

	t.Run("requeue rejected outside failed", func(t *testing.T) {
		item := newDraft(t)
		err := item.Requeue(time.Now())
		require.Error(t, err)
	})

	t.Run("published is terminal", func(t *testing.T) {
		item := publishedItem(t)
		require.Error(t, item.BeginPublish())
		require.Error(t, item.MarkFailed(FailureCauseUnknown, "x"))
		require.Error(t, item.Schedule(time.Now()))
	})
}

func publishedItem(t *testing.T) *ContentItem {
	t.Helper()
	item := newDraft(t)
	require.NoError(t, item.Schedule(time.Now()))
	require.NoError(t, item.BeginPublish())
	require.NoError(t, item.MarkPublished("ref", 0))
	return item
}

func TestClassifyPublishError(t *testing.T) {
	t.Run("extracts cause from PublishError", func(t *testing.T) {
		err := NewPublishError(FailureCauseAuth, "token expired", nil)
		cause, message := ClassifyPublishError(err)
		assert.Equal(t, FailureCauseAuth, cause)
		assert.Equal(t, "token expired", message)
	})

	t.Run("extracts cause through wrapping", func(t *testing.T) {
		inner := NewPublishError(FailureCauseRateLimit, "slow down", errors.New("429"))
		cause, _ := ClassifyPublishError(wrapErr{inner})
		assert.Equal(t, FailureCauseRateLimit, cause)
	})

	t.Run("unclassified errors are unknown", func(t *testing.T) {
		cause, message := ClassifyPublishError(errors.New("boom"))
		assert.Equal(t, FailureCauseUnknown, cause)
		assert.Equal(t, "boom", message)
	})
}

type wrapErr struct{ err error }

func (w wrapErr) Error() string { return "wrapped: " + w.err.Error() }
func (w wrapErr) Unwrap() error { return w.err }
