package analytics

import (
	"context"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// SummaryService computes analytics on demand from the live stores
// Results always reflect the latest completed operations; nothing is cached
type SummaryService struct {
	itemRepo    content.ItemRepository
	accountRepo social.AccountRepository
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(itemRepo content.ItemRepository, accountRepo social.AccountRepository) *SummaryService {
	return &SummaryService{
		itemRepo:    itemRepo,
		accountRepo: accountRepo,
	}
}

// Summarize produces the current analytics snapshot
func (s *SummaryService) Summarize(ctx context.Context) (*SummaryResponse, error) {
	totalPosts, err := s.itemRepo.Count(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	publishedPosts, err := s.itemRepo.CountByStatus(ctx, content.StatusPublished)
	if err != nil {
		return nil, err
	}

	totalEngagement, err := s.itemRepo.SumEngagementPublished(ctx)
	if err != nil {
		return nil, err
	}

	byPlatform, err := s.itemRepo.CountPublishedByPlatform(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	var followersGrowth int64
	for i := range accounts {
		followersGrowth += accounts[i].FollowersGrowth
	}

	postsByPlatform := make(map[string]int64, len(social.AllPlatforms()))
	for _, platform := range social.AllPlatforms() {
		postsByPlatform[platform.String()] = byPlatform[platform]
	}

	return &SummaryResponse{
		TotalPosts:      totalPosts,
		PublishedPosts:  publishedPosts,
		TotalEngagement: totalEngagement,
		FollowersGrowth: followersGrowth,
		TopPlatform:     topPlatform(byPlatform).String(),
		PostsByPlatform: postsByPlatform,
	}, nil
}

// topPlatform picks the platform with the most published items
// Ties break toward the lower canonical ordinal, so with no published items
// at all the first platform wins
func topPlatform(counts map[social.Platform]int64) social.Platform {
	best := social.AllPlatforms()[0]
	bestCount := counts[best]
	for _, platform := range social.AllPlatforms()[1:] {
		if counts[platform] > bestCount {
			best = platform
			bestCount = counts[platform]
		}
	}
	return best
}
