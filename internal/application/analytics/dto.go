package analytics

// SummaryResponse represents the on-demand analytics snapshot
type SummaryResponse struct {
	TotalPosts      int64            `json:"total_posts"`
	PublishedPosts  int64            `json:"published_posts"`
	TotalEngagement int64            `json:"total_engagement"`
	FollowersGrowth int64            `json:"followers_growth"`
	TopPlatform     string           `json:"top_platform"`
	PostsByPlatform map[string]int64 `json:"posts_by_platform"`
}
