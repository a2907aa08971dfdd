package publisher

import (
	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// Registry holds one publisher per platform
type Registry struct {
	publishers map[social.Platform]content.Publisher
}

// NewRegistry creates an empty publisher registry
func NewRegistry() *Registry {
	return &Registry{
		publishers: make(map[social.Platform]content.Publisher),
	}
}

// Register adds a publisher keyed by its platform
func (r *Registry) Register(p content.Publisher) {
	r.publishers[p.Platform()] = p
}

// For returns the publisher for a platform
func (r *Registry) For(platform social.Platform) (content.Publisher, bool) {
	p, ok := r.publishers[platform]
	return p, ok
}

// Platforms returns the platforms with a registered publisher
func (r *Registry) Platforms() []social.Platform {
	platforms := make([]social.Platform, 0, len(r.publishers))
	for _, p := range social.AllPlatforms() {
		if _, ok := r.publishers[p]; ok {
			platforms = append(platforms, p)
		}
	}
	return platforms
}
