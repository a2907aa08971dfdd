package social

// Platform identifies a supported social network
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformPinterest Platform = "pinterest"
	PlatformTwitter   Platform = "twitter"
)

// AllPlatforms returns every supported platform in canonical order
func AllPlatforms() []Platform {
	return []Platform{PlatformInstagram, PlatformFacebook, PlatformPinterest, PlatformTwitter}
}

// IsValid returns true if the platform is one of the supported networks
func (p Platform) IsValid() bool {
	switch p {
	case PlatformInstagram, PlatformFacebook, PlatformPinterest, PlatformTwitter:
		return true
	}
	return false
}

// Ordinal returns the platform's position in canonical order
// Unknown platforms sort last
func (p Platform) Ordinal() int {
	for i, candidate := range AllPlatforms() {
		if p == candidate {
			return i
		}
	}
	return len(AllPlatforms())
}

func (p Platform) String() string {
	return string(p)
}

// PlatformConfig describes the fixed integration profile of a platform
type PlatformConfig struct {
	Platform      Platform
	DisplayName   string
	RequiredCreds []string
	MaxBodyLength int
}

var platformConfigs = map[Platform]PlatformConfig{
	PlatformInstagram: {
		Platform:      PlatformInstagram,
		DisplayName:   "Instagram",
		RequiredCreds: []string{"access_token", "business_account_id"},
		MaxBodyLength: 2200,
	},
	PlatformFacebook: {
		Platform:      PlatformFacebook,
		DisplayName:   "Facebook",
		RequiredCreds: []string{"access_token", "page_id"},
		MaxBodyLength: 63206,
	},
	PlatformPinterest: {
		Platform:      PlatformPinterest,
		DisplayName:   "Pinterest",
		RequiredCreds: []string{"access_token", "board_id"},
		MaxBodyLength: 500,
	},
	PlatformTwitter: {
		Platform:      PlatformTwitter,
		DisplayName:   "X (Twitter)",
		RequiredCreds: []string{"api_key", "api_secret", "access_token", "access_token_secret"},
		MaxBodyLength: 280,
	},
}

// Config returns the integration profile for the platform
// The second return value is false for unknown platforms
func (p Platform) Config() (PlatformConfig, bool) {
	config, ok := platformConfigs[p]
	return config, ok
}
