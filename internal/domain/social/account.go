package social

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/rarerevisit/backend/internal/domain/shared"
)

// SocialAccount represents the operator's connection to a single platform
// It is the aggregate root for connection operations; one account exists
// per platform
type SocialAccount struct {
	shared.BaseAggregateRoot
	Platform        Platform   `gorm:"type:varchar(20);not null;uniqueIndex"`
	Connected       bool       `gorm:"not null;default:false"`
	Credentials     string     `gorm:"type:jsonb"` // JSON object, values never exposed
	Followers       int64      `gorm:"not null;default:0"`
	FollowersGrowth int64      `gorm:"not null;default:0"`
	LastSyncAt      *time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (SocialAccount) TableName() string {
	return "social_accounts"
}

// NewSocialAccount creates a disconnected account for a platform
func NewSocialAccount(platform Platform) (*SocialAccount, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown platform: "+platform.String())
	}

	account := &SocialAccount{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Platform:          platform,
		Connected:         false,
		Credentials:       "{}",
	}

	return account, nil
}

// Connect stores credentials and marks the account connected
// Every credential field the platform requires must be present and non-blank
func (a *SocialAccount) Connect(credentials map[string]string) error {
	config, ok := a.Platform.Config()
	if !ok {
		return shared.NewDomainError("INVALID_PLATFORM", "Unknown platform: "+a.Platform.String())
	}

	for _, field := range config.RequiredCreds {
		if strings.TrimSpace(credentials[field]) == "" {
			return shared.NewDomainError("INVALID_CREDENTIALS", "Missing required credential field: "+field)
		}
	}

	data, err := json.Marshal(credentials)
	if err != nil {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Credentials must be serializable")
	}

	a.Credentials = string(data)
	a.Connected = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAccountConnectedEvent(a))

	return nil
}

// Disconnect clears credentials and marks the account disconnected
func (a *SocialAccount) Disconnect() {
	a.Credentials = "{}"
	a.Connected = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	a.AddDomainEvent(NewAccountDisconnectedEvent(a))
}

// RecordSync updates the synced follower counters
func (a *SocialAccount) RecordSync(followers, growth int64) {
	now := time.Now()
	a.Followers = followers
	a.FollowersGrowth = growth
	a.LastSyncAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
}

// GetCredentials returns the stored credential map
func (a *SocialAccount) GetCredentials() map[string]string {
	credentials := map[string]string{}
	if a.Credentials == "" {
		return credentials
	}
	if err := json.Unmarshal([]byte(a.Credentials), &credentials); err != nil {
		return map[string]string{}
	}
	return credentials
}

// CredentialFields returns the names of the stored credential fields, sorted
// Responses expose field names only, never values
func (a *SocialAccount) CredentialFields() []string {
	credentials := a.GetCredentials()
	fields := make([]string, 0, len(credentials))
	for field := range credentials {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
