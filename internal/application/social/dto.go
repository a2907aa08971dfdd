package social

import (
	"time"

	"github.com/google/uuid"

	"github.com/rarerevisit/backend/internal/domain/social"
)

// ConnectAccountRequest represents a request to connect a platform account
type ConnectAccountRequest struct {
	Credentials map[string]string `json:"credentials" binding:"required"`
}

// AccountResponse represents a social account in API responses
// Credential values are never exposed, only the field names on file
type AccountResponse struct {
	ID               uuid.UUID  `json:"id"`
	Platform         string     `json:"platform"`
	DisplayName      string     `json:"display_name"`
	Connected        bool       `json:"connected"`
	CredentialFields []string   `json:"credential_fields"`
	RequiredFields   []string   `json:"required_fields"`
	Followers        int64      `json:"followers"`
	FollowersGrowth  int64      `json:"followers_growth"`
	LastSyncAt       *time.Time `json:"last_sync_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// ToAccountResponse converts a domain SocialAccount to AccountResponse
func ToAccountResponse(a *social.SocialAccount) AccountResponse {
	required := []string{}
	displayName := a.Platform.String()
	if config, ok := a.Platform.Config(); ok {
		required = config.RequiredCreds
		displayName = config.DisplayName
	}
	return AccountResponse{
		ID:               a.ID,
		Platform:         a.Platform.String(),
		DisplayName:      displayName,
		Connected:        a.Connected,
		CredentialFields: a.CredentialFields(),
		RequiredFields:   required,
		Followers:        a.Followers,
		FollowersGrowth:  a.FollowersGrowth,
		LastSyncAt:       a.LastSyncAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
