package social

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for social account persistence
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SocialAccount, error)

	// FindByPlatform finds the account for a platform
	FindByPlatform(ctx context.Context, platform Platform) (*SocialAccount, error)

	// FindAll returns every account in canonical platform order
	FindAll(ctx context.Context) ([]SocialAccount, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *SocialAccount) error

	// CountConnected counts the accounts currently connected
	CountConnected(ctx context.Context) (int64, error)
}
