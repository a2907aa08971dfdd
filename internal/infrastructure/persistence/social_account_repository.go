package persistence

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
	"gorm.io/gorm"
)

// GormSocialAccountRepository implements AccountRepository using GORM
type GormSocialAccountRepository struct {
	db *gorm.DB
}

// NewGormSocialAccountRepository creates a new GormSocialAccountRepository
func NewGormSocialAccountRepository(db *gorm.DB) *GormSocialAccountRepository {
	return &GormSocialAccountRepository{db: db}
}

// FindByID finds an account by its ID
func (r *GormSocialAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.SocialAccount, error) {
	var account social.SocialAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByPlatform finds the account for a platform
func (r *GormSocialAccountRepository) FindByPlatform(ctx context.Context, platform social.Platform) (*social.SocialAccount, error) {
	var account social.SocialAccount
	if err := r.db.WithContext(ctx).First(&account, "platform = ?", platform).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll returns every account in canonical platform order
func (r *GormSocialAccountRepository) FindAll(ctx context.Context) ([]social.SocialAccount, error) {
	var accounts []social.SocialAccount
	if err := r.db.WithContext(ctx).Find(&accounts).Error; err != nil {
		return nil, err
	}

	// Canonical order is defined by the platform enum, not the database
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Platform.Ordinal() < accounts[j].Platform.Ordinal()
	})
	return accounts, nil
}

// Save creates or updates an account
func (r *GormSocialAccountRepository) Save(ctx context.Context, account *social.SocialAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// CountConnected counts the accounts currently connected
func (r *GormSocialAccountRepository) CountConnected(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&social.SocialAccount{}).
		Where("connected = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSocialAccountRepository implements AccountRepository
var _ social.AccountRepository = (*GormSocialAccountRepository)(nil)
