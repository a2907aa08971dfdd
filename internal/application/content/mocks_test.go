package content

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
)

// MockItemRepository is a mock implementation of content.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.ContentItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ContentItem), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]content.ContentItem, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]content.ContentItem), args.Error(1)
}

func (m *MockItemRepository) FindDue(ctx context.Context, now time.Time) ([]content.ContentItem, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]content.ContentItem), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *content.ContentItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) ClaimForPublishing(ctx context.Context, id uuid.UUID) (*content.ContentItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*content.ContentItem), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountByStatus(ctx context.Context, status content.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) CountPublishedByPlatform(ctx context.Context) (map[social.Platform]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[social.Platform]int64), args.Error(1)
}

func (m *MockItemRepository) SumEngagementPublished(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockAccountRepository is a mock implementation of social.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*social.SocialAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.SocialAccount), args.Error(1)
}

func (m *MockAccountRepository) FindByPlatform(ctx context.Context, platform social.Platform) (*social.SocialAccount, error) {
	args := m.Called(ctx, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*social.SocialAccount), args.Error(1)
}

func (m *MockAccountRepository) FindAll(ctx context.Context) ([]social.SocialAccount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]social.SocialAccount), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *social.SocialAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) CountConnected(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockGenerator is a mock implementation of content.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req content.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockPublisher is a mock implementation of content.Publisher
type MockPublisher struct {
	mock.Mock
	platform social.Platform
}

func (m *MockPublisher) Platform() social.Platform {
	return m.platform
}

func (m *MockPublisher) Publish(ctx context.Context, req content.PublishRequest) (content.PublishResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(content.PublishResult), args.Error(1)
}

// staticResolver resolves every platform to the same publisher
type staticResolver struct {
	publisher content.Publisher
}

func (r staticResolver) For(social.Platform) (content.Publisher, bool) {
	if r.publisher == nil {
		return nil, false
	}
	return r.publisher, true
}

func connectedAccount(platform social.Platform) *social.SocialAccount {
	account, _ := social.NewSocialAccount(platform)
	credentials := map[string]string{}
	if config, ok := platform.Config(); ok {
		for _, field := range config.RequiredCreds {
			credentials[field] = "test-" + field
		}
	}
	_ = account.Connect(credentials)
	account.ClearDomainEvents()
	return account
}

func disconnectedAccount(platform social.Platform) *social.SocialAccount {
	account, _ := social.NewSocialAccount(platform)
	return account
}
