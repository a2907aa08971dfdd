package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/rarerevisit/backend/internal/domain/catalog"
	"github.com/rarerevisit/backend/internal/domain/content"
	"github.com/rarerevisit/backend/internal/domain/shared"
	"github.com/rarerevisit/backend/internal/domain/social"
	"github.com/rarerevisit/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

// MockProductRepository implements catalog.ProductRepository for testing
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository implements content.ItemRepository for testing
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

// MockAccountRepository implements social.AccountRepository for testing
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

// MockGenerator implements content.Generator for testing
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, req content.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// stubPublisher implements content.Publisher for a single platform
type stubPublisher struct {
	platform social.Platform
	result   content.PublishResult
	err      error
}

func (p *stubPublisher) Platform() social.Platform {
	return p.platform
}

func (p *stubPublisher) Publish(ctx context.Context, req content.PublishRequest) (content.PublishResult, error) {
	if p.err != nil {
		return content.PublishResult{}, p.err
	}
	return p.result, nil
}

// stubResolver resolves publishers from a fixed set
type stubResolver struct {
	publishers map[social.Platform]content.Publisher
}

func (r *stubResolver) For(platform social.Platform) (content.Publisher, bool) {
	p, ok := r.publishers[platform]
	return p, ok
}

func setupTestRouter() *gin.Engine {
	return gin.New()
}
