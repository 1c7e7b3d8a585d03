package mocks

import (
	"context"
	"time"

	"flexreviews/internal/app/reviews/entity"

	"github.com/stretchr/testify/mock"
)

// MockReviewRepository мок для ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByHostawayID(ctx context.Context, hostawayID int64) (*entity.Review, error) {
	args := m.Called(ctx, hostawayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) BulkUpsert(ctx context.Context, reviews []entity.Review) (int, int, error) {
	args := m.Called(ctx, reviews)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) BulkApprove(ctx context.Context, ids []string, approvedBy string) (int64, error) {
	args := m.Called(ctx, ids, approvedBy)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) FindWithFilters(ctx context.Context, f entity.ReviewFilter, sortBy, sortOrder string, page, limit int) ([]entity.Review, int64, error) {
	args := m.Called(ctx, f, sortBy, sortOrder, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) FindApprovedForPublic(ctx context.Context, listingID string, limit int) ([]entity.Review, error) {
	args := m.Called(ctx, listingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) FindPendingApproval(ctx context.Context, f entity.AnalyticsFilter, limit int) ([]entity.Review, error) {
	args := m.Called(ctx, f, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewRepository) Count(ctx context.Context, f entity.ReviewFilter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) AggregateStatistics(ctx context.Context) (*entity.StatisticsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StatisticsReport), args.Error(1)
}

func (m *MockReviewRepository) AggregateOverview(ctx context.Context, f entity.AnalyticsFilter) (*entity.OverviewStats, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OverviewStats), args.Error(1)
}

func (m *MockReviewRepository) AggregateByChannel(ctx context.Context, f entity.AnalyticsFilter) ([]entity.ChannelStats, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ChannelStats), args.Error(1)
}

func (m *MockReviewRepository) AggregateByProperty(ctx context.Context, f entity.AnalyticsFilter) ([]entity.PropertyBreakdown, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.PropertyBreakdown), args.Error(1)
}

func (m *MockReviewRepository) AggregateByCategory(ctx context.Context, f entity.AnalyticsFilter) ([]entity.CategoryStats, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.CategoryStats), args.Error(1)
}

func (m *MockReviewRepository) Trend(ctx context.Context, f entity.AnalyticsFilter, days int) ([]entity.TrendPoint, error) {
	args := m.Called(ctx, f, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TrendPoint), args.Error(1)
}

// MockMessagePublisher мок для Kafka MessagePublisher
type MockMessagePublisher struct {
	mock.Mock
	Messages [][]byte
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	m.Messages = append(m.Messages, value)
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockCache мок для кеша с учетом инвалидированных префиксов
type MockCache struct {
	mock.Mock
	Invalidated []string
}

func (m *MockCache) Get(ctx context.Context, prefix, key string, dst any) bool {
	args := m.Called(ctx, prefix, key, dst)
	return args.Bool(0)
}

func (m *MockCache) Set(ctx context.Context, prefix, key string, v any, ttl time.Duration) {
	m.Called(ctx, prefix, key, v, ttl)
}

func (m *MockCache) Invalidate(ctx context.Context, prefixes ...string) {
	m.Invalidated = append(m.Invalidated, prefixes...)
	m.Called(ctx, prefixes)
}

// MockChannelClient мок для клиента Hostaway
type MockChannelClient struct {
	mock.Mock
}

func (m *MockChannelClient) FetchRawReviews(ctx context.Context) ([]entity.HostawayReview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.HostawayReview), args.Error(1)
}
