package processor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"flexreviews/internal/app/reviews/entity"
)

// MockReviewService мок для ReviewServiceInterface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) SyncFromChannel(ctx context.Context) (*entity.SyncResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SyncResponse), args.Error(1)
}

func (m *MockReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	args := m.Called(ctx, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context, f entity.ReviewFilter, sortBy, sortOrder string, page, limit int) (*entity.ReviewListResponse, error) {
	args := m.Called(ctx, f, sortBy, sortOrder, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ReviewListResponse), args.Error(1)
}

func (m *MockReviewService) GetPublicReviews(ctx context.Context, listingID string, limit int) ([]entity.Review, error) {
	args := m.Called(ctx, listingID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Review), args.Error(1)
}

func (m *MockReviewService) GetStatistics(ctx context.Context) (*entity.StatisticsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.StatisticsReport), args.Error(1)
}

func (m *MockReviewService) GetTrend(ctx context.Context, days int) (*entity.TrendReport, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TrendReport), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, reviewID string, req *entity.UpdateReviewRequest) (*entity.Review, error) {
	args := m.Called(ctx, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) ApproveReview(ctx context.Context, idOrExternal, approvedBy string, managerNotes *string) (*entity.Review, error) {
	args := m.Called(ctx, idOrExternal, approvedBy, managerNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewService) BulkApproveReviews(ctx context.Context, ids []string, approvedBy string) (*entity.BulkApproveResponse, error) {
	args := m.Called(ctx, ids, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BulkApproveResponse), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, reviewID string) error {
	args := m.Called(ctx, reviewID)
	return args.Error(0)
}

func (m *MockReviewService) SyncReviews(ctx context.Context, raw []entity.HostawayReview) (*entity.SyncResponse, error) {
	args := m.Called(ctx, raw)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SyncResponse), args.Error(1)
}

func TestSyncScheduler_Start_RunsInitialSync(t *testing.T) {
	mockSvc := new(MockReviewService)
	scheduler := NewSyncScheduler(mockSvc)

	mockSvc.On("SyncFromChannel", mock.Anything).
		Return(&entity.SyncResponse{Inserted: 5, Source: "hostaway"}, nil)

	err := scheduler.Start(context.Background(), "0 * * * *")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)
	mockSvc.AssertCalled(t, "SyncFromChannel", mock.Anything)

	scheduler.Stop()
}

func TestSyncScheduler_Start_InvalidSchedule(t *testing.T) {
	scheduler := NewSyncScheduler(new(MockReviewService))

	err := scheduler.Start(context.Background(), "not a cron expression")

	assert.Error(t, err)
}

func TestSyncScheduler_InitialSyncErrorDoesNotFailStart(t *testing.T) {
	mockSvc := new(MockReviewService)
	scheduler := NewSyncScheduler(mockSvc)

	mockSvc.On("SyncFromChannel", mock.Anything).Return(nil, errors.New("channel down"))

	err := scheduler.Start(context.Background(), "0 * * * *")

	assert.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)

	scheduler.Stop()
}

func TestSyncScheduler_PeriodicExecution(t *testing.T) {
	mockSvc := new(MockReviewService)
	scheduler := NewSyncScheduler(mockSvc)

	mockSvc.On("SyncFromChannel", mock.Anything).
		Return(&entity.SyncResponse{Source: "hostaway"}, nil)

	err := scheduler.Start(context.Background(), "@every 100ms")
	assert.NoError(t, err)

	time.Sleep(350 * time.Millisecond)
	scheduler.Stop()

	// Минимум стартовый прогон плюс срабатывания по расписанию
	assert.GreaterOrEqual(t, len(mockSvc.Calls), 2)
}
