package service

import (
	"context"

	"flexreviews/internal/app/reviews/entity"
)

// ReviewServiceInterface - контракт сервиса отзывов для handlers и тестов
type ReviewServiceInterface interface {
	CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error)
	GetReview(ctx context.Context, reviewID string) (*entity.Review, error)
	ListReviews(ctx context.Context, f entity.ReviewFilter, sortBy, sortOrder string, page, limit int) (*entity.ReviewListResponse, error)
	GetPublicReviews(ctx context.Context, listingID string, limit int) ([]entity.Review, error)
	GetStatistics(ctx context.Context) (*entity.StatisticsReport, error)
	GetTrend(ctx context.Context, days int) (*entity.TrendReport, error)
	UpdateReview(ctx context.Context, reviewID string, req *entity.UpdateReviewRequest) (*entity.Review, error)
	ApproveReview(ctx context.Context, idOrExternal, approvedBy string, managerNotes *string) (*entity.Review, error)
	BulkApproveReviews(ctx context.Context, ids []string, approvedBy string) (*entity.BulkApproveResponse, error)
	DeleteReview(ctx context.Context, reviewID string) error
	SyncReviews(ctx context.Context, raw []entity.HostawayReview) (*entity.SyncResponse, error)
	SyncFromChannel(ctx context.Context) (*entity.SyncResponse, error)
}

// AnalyticsServiceInterface - контракт сервиса аналитики
type AnalyticsServiceInterface interface {
	Summary(ctx context.Context, f entity.AnalyticsFilter) (*entity.SummaryReport, error)
	PropertyBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.PropertyBreakdownReport, error)
	ChannelBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.ChannelBreakdownReport, error)
	Trends(ctx context.Context, f entity.AnalyticsFilter) (*entity.TrendReport, error)
	CategoryBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.CategoryBreakdownReport, error)
	Insights(ctx context.Context, f entity.AnalyticsFilter) (*entity.InsightsReport, error)
}
