package repository

import (
	"context"
	"errors"

	"flexreviews/internal/app/reviews/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review with this hostaway id already exists")
)

// ReviewRepository определяет методы для работы с отзывами в MongoDB
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByHostawayID(ctx context.Context, hostawayID int64) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id string) error

	BulkUpsert(ctx context.Context, reviews []entity.Review) (inserted, updated int, err error)
	BulkApprove(ctx context.Context, ids []string, approvedBy string) (int64, error)

	FindWithFilters(ctx context.Context, f entity.ReviewFilter, sortBy, sortOrder string, page, limit int) ([]entity.Review, int64, error)
	FindApprovedForPublic(ctx context.Context, listingID string, limit int) ([]entity.Review, error)
	FindPendingApproval(ctx context.Context, f entity.AnalyticsFilter, limit int) ([]entity.Review, error)
	Count(ctx context.Context, f entity.ReviewFilter) (int64, error)

	AggregateStatistics(ctx context.Context) (*entity.StatisticsReport, error)
	AggregateOverview(ctx context.Context, f entity.AnalyticsFilter) (*entity.OverviewStats, error)
	AggregateByChannel(ctx context.Context, f entity.AnalyticsFilter) ([]entity.ChannelStats, error)
	AggregateByProperty(ctx context.Context, f entity.AnalyticsFilter) ([]entity.PropertyBreakdown, error)
	AggregateByCategory(ctx context.Context, f entity.AnalyticsFilter) ([]entity.CategoryStats, error)
	Trend(ctx context.Context, f entity.AnalyticsFilter, days int) ([]entity.TrendPoint, error)
}
