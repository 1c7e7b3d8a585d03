package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"flexreviews/internal/app/reviews/cache"
	"flexreviews/internal/app/reviews/entity"
	"flexreviews/internal/app/reviews/repository"
	"flexreviews/internal/app/reviews/repository/mocks"
)

func ptr[T any](v T) *T { return &v }

func newTestService() (*ReviewService, *mocks.MockReviewRepository, *mocks.MockCache, *mocks.MockMessagePublisher, *mocks.MockChannelClient) {
	reviewRepo := new(mocks.MockReviewRepository)
	cacheClient := new(mocks.MockCache)
	producer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	channel := new(mocks.MockChannelClient)

	svc := NewReviewService(reviewRepo, cacheClient, producer, channel, "")
	return svc, reviewRepo, cacheClient, producer, channel
}

func rawReview(id int64) entity.HostawayReview {
	return entity.HostawayReview{
		ID:           id,
		Type:         entity.ReviewTypeGuestToHost,
		Status:       entity.ReviewStatusPublished,
		Rating:       ptr(9.0),
		PublicReview: "Lovely flat",
		ReviewCategory: []entity.ReviewCategory{
			{Category: "cleanliness", Rating: 9},
		},
		SubmittedAt: "2023-05-01 12:00:00",
		GuestName:   "Guest",
		ListingName: "2B N1 A - 29 Shoreditch Heights",
	}
}

func TestCreateReview_Success(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	req := &entity.CreateReviewRequest{
		HostawayID:  9001,
		Type:        entity.ReviewTypeGuestToHost,
		Status:      entity.ReviewStatusPublished,
		GuestName:   "Maria",
		ListingName: "3B W1 C - 8 Soho Square",
		Categories: []entity.ReviewCategory{
			{Category: "cleanliness", Rating: 10},
			{Category: "location", Rating: 9},
		},
		SubmittedAt: time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	reviewRepo.On("GetByHostawayID", ctx, int64(9001)).Return(nil, repository.ErrReviewNotFound)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*entity.Review")).Return(nil).Run(func(args mock.Arguments) {
		review := args.Get(1).(*entity.Review)
		review.ID = primitive.NewObjectID()
	})
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.CreateReview(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, "3b-w1-c-8-soho-square", result.ListingID)
	assert.Equal(t, entity.DefaultChannel, result.Channel)
	reviewRepo.AssertExpectations(t)
}

func TestCreateReview_DuplicateFastPath(t *testing.T) {
	svc, reviewRepo, _, _, _ := newTestService()
	ctx := context.Background()

	existing := &entity.Review{ID: primitive.NewObjectID(), HostawayID: 9001}
	reviewRepo.On("GetByHostawayID", ctx, int64(9001)).Return(existing, nil)

	result, err := svc.CreateReview(ctx, &entity.CreateReviewRequest{HostawayID: 9001})

	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.Nil(t, result)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Гонка двух создателей: проверка существования промахнулась,
// дубликат ловит уникальный индекс хранилища
func TestCreateReview_DuplicateAtStore(t *testing.T) {
	svc, reviewRepo, _, _, _ := newTestService()
	ctx := context.Background()

	reviewRepo.On("GetByHostawayID", ctx, int64(9001)).Return(nil, repository.ErrReviewNotFound)
	reviewRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateReview)

	result, err := svc.CreateReview(ctx, &entity.CreateReviewRequest{HostawayID: 9001})

	assert.ErrorIs(t, err, ErrDuplicateReview)
	assert.Nil(t, result)
}

func TestCreateReview_KafkaErrorIgnored(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	reviewRepo.On("GetByHostawayID", ctx, int64(9001)).Return(nil, repository.ErrReviewNotFound)
	reviewRepo.On("Create", ctx, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Review).ID = primitive.NewObjectID()
	})
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	result, err := svc.CreateReview(ctx, &entity.CreateReviewRequest{HostawayID: 9001, ListingName: "Flat"})

	assert.NoError(t, err)
	assert.NotNil(t, result)
}

func TestGetReview_NotFound(t *testing.T) {
	svc, reviewRepo, _, _, _ := newTestService()
	ctx := context.Background()

	reviewRepo.On("GetByID", ctx, "missing").Return(nil, repository.ErrReviewNotFound)

	result, err := svc.GetReview(ctx, "missing")

	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.Nil(t, result)
}

func TestListReviews_ClampsPagination(t *testing.T) {
	svc, reviewRepo, _, _, _ := newTestService()
	ctx := context.Background()

	filter := entity.ReviewFilter{Channel: "hostaway"}
	reviewRepo.On("FindWithFilters", ctx, filter, "", "", 1, 20).
		Return([]entity.Review{{HostawayID: 1}}, int64(1), nil)

	response, err := svc.ListReviews(ctx, filter, "", "", -5, 0)

	assert.NoError(t, err)
	assert.Len(t, response.Data, 1)
	assert.Equal(t, 1, response.Pagination.Page)
	assert.Equal(t, 20, response.Pagination.Limit)
	reviewRepo.AssertExpectations(t)
}

func TestGetPublicReviews_CacheHitSkipsRepository(t *testing.T) {
	svc, reviewRepo, cacheClient, _, _ := newTestService()
	ctx := context.Background()

	cached := []entity.Review{{HostawayID: 7453, IsApproved: true}}
	cacheClient.On("Get", ctx, cache.PrefixApproved, mock.Anything, mock.Anything).
		Return(true).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*[]entity.Review) = cached
		})

	reviews, err := svc.GetPublicReviews(ctx, "listing-a", 10)

	assert.NoError(t, err)
	assert.Equal(t, cached, reviews)
	reviewRepo.AssertNotCalled(t, "FindApprovedForPublic", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPublicReviews_CacheMissStoresWithPublicTTL(t *testing.T) {
	svc, reviewRepo, cacheClient, _, _ := newTestService()
	ctx := context.Background()

	fromRepo := []entity.Review{{HostawayID: 7454, IsApproved: true}}
	cacheClient.On("Get", ctx, cache.PrefixApproved, mock.Anything, mock.Anything).Return(false)
	reviewRepo.On("FindApprovedForPublic", ctx, "listing-a", 10).Return(fromRepo, nil)
	cacheClient.On("Set", ctx, cache.PrefixApproved, mock.Anything, mock.Anything, cache.PublicTTL)

	reviews, err := svc.GetPublicReviews(ctx, "listing-a", 10)

	assert.NoError(t, err)
	assert.Equal(t, fromRepo, reviews)
	cacheClient.AssertExpectations(t)
}

func TestGetStatistics_CacheHit(t *testing.T) {
	svc, reviewRepo, cacheClient, _, _ := newTestService()
	ctx := context.Background()

	generatedAt := time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC)
	cacheClient.On("Get", ctx, cache.PrefixStatistics, cache.PrefixStatistics, mock.Anything).
		Return(true).
		Run(func(args mock.Arguments) {
			report := args.Get(3).(*entity.StatisticsReport)
			report.Overview.TotalReviews = 99
			report.GeneratedAt = generatedAt
		})

	report, err := svc.GetStatistics(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(99), report.Overview.TotalReviews)
	assert.Equal(t, generatedAt, report.GeneratedAt)
	reviewRepo.AssertNotCalled(t, "AggregateStatistics", mock.Anything)
}

func TestUpdateReview_ApproveTransitionSetsMetadata(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	existing := &entity.Review{ID: primitive.NewObjectID(), HostawayID: 7453}
	reviewRepo.On("GetByID", ctx, existing.ID.Hex()).Return(existing, nil)
	reviewRepo.On("Update", ctx, mock.Anything).Return(nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	req := &entity.UpdateReviewRequest{
		IsApproved: ptr(true),
		ApprovedBy: ptr("manager-7"),
	}

	result, err := svc.UpdateReview(ctx, existing.ID.Hex(), req)

	assert.NoError(t, err)
	assert.True(t, result.IsApproved)
	assert.Equal(t, "manager-7", *result.ApprovedBy)
	assert.NotNil(t, result.ApprovedAt)
}

func TestUpdateReview_UnapproveClearsMetadata(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	approvedAt := time.Now().UTC()
	existing := &entity.Review{
		ID:         primitive.NewObjectID(),
		IsApproved: true,
		ApprovedBy: ptr("manager-7"),
		ApprovedAt: &approvedAt,
	}
	reviewRepo.On("GetByID", ctx, existing.ID.Hex()).Return(existing, nil)
	reviewRepo.On("Update", ctx, mock.Anything).Return(nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateReview(ctx, existing.ID.Hex(), &entity.UpdateReviewRequest{IsApproved: ptr(false)})

	assert.NoError(t, err)
	assert.False(t, result.IsApproved)
	assert.Nil(t, result.ApprovedBy)
	assert.Nil(t, result.ApprovedAt)
}

func TestUpdateReview_ManagerNotesDoNotTouchApproval(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	approvedAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	existing := &entity.Review{
		ID:         primitive.NewObjectID(),
		IsApproved: true,
		ApprovedBy: ptr("manager-7"),
		ApprovedAt: &approvedAt,
	}
	reviewRepo.On("GetByID", ctx, existing.ID.Hex()).Return(existing, nil)
	reviewRepo.On("Update", ctx, mock.Anything).Return(nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.UpdateReview(ctx, existing.ID.Hex(), &entity.UpdateReviewRequest{ManagerNotes: ptr("call guest")})

	assert.NoError(t, err)
	assert.Equal(t, "call guest", *result.ManagerNotes)
	assert.Equal(t, approvedAt, *result.ApprovedAt)
	assert.Equal(t, "manager-7", *result.ApprovedBy)
}

func TestApproveReview_ByHostawayID(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	existing := &entity.Review{ID: primitive.NewObjectID(), HostawayID: 7453}
	reviewRepo.On("GetByHostawayID", ctx, int64(7453)).Return(existing, nil)
	reviewRepo.On("Update", ctx, mock.Anything).Return(nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ApproveReview(ctx, "7453", "manager-1", nil)

	assert.NoError(t, err)
	assert.True(t, result.IsApproved)
	assert.Equal(t, "manager-1", *result.ApprovedBy)
	reviewRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestApproveReview_AlreadyApprovedKeepsOriginalMetadata(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	approvedAt := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	existing := &entity.Review{
		ID:         primitive.NewObjectID(),
		IsApproved: true,
		ApprovedBy: ptr("manager-1"),
		ApprovedAt: &approvedAt,
	}
	reviewRepo.On("GetByID", ctx, existing.ID.Hex()).Return(existing, nil)
	reviewRepo.On("Update", ctx, mock.Anything).Return(nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ApproveReview(ctx, existing.ID.Hex(), "manager-2", nil)

	assert.NoError(t, err)
	assert.Equal(t, "manager-1", *result.ApprovedBy)
	assert.Equal(t, approvedAt, *result.ApprovedAt)
}

func TestApproveReview_NotFound(t *testing.T) {
	svc, reviewRepo, _, _, _ := newTestService()
	ctx := context.Background()

	reviewRepo.On("GetByHostawayID", ctx, int64(404404)).Return(nil, repository.ErrReviewNotFound)

	result, err := svc.ApproveReview(ctx, "404404", "manager-1", nil)

	assert.ErrorIs(t, err, ErrReviewNotFound)
	assert.Nil(t, result)
}

func TestBulkApproveReviews(t *testing.T) {
	svc, reviewRepo, cacheClient, _, _ := newTestService()
	ctx := context.Background()

	ids := []string{"a", "b", "c"}
	reviewRepo.On("BulkApprove", ctx, ids, "admin").Return(int64(2), nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)

	response, err := svc.BulkApproveReviews(ctx, ids, "admin")

	assert.NoError(t, err)
	assert.Equal(t, int64(2), response.ModifiedCount)
}

func TestDeleteReview_InvalidatesAndPublishes(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	existing := &entity.Review{ID: primitive.NewObjectID(), HostawayID: 7453}
	reviewRepo.On("GetByID", ctx, existing.ID.Hex()).Return(existing, nil)
	reviewRepo.On("Delete", ctx, existing.ID.Hex()).Return(nil)
	cacheClient.On("Invalidate", ctx, []string{cache.PrefixStatistics, cache.PrefixApproved, cache.PrefixTrend})
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	err := svc.DeleteReview(ctx, existing.ID.Hex())

	assert.NoError(t, err)
	assert.Len(t, producer.Messages, 1)
	cacheClient.AssertExpectations(t)
}

func TestSyncReviews_EmptyBatch(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	response, err := svc.SyncReviews(context.Background(), nil)

	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Nil(t, response)
}

func TestSyncReviews_InvalidRecordRejectsBatch(t *testing.T) {
	svc, reviewRepo, _, _, _ := newTestService()

	bad := rawReview(0)
	response, err := svc.SyncReviews(context.Background(), []entity.HostawayReview{rawReview(1), bad})

	assert.ErrorIs(t, err, ErrInvalidReview)
	assert.Nil(t, response)
	reviewRepo.AssertNotCalled(t, "BulkUpsert", mock.Anything, mock.Anything)
}

func TestSyncReviews_CountsInsertedAndUpdated(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, _ := newTestService()
	ctx := context.Background()

	reviewRepo.On("BulkUpsert", ctx, mock.Anything).Return(1, 1, nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := svc.SyncReviews(ctx, []entity.HostawayReview{rawReview(1), rawReview(2)})

	assert.NoError(t, err)
	assert.Equal(t, 1, response.Inserted)
	assert.Equal(t, 1, response.Updated)
	assert.Equal(t, 2, response.Total)
	assert.Equal(t, sourceHostaway, response.Source)
}

func TestSyncFromChannel_Success(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, channel := newTestService()
	ctx := context.Background()

	channel.On("FetchRawReviews", ctx).Return([]entity.HostawayReview{rawReview(1), rawReview(2)}, nil)
	reviewRepo.On("BulkUpsert", ctx, mock.Anything).Return(2, 0, nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := svc.SyncFromChannel(ctx)

	assert.NoError(t, err)
	assert.Equal(t, sourceHostaway, response.Source)
	assert.Equal(t, 2, response.Inserted)
}

func TestSyncFromChannel_FallbackOnError(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, channel := newTestService()
	ctx := context.Background()

	channel.On("FetchRawReviews", ctx).Return(nil, errors.New("hostaway 500"))
	reviewRepo.On("BulkUpsert", ctx, mock.MatchedBy(func(reviews []entity.Review) bool {
		return len(reviews) == 5
	})).Return(5, 0, nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := svc.SyncFromChannel(ctx)

	assert.NoError(t, err)
	assert.Equal(t, sourceFallback, response.Source)
	assert.Equal(t, 5, response.Inserted)
}

func TestSyncFromChannel_FallbackOnEmptyResult(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, channel := newTestService()
	ctx := context.Background()

	channel.On("FetchRawReviews", ctx).Return([]entity.HostawayReview{}, nil)
	reviewRepo.On("BulkUpsert", ctx, mock.Anything).Return(0, 5, nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := svc.SyncFromChannel(ctx)

	assert.NoError(t, err)
	assert.Equal(t, sourceFallback, response.Source)
}

func TestSyncFromChannel_SkipsInvalidChannelRecords(t *testing.T) {
	svc, reviewRepo, cacheClient, producer, channel := newTestService()
	ctx := context.Background()

	bad := rawReview(3)
	bad.SubmittedAt = "not a timestamp"
	channel.On("FetchRawReviews", ctx).Return([]entity.HostawayReview{rawReview(1), bad}, nil)
	reviewRepo.On("BulkUpsert", ctx, mock.MatchedBy(func(reviews []entity.Review) bool {
		return len(reviews) == 1
	})).Return(1, 0, nil)
	cacheClient.On("Invalidate", ctx, mock.Anything)
	producer.On("PublishMessage", ctx, mock.Anything, mock.Anything).Return(nil)

	response, err := svc.SyncFromChannel(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, response.Total)
}
