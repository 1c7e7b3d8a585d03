package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"flexreviews/internal/app/reviews/cache"
	"flexreviews/internal/app/reviews/entity"
	"flexreviews/internal/app/reviews/infrastructure"
	"flexreviews/internal/app/reviews/infrastructure/hostaway"
	"flexreviews/internal/app/reviews/normalizer"
	"flexreviews/internal/app/reviews/repository"
	"flexreviews/pkg/logger"
	"flexreviews/pkg/metrics"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review with this hostaway id already exists")
	ErrEmptyBatch      = errors.New("sync batch is empty")
	ErrInvalidReview   = errors.New("invalid review record")
)

const (
	sourceHostaway = "hostaway"
	sourceFallback = "fallback"
)

// ReviewService обрабатывает бизнес-логику отзывов.
// Координирует репозиторий, кеш, Kafka и клиент внешнего канала
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	cacheClient infrastructure.Cache
	producer    infrastructure.MessagePublisher
	channel     infrastructure.ChannelClient
	fixturePath string
}

// NewReviewService создает новый сервис отзывов с внедрением зависимостей
func NewReviewService(
	reviewRepo repository.ReviewRepository,
	cacheClient infrastructure.Cache,
	producer infrastructure.MessagePublisher,
	channel infrastructure.ChannelClient,
	fixturePath string,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		cacheClient: cacheClient,
		producer:    producer,
		channel:     channel,
		fixturePath: fixturePath,
	}
}

// CreateReview создает отзыв вручную.
// Проверка существования - быстрый путь; настоящая защита от дублей
// при гонке - уникальный индекс hostaway_id в хранилище
func (s *ReviewService) CreateReview(ctx context.Context, req *entity.CreateReviewRequest) (*entity.Review, error) {
	if _, err := s.reviewRepo.GetByHostawayID(ctx, req.HostawayID); err == nil {
		return nil, ErrDuplicateReview
	}

	listingID := req.ListingID
	if listingID == "" {
		listingID = normalizer.SlugifyListing(req.ListingName)
	}
	channel := req.Channel
	if channel == "" {
		channel = entity.DefaultChannel
	}

	review := &entity.Review{
		HostawayID:       req.HostawayID,
		Type:             req.Type,
		Status:           req.Status,
		Rating:           req.Rating,
		PublicReview:     req.PublicReview,
		PrivateReview:    req.PrivateReview,
		ReviewCategories: req.Categories,
		SubmittedAt:      req.SubmittedAt,
		GuestName:        req.GuestName,
		ListingID:        listingID,
		ListingName:      req.ListingName,
		Channel:          channel,
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrDuplicateReview
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	metrics.ReviewsRating.Observe(review.AverageCategoryRating)

	s.invalidateCaches(ctx)
	s.publishEvent(ctx, "REVIEW_CREATED", review)

	return review, nil
}

// GetReview получает отзыв по первичному ключу
func (s *ReviewService) GetReview(ctx context.Context, reviewID string) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return review, nil
}

// ListReviews делает фильтрованную постраничную выборку
func (s *ReviewService) ListReviews(ctx context.Context, f entity.ReviewFilter, sortBy, sortOrder string, page, limit int) (*entity.ReviewListResponse, error) {
	page, limit = repository.ClampPagination(page, limit)

	reviews, total, err := s.reviewRepo.FindWithFilters(ctx, f, sortBy, sortOrder, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return &entity.ReviewListResponse{
		Data:       reviews,
		Pagination: entity.NewPagination(page, limit, total),
	}, nil
}

// GetPublicReviews отдает одобренные опубликованные отзывы (кеш 600с)
func (s *ReviewService) GetPublicReviews(ctx context.Context, listingID string, limit int) ([]entity.Review, error) {
	key := fmt.Sprintf("%s:%s:%d", cache.PrefixApproved, listingID, limit)

	var cached []entity.Review
	if s.cacheClient.Get(ctx, cache.PrefixApproved, key, &cached) {
		return cached, nil
	}

	reviews, err := s.reviewRepo.FindApprovedForPublic(ctx, listingID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get public reviews: %w", err)
	}

	s.cacheClient.Set(ctx, cache.PrefixApproved, key, reviews, cache.PublicTTL)
	return reviews, nil
}

// GetStatistics отдает сводную статистику (кеш 300с, фиксированный ключ)
func (s *ReviewService) GetStatistics(ctx context.Context) (*entity.StatisticsReport, error) {
	var cached entity.StatisticsReport
	if s.cacheClient.Get(ctx, cache.PrefixStatistics, cache.PrefixStatistics, &cached) {
		return &cached, nil
	}

	report, err := s.reviewRepo.AggregateStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate statistics: %w", err)
	}
	report.GeneratedAt = time.Now().UTC()

	s.cacheClient.Set(ctx, cache.PrefixStatistics, cache.PrefixStatistics, report, cache.DefaultTTL)
	return report, nil
}

// GetTrend отдает дневной тренд за скользящее окно days (кеш 300с)
func (s *ReviewService) GetTrend(ctx context.Context, days int) (*entity.TrendReport, error) {
	if days < 1 {
		days = 30
	}
	key := fmt.Sprintf("%s:%d", cache.PrefixTrend, days)

	var cached entity.TrendReport
	if s.cacheClient.Get(ctx, cache.PrefixTrend, key, &cached) {
		return &cached, nil
	}

	points, err := s.reviewRepo.Trend(ctx, entity.AnalyticsFilter{}, days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trend: %w", err)
	}

	report := &entity.TrendReport{
		Days:        days,
		Points:      points,
		GeneratedAt: time.Now().UTC(),
	}

	s.cacheClient.Set(ctx, cache.PrefixTrend, key, report, cache.DefaultTTL)
	return report, nil
}

// UpdateReview применяет частичное обновление.
// Метаданные одобрения меняются только при смене isApproved
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID string, req *entity.UpdateReviewRequest) (*entity.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	if req.Status != nil {
		review.Status = *req.Status
	}
	if req.Rating != nil {
		review.Rating = req.Rating
	}
	if req.PublicReview != nil {
		review.PublicReview = *req.PublicReview
	}
	if req.PrivateReview != nil {
		review.PrivateReview = req.PrivateReview
	}
	if req.Categories != nil {
		review.ReviewCategories = *req.Categories
	}
	if req.ManagerNotes != nil {
		review.ManagerNotes = req.ManagerNotes
	}
	if req.IsApproved != nil && *req.IsApproved != review.IsApproved {
		approvedBy := ""
		if req.ApprovedBy != nil {
			approvedBy = *req.ApprovedBy
		}
		review.SetApproved(*req.IsApproved, approvedBy, time.Now().UTC())
		if *req.IsApproved {
			metrics.ReviewsApproved.Inc()
		}
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	s.invalidateCaches(ctx)
	s.publishEvent(ctx, "REVIEW_UPDATED", review)

	return review, nil
}

// ApproveReview одобряет отзыв по id или внешнему идентификатору:
// строка из одних цифр трактуется как hostaway id
func (s *ReviewService) ApproveReview(ctx context.Context, idOrExternal, approvedBy string, managerNotes *string) (*entity.Review, error) {
	review, err := s.resolveReview(ctx, idOrExternal)
	if err != nil {
		return nil, err
	}

	if !review.IsApproved {
		review.SetApproved(true, approvedBy, time.Now().UTC())
		metrics.ReviewsApproved.Inc()
	}
	if managerNotes != nil {
		review.ManagerNotes = managerNotes
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to approve review: %w", err)
	}

	s.invalidateCaches(ctx)
	s.publishEvent(ctx, "REVIEW_APPROVED", review)

	return review, nil
}

// BulkApproveReviews одобряет набор отзывов; ненайденные ID пропускаются
func (s *ReviewService) BulkApproveReviews(ctx context.Context, ids []string, approvedBy string) (*entity.BulkApproveResponse, error) {
	modified, err := s.reviewRepo.BulkApprove(ctx, ids, approvedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk approve: %w", err)
	}

	metrics.ReviewsApproved.Add(float64(modified))
	s.invalidateCaches(ctx)

	return &entity.BulkApproveResponse{ModifiedCount: modified}, nil
}

// DeleteReview удаляет отзыв
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to get review: %w", err)
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.invalidateCaches(ctx)
	s.publishEvent(ctx, "REVIEW_DELETED", review)

	return nil
}

// SyncReviews нормализует и загружает батч сырых записей (POST /reviews/sync).
// Некорректная запись отклоняет весь батч - это ручной путь с валидацией
func (s *ReviewService) SyncReviews(ctx context.Context, raw []entity.HostawayReview) (*entity.SyncResponse, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyBatch
	}

	normalized := make([]entity.Review, 0, len(raw))
	for _, record := range raw {
		if err := normalizer.ValidateRaw(record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReview, err)
		}
		normalized = append(normalized, normalizer.Normalize(record))
	}

	return s.upsertBatch(ctx, normalized, sourceHostaway)
}

// SyncFromChannel тянет отзывы из Hostaway и загружает их.
// Сбой или пустой ответ канала подменяется fallback-данными, не ошибкой:
// эндпоинт синхронизации не должен отвечать 5xx из-за внешнего API
func (s *ReviewService) SyncFromChannel(ctx context.Context) (*entity.SyncResponse, error) {
	source := sourceHostaway

	raw, err := s.channel.FetchRawReviews(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Hostaway fetch failed, falling back to fixture data")
		raw = hostaway.FallbackReviews(s.fixturePath)
		source = sourceFallback
	} else if len(raw) == 0 {
		logger.Warn().Msg("Hostaway returned no reviews, falling back to fixture data")
		raw = hostaway.FallbackReviews(s.fixturePath)
		source = sourceFallback
	}

	// Кривые записи канала пропускаем по одной, не роняя весь прогон
	normalized := make([]entity.Review, 0, len(raw))
	for _, record := range raw {
		if err := normalizer.ValidateRaw(record); err != nil {
			logger.Warn().Err(err).Int64("hostaway_id", record.ID).Msg("Skipping invalid channel record")
			continue
		}
		normalized = append(normalized, normalizer.Normalize(record))
	}

	metrics.SyncRuns.WithLabelValues(source).Inc()

	resp, err := s.upsertBatch(ctx, normalized, source)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *ReviewService) upsertBatch(ctx context.Context, reviews []entity.Review, source string) (*entity.SyncResponse, error) {
	inserted, updated, err := s.reviewRepo.BulkUpsert(ctx, reviews)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert reviews: %w", err)
	}

	metrics.ReviewsSynced.WithLabelValues(entity.DefaultChannel, "inserted").Add(float64(inserted))
	metrics.ReviewsSynced.WithLabelValues(entity.DefaultChannel, "updated").Add(float64(updated))

	s.invalidateCaches(ctx)
	for i := range reviews {
		s.publishEvent(ctx, "REVIEW_SYNCED", &reviews[i])
	}

	return &entity.SyncResponse{
		Inserted: inserted,
		Updated:  updated,
		Total:    inserted + updated,
		Source:   source,
	}, nil
}

// resolveReview находит отзыв по ObjectID либо по hostaway id (числовая строка)
func (s *ReviewService) resolveReview(ctx context.Context, idOrExternal string) (*entity.Review, error) {
	if hostawayID, err := strconv.ParseInt(idOrExternal, 10, 64); err == nil {
		review, err := s.reviewRepo.GetByHostawayID(ctx, hostawayID)
		if err == nil {
			return review, nil
		}
		if !errors.Is(err, repository.ErrReviewNotFound) {
			return nil, fmt.Errorf("failed to resolve review: %w", err)
		}
		return nil, ErrReviewNotFound
	}

	review, err := s.reviewRepo.GetByID(ctx, idOrExternal)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to resolve review: %w", err)
	}
	return review, nil
}

// invalidateCaches сбрасывает фиксированные ключи после каждой мутации.
// Параметризованные отчеты аналитики не трогаются - они истекают по TTL
func (s *ReviewService) invalidateCaches(ctx context.Context) {
	s.cacheClient.Invalidate(ctx, cache.PrefixStatistics, cache.PrefixApproved, cache.PrefixTrend)
}

// publishEvent отправляет событие жизненного цикла отзыва в Kafka.
// Сбой публикации логируется и не прерывает выполнение
func (s *ReviewService) publishEvent(ctx context.Context, eventType string, review *entity.Review) {
	event := entity.ReviewEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		ReviewID:   review.ID.Hex(),
		HostawayID: review.HostawayID,
		ListingID:  review.ListingID,
		Timestamp:  time.Now().UTC(),
	}

	eventData, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to marshal review event")
		return
	}

	if err := s.producer.PublishMessage(ctx, event.ReviewID, eventData); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("Failed to publish review event")
	}
}
