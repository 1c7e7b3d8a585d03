package service

import (
	"context"
	"fmt"
	"time"

	"flexreviews/internal/app/reviews/cache"
	"flexreviews/internal/app/reviews/entity"
	"flexreviews/internal/app/reviews/infrastructure"
	"flexreviews/internal/app/reviews/repository"
)

const (
	defaultTrendDays    = 30
	pendingPreviewLimit = 10

	tierExcellentMin = 8.5
	tierGoodMin      = 7.0
	tierFairMin      = 5.0

	insightLowRatingBar  = 7.0
	insightHighRatingBar = 9.0
)

// AnalyticsService строит отчеты для дашборда менеджера.
// Отчеты кешируются только по TTL: мутации их не инвалидируют,
// допустимая задержка данных - до истечения TTL
type AnalyticsService struct {
	reviewRepo  repository.ReviewRepository
	cacheClient infrastructure.Cache
}

// NewAnalyticsService создает сервис аналитики
func NewAnalyticsService(reviewRepo repository.ReviewRepository, cacheClient infrastructure.Cache) *AnalyticsService {
	return &AnalyticsService{
		reviewRepo:  reviewRepo,
		cacheClient: cacheClient,
	}
}

// Summary собирает сводный отчет: обзор, недавняя активность,
// очередь на одобрение и разбивка по каналам
func (s *AnalyticsService) Summary(ctx context.Context, f entity.AnalyticsFilter) (*entity.SummaryReport, error) {
	key := analyticsCacheKey("summary", f)

	var cached entity.SummaryReport
	if s.cacheClient.Get(ctx, cache.PrefixAnalytics, key, &cached) {
		return &cached, nil
	}

	overview, err := s.reviewRepo.AggregateOverview(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate overview: %w", err)
	}

	days := f.Days
	if days < 1 {
		days = defaultTrendDays
	}
	points, err := s.reviewRepo.Trend(ctx, f, days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trend: %w", err)
	}

	pending, err := s.reviewRepo.FindPendingApproval(ctx, f, pendingPreviewLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find pending reviews: %w", err)
	}

	byChannel, err := s.reviewRepo.AggregateByChannel(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by channel: %w", err)
	}

	report := &entity.SummaryReport{
		Overview: *overview,
		RecentActivity: entity.TrendReport{
			Days:        days,
			Points:      points,
			GeneratedAt: time.Now().UTC(),
		},
		PendingApproval: pending,
		ByChannel:       byChannel,
		GeneratedAt:     time.Now().UTC(),
	}

	s.cacheClient.Set(ctx, cache.PrefixAnalytics, key, report, cache.DefaultTTL)
	return report, nil
}

// PropertyBreakdown агрегирует метрики по объектам и присваивает tier
func (s *AnalyticsService) PropertyBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.PropertyBreakdownReport, error) {
	key := analyticsCacheKey("by-property", f)

	var cached entity.PropertyBreakdownReport
	if s.cacheClient.Get(ctx, cache.PrefixAnalytics, key, &cached) {
		return &cached, nil
	}

	properties, err := s.reviewRepo.AggregateByProperty(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by property: %w", err)
	}

	for i := range properties {
		properties[i].PerformanceTier = performanceTier(properties[i].AvgRating)
	}

	report := &entity.PropertyBreakdownReport{
		Properties:  properties,
		GeneratedAt: time.Now().UTC(),
	}

	s.cacheClient.Set(ctx, cache.PrefixAnalytics, key, report, cache.DefaultTTL)
	return report, nil
}

// ChannelBreakdown агрегирует метрики по каналам бронирования
func (s *AnalyticsService) ChannelBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.ChannelBreakdownReport, error) {
	key := analyticsCacheKey("by-channel", f)

	var cached entity.ChannelBreakdownReport
	if s.cacheClient.Get(ctx, cache.PrefixAnalytics, key, &cached) {
		return &cached, nil
	}

	channels, err := s.reviewRepo.AggregateByChannel(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by channel: %w", err)
	}

	report := &entity.ChannelBreakdownReport{
		Channels:    channels,
		GeneratedAt: time.Now().UTC(),
	}

	s.cacheClient.Set(ctx, cache.PrefixAnalytics, key, report, cache.DefaultTTL)
	return report, nil
}

// Trends строит дневной тренд с учетом фильтра
func (s *AnalyticsService) Trends(ctx context.Context, f entity.AnalyticsFilter) (*entity.TrendReport, error) {
	days := f.Days
	if days < 1 {
		days = defaultTrendDays
	}
	key := analyticsCacheKey("trends", f)

	var cached entity.TrendReport
	if s.cacheClient.Get(ctx, cache.PrefixAnalytics, key, &cached) {
		return &cached, nil
	}

	points, err := s.reviewRepo.Trend(ctx, f, days)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate trend: %w", err)
	}

	report := &entity.TrendReport{
		Days:        days,
		Points:      points,
		GeneratedAt: time.Now().UTC(),
	}

	s.cacheClient.Set(ctx, cache.PrefixAnalytics, key, report, cache.DefaultTTL)
	return report, nil
}

// CategoryBreakdown агрегирует оценки по категориям отзывов
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.CategoryBreakdownReport, error) {
	key := analyticsCacheKey("category-breakdown", f)

	var cached entity.CategoryBreakdownReport
	if s.cacheClient.Get(ctx, cache.PrefixAnalytics, key, &cached) {
		return &cached, nil
	}

	categories, err := s.reviewRepo.AggregateByCategory(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}

	report := &entity.CategoryBreakdownReport{
		Categories:  categories,
		GeneratedAt: time.Now().UTC(),
	}

	s.cacheClient.Set(ctx, cache.PrefixAnalytics, key, report, cache.DefaultTTL)
	return report, nil
}

// Insights выводит алерты, сильные стороны и рекомендации
// из агрегатов по категориям и объектам
func (s *AnalyticsService) Insights(ctx context.Context, f entity.AnalyticsFilter) (*entity.InsightsReport, error) {
	key := analyticsCacheKey("insights", f)

	var cached entity.InsightsReport
	if s.cacheClient.Get(ctx, cache.PrefixAnalytics, key, &cached) {
		return &cached, nil
	}

	categories, err := s.reviewRepo.AggregateByCategory(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}

	properties, err := s.reviewRepo.AggregateByProperty(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate by property: %w", err)
	}

	total, err := s.reviewRepo.Count(ctx, toReviewFilter(f))
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	highFilter := toReviewFilter(f)
	highFilter.MinRating = ptrFloat(insightHighRatingBar)
	highRated, err := s.reviewRepo.Count(ctx, highFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to count high rated reviews: %w", err)
	}

	okFilter := toReviewFilter(f)
	okFilter.MinRating = ptrFloat(insightLowRatingBar)
	okRated, err := s.reviewRepo.Count(ctx, okFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	lowRated := total - okRated

	report := &entity.InsightsReport{
		Alerts:          buildAlerts(lowRated, categories, properties),
		Strengths:       buildStrengths(highRated, categories),
		Recommendations: buildRecommendations(categories, properties),
		GeneratedAt:     time.Now().UTC(),
	}

	s.cacheClient.Set(ctx, cache.PrefixAnalytics, key, report, cache.DefaultTTL)
	return report, nil
}

func buildAlerts(lowRated int64, categories []entity.CategoryStats, properties []entity.PropertyBreakdown) []entity.Insight {
	alerts := []entity.Insight{}

	if lowRated > 0 {
		alerts = append(alerts, entity.Insight{
			Type:    "low_rated_reviews",
			Message: fmt.Sprintf("%d review(s) scored below %.1f", lowRated, insightLowRatingBar),
		})
	}
	for _, cat := range categories {
		if cat.AvgRating < insightLowRatingBar {
			alerts = append(alerts, entity.Insight{
				Type:    "category_performance",
				Message: fmt.Sprintf("Category %q is underperforming with average %.2f", cat.Category, cat.AvgRating),
			})
		}
	}
	for _, prop := range properties {
		if prop.AvgRating > 0 && prop.AvgRating < insightLowRatingBar {
			alerts = append(alerts, entity.Insight{
				Type:    "property_performance",
				Message: fmt.Sprintf("Property %q averages %.2f", prop.ListingName, prop.AvgRating),
			})
		}
	}

	return alerts
}

func buildStrengths(highRated int64, categories []entity.CategoryStats) []entity.Insight {
	strengths := []entity.Insight{}

	if highRated > 0 {
		strengths = append(strengths, entity.Insight{
			Type:    "guest_satisfaction",
			Message: fmt.Sprintf("%d review(s) scored %.1f or higher", highRated, insightHighRatingBar),
		})
	}
	for _, cat := range categories {
		if cat.AvgRating >= insightHighRatingBar {
			strengths = append(strengths, entity.Insight{
				Type:    "category_strength",
				Message: fmt.Sprintf("Category %q is a strong point with average %.2f", cat.Category, cat.AvgRating),
			})
		}
	}

	return strengths
}

func buildRecommendations(categories []entity.CategoryStats, properties []entity.PropertyBreakdown) []entity.Insight {
	recommendations := []entity.Insight{}

	for _, cat := range categories {
		if cat.AvgRating < insightLowRatingBar {
			recommendations = append(recommendations, entity.Insight{
				Type:    "category_improvement",
				Message: fmt.Sprintf("Focus on improving %q (current average %.2f)", cat.Category, cat.AvgRating),
			})
		}
	}
	for _, prop := range properties {
		if prop.AvgRating > 0 && prop.AvgRating < insightLowRatingBar {
			recommendations = append(recommendations, entity.Insight{
				Type:    "property_review",
				Message: fmt.Sprintf("Review guest feedback for %q", prop.ListingName),
			})
		}
	}

	return recommendations
}

// performanceTier классифицирует объект по среднему рейтингу
func performanceTier(avgRating float64) string {
	switch {
	case avgRating >= tierExcellentMin:
		return entity.TierExcellent
	case avgRating >= tierGoodMin:
		return entity.TierGood
	case avgRating >= tierFairMin:
		return entity.TierFair
	default:
		return entity.TierNeedsImprovement
	}
}

// analyticsCacheKey детерминированно сериализует фильтр в ключ кеша:
// одинаковый фильтр - одинаковый ключ независимо от формы запроса
func analyticsCacheKey(report string, f entity.AnalyticsFilter) string {
	start, end := "", ""
	if f.StartDate != nil {
		start = f.StartDate.UTC().Format(time.RFC3339)
	}
	if f.EndDate != nil {
		end = f.EndDate.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("%s:%s:%s|%s|%s|%s|%d",
		cache.PrefixAnalytics, report, start, end, f.ListingID, f.Channel, f.Days)
}

func toReviewFilter(f entity.AnalyticsFilter) entity.ReviewFilter {
	return entity.ReviewFilter{
		ListingID: f.ListingID,
		Channel:   f.Channel,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
}

func ptrFloat(v float64) *float64 { return &v }
