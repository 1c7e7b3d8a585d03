package entity

import "time"

// Уровни производительности объекта по среднему рейтингу
const (
	TierExcellent        = "excellent"
	TierGood             = "good"
	TierFair             = "fair"
	TierNeedsImprovement = "needs_improvement"
)

// OverviewStats - сводные показатели по всему корпусу отзывов
type OverviewStats struct {
	TotalReviews  int64   `json:"totalReviews"`
	AverageRating float64 `json:"averageRating"`
	ApprovedCount int64   `json:"approvedCount"`
	PendingCount  int64   `json:"pendingCount"`
}

// ChannelStats - агрегат по каналу
type ChannelStats struct {
	Channel   string  `json:"channel" bson:"_id"`
	Count     int64   `json:"count" bson:"count"`
	AvgRating float64 `json:"avgRating" bson:"avg_rating"`
}

// PropertyStats - агрегат по объекту (для топ-10 в статистике)
type PropertyStats struct {
	ListingID    string  `json:"listingId" bson:"_id"`
	ListingName  string  `json:"listingName" bson:"listing_name"`
	Count        int64   `json:"count" bson:"count"`
	AvgRating    float64 `json:"avgRating" bson:"avg_rating"`
	ApprovalRate float64 `json:"approvalRate" bson:"approval_rate"`
}

// RatingBucket - корзина гистограммы распределения рейтингов
type RatingBucket struct {
	Bucket float64 `json:"bucket" bson:"_id"`
	Count  int64   `json:"count" bson:"count"`
}

// StatisticsReport - ответ GET /reviews/statistics
type StatisticsReport struct {
	Overview           OverviewStats   `json:"overview"`
	ByChannel          []ChannelStats  `json:"byChannel"`
	TopProperties      []PropertyStats `json:"topProperties"`
	RatingDistribution []RatingBucket  `json:"ratingDistribution"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// TrendPoint - дневная точка тренда
type TrendPoint struct {
	Date          string  `json:"date" bson:"_id"`
	Count         int64   `json:"count" bson:"count"`
	AvgRating     float64 `json:"avgRating" bson:"avg_rating"`
	ApprovedCount int64   `json:"approvedCount" bson:"approved_count"`
}

// TrendReport - ответ GET /reviews/trend и GET /analytics/trends
type TrendReport struct {
	Days        int          `json:"days"`
	Points      []TrendPoint `json:"points"`
	GeneratedAt time.Time    `json:"generatedAt"`
}

// PropertyBreakdown - агрегат по объекту для аналитики
type PropertyBreakdown struct {
	ListingID        string    `json:"listingId" bson:"_id"`
	ListingName      string    `json:"listingName" bson:"listing_name"`
	TotalReviews     int64     `json:"totalReviews" bson:"total_reviews"`
	ApprovedReviews  int64     `json:"approvedReviews" bson:"approved_reviews"`
	PendingReviews   int64     `json:"pendingReviews" bson:"pending_reviews"`
	AvgRating        float64   `json:"avgRating" bson:"avg_rating"`
	MinRating        float64   `json:"minRating" bson:"min_rating"`
	MaxRating        float64   `json:"maxRating" bson:"max_rating"`
	ApprovalRate     float64   `json:"approvalRate" bson:"approval_rate"` // В процентах
	LatestReviewDate time.Time `json:"latestReviewDate" bson:"latest_review_date"`
	PerformanceTier  string    `json:"performanceTier" bson:"-"`
}

// PropertyBreakdownReport - ответ GET /analytics/by-property
type PropertyBreakdownReport struct {
	Properties  []PropertyBreakdown `json:"properties"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// CategoryStats - агрегат по категории оценок
type CategoryStats struct {
	Category  string  `json:"category" bson:"_id"`
	AvgRating float64 `json:"avgRating" bson:"avg_rating"`
	MinRating float64 `json:"minRating" bson:"min_rating"`
	MaxRating float64 `json:"maxRating" bson:"max_rating"`
	Count     int64   `json:"count" bson:"count"`
}

// CategoryBreakdownReport - ответ GET /analytics/category-breakdown
type CategoryBreakdownReport struct {
	Categories  []CategoryStats `json:"categories"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// ChannelBreakdownReport - ответ GET /analytics/by-channel
type ChannelBreakdownReport struct {
	Channels    []ChannelStats `json:"channels"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

// SummaryReport - ответ GET /analytics/summary
type SummaryReport struct {
	Overview        OverviewStats  `json:"overview"`
	RecentActivity  TrendReport    `json:"recentActivity"`
	PendingApproval []Review       `json:"pendingApproval"`
	ByChannel       []ChannelStats `json:"byChannel"`
	GeneratedAt     time.Time      `json:"generatedAt"`
}

// Insight - один элемент отчёта insights
type Insight struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// InsightsReport - ответ GET /analytics/insights
type InsightsReport struct {
	Alerts          []Insight `json:"alerts"`
	Strengths       []Insight `json:"strengths"`
	Recommendations []Insight `json:"recommendations"`
	GeneratedAt     time.Time `json:"generatedAt"`
}
