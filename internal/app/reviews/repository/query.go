package repository

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"flexreviews/internal/app/reviews/entity"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// buildReviewFilter транслирует фильтр в bson-документ; предикаты конъюнктивны
func buildReviewFilter(f entity.ReviewFilter) bson.M {
	filter := bson.M{}

	if f.ListingID != "" {
		filter["listing_id"] = f.ListingID
	}
	if f.Channel != "" {
		filter["channel"] = f.Channel
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.MinRating != nil {
		filter["average_category_rating"] = bson.M{"$gte": *f.MinRating}
	}
	if f.IsApproved != nil {
		filter["is_approved"] = *f.IsApproved
	}
	if f.StartDate != nil || f.EndDate != nil {
		rng := bson.M{}
		if f.StartDate != nil {
			rng["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			rng["$lte"] = *f.EndDate
		}
		filter["submitted_at"] = rng
	}
	if f.GuestName != "" {
		// Экранируем спецсимволы: подстрока не должна трактоваться как regex
		filter["guest_name"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.GuestName), Options: "i"}
	}

	return filter
}

// buildAnalyticsMatch строит $match-стадию из общего фильтра аналитики
func buildAnalyticsMatch(f entity.AnalyticsFilter) bson.M {
	match := bson.M{}

	if f.ListingID != "" {
		match["listing_id"] = f.ListingID
	}
	if f.Channel != "" {
		match["channel"] = f.Channel
	}
	if f.StartDate != nil || f.EndDate != nil {
		rng := bson.M{}
		if f.StartDate != nil {
			rng["$gte"] = *f.StartDate
		}
		if f.EndDate != nil {
			rng["$lte"] = *f.EndDate
		}
		match["submitted_at"] = rng
	}

	return match
}

// sortSpec возвращает стадию сортировки; ключ ограничен белым списком,
// по умолчанию submitted_at по убыванию
func sortSpec(sortBy, sortOrder string) bson.D {
	field := "submitted_at"
	switch sortBy {
	case "rating":
		field = "rating"
	case "averageCategoryRating", "average_category_rating":
		field = "average_category_rating"
	case "submittedAt", "submitted_at", "":
		field = "submitted_at"
	}

	dir := -1
	if sortOrder == "asc" {
		dir = 1
	}

	return bson.D{{Key: field, Value: dir}}
}

// bulkApproveFilter выбирает из списка только ещё не одобренные отзывы:
// повторный вызов по тем же ID не изменяет ни одного документа
func bulkApproveFilter(ids []primitive.ObjectID) bson.M {
	return bson.M{
		"_id":         bson.M{"$in": ids},
		"is_approved": false,
	}
}

// bulkApproveUpdate проставляет метаданные одобрения одним $set
func bulkApproveUpdate(approvedBy string, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"is_approved": true,
			"approved_by": approvedBy,
			"approved_at": now,
			"updated_at":  now,
		},
	}
}

// ClampPagination нормализует номер страницы (1-indexed) и размер страницы [1,100]
func ClampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

