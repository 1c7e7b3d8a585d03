package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"flexreviews/internal/app/reviews/entity"
	"flexreviews/pkg/logger"
	"flexreviews/pkg/metrics"
)

const (
	serviceName    = "reviews-service"
	collectionName = "reviews"
)

type reviewRepository struct {
	collection *mongo.Collection
}

// NewReviewRepository создает новый репозиторий отзывов.
// Уникальный индекс по hostaway_id - основная защита от дублей при
// конкурентных create; прикладная проверка в service лишь быстрый путь
func NewReviewRepository(db *mongo.Database) ReviewRepository {
	collection := db.Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "hostaway_id", Value: 1}},
			Options: options.Index().SetName("hostaway_id_idx").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "listing_id", Value: 1}, {Key: "submitted_at", Value: -1}},
			Options: options.Index().SetName("listing_submitted_idx"),
		},
		{
			Keys:    bson.D{{Key: "is_approved", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("approved_status_idx"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Индексы могут уже существовать - работу не прерываем
		logger.Warn().Err(err).Msg("Failed to create review indexes")
	}

	return &reviewRepository{
		collection: collection,
	}
}

// Create создает новый отзыв. Дубликат hostaway_id перехватывается
// уникальным индексом и превращается в ErrDuplicateReview
func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	review.RecomputeAverageCategoryRating()
	review.CreatedAt = time.Now()
	review.UpdatedAt = review.CreatedAt

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpInsert, collectionName)
	result, err := r.collection.InsertOne(ctx, review)
	timer.ObserveDuration()
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		metrics.RecordMongoError(serviceName, metrics.MongoOpInsert)
		return fmt.Errorf("failed to create review: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}

	return nil
}

// GetByID получает отзыв по первичному ключу
func (r *reviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrReviewNotFound
	}

	var review entity.Review
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return &review, nil
}

// GetByHostawayID получает отзыв по внешнему идентификатору канала
func (r *reviewRepository) GetByHostawayID(ctx context.Context, hostawayID int64) (*entity.Review, error) {
	var review entity.Review
	err := r.collection.FindOne(ctx, bson.M{"hostaway_id": hostawayID}).Decode(&review)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review by hostaway id: %w", err)
	}

	return &review, nil
}

// Update сохраняет все изменяемые поля отзыва.
// Очищенные метаданные одобрения снимаются через $unset,
// чтобы повторное одобрение проставило свежие значения
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	review.RecomputeAverageCategoryRating()
	review.UpdatedAt = time.Now()

	set := bson.M{
		"type":                    review.Type,
		"status":                  review.Status,
		"rating":                  review.Rating,
		"public_review":           review.PublicReview,
		"private_review":          review.PrivateReview,
		"review_categories":       review.ReviewCategories,
		"average_category_rating": review.AverageCategoryRating,
		"submitted_at":            review.SubmittedAt,
		"guest_name":              review.GuestName,
		"listing_id":              review.ListingID,
		"listing_name":            review.ListingName,
		"channel":                 review.Channel,
		"is_approved":             review.IsApproved,
		"updated_at":              review.UpdatedAt,
	}
	unset := bson.M{}

	if review.ApprovedBy != nil {
		set["approved_by"] = *review.ApprovedBy
	} else {
		unset["approved_by"] = ""
	}
	if review.ApprovedAt != nil {
		set["approved_at"] = *review.ApprovedAt
	} else {
		unset["approved_at"] = ""
	}
	if review.ManagerNotes != nil {
		set["manager_notes"] = *review.ManagerNotes
	} else {
		unset["manager_notes"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, collectionName)
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": review.ID}, update)
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return fmt.Errorf("failed to update review: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// Delete удаляет отзыв
func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrReviewNotFound
	}

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpDelete, collectionName)
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpDelete)
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if result.DeletedCount == 0 {
		return ErrReviewNotFound
	}

	return nil
}

// BulkUpsert обновляет-или-вставляет каждую запись по hostaway_id.
// Атомарность только на уровне записи; метаданные одобрения существующих
// отзывов синхронизация никогда не перетирает
func (r *reviewRepository) BulkUpsert(ctx context.Context, reviews []entity.Review) (int, int, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpsert, collectionName)
	defer timer.ObserveDuration()

	inserted, updated := 0, 0
	now := time.Now()

	for i := range reviews {
		review := &reviews[i]
		review.RecomputeAverageCategoryRating()

		update := bson.M{
			"$set": bson.M{
				"type":                    review.Type,
				"status":                  review.Status,
				"rating":                  review.Rating,
				"public_review":           review.PublicReview,
				"private_review":          review.PrivateReview,
				"review_categories":       review.ReviewCategories,
				"average_category_rating": review.AverageCategoryRating,
				"submitted_at":            review.SubmittedAt,
				"guest_name":              review.GuestName,
				"listing_id":              review.ListingID,
				"listing_name":            review.ListingName,
				"channel":                 review.Channel,
				"updated_at":              now,
			},
			"$setOnInsert": bson.M{
				"hostaway_id": review.HostawayID,
				"is_approved": false,
				"created_at":  now,
			},
		}

		result, err := r.collection.UpdateOne(
			ctx,
			bson.M{"hostaway_id": review.HostawayID},
			update,
			options.Update().SetUpsert(true),
		)
		if err != nil {
			metrics.RecordMongoError(serviceName, metrics.MongoOpUpsert)
			return inserted, updated, fmt.Errorf("failed to upsert review %d: %w", review.HostawayID, err)
		}

		if result.UpsertedCount > 0 {
			inserted++
		} else {
			updated++
		}
	}

	return inserted, updated, nil
}

// BulkApprove одобряет все ещё не одобренные отзывы из списка.
// Ненайденные и уже одобренные ID молча пропускаются
func (r *reviewRepository) BulkApprove(ctx context.Context, ids []string, approvedBy string) (int64, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			objectIDs = append(objectIDs, oid)
		}
	}
	if len(objectIDs) == 0 {
		return 0, nil
	}

	if approvedBy == "" {
		approvedBy = entity.DefaultApprovedBy
	}
	now := time.Now()

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpUpdate, collectionName)
	result, err := r.collection.UpdateMany(ctx, bulkApproveFilter(objectIDs), bulkApproveUpdate(approvedBy, now))
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpUpdate)
		return 0, fmt.Errorf("failed to bulk approve reviews: %w", err)
	}

	return result.ModifiedCount, nil
}

// FindWithFilters делает постраничную выборку с сортировкой и общим счётчиком
func (r *reviewRepository) FindWithFilters(ctx context.Context, f entity.ReviewFilter, sortBy, sortOrder string, page, limit int) ([]entity.Review, int64, error) {
	page, limit = ClampPagination(page, limit)
	filter := buildReviewFilter(f)

	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpFind, collectionName)
	defer timer.ObserveDuration()

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	opts := options.Find().
		SetSort(sortSpec(sortBy, sortOrder)).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, 0, fmt.Errorf("failed to find reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0, limit)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, 0, fmt.Errorf("failed to decode reviews: %w", err)
	}

	return reviews, total, nil
}

// FindApprovedForPublic отдает одобренные опубликованные отзывы для витрины.
// Менеджерские поля (manager_notes, approved_by) исключаются проекцией
func (r *reviewRepository) FindApprovedForPublic(ctx context.Context, listingID string, limit int) ([]entity.Review, error) {
	filter := bson.M{
		"is_approved": true,
		"status":      entity.ReviewStatusPublished,
	}
	if listingID != "" {
		filter["listing_id"] = listingID
	}

	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"manager_notes": 0, "approved_by": 0})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find public reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0, limit)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode public reviews: %w", err)
	}

	return reviews, nil
}

// FindPendingApproval отдает неодобренные отзывы для блока pending в summary
func (r *reviewRepository) FindPendingApproval(ctx context.Context, f entity.AnalyticsFilter, limit int) ([]entity.Review, error) {
	match := buildAnalyticsMatch(f)
	match["is_approved"] = false

	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "submitted_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, match, opts)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return nil, fmt.Errorf("failed to find pending reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := make([]entity.Review, 0, limit)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode pending reviews: %w", err)
	}

	return reviews, nil
}

// Count считает отзывы, удовлетворяющие фильтру
func (r *reviewRepository) Count(ctx context.Context, f entity.ReviewFilter) (int64, error) {
	total, err := r.collection.CountDocuments(ctx, buildReviewFilter(f))
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpFind)
		return 0, fmt.Errorf("failed to count reviews: %w", err)
	}
	return total, nil
}

// AggregateStatistics собирает сводную статистику по всему корпусу:
// overview, разбивка по каналам, топ-10 объектов, гистограмма рейтингов
func (r *reviewRepository) AggregateStatistics(ctx context.Context) (*entity.StatisticsReport, error) {
	timer := metrics.NewMongoTimer(serviceName, metrics.MongoOpAggregate, collectionName)
	defer timer.ObserveDuration()

	overview, err := r.AggregateOverview(ctx, entity.AnalyticsFilter{})
	if err != nil {
		return nil, err
	}

	byChannel, err := r.AggregateByChannel(ctx, entity.AnalyticsFilter{})
	if err != nil {
		return nil, err
	}

	topProperties, err := r.aggregateTopProperties(ctx, 10)
	if err != nil {
		return nil, err
	}

	distribution, err := r.aggregateRatingDistribution(ctx)
	if err != nil {
		return nil, err
	}

	return &entity.StatisticsReport{
		Overview:           *overview,
		ByChannel:          byChannel,
		TopProperties:      topProperties,
		RatingDistribution: distribution,
	}, nil
}

// AggregateOverview считает сводные показатели по фильтру
func (r *reviewRepository) AggregateOverview(ctx context.Context, f entity.AnalyticsFilter) (*entity.OverviewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildAnalyticsMatch(f)}},
		{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"total":        bson.M{"$sum": 1},
			"avg_rating":   bson.M{"$avg": "$average_category_rating"},
			"approved":     bson.M{"$sum": bson.M{"$cond": bson.A{"$is_approved", 1, 0}}},
			"not_approved": bson.M{"$sum": bson.M{"$cond": bson.A{"$is_approved", 0, 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return nil, fmt.Errorf("failed to aggregate overview: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total       int64   `bson:"total"`
		AvgRating   float64 `bson:"avg_rating"`
		Approved    int64   `bson:"approved"`
		NotApproved int64   `bson:"not_approved"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode overview: %w", err)
	}

	if len(rows) == 0 {
		return &entity.OverviewStats{}, nil
	}

	return &entity.OverviewStats{
		TotalReviews:  rows[0].Total,
		AverageRating: entity.Round2(rows[0].AvgRating),
		ApprovedCount: rows[0].Approved,
		PendingCount:  rows[0].NotApproved,
	}, nil
}

// AggregateByChannel группирует отзывы по каналу
func (r *reviewRepository) AggregateByChannel(ctx context.Context, f entity.AnalyticsFilter) ([]entity.ChannelStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildAnalyticsMatch(f)}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$channel",
			"count":      bson.M{"$sum": 1},
			"avg_rating": bson.M{"$avg": "$average_category_rating"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return nil, fmt.Errorf("failed to aggregate by channel: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []entity.ChannelStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode channel stats: %w", err)
	}

	for i := range stats {
		stats[i].AvgRating = entity.Round2(stats[i].AvgRating)
	}

	return stats, nil
}

// AggregateByProperty считает полный пообъектный агрегат для аналитики.
// Порядок детерминирован: avg_rating по убыванию, затем total_reviews по убыванию
func (r *reviewRepository) AggregateByProperty(ctx context.Context, f entity.AnalyticsFilter) ([]entity.PropertyBreakdown, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildAnalyticsMatch(f)}},
		{{Key: "$group", Value: bson.M{
			"_id":                "$listing_id",
			"listing_name":       bson.M{"$first": "$listing_name"},
			"total_reviews":      bson.M{"$sum": 1},
			"approved_reviews":   bson.M{"$sum": bson.M{"$cond": bson.A{"$is_approved", 1, 0}}},
			"avg_rating":         bson.M{"$avg": "$average_category_rating"},
			"min_rating":         bson.M{"$min": "$average_category_rating"},
			"max_rating":         bson.M{"$max": "$average_category_rating"},
			"latest_review_date": bson.M{"$max": "$submitted_at"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avg_rating", Value: -1}, {Key: "total_reviews", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return nil, fmt.Errorf("failed to aggregate by property: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []entity.PropertyBreakdown
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode property breakdown: %w", err)
	}

	for i := range rows {
		rows[i].PendingReviews = rows[i].TotalReviews - rows[i].ApprovedReviews
		rows[i].AvgRating = entity.Round2(rows[i].AvgRating)
		if rows[i].TotalReviews > 0 {
			rows[i].ApprovalRate = entity.Round2(float64(rows[i].ApprovedReviews) / float64(rows[i].TotalReviews) * 100)
		}
	}

	return rows, nil
}

// AggregateByCategory разворачивает категории и считает avg/min/max/count
func (r *reviewRepository) AggregateByCategory(ctx context.Context, f entity.AnalyticsFilter) ([]entity.CategoryStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: buildAnalyticsMatch(f)}},
		{{Key: "$unwind", Value: "$review_categories"}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$review_categories.category",
			"avg_rating": bson.M{"$avg": "$review_categories.rating"},
			"min_rating": bson.M{"$min": "$review_categories.rating"},
			"max_rating": bson.M{"$max": "$review_categories.rating"},
			"count":      bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "avg_rating", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return nil, fmt.Errorf("failed to aggregate by category: %w", err)
	}
	defer cursor.Close(ctx)

	var stats []entity.CategoryStats
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("failed to decode category stats: %w", err)
	}

	for i := range stats {
		stats[i].AvgRating = entity.Round2(stats[i].AvgRating)
	}

	return stats, nil
}

// Trend группирует отзывы по календарным дням (UTC) за скользящее окно days
func (r *reviewRepository) Trend(ctx context.Context, f entity.AnalyticsFilter, days int) ([]entity.TrendPoint, error) {
	if days < 1 {
		days = 30
	}

	match := buildAnalyticsMatch(f)
	since := time.Now().UTC().AddDate(0, 0, -days)
	if existing, ok := match["submitted_at"].(bson.M); ok {
		existing["$gte"] = since
	} else {
		match["submitted_at"] = bson.M{"$gte": since}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   "$submitted_at",
			}},
			"count":          bson.M{"$sum": 1},
			"avg_rating":     bson.M{"$avg": "$average_category_rating"},
			"approved_count": bson.M{"$sum": bson.M{"$cond": bson.A{"$is_approved", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return nil, fmt.Errorf("failed to aggregate trend: %w", err)
	}
	defer cursor.Close(ctx)

	var points []entity.TrendPoint
	if err := cursor.All(ctx, &points); err != nil {
		return nil, fmt.Errorf("failed to decode trend: %w", err)
	}

	for i := range points {
		points[i].AvgRating = entity.Round2(points[i].AvgRating)
	}

	return points, nil
}

// aggregateTopProperties отдает топ-N объектов по количеству отзывов
func (r *reviewRepository) aggregateTopProperties(ctx context.Context, limit int) ([]entity.PropertyStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          "$listing_id",
			"listing_name": bson.M{"$first": "$listing_name"},
			"count":        bson.M{"$sum": 1},
			"avg_rating":   bson.M{"$avg": "$average_category_rating"},
			"approved":     bson.M{"$sum": bson.M{"$cond": bson.A{"$is_approved", 1, 0}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "avg_rating", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return nil, fmt.Errorf("failed to aggregate top properties: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ListingID   string  `bson:"_id"`
		ListingName string  `bson:"listing_name"`
		Count       int64   `bson:"count"`
		AvgRating   float64 `bson:"avg_rating"`
		Approved    int64   `bson:"approved"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode top properties: %w", err)
	}

	stats := make([]entity.PropertyStats, 0, len(rows))
	for _, row := range rows {
		s := entity.PropertyStats{
			ListingID:   row.ListingID,
			ListingName: row.ListingName,
			Count:       row.Count,
			AvgRating:   entity.Round2(row.AvgRating),
		}
		if row.Count > 0 {
			s.ApprovalRate = entity.Round2(float64(row.Approved) / float64(row.Count) * 100)
		}
		stats = append(stats, s)
	}

	return stats, nil
}

// aggregateRatingDistribution строит гистограмму по фиксированным корзинам
// [0,2,4,6,8,10]; рейтинг ровно 10 попадает в отдельную корзину default
func (r *reviewRepository) aggregateRatingDistribution(ctx context.Context) ([]entity.RatingBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$bucket", Value: bson.M{
			"groupBy":    "$average_category_rating",
			"boundaries": bson.A{0.0, 2.0, 4.0, 6.0, 8.0, 10.0},
			"default":    10.0,
			"output":     bson.M{"count": bson.M{"$sum": 1}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		metrics.RecordMongoError(serviceName, metrics.MongoOpAggregate)
		return nil, fmt.Errorf("failed to aggregate rating distribution: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []entity.RatingBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("failed to decode rating distribution: %w", err)
	}

	return buckets, nil
}
