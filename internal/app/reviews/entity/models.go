package entity

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Типы и статусы отзывов, приходящие из канала
const (
	ReviewTypeHostToGuest = "host-to-guest"
	ReviewTypeGuestToHost = "guest-to-host"

	ReviewStatusPublished = "published"
	ReviewStatusPending   = "pending"
	ReviewStatusDraft     = "draft"

	DefaultChannel    = "hostaway"
	DefaultApprovedBy = "admin"
)

// ReviewCategory - оценка по отдельной категории (cleanliness, communication и т.д.).
// Теги validate проверяются через dive в запросах create/update
type ReviewCategory struct {
	Category string  `json:"category" bson:"category" validate:"required"`
	Rating   float64 `json:"rating" bson:"rating" validate:"min=0,max=10"`
}

// Review - каноническая форма отзыва после нормализации
type Review struct {
	ID                    primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	HostawayID            int64              `json:"hostawayId" bson:"hostaway_id"` // Уникальный ID отзыва во внешнем канале
	Type                  string             `json:"type" bson:"type"`
	Status                string             `json:"status" bson:"status"`
	Rating                *float64           `json:"rating" bson:"rating"` // Общая оценка 0-10, может отсутствовать
	PublicReview          string             `json:"publicReview" bson:"public_review"`
	PrivateReview         *string            `json:"privateReview" bson:"private_review"`
	ReviewCategories      []ReviewCategory   `json:"reviewCategories" bson:"review_categories"`
	AverageCategoryRating float64            `json:"averageCategoryRating" bson:"average_category_rating"`
	SubmittedAt           time.Time          `json:"submittedAt" bson:"submitted_at"`
	GuestName             string             `json:"guestName" bson:"guest_name"`
	ListingID             string             `json:"listingId" bson:"listing_id"`
	ListingName           string             `json:"listingName" bson:"listing_name"`
	Channel               string             `json:"channel" bson:"channel"`
	IsApproved            bool               `json:"isApproved" bson:"is_approved"`
	ApprovedBy            *string            `json:"approvedBy,omitempty" bson:"approved_by,omitempty"`
	ApprovedAt            *time.Time         `json:"approvedAt,omitempty" bson:"approved_at,omitempty"`
	ManagerNotes          *string            `json:"managerNotes,omitempty" bson:"manager_notes,omitempty"`
	CreatedAt             time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt             time.Time          `json:"updatedAt" bson:"updated_at"`
}

// RecomputeAverageCategoryRating пересчитывает средний рейтинг по категориям.
// Вызывается сущностью при каждом сохранении: значение никогда не задаётся извне.
func (r *Review) RecomputeAverageCategoryRating() {
	if len(r.ReviewCategories) == 0 {
		r.AverageCategoryRating = 0
		return
	}
	var sum float64
	for _, c := range r.ReviewCategories {
		sum += c.Rating
	}
	r.AverageCategoryRating = Round2(sum / float64(len(r.ReviewCategories)))
}

// SetApproved применяет монотонное правило к метаданным одобрения:
// false->true проставляет approved_at/approved_by, ->false очищает оба поля
func (r *Review) SetApproved(approved bool, approvedBy string, now time.Time) {
	r.IsApproved = approved
	if approved {
		if approvedBy == "" {
			approvedBy = DefaultApprovedBy
		}
		r.ApprovedBy = &approvedBy
		r.ApprovedAt = &now
		return
	}
	r.ApprovedBy = nil
	r.ApprovedAt = nil
}

// Round2 округляет до 2 знаков после запятой
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// HostawayReview - сырая запись отзыва из Hostaway API до нормализации
type HostawayReview struct {
	ID             int64            `json:"id"`
	Type           string           `json:"type"`
	Status         string           `json:"status"`
	Rating         *float64         `json:"rating"`
	PublicReview   string           `json:"publicReview"`
	PrivateReview  *string          `json:"privateReview,omitempty"`
	ReviewCategory []ReviewCategory `json:"reviewCategory"`
	SubmittedAt    string           `json:"submittedAt"` // Формат "2006-01-02 15:04:05"
	GuestName      string           `json:"guestName"`
	ListingID      string           `json:"listingId,omitempty"`
	ListingName    string           `json:"listingName"`
	Channel        string           `json:"channel,omitempty"`
}

// ReviewEvent - событие жизненного цикла отзыва для Kafka
type ReviewEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"` // REVIEW_CREATED, REVIEW_UPDATED, REVIEW_SYNCED, REVIEW_APPROVED, REVIEW_DELETED
	ReviewID   string    `json:"review_id"`
	HostawayID int64     `json:"hostaway_id"`
	ListingID  string    `json:"listing_id"`
	Timestamp  time.Time `json:"timestamp"`
}
