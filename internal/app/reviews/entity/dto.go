package entity

import "time"

// CreateReviewRequest - запрос на создание отзыва вручную
type CreateReviewRequest struct {
	HostawayID    int64            `json:"hostawayId" validate:"required,gt=0"`
	Type          string           `json:"type" validate:"required,oneof=host-to-guest guest-to-host"`
	Status        string           `json:"status" validate:"required,oneof=published pending draft"`
	Rating        *float64         `json:"rating" validate:"omitempty,min=0,max=10"`
	PublicReview  string           `json:"publicReview"`
	PrivateReview *string          `json:"privateReview"`
	Categories    []ReviewCategory `json:"reviewCategories" validate:"dive"`
	SubmittedAt   time.Time        `json:"submittedAt" validate:"required"`
	GuestName     string           `json:"guestName" validate:"required"`
	ListingID     string           `json:"listingId"`
	ListingName   string           `json:"listingName" validate:"required"`
	Channel       string           `json:"channel"`
}

// UpdateReviewRequest - частичное обновление; nil-поля не трогаются
type UpdateReviewRequest struct {
	Status        *string           `json:"status" validate:"omitempty,oneof=published pending draft"`
	Rating        *float64          `json:"rating" validate:"omitempty,min=0,max=10"`
	PublicReview  *string           `json:"publicReview"`
	PrivateReview *string           `json:"privateReview"`
	Categories    *[]ReviewCategory `json:"reviewCategories" validate:"omitempty,dive"`
	IsApproved    *bool             `json:"isApproved"`
	ApprovedBy    *string           `json:"approvedBy"`
	ManagerNotes  *string           `json:"managerNotes"`
}

// ApproveRequest - запрос на одобрение отзыва
type ApproveRequest struct {
	ApprovedBy   string  `json:"approvedBy"`
	ManagerNotes *string `json:"managerNotes"`
}

// BulkApproveRequest - массовое одобрение по списку ID
type BulkApproveRequest struct {
	ReviewIDs  []string `json:"reviewIds" validate:"required,min=1"`
	ApprovedBy string   `json:"approvedBy"`
}

// ReviewFilter - конъюнктивный набор предикатов для выборки отзывов
type ReviewFilter struct {
	ListingID  string
	Channel    string
	Status     string
	MinRating  *float64
	IsApproved *bool
	StartDate  *time.Time
	EndDate    *time.Time
	GuestName  string
}

// AnalyticsFilter - общий фильтр аналитических отчётов
type AnalyticsFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	ListingID string
	Channel   string
	Days      int
}

// Pagination - метаданные постраничной выдачи (1-indexed)
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNextPage"`
	HasPrev    bool  `json:"hasPrevPage"`
}

// NewPagination считает метаданные выдачи из total и page*limit
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    int64(page*limit) < total,
		HasPrev:    page > 1 && total > 0,
	}
}

// ReviewListResponse - ответ со списком отзывов
type ReviewListResponse struct {
	Data       []Review   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// SyncResponse - итог синхронизации с каналом
type SyncResponse struct {
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
	Total    int    `json:"total"`
	Source   string `json:"source"` // hostaway или fallback
}

// BulkApproveResponse - итог массового одобрения
type BulkApproveResponse struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
