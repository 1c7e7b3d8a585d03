package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"flexreviews/internal/app/reviews/entity"
	"flexreviews/internal/app/reviews/service"
)

type ReviewHandler struct {
	reviewService service.ReviewServiceInterface
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewServiceInterface) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	filter, badParam := parseReviewFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameter: " + badParam})
		return
	}

	page := parseIntQuery(c, "page", 1)
	limit := parseIntQuery(c, "limit", 0)
	sortBy := c.Query("sortBy")
	sortOrder := c.Query("sortOrder")

	response, err := h.reviewService.ListReviews(c.Request.Context(), filter, sortBy, sortOrder, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ReviewHandler) PublicReviews(c *gin.Context) {
	listingID := c.Query("listingId")
	limit := parseIntQuery(c, "limit", 0)

	reviews, err := h.reviewService.GetPublicReviews(c.Request.Context(), listingID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get public reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reviews, "total": len(reviews)})
}

func (h *ReviewHandler) Statistics(c *gin.Context) {
	report, err := h.reviewService.GetStatistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get statistics"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReviewHandler) Trend(c *gin.Context) {
	days := parseIntQuery(c, "days", 30)

	report, err := h.reviewService.GetTrend(c.Request.Context(), days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get trend"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID := c.Param("review_id")

	review, err := h.reviewService.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req entity.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateReview) {
			c.JSON(http.StatusConflict, gin.H{"error": "Review with this hostaway id already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) SyncReviews(c *gin.Context) {
	var raw []entity.HostawayReview
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	response, err := h.reviewService.SyncReviews(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, service.ErrEmptyBatch) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Sync batch is empty"})
			return
		}
		if errors.Is(err, service.ErrInvalidReview) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync reviews"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	reviewID := c.Param("review_id")

	var req entity.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	review, err := h.reviewService.UpdateReview(c.Request.Context(), reviewID, &req)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) ApproveReview(c *gin.Context) {
	reviewID := c.Param("review_id")

	// Тело запроса опционально: без него approvedBy берется по умолчанию
	var req entity.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	approvedBy := req.ApprovedBy
	if approvedBy == "" {
		approvedBy = entity.DefaultApprovedBy
	}

	review, err := h.reviewService.ApproveReview(c.Request.Context(), reviewID, approvedBy, req.ManagerNotes)
	if err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve review"})
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) BulkApprove(c *gin.Context) {
	var req entity.BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatValidationError(err)})
		return
	}

	approvedBy := req.ApprovedBy
	if approvedBy == "" {
		approvedBy = entity.DefaultApprovedBy
	}

	response, err := h.reviewService.BulkApproveReviews(c.Request.Context(), req.ReviewIDs, approvedBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bulk approve reviews"})
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	reviewID := c.Param("review_id")

	if err := h.reviewService.DeleteReview(c.Request.Context(), reviewID); err != nil {
		if errors.Is(err, service.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{
		Message: "Review deleted successfully",
	})
}

func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
