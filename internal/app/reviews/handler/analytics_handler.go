package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"flexreviews/internal/app/reviews/service"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsServiceInterface
}

func NewAnalyticsHandler(analyticsService service.AnalyticsServiceInterface) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) Summary(c *gin.Context) {
	filter, badParam := parseAnalyticsFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameter: " + badParam})
		return
	}

	report, err := h.analyticsService.Summary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) ByProperty(c *gin.Context) {
	filter, badParam := parseAnalyticsFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameter: " + badParam})
		return
	}

	report, err := h.analyticsService.PropertyBreakdown(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build property breakdown"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) ByChannel(c *gin.Context) {
	filter, badParam := parseAnalyticsFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameter: " + badParam})
		return
	}

	report, err := h.analyticsService.ChannelBreakdown(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build channel breakdown"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) Trends(c *gin.Context) {
	filter, badParam := parseAnalyticsFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameter: " + badParam})
		return
	}

	report, err := h.analyticsService.Trends(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build trends"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	filter, badParam := parseAnalyticsFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameter: " + badParam})
		return
	}

	report, err := h.analyticsService.CategoryBreakdown(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build category breakdown"})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *AnalyticsHandler) Insights(c *gin.Context) {
	filter, badParam := parseAnalyticsFilter(c)
	if badParam != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameter: " + badParam})
		return
	}

	report, err := h.analyticsService.Insights(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build insights"})
		return
	}

	c.JSON(http.StatusOK, report)
}
