package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"flexreviews/internal/app/reviews/entity"
)

type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Summary(ctx context.Context, f entity.AnalyticsFilter) (*entity.SummaryReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.SummaryReport), args.Error(1)
}

func (m *MockAnalyticsService) PropertyBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.PropertyBreakdownReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PropertyBreakdownReport), args.Error(1)
}

func (m *MockAnalyticsService) ChannelBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.ChannelBreakdownReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelBreakdownReport), args.Error(1)
}

func (m *MockAnalyticsService) Trends(ctx context.Context, f entity.AnalyticsFilter) (*entity.TrendReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TrendReport), args.Error(1)
}

func (m *MockAnalyticsService) CategoryBreakdown(ctx context.Context, f entity.AnalyticsFilter) (*entity.CategoryBreakdownReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CategoryBreakdownReport), args.Error(1)
}

func (m *MockAnalyticsService) Insights(ctx context.Context, f entity.AnalyticsFilter) (*entity.InsightsReport, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InsightsReport), args.Error(1)
}

func setupAnalyticsRouter(mockService *MockAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalyticsHandler(mockService)

	router := gin.New()
	router.GET("/analytics/summary", h.Summary)
	router.GET("/analytics/by-property", h.ByProperty)
	router.GET("/analytics/by-channel", h.ByChannel)
	router.GET("/analytics/trends", h.Trends)
	router.GET("/analytics/category-breakdown", h.CategoryBreakdown)
	router.GET("/analytics/insights", h.Insights)
	return router
}

func TestSummary_ParsesSharedFilter(t *testing.T) {
	mockService := new(MockAnalyticsService)
	mockService.On("Summary", mock.Anything, mock.MatchedBy(func(f entity.AnalyticsFilter) bool {
		return f.ListingID == "listing-a" &&
			f.Channel == "hostaway" &&
			f.Days == 7 &&
			f.StartDate != nil &&
			f.StartDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&entity.SummaryReport{GeneratedAt: time.Now().UTC()}, nil)

	router := setupAnalyticsRouter(mockService)
	req, _ := http.NewRequest(http.MethodGet, "/analytics/summary?listingId=listing-a&channel=hostaway&days=7&startDate=2025-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestSummary_InvalidDateRejected(t *testing.T) {
	router := setupAnalyticsRouter(new(MockAnalyticsService))

	req, _ := http.NewRequest(http.MethodGet, "/analytics/summary?startDate=last-week", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "startDate")
}

func TestByProperty_ReturnsTiers(t *testing.T) {
	mockService := new(MockAnalyticsService)
	mockService.On("PropertyBreakdown", mock.Anything, mock.Anything).
		Return(&entity.PropertyBreakdownReport{
			Properties: []entity.PropertyBreakdown{
				{ListingID: "a", AvgRating: 9.1, PerformanceTier: entity.TierExcellent},
			},
			GeneratedAt: time.Now().UTC(),
		}, nil)

	router := setupAnalyticsRouter(mockService)
	req, _ := http.NewRequest(http.MethodGet, "/analytics/by-property", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response entity.PropertyBreakdownReport
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, entity.TierExcellent, response.Properties[0].PerformanceTier)
}

func TestInsights_OK(t *testing.T) {
	mockService := new(MockAnalyticsService)
	mockService.On("Insights", mock.Anything, mock.Anything).
		Return(&entity.InsightsReport{
			Alerts:      []entity.Insight{{Type: "low_rated_reviews", Message: "3 review(s) scored below 7.0"}},
			GeneratedAt: time.Now().UTC(),
		}, nil)

	router := setupAnalyticsRouter(mockService)
	req, _ := http.NewRequest(http.MethodGet, "/analytics/insights", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "low_rated_reviews")
}
