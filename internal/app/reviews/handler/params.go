package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"flexreviews/internal/app/reviews/entity"
)

// parseDate принимает RFC3339 либо короткую дату YYYY-MM-DD
func parseDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		t = t.UTC()
		return &t, true
	}
	return nil, false
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// parseReviewFilter собирает фильтр листинга из query-параметров.
// Некорректное значение возвращает имя параметра для ответа 400
func parseReviewFilter(c *gin.Context) (entity.ReviewFilter, string) {
	f := entity.ReviewFilter{
		ListingID: c.Query("listingId"),
		Channel:   c.Query("channel"),
		Status:    c.Query("status"),
		GuestName: c.Query("guestName"),
	}

	if raw := c.Query("minRating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, "minRating"
		}
		f.MinRating = &v
	}
	if raw := c.Query("isApproved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, "isApproved"
		}
		f.IsApproved = &v
	}

	start, ok := parseDate(c.Query("startDate"))
	if !ok {
		return f, "startDate"
	}
	f.StartDate = start

	end, ok := parseDate(c.Query("endDate"))
	if !ok {
		return f, "endDate"
	}
	f.EndDate = end

	return f, ""
}

// parseAnalyticsFilter собирает общий фильтр отчетов аналитики
func parseAnalyticsFilter(c *gin.Context) (entity.AnalyticsFilter, string) {
	f := entity.AnalyticsFilter{
		ListingID: c.Query("listingId"),
		Channel:   c.Query("channel"),
		Days:      parseIntQuery(c, "days", 0),
	}

	start, ok := parseDate(c.Query("startDate"))
	if !ok {
		return f, "startDate"
	}
	f.StartDate = start

	end, ok := parseDate(c.Query("endDate"))
	if !ok {
		return f, "endDate"
	}
	f.EndDate = end

	return f, ""
}
