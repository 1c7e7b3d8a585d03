package hostaway

import (
	"encoding/json"
	"os"

	"flexreviews/internal/app/reviews/entity"
	"flexreviews/pkg/logger"
)

// FallbackReviews возвращает подменный набор сырых отзывов, когда канал
// недоступен или вернул пустой результат: сначала из fixture-файла,
// при его отсутствии - встроенный литеральный набор.
// Подмена - видимое поведение (логируется), а не тихая потеря данных
func FallbackReviews(fixturePath string) []entity.HostawayReview {
	if fixturePath != "" {
		if data, err := os.ReadFile(fixturePath); err == nil {
			var reviews []entity.HostawayReview
			if err := json.Unmarshal(data, &reviews); err == nil && len(reviews) > 0 {
				logger.Warn().
					Str("fixture", fixturePath).
					Int("count", len(reviews)).
					Msg("Using fixture fallback reviews")
				return reviews
			}
			logger.Warn().Err(err).Str("fixture", fixturePath).Msg("Fixture file unusable, using built-in fallback")
		}
	}

	logger.Warn().Int("count", len(builtinFallback)).Msg("Using built-in fallback reviews")
	return builtinFallback
}

func ptr[T any](v T) *T { return &v }

var builtinFallback = []entity.HostawayReview{
	{
		ID:           7453,
		Type:         entity.ReviewTypeHostToGuest,
		Status:       entity.ReviewStatusPublished,
		PublicReview: "Shane and family are wonderful! Would definitely host again :)",
		ReviewCategory: []entity.ReviewCategory{
			{Category: "cleanliness", Rating: 10},
			{Category: "communication", Rating: 10},
			{Category: "respect_house_rules", Rating: 10},
		},
		SubmittedAt: "2020-08-21 22:45:14",
		GuestName:   "Shane Finkelstein",
		ListingName: "2B N1 A - 29 Shoreditch Heights",
	},
	{
		ID:           7454,
		Type:         entity.ReviewTypeGuestToHost,
		Status:       entity.ReviewStatusPublished,
		Rating:       ptr(9.0),
		PublicReview: "Fantastic stay, the flat was spotless and the check-in seamless.",
		ReviewCategory: []entity.ReviewCategory{
			{Category: "cleanliness", Rating: 9},
			{Category: "communication", Rating: 10},
			{Category: "location", Rating: 8},
		},
		SubmittedAt: "2021-03-14 10:12:00",
		GuestName:   "Maria Kovacs",
		ListingName: "2B N1 A - 29 Shoreditch Heights",
	},
	{
		ID:            7455,
		Type:          entity.ReviewTypeGuestToHost,
		Status:        entity.ReviewStatusPending,
		Rating:        ptr(6.0),
		PublicReview:  "Decent location but the heating was temperamental.",
		PrivateReview: ptr("Boiler needs a service before winter."),
		ReviewCategory: []entity.ReviewCategory{
			{Category: "cleanliness", Rating: 7},
			{Category: "communication", Rating: 6},
			{Category: "value", Rating: 5},
		},
		SubmittedAt: "2021-11-02 18:30:45",
		GuestName:   "Tom Whitfield",
		ListingName: "1B E2 B - 15 Hackney Road",
	},
	{
		ID:           7456,
		Type:         entity.ReviewTypeGuestToHost,
		Status:       entity.ReviewStatusPublished,
		Rating:       ptr(10.0),
		PublicReview: "Best serviced apartment we have stayed in. Immaculate.",
		ReviewCategory: []entity.ReviewCategory{
			{Category: "cleanliness", Rating: 10},
			{Category: "communication", Rating: 9},
			{Category: "location", Rating: 10},
			{Category: "value", Rating: 9},
		},
		SubmittedAt: "2022-06-18 09:05:23",
		GuestName:   "Amelie Laurent",
		ListingName: "3B W1 C - 8 Soho Square",
	},
	{
		ID:           7457,
		Type:         entity.ReviewTypeGuestToHost,
		Status:       entity.ReviewStatusDraft,
		Rating:       ptr(4.0),
		PublicReview: "Noisy street and slow wifi, not what we expected.",
		ReviewCategory: []entity.ReviewCategory{
			{Category: "cleanliness", Rating: 6},
			{Category: "communication", Rating: 4},
			{Category: "location", Rating: 3},
		},
		SubmittedAt: "2022-09-30 21:47:10",
		GuestName:   "Derek Oduya",
		ListingName: "1B E2 B - 15 Hackney Road",
	},
}
