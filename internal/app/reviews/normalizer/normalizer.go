package normalizer

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"flexreviews/internal/app/reviews/entity"
)

const (
	submittedAtLayout = "2006-01-02 15:04:05"
	maxSlugLen        = 50
)

var (
	ErrMissingHostawayID  = errors.New("raw review has no hostaway id")
	ErrMissingListingName = errors.New("raw review has no listing name")
	ErrInvalidRating      = errors.New("rating out of range 0-10")
	ErrInvalidType        = errors.New("unrecognized review type")
	ErrInvalidStatus      = errors.New("unrecognized review status")
	ErrInvalidSubmittedAt = errors.New("malformed submittedAt timestamp")
)

// ValidateRaw отклоняет некорректные записи на границе нормализации,
// чтобы дальше по конвейеру не уходили слабо типизированные данные
func ValidateRaw(raw entity.HostawayReview) error {
	if raw.ID <= 0 {
		return ErrMissingHostawayID
	}
	if strings.TrimSpace(raw.ListingName) == "" {
		return ErrMissingListingName
	}
	if raw.Rating != nil && (*raw.Rating < 0 || *raw.Rating > 10) {
		return fmt.Errorf("%w: overall %v", ErrInvalidRating, *raw.Rating)
	}
	for _, c := range raw.ReviewCategory {
		if c.Rating < 0 || c.Rating > 10 {
			return fmt.Errorf("%w: category %s %v", ErrInvalidRating, c.Category, c.Rating)
		}
	}
	switch raw.Type {
	case entity.ReviewTypeHostToGuest, entity.ReviewTypeGuestToHost:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidType, raw.Type)
	}
	switch raw.Status {
	case entity.ReviewStatusPublished, entity.ReviewStatusPending, entity.ReviewStatusDraft:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidStatus, raw.Status)
	}
	if _, err := time.Parse(submittedAtLayout, raw.SubmittedAt); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSubmittedAt, raw.SubmittedAt)
	}
	return nil
}

// Normalize превращает сырую запись канала в каноническую форму.
// Чистая функция: без I/O и побочных эффектов, детерминирована на одном входе.
// Вход должен быть предварительно проверен через ValidateRaw.
func Normalize(raw entity.HostawayReview) entity.Review {
	submittedAt, _ := time.Parse(submittedAtLayout, raw.SubmittedAt)

	categories := make([]entity.ReviewCategory, len(raw.ReviewCategory))
	copy(categories, raw.ReviewCategory)

	listingID := raw.ListingID
	if listingID == "" {
		listingID = SlugifyListing(raw.ListingName)
	}

	channel := raw.Channel
	if channel == "" {
		channel = entity.DefaultChannel
	}

	var privateReview *string
	if raw.PrivateReview != nil {
		v := *raw.PrivateReview
		privateReview = &v
	}

	var rating *float64
	if raw.Rating != nil {
		v := *raw.Rating
		rating = &v
	}

	review := entity.Review{
		HostawayID:       raw.ID,
		Type:             raw.Type,
		Status:           raw.Status,
		Rating:           rating,
		PublicReview:     raw.PublicReview,
		PrivateReview:    privateReview,
		ReviewCategories: categories,
		SubmittedAt:      submittedAt.UTC(),
		GuestName:        raw.GuestName,
		ListingID:        listingID,
		ListingName:      raw.ListingName,
		Channel:          channel,
	}
	review.RecomputeAverageCategoryRating()
	return review
}

// SlugifyListing детерминированно выводит listing_id из имени объекта:
// нижний регистр, не-буквенно-цифровые символы отбрасываются,
// пробелы становятся дефисами, длина ограничена 50 символами
func SlugifyListing(name string) string {
	var b strings.Builder
	lastHyphen := true // не начинаем с дефиса
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimSuffix(slug[:maxSlugLen], "-")
	}
	return slug
}
