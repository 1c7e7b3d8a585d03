package infrastructure

import (
	"context"
	"time"

	"flexreviews/internal/app/reviews/entity"
)

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// Cache интерфейс cache-aside хранилища (Redis)
// Сбои кеша поглощаются реализацией: Get при ошибке ведет себя как промах
type Cache interface {
	Get(ctx context.Context, prefix, key string, dst any) bool
	Set(ctx context.Context, prefix, key string, v any, ttl time.Duration)
	Invalidate(ctx context.Context, prefixes ...string)
}

// ChannelClient интерфейс клиента внешнего канала отзывов (Hostaway)
type ChannelClient interface {
	FetchRawReviews(ctx context.Context) ([]entity.HostawayReview, error)
}
