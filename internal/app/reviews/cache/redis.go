package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flexreviews/pkg/logger"
	"flexreviews/pkg/metrics"
)

const serviceName = "reviews-service"

// Логические префиксы кеша. Каждый выданный ключ регистрируется в Redis SET
// "cachekeys:<prefix>", чтобы инвалидация по префиксу не требовала SCAN
const (
	PrefixStatistics = "reviews:statistics"
	PrefixApproved   = "reviews:approved"
	PrefixTrend      = "reviews:trend"
	PrefixAnalytics  = "analytics"
)

const (
	DefaultTTL = 300 * time.Second
	PublicTTL  = 600 * time.Second

	registryTTL = 24 * time.Hour
)

type Client struct {
	client *redis.Client
}

func NewClient(addr, password string, db int) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{client: client}, nil
}

// NewFromRedis оборачивает готовый клиент (используется в тестах с miniredis)
func NewFromRedis(client *redis.Client) *Client {
	return &Client{client: client}
}

// Get читает запись из кеша. Любой сбой Redis трактуется как промах:
// запрос не должен падать из-за недоступного кеша
func (c *Client) Get(ctx context.Context, prefix, key string, dst any) bool {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	data, err := c.client.Get(ctx, key).Bytes()
	timer.ObserveDuration()

	if err == redis.Nil {
		metrics.RecordCacheMiss(serviceName, prefix)
		return false
	}
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		logger.Warn().Err(err).Str("key", key).Msg("Cache read failed, treating as miss")
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		metrics.RecordCacheMiss(serviceName, prefix)
		logger.Warn().Err(err).Str("key", key).Msg("Corrupt cache entry, treating as miss")
		return false
	}

	metrics.RecordCacheHit(serviceName, prefix)
	return true
}

// Set пишет запись с TTL и регистрирует ключ в реестре своего префикса.
// Сбой записи логируется и не прерывает запрос
func (c *Client) Set(ctx context.Context, prefix, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("Failed to marshal cache entry")
		return
	}

	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	err = c.client.Set(ctx, key, data, ttl).Err()
	timer.ObserveDuration()
	if err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		return
	}

	registry := registryKey(prefix)
	if err := c.client.SAdd(ctx, registry, key).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSAdd)
		logger.Warn().Err(err).Str("key", key).Msg("Failed to register cache key")
		return
	}
	c.client.Expire(ctx, registry, registryTTL)
}

// Invalidate удаляет все зарегистрированные ключи перечисленных префиксов.
// Ключи, уже истёкшие по TTL, удаляются вхолостую - это безопасно
func (c *Client) Invalidate(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		registry := registryKey(prefix)

		keys, err := c.client.SMembers(ctx, registry).Result()
		if err != nil {
			metrics.RecordRedisError(serviceName, metrics.RedisOpSMembers)
			logger.Warn().Err(err).Str("prefix", prefix).Msg("Cache invalidation failed")
			continue
		}

		timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpDel)
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
				logger.Warn().Err(err).Str("prefix", prefix).Msg("Cache invalidation failed")
			}
		}
		c.client.Del(ctx, registry)
		timer.ObserveDuration()
	}
}

func (c *Client) Close() error {
	return c.client.Close()
}

func registryKey(prefix string) string {
	return "cachekeys:" + prefix
}
