package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	Hostaway HostawayConfig
	Sync     SyncConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8084)
}

type MongoDBConfig struct {
	URI      string // URI подключения к MongoDB
	Database string // Имя базы данных
}

type RedisConfig struct {
	Addr     string // Адрес Redis (host:port)
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий отзывов
}

type JWTConfig struct {
	Secret string // Секретный ключ для проверки JWT токенов менеджерских запросов
}

type HostawayConfig struct {
	BaseURL     string // Базовый URL Hostaway API
	AccountID   string
	APIKey      string
	TimeoutSec  int    // Таймаут одной попытки запроса, ретраев нет
	FixturePath string // Путь к файлу с fallback-данными
}

type SyncConfig struct {
	Enabled  bool
	Schedule string // Cron-выражение периодической синхронизации
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8084"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "flex_reviews"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "review_events"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Hostaway: HostawayConfig{
			BaseURL:     getEnv("HOSTAWAY_BASE_URL", "https://api.hostaway.com/v1"),
			AccountID:   getEnv("HOSTAWAY_ACCOUNT_ID", ""),
			APIKey:      getEnv("HOSTAWAY_API_KEY", ""),
			TimeoutSec:  getEnvInt("HOSTAWAY_TIMEOUT_SEC", 10),
			FixturePath: getEnv("HOSTAWAY_FIXTURE_PATH", "fixtures/hostaway_reviews.json"),
		},
		Sync: SyncConfig{
			Enabled:  getEnvBool("SYNC_ENABLED", true),
			Schedule: getEnv("SYNC_SCHEDULE", "0 * * * *"),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
