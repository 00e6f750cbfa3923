package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultMongoURL is used when MONGO_URL is not set
const DefaultMongoURL = "mongodb://localhost:27017/local_library"

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	TrustProxy  bool // tin X-Forwarded-For khi chạy sau reverse proxy
}

type MongoConfig struct {
	URL            string
	Database       string
	ConnectTimeout time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

type RedisConfig struct {
	Host      string // empty = Redis disabled
	Password  string
	DB        int
	CountsTTL time.Duration // cache số liệu trang chủ catalog
}

type RateLimitConfig struct {
	Requests int // per window per client IP, 0 = disabled
	Window   time.Duration
}

// IsDevelopment reports whether full error details may be shown to clients
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Enabled reports whether a Redis host was configured
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	mongoURL := getEnv("MONGO_URL", DefaultMongoURL)

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Local Library"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3000"),
			TrustProxy:  getEnvBool("TRUST_PROXY", false),
		},
		Mongo: MongoConfig{
			URL:            mongoURL,
			Database:       getEnv("MONGO_DATABASE", databaseFromURL(mongoURL)),
			ConnectTimeout: getEnvDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			MaxRetries:     getEnvInt("MONGO_MAX_RETRIES", 5),
			RetryDelay:     getEnvDuration("MONGO_RETRY_DELAY", time.Second),
		},
		Redis: RedisConfig{
			Host:      getEnv("REDIS_HOST", ""),
			Password:  getEnv("REDIS_PASSWORD", ""),
			DB:        getEnvInt("REDIS_DB", 0),
			CountsTTL: getEnvDuration("CATALOG_COUNTS_TTL", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvInt("RATE_LIMIT_REQUESTS", 20),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Mongo.URL) == "" {
		return fmt.Errorf("MONGO_URL must not be empty")
	}
	if c.Mongo.Database == "" {
		return fmt.Errorf("MONGO_DATABASE must not be empty")
	}
	if c.Mongo.MaxRetries < 1 {
		return fmt.Errorf("MONGO_MAX_RETRIES must be at least 1")
	}
	if c.RateLimit.Requests < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

// databaseFromURL lấy tên database từ path của connection string,
// fallback "local_library" nếu URL không chỉ định
func databaseFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "local_library"
	}
	name := strings.TrimPrefix(u.Path, "/")
	if name == "" {
		return "local_library"
	}
	return name
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
