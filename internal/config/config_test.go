package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "APP_PORT", "MONGO_URL", "MONGO_DATABASE", "MONGO_MAX_RETRIES",
		"REDIS_HOST", "CATALOG_COUNTS_TTL", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, DefaultMongoURL, cfg.Mongo.URL)
	assert.Equal(t, "local_library", cfg.Mongo.Database)
	assert.Equal(t, 5, cfg.Mongo.MaxRetries)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, 30*time.Second, cfg.Redis.CountsTTL)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("MONGO_URL", "mongodb://db.internal:27017/catalog?retryWrites=true")
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("REDIS_HOST", "redis:6379")
	t.Setenv("RATE_LIMIT_REQUESTS", "100")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "catalog", cfg.Mongo.Database)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.False(t, cfg.IsDevelopment())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Mongo:     MongoConfig{URL: DefaultMongoURL, Database: "local_library", MaxRetries: 1},
			RateLimit: RateLimitConfig{Requests: 20, Window: time.Minute},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty mongo url", func(c *Config) { c.Mongo.URL = "  " }},
		{"zero retries", func(c *Config) { c.Mongo.MaxRetries = 0 }},
		{"negative rate limit", func(c *Config) { c.RateLimit.Requests = -1 }},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestDatabaseFromURL(t *testing.T) {
	assert.Equal(t, "local_library", databaseFromURL("mongodb://localhost:27017"))
	assert.Equal(t, "shelf", databaseFromURL("mongodb+srv://u:p@cluster0.example.net/shelf?w=majority"))
}
