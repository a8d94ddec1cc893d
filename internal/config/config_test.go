package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := fromEnv(envOf(map[string]string{"IS_DEV_ENV": "true"}))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 240*time.Second, cfg.PresignTTL)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := fromEnv(envOf(map[string]string{
		"APP_PORT":      ":9090",
		"JWT_SECRET":    "s3cret",
		"JWT_TTL":       "1h",
		"KAFKA_BROKERS": "k1:9092, k2:9092,,",
		"REDIS_ADDR":    "redis:6379",
		"S3_USE_SSL":    "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ListenAddr())
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.S3UseSSL)
	assert.NoError(t, cfg.Validate())
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"IS_DEV_ENV":       "maybe",
		"JWT_TTL":          "forever",
		"PRESIGN_TTL":      "soon",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "big",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := fromEnv(envOf(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg, err := fromEnv(envOf(nil))
	require.NoError(t, err)
	assert.Error(t, cfg.Validate(), "production config needs a JWT secret")

	cfg.JWTSecret = devJWTSecret
	assert.Error(t, cfg.Validate(), "production config must not reuse the dev secret")

	cfg.JWTSecret = "real"
	cfg.RateLimitBurst = 0
	assert.Error(t, cfg.Validate())
}
