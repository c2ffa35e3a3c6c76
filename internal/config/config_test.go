package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_HOST", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "5020", cfg.Server.Port)
	require.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, "/api/comments", cfg.Comments.BasePath)
	require.Empty(t, cfg.MongoDB.URI)
	require.Equal(t, "comments", cfg.MongoDB.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Empty(t, cfg.Redis.Addr())
	require.False(t, cfg.RateLimit.Enabled)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	require.False(t, cfg.Tracing.Enabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "gogotex_test")
	t.Setenv("MONGODB_TIMEOUT", "3")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("COMMENTS_BASE_PATH", "/v2/comments")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "gogotex_test", cfg.MongoDB.Database)
	require.Equal(t, 3*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "/v2/comments", cfg.Comments.BasePath)
	require.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
	require.True(t, cfg.MinIO.UseSSL)
	require.Equal(t, "gogotex", cfg.MinIO.Bucket)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("COMMENTS_BASE_PATH", "comments")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("COMMENTS_BASE_PATH", "/api/comments")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "0")
	_, err = LoadConfig()
	require.Error(t, err)
}
