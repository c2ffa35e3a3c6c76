package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogotex/gogotex/backend/go-comments/internal/comment/service"
	"github.com/gogotex/gogotex/backend/go-comments/internal/config"
	"github.com/gogotex/gogotex/backend/go-comments/internal/database"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/logger"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
)

// ErrStoreNotConfigured is returned by OpenStore when MONGODB_URI is empty
// and falling back to memory is not allowed.
var ErrStoreNotConfigured = errors.New("MONGODB_URI is not set")

// Closer releases a dependency opened at start-up.
type Closer func(context.Context)

func noopCloser(context.Context) {}

// OpenStore builds the comment service. With fallback set, a missing or
// unreachable MongoDB yields the memory backend instead of an error.
func OpenStore(ctx context.Context, cfg *config.Config, policy database.RetryPolicy, fallback bool) (service.Service, Closer, error) {
	if cfg.MongoDB.URI == "" {
		if !fallback {
			return nil, noopCloser, ErrStoreNotConfigured
		}
		logger.Warn("MONGODB_URI not set: using memory-backed comment store")
		return service.NewMemoryService(), noopCloser, nil
	}

	var opts []database.Option
	if cfg.Tracing.Enabled {
		opts = append(opts, database.WithTracing())
	}
	client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, policy, opts...)
	if err != nil {
		if !fallback {
			return nil, noopCloser, err
		}
		logger.Warnf("cannot connect to MongoDB (%v): using memory-backed comment store", err)
		return service.NewMemoryService(), noopCloser, nil
	}
	logger.Infof("connected to MongoDB database=%s collection=%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)

	col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
	closer := func(ctx context.Context) {
		if err := client.Disconnect(ctx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
	return service.NewMongoService(col), closer, nil
}

// OpenRedis connects the client used by the rate limiter. It returns nil
// without error when Redis is not configured or not needed.
func OpenRedis(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.Redis.Addr() == "" || !cfg.RateLimit.Enabled || !cfg.RateLimit.UseRedis {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr(), err)
	}
	if cfg.Tracing.Enabled {
		if err := redisotel.InstrumentTracing(client); err != nil {
			logger.Warnf("redis tracing init failed: %v", err)
		}
	}
	return client, nil
}
