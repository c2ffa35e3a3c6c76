package database

import (
	"context"
	"fmt"
	"time"

	"github.com/gogotex/gogotex/backend/go-comments/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

// Option adjusts client options before connecting.
type Option func(*options.ClientOptions)

// WithTracing attaches an OpenTelemetry command monitor to the client.
func WithTracing() Option {
	return func(o *options.ClientOptions) {
		o.SetMonitor(otelmongo.NewMonitor())
	}
}

// ConnectMongo opens a connection and returns the client. Caller should call client.Disconnect(ctx).
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration, opts ...Option) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	clientOpts := options.Client().ApplyURI(uri).SetServerSelectionTimeout(timeout)
	for _, o := range opts {
		o(clientOpts)
	}
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// RetryPolicy controls ConnectMongoWithRetry.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

// DefaultRetry tolerates a database container that starts after the service.
var DefaultRetry = RetryPolicy{Attempts: 5, Backoff: time.Second}

// ConnectMongoWithRetry calls ConnectMongo until it succeeds or the policy
// is exhausted, doubling the wait after each failure.
func ConnectMongoWithRetry(ctx context.Context, uri string, timeout time.Duration, policy RetryPolicy, opts ...Option) (*mongo.Client, error) {
	if policy.Attempts <= 0 {
		policy.Attempts = 1
	}
	backoff := policy.Backoff
	var lastErr error
	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		client, err := ConnectMongo(ctx, uri, timeout, opts...)
		if err == nil {
			return client, nil
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, policy.Attempts, err)
		if attempt == policy.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil, fmt.Errorf("mongo unavailable after %d attempts: %w", policy.Attempts, lastErr)
}
