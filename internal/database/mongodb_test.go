package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestConnectMongoRejectsBadURI(t *testing.T) {
	_, err := ConnectMongo(context.Background(), "not-a-mongo-uri", time.Second)
	require.Error(t, err)
	require.Contains(t, err.Error(), "mongo connect")
}

func TestConnectMongoWithRetryGivesUp(t *testing.T) {
	start := time.Now()
	_, err := ConnectMongoWithRetry(context.Background(), "not-a-mongo-uri", time.Second,
		RetryPolicy{Attempts: 3, Backoff: 10 * time.Millisecond})
	require.Error(t, err)
	require.Contains(t, err.Error(), "after 3 attempts")
	// 10ms + 20ms of backoff between three attempts
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestConnectMongoWithRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ConnectMongoWithRetry(ctx, "not-a-mongo-uri", time.Second,
		RetryPolicy{Attempts: 3, Backoff: time.Hour})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithTracingSetsMonitor(t *testing.T) {
	o := options.Client()
	WithTracing()(o)
	require.NotNil(t, o.Monitor)
}
