package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Pinger is satisfied by the comment service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeHandler serves liveness and readiness.
type ProbeHandler struct {
	store        Pinger
	backend      string
	wantBackend  string
	redis        *redis.Client
	checkTimeout time.Duration
	startTime    time.Time
}

// NewProbeHandler builds probes over the comment store and, when non-nil,
// the Redis client used by the rate limiter.
func NewProbeHandler(store Pinger, redisClient *redis.Client) *ProbeHandler {
	return &ProbeHandler{
		store:        store,
		redis:        redisClient,
		checkTimeout: 2 * time.Second,
		startTime:    time.Now(),
	}
}

// WithBackend sets the store backend reported by /ready. When want is
// non-empty and differs from actual, /ready reports the replica as degraded.
func (h *ProbeHandler) WithBackend(actual, want string) *ProbeHandler {
	h.backend = actual
	h.wantBackend = want
	return h
}

func (h *ProbeHandler) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
}

// Health reports liveness only.
func (h *ProbeHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "healthy")
}

// Ready returns 200 only when every configured dependency answers.
func (h *ProbeHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.checkTimeout)
	defer cancel()

	ready := true
	deps := map[string]bool{}

	deps["store"] = h.store.Ping(ctx) == nil
	ready = ready && deps["store"]

	if h.redis != nil {
		deps["redis"] = h.redis.Ping(ctx).Err() == nil
		ready = ready && deps["redis"]
	}

	body := gin.H{"status": "ready", "deps": deps, "uptime": time.Since(h.startTime).String()}
	if h.backend != "" {
		body["store_backend"] = h.backend
	}
	if h.wantBackend != "" && h.backend != h.wantBackend {
		// still serving, but not from the configured store
		body["status"] = "degraded"
		body["degraded"] = true
	}
	if !ready {
		body["status"] = "not_ready"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}
