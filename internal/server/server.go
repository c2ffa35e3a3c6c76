package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/go-comments/handlers"
	"github.com/gogotex/gogotex/backend/go-comments/internal/comment/handler"
	"github.com/gogotex/gogotex/backend/go-comments/internal/comment/service"
	"github.com/gogotex/gogotex/backend/go-comments/internal/config"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/logger"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/metrics"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const ServiceName = "gogotex-comments"

// NewRouter wires middleware, the comment endpoint set, probes, docs and
// /metrics onto a fresh engine. rdb may be nil.
func NewRouter(cfg *config.Config, svc service.Service, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware("X-Request-ID"))
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(ServiceName))
	}
	r.Use(middleware.RequestLogger(logger.Zap()))
	r.Use(cors.New(corsConfig(cfg.CORS.AllowedOrigins)))

	httpMetrics := metrics.NewHTTPMetrics(ServiceName)
	r.Use(httpMetrics.Middleware())
	r.GET("/metrics", gin.WrapH(httpMetrics.Handler()))

	want := ""
	if cfg.MongoDB.URI != "" {
		want = service.BackendMongo
	}
	probes := handlers.NewProbeHandler(svc, rdb).WithBackend(service.Backend(svc), want)
	probes.Register(r)

	api := r.Group(cfg.Comments.BasePath)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			api.Use(middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			api.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}
	handler.RegisterCommentRoutes(api, svc)

	handlers.RegisterSwagger(r, cfg.Comments.BasePath)
	return r
}

// NewHTTPServer returns an http.Server for the router using the configured
// address and timeouts.
func NewHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           h,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && strings.TrimSpace(origins[0]) == "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
