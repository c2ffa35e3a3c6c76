package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/gogotex/backend/go-comments/internal/config"
	"github.com/gogotex/gogotex/backend/go-comments/internal/database"
	"github.com/gogotex/gogotex/backend/go-comments/internal/server"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/logger"
	"github.com/gogotex/gogotex/backend/go-comments/pkg/tracing"
)

func main() {
	// early logger so config errors are visible; reconfigured below
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	logger.Configure(os.Stdout, cfg.Log.Format)
	defer logger.Sync()
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		SampleRate:  cfg.Tracing.SampleRate,
		ServiceName: server.ServiceName,
		Environment: cfg.Server.Environment,
	})
	if err != nil {
		logger.Fatalf("tracing init failed: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warnf("tracing shutdown failed: %v", err)
		}
	}()

	svc, closeStore, err := server.OpenStore(ctx, cfg, database.DefaultRetry, true)
	if err != nil {
		logger.Fatalf("comment store: %v", err)
	}
	defer closeStore(context.Background())

	rdb, err := server.OpenRedis(ctx, cfg)
	if err != nil {
		logger.Warnf("%v: falling back to in-process rate limiter", err)
	}
	if rdb != nil {
		defer rdb.Close()
		logger.Infof("connected to Redis at %s", cfg.Redis.Addr())
	}

	logger.Infof("config summary: mongo=%v redis=%v rate_limit=%v tracing=%v base_path=%s",
		cfg.MongoDB.URI != "", rdb != nil, cfg.RateLimit.Enabled, cfg.Tracing.Enabled, cfg.Comments.BasePath)

	srv := server.NewHTTPServer(cfg, server.NewRouter(cfg, svc, rdb))

	go func() {
		logger.Infof("starting comments service on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("server shutdown failed: %v", err)
	}
	logger.Info("server exited")
}
