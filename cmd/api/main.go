package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"conftrack/internal/checkin"
	"conftrack/internal/config"
	"conftrack/internal/directory"
	"conftrack/internal/httpapi"
	"conftrack/internal/httpmiddleware"
	"conftrack/internal/observability"
	"conftrack/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Misconfiguration is fatal; guessing a cutoff mid-event would
		// check people out at the wrong time all day.
		log.Fatalf("config load failed: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg config.App, logger *zap.Logger) error {
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	repo, err := directory.NewRepository(db.Client)
	if err != nil {
		return err
	}
	dir := directory.NewCached(repo, redisClient.Client, cfg.RosterCacheTTL, logger)
	svc := checkin.NewService(dir, cfg.Cutoff, time.Now)

	logger.Info("starting",
		zap.String("env", cfg.Env),
		zap.String("cutoff", cfg.Cutoff.String()),
		zap.String("port", cfg.HTTPPort),
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestID())
	r.Use(httpmiddleware.RequestLogger(logger, "/healthz", "/metrics", "/api/users", "/api/users/all"))
	r.Use(httpmiddleware.CORS())
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(httpmiddleware.NewTokenBucket(cfg.RateLimitPerMin, cfg.RateLimitPerMin).GinMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/healthz", func(c *gin.Context) {
		dbHealthy := db.Healthy(c.Request.Context())
		redisHealthy := redisClient.Healthy(c.Request.Context())
		status := http.StatusOK
		if !dbHealthy {
			// redis is only a cache; losing it degrades, losing the db breaks.
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "db": dbHealthy, "redis": redisHealthy})
	})

	httpapi.New(svc, logger).Register(r)

	r.StaticFile("/", cfg.WebDir+"/index.html")
	r.StaticFile("/all", cfg.WebDir+"/all.html")
	r.StaticFile("/seed", cfg.WebDir+"/seed.html")
	r.Static("/static", cfg.WebDir+"/static")

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("forced shutdown", zap.Error(err))
	}

	logger.Info("server exited")
	return nil
}
