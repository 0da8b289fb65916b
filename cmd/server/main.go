package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/digistore/api/internal/auth"
	"github.com/digistore/api/internal/config"
	"github.com/digistore/api/internal/db"
	"github.com/digistore/api/internal/handlers"
	"github.com/digistore/api/internal/logger"
	"github.com/digistore/api/internal/middleware"
	"github.com/digistore/api/internal/repository"
	"github.com/digistore/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	// Postgres.
	pool, err := db.NewPool(ctx, cfg.DBUrl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()
	zl.Info("database connection established")

	if err := db.Migrate(cfg.DBUrl); err != nil {
		zl.Fatal("failed to run migrations", zap.Error(err))
	}
	zl.Info("schema migrations applied")

	// Redis (refresh-token revocation list).
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	defer func() { _ = rdb.Close() }()
	if err := rdb.Ping(ctx).Err(); err != nil {
		zl.Fatal("failed to connect to redis", zap.Error(err))
	}
	zl.Info("redis connection established")

	// Repositories.
	userRepo := repository.NewUserRepository(pool)
	verificationRepo := repository.NewVerificationRepository(pool)
	catalogRepo := repository.NewCatalogRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	blacklist := repository.NewTokenBlacklist(rdb)

	// Services.
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	emailSender := service.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, zl)
	smsSender := service.NewSMSService(cfg.SMSAPIKey, cfg.SMSBaseURL, cfg.SMSSender, zl)

	authService := service.NewAuthService(userRepo, tokens, blacklist, auditRepo, zl)
	verificationService := service.NewVerificationService(verificationRepo, emailSender, smsSender, auditRepo, zl)
	catalogService := service.NewCatalogService(catalogRepo)
	orderService := service.NewOrderService(orderRepo, catalogRepo)

	// HTTP surface.
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	lmt := middleware.NewRateLimiter(cfg.RateLimitPerSecond)
	handlers.RegisterRoutes(router, handlers.Handlers{
		Auth:         handlers.NewAuthHandler(authService, zl),
		Verification: handlers.NewVerificationHandler(verificationService, userRepo, zl),
		Catalog:      handlers.NewCatalogHandler(catalogService),
		Orders:       handlers.NewOrderHandler(orderService),
		Audit:        handlers.NewAuditHandler(auditRepo),
		Health:       handlers.NewHealthHandler(pool, redisPinger{rdb}),
	}, tokens, lmt)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("forced shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}

// redisPinger adapts go-redis to the handlers.Pinger interface.
type redisPinger struct {
	rdb *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.rdb.Ping(ctx).Err()
}
