package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/friendlist/config"
	"github.com/ErlanBelekov/friendlist/internal/email"
	"github.com/ErlanBelekov/friendlist/internal/health"
	"github.com/ErlanBelekov/friendlist/internal/infrastructure/memory"
	"github.com/ErlanBelekov/friendlist/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/friendlist/internal/log"
	"github.com/ErlanBelekov/friendlist/internal/metrics"
	"github.com/ErlanBelekov/friendlist/internal/password"
	"github.com/ErlanBelekov/friendlist/internal/ratelimit"
	"github.com/ErlanBelekov/friendlist/internal/repository"
	httptransport "github.com/ErlanBelekov/friendlist/internal/transport/http"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/handler"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/middleware"
	"github.com/ErlanBelekov/friendlist/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var deps []health.Dependency

	// Stores
	var (
		userRepo   repository.UserRepository
		friendRepo repository.FriendRepository
	)
	switch cfg.Store {
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalf("db: %v", err)
		}
		logger.Info("db connected and migrated")

		userRepo = postgres.NewUserRepository(pool)
		friendRepo = postgres.NewFriendRepository(pool)
		deps = append(deps, health.Dependency{Name: "postgres", Pinger: pool})
	default:
		userRepo = memory.NewUserRepository()
		friendRepo = memory.NewFriendRepository()
		logger.Warn("using in-memory store, data is lost on restart")
	}

	// Auth
	emailSender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(
		userRepo,
		password.NewHasher(cfg.BcryptCost),
		emailSender,
		[]byte(cfg.JWTSecret),
		cfg.TokenTTL,
		logger,
	)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	if cfg.SeedDemoUser {
		demo, err := authUsecase.SeedDemoUser(ctx, usecase.DemoUserName, usecase.DemoUserEmail, usecase.DemoUserPassword)
		if err != nil {
			log.Fatalf("seed demo user: %v", err)
		}
		attrs := []any{"user_id", demo.ID, "email", demo.Email}
		if cfg.Env == "local" {
			attrs = append(attrs, "password", usecase.DemoUserPassword)
		}
		logger.Info("demo user ready", attrs...)
	}

	// Friends
	friendUsecase := usecase.NewFriendUsecase(friendRepo)
	friendHandler := handler.NewFriendHandler(friendUsecase, logger)

	// Rate limiting
	var limiter ratelimit.Limiter
	switch cfg.RateLimitBackend {
	case "redis":
		client, err := ratelimit.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer client.Close()

		limiter = ratelimit.NewRedisLimiter(client, cfg.RateLimitMax, cfg.RateLimitWindow)
		deps = append(deps, health.Dependency{
			Name:   "redis",
			Pinger: health.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() }),
		})
	default:
		memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
		limiter = memLimiter

		sweeper := cron.New()
		if _, err := sweeper.AddFunc("@every 1m", func() {
			if n := memLimiter.Sweep(); n > 0 {
				logger.Debug("rate limit windows swept", "removed", n)
			}
		}); err != nil {
			log.Fatalf("cron: %v", err)
		}
		sweeper.Start()
		defer sweeper.Stop()
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, deps...)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.CORSAllowedOrigins

	router, err := httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         logger,
		AuthHandler:    authHandler,
		FriendHandler:  friendHandler,
		HealthHandler:  handler.NewHealthHandler(checker),
		Verifier:       authUsecase,
		Limiter:        limiter,
		CORS:           cors,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		log.Fatalf("router: %v", err)
	}

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "store", cfg.Store, "rate_limit_backend", cfg.RateLimitBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
