package httptransport

import (
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/friendlist/internal/ratelimit"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/handler"
	"github.com/ErlanBelekov/friendlist/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AuthHandler    *handler.AuthHandler
	FriendHandler  *handler.FriendHandler
	HealthHandler  *handler.HealthHandler
	Verifier       middleware.TokenVerifier
	Limiter        ratelimit.Limiter
	CORS           middleware.CORSConfig
	TrustedProxies []string
}

func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	r := gin.New()
	// nil trusts no proxy, so ClientIP is the socket peer.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(sloggin.New(cfg.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(cfg.Limiter, cfg.Logger))

	r.NoRoute(handler.NotFound)

	api := r.Group("/api")
	api.GET("/health", cfg.HealthHandler.Get)

	authMW := middleware.Auth(cfg.Verifier)

	auth := api.Group("/auth")
	auth.POST("/register", cfg.AuthHandler.Register)
	auth.POST("/login", cfg.AuthHandler.Login)
	auth.GET("/me", authMW, cfg.AuthHandler.Me)

	// Protected friend routes
	friends := api.Group("/friends", authMW)
	friends.GET("", cfg.FriendHandler.List)
	friends.POST("", cfg.FriendHandler.Create)
	friends.PUT("/:id", cfg.FriendHandler.Update)
	friends.DELETE("/:id", cfg.FriendHandler.Delete)

	return r, nil
}
