package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT"      envDefault:"3001"  validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret  string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"   envDefault:"24h" validate:"min=1m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"12"  validate:"min=4,max=31"`

	Store       string `env:"STORE"        envDefault:"memory" validate:"oneof=memory postgres"`
	DatabaseURL string `env:"DATABASE_URL"                     validate:"required_if=Store postgres"`

	RateLimitBackend string        `env:"RATE_LIMIT_BACKEND" envDefault:"memory" validate:"oneof=memory redis"`
	RedisURL         string        `env:"REDIS_URL"                              validate:"required_if=RateLimitBackend redis"`
	RateLimitMax     int           `env:"RATE_LIMIT_MAX"     envDefault:"100"    validate:"min=1"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW"  envDefault:"15m"    validate:"min=1s"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	TrustedProxies     []string `env:"TRUSTED_PROXIES"`

	SeedDemoUser bool `env:"SEED_DEMO_USER" envDefault:"true"`

	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom   string `env:"RESEND_FROM"    validate:"required_if=Env production,required_if=Env staging"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog.Level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
