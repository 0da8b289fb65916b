package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"APP_ENV"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	DBUrl     string `mapstructure:"DB_URL"`
	RedisAddr string `mapstructure:"REDIS_ADDR"`
	RedisPass string `mapstructure:"REDIS_PASSWORD"`
	RedisDB   int    `mapstructure:"REDIS_DB"`

	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTokenTTL time.Duration `mapstructure:"REFRESH_TOKEN_TTL"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`

	SMSAPIKey  string `mapstructure:"SMS_API_KEY"`
	SMSBaseURL string `mapstructure:"SMS_BASE_URL"`
	SMSSender  string `mapstructure:"SMS_SENDER"`

	RateLimitPerSecond float64 `mapstructure:"RATE_LIMIT_PER_SECOND"`
}

// configKeys is every key Load resolves. Each one must be bound explicitly:
// viper only consults the environment for keys it already knows about, so a
// key with no default and no BindEnv would silently read as empty in an
// env-only deployment.
var configKeys = []string{
	"APP_ENV", "HTTP_ADDR",
	"DB_URL", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"JWT_SECRET", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL",
	"SMTP_HOST", "SMTP_PORT", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_FROM",
	"SMS_API_KEY", "SMS_BASE_URL", "SMS_SENDER",
	"RATE_LIMIT_PER_SECOND",
}

// Load reads .env when present and falls back to process env variables.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	for _, key := range configKeys {
		_ = v.BindEnv(key)
	}

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ACCESS_TOKEN_TTL", "60m")
	v.SetDefault("REFRESH_TOKEN_TTL", "24h")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("RATE_LIMIT_PER_SECOND", 5)

	// A missing .env is fine in containerized deployments.
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if c.DBUrl == "" {
		return Config{}, fmt.Errorf("DB_URL is required")
	}
	if c.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return c, nil
}
