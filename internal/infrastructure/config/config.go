package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	// Bank policy
	BankName               string          `env:"BANK_NAME"                envDefault:"Secure Bank"`
	OverdraftLimit         decimal.Decimal `env:"OVERDRAFT_LIMIT"          envDefault:"500"`
	SingleTransactionLimit decimal.Decimal `env:"SINGLE_TRANSACTION_LIMIT" envDefault:"5000"`
	DailyTransactionLimit  decimal.Decimal `env:"DAILY_TRANSACTION_LIMIT"  envDefault:"10000"`
	AccountInactiveWindow  time.Duration   `env:"ACCOUNT_INACTIVE_WINDOW"  envDefault:"2160h"`
	OTPTTL                 time.Duration   `env:"OTP_TTL"                  envDefault:"3m"`

	// Encryption key, base64-encoded. Empty means an ephemeral key is
	// generated at startup and a security warning is emitted.
	EncryptionKey string `env:"ENCRYPTION_KEY" envDefault:""`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency. REDIS_URL selects the redis-backed store; when empty the
	// in-process store is used.
	RedisURL       string        `env:"REDIS_URL"       envDefault:""`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"50"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Authentication (optional - leave empty to disable)
	JWTSecret     string        `env:"JWT_SECRET"     envDefault:""`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	AuthEnabled   bool          `env:"AUTH_ENABLED"   envDefault:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects combinations that would silently disable a feature the
// operator asked for.
func (c *Config) Validate() error {
	if c.AuthEnabled && c.JWTSecret == "" {
		return errors.New("AUTH_ENABLED requires JWT_SECRET to be set")
	}

	return nil
}

// EncryptionKeyBytes decodes the configured key. An empty configuration
// yields nil, which callers treat as "generate an ephemeral key".
func (c *Config) EncryptionKeyBytes() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}

	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("decode ENCRYPTION_KEY: %w", err)
	}

	return key, nil
}
