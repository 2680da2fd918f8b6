package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "securebank/internal/adapter/http"
	"securebank/internal/adapter/http/handler"
	"securebank/internal/adapter/http/middleware"
	"securebank/internal/bank"
	"securebank/internal/infrastructure/auth"
	"securebank/internal/infrastructure/config"
	"securebank/internal/infrastructure/idempotency"
	"securebank/internal/infrastructure/logger"
	"securebank/internal/infrastructure/notifier"
	"securebank/internal/secrets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Crypto layer. A missing key is tolerated but loudly warned about.
	key, err := cfg.EncryptionKeyBytes()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid encryption key")
	}

	secretsManager, err := secrets.NewManager(key, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize secrets manager")
	}

	// Event delivery (OTP gateway stand-in)
	events := notifier.New(notifier.NewLogSink(appLogger), appLogger)

	// The bank itself
	b, err := bank.New(bank.Config{
		Name:                  cfg.BankName,
		SingleTransferLimit:   cfg.SingleTransactionLimit,
		DailyTransferLimit:    cfg.DailyTransactionLimit,
		DefaultOverdraftLimit: cfg.OverdraftLimit,
		InactivityWindow:      cfg.AccountInactiveWindow,
		OTPTTL:                cfg.OTPTTL,
	}, secretsManager, bank.NewULIDGenerator(), events, appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize bank")
	}

	// Idempotency store: redis when configured, in-process otherwise
	var idempotencyStore idempotency.Store
	if cfg.RedisURL != "" {
		redisStore, err := idempotency.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisStore.Close()
		idempotencyStore = redisStore
		log.Info().Msg("using redis idempotency store")
	} else {
		idempotencyStore = idempotency.NewMemoryStore()
	}

	// Optional token auth for the HTTP surface
	var jwtManager *auth.JWTManager
	var authHandler *handler.AuthHandler
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
		authHandler = handler.NewAuthHandler(b, jwtManager)
	}
	if !cfg.AuthEnabled {
		jwtManager = nil
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Periodic housekeeping for in-process state: the per-IP limiter map and
	// the memory idempotency store grow without it.
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			rateLimiter.CleanupLimiters()
			if store, ok := idempotencyStore.(*idempotency.MemoryStore); ok {
				store.Sweep()
			}
		}
	}()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(b),
		TransferHandler:  handler.NewTransferHandler(b),
		OTPHandler:       handler.NewOTPHandler(b),
		AuthHandler:      authHandler,
		HealthHandler:    handler.NewHealthHandler(b.Name()),
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		JWTManager:       jwtManager,
		RateLimiter:      rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Str("bank", cfg.BankName).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
