package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"securebank/internal/adapter/http/handler"
	"securebank/internal/adapter/http/middleware"
	"securebank/internal/infrastructure/auth"
	"securebank/internal/infrastructure/idempotency"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	OTPHandler       *handler.OTPHandler
	AuthHandler      *handler.AuthHandler
	HealthHandler    *handler.HealthHandler
	IdempotencyStore idempotency.Store
	IdempotencyTTL   time.Duration
	JWTManager       *auth.JWTManager // nil disables token auth
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Observability endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Account creation and login stay outside token auth; there is
		// nothing to hold a token for yet.
		r.Post("/accounts", cfg.AccountHandler.Create)
		if cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		r.Group(func(r chi.Router) {
			if cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Route("/accounts/{id}", func(r chi.Router) {
				r.Get("/", cfg.AccountHandler.Get)
				r.Get("/transactions", cfg.AccountHandler.ListTransactions)
				r.Post("/otp", cfg.OTPHandler.Issue)
			})

			r.Post("/otp/verify", cfg.OTPHandler.Verify)
			r.Post("/transfers", cfg.TransferHandler.Create)
		})
	})

	return r
}
