// Package router assembles the HTTP surface: middleware stack plus the
// conversation, booking and discovery endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinova/intake/internal/conversation"
	httpmiddleware "github.com/clinova/intake/internal/http/middleware"
	"github.com/clinova/intake/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger              *logging.Logger
	ConversationHandler *conversation.Handler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// ChatRateLimit caps conversation turns per second per IP. Zero
	// disables rate limiting.
	ChatRateLimit float64
	ChatRateBurst int
}

// New creates a Chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.ConversationHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Group(func(chat chi.Router) {
			if cfg.ChatRateLimit > 0 {
				chat.Use(httpmiddleware.RateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst))
			}
			chat.Post("/chat", cfg.ConversationHandler.Chat)
		})
		api.Post("/check-booking", cfg.ConversationHandler.CheckBooking)
		api.Get("/doctors", cfg.ConversationHandler.Doctors)
		api.Get("/dates", cfg.ConversationHandler.Dates)
	})

	return r
}
