package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/teamdeck/attention-engine/internal/attention"
	"github.com/teamdeck/attention-engine/internal/config"
	"github.com/teamdeck/attention-engine/internal/store"
)

// Server wires the engine and overlay store into an HTTP handler.
type Server struct {
	engine         *attention.Engine
	overlay        store.OverlayStore
	maxWindowHours int
	limiter        *userLimiter

	nowFunc func() time.Time
}

// New creates a Server over the given engine and overlay store.
func New(engine *attention.Engine, overlay store.OverlayStore, cfg config.ServerConfig) *Server {
	return &Server{
		engine:         engine,
		overlay:        overlay,
		maxWindowHours: cfg.MaxWindowHours,
		limiter:        newUserLimiter(cfg.MutationRatePerS, cfg.MutationRateBurst),
		nowFunc:        time.Now,
	}
}

// Handler builds the route tree. Feed and mutation routes require a caller
// identity; mutations are additionally rate limited per user.
func (s *Server) Handler(cfg config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-User-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/attention", func(r chi.Router) {
		r.Use(requireUser)
		r.Get("/", s.handleFeed)

		r.Group(func(r chi.Router) {
			r.Use(s.limiter.limit)
			r.Post("/ack", s.handleAck)
			r.Post("/mark-read", s.handleMarkRead)
			r.Post("/snooze", s.handleSnooze)
			r.Post("/dismiss", s.handleDismiss)
		})
	})

	return r
}
