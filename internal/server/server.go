// Package server exposes the game engine over HTTP and WebSocket.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/engine"
	"github.com/traderoyale/engine/internal/events"
	"github.com/traderoyale/engine/internal/modules/achievements"
	"github.com/traderoyale/engine/internal/modules/history"
	"github.com/traderoyale/engine/internal/modules/leaderboard"
	"github.com/traderoyale/engine/internal/session"
)

// Config holds server configuration
type Config struct {
	Port    int
	DevMode bool
	Log     zerolog.Logger

	Session      *engine.Session
	Bus          *events.Bus
	History      *history.Store
	Leaderboard  *leaderboard.Repository
	Achievements *achievements.Tracker
	Sessions     *session.Store
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger

	session      *engine.Session
	history      *history.Store
	leaderboard  *leaderboard.Repository
	achievements *achievements.Tracker
	sessions     *session.Store
	stream       *streamHub
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		log:          cfg.Log.With().Str("component", "server").Logger(),
		session:      cfg.Session,
		history:      cfg.History,
		leaderboard:  cfg.Leaderboard,
		achievements: cfg.Achievements,
		sessions:     cfg.Sessions,
		stream:       newStreamHub(cfg.Log),
	}

	s.stream.subscribe(cfg.Bus)
	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/game", func(r chi.Router) {
			r.Post("/start", s.handleStartGame)
			r.Post("/end", s.handleEndGame)
			r.Post("/next-round", s.handleNextRound)
			r.Post("/trade", s.handleTrade)
			r.Get("/state", s.handleGameState)
			r.Post("/resume", s.handleResumeGame)
			r.Post("/save", s.handleSaveGame)
			r.Post("/restore/{id}", s.handleRestoreGame)
			r.Get("/stream", s.handleStream)
		})

		r.Route("/charts", func(r chi.Router) {
			r.Get("/sparklines", s.handleSparklines)
			r.Get("/portfolio", s.handlePortfolioChart)
			r.Get("/assets/{id}", s.handleAssetChart)
			r.Get("/assets/{id}/indicators", s.handleAssetIndicators)
		})

		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/achievements", s.handleAchievements)
		r.Get("/sessions", s.handleListSessions)

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	s.stream.closeAll()
	return s.server.Shutdown(ctx)
}

// Handler exposes the router, used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "trade-royale-engine",
	})
}
