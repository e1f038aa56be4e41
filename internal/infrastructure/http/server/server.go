// Package server provides the JSON API HTTP server implementation
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fridgelens/v1/internal/infrastructure/auth"
	"github.com/fridgelens/v1/internal/infrastructure/config"
	"github.com/fridgelens/v1/internal/infrastructure/http/handlers"
	"github.com/fridgelens/v1/internal/infrastructure/http/middleware"
	"github.com/fridgelens/v1/internal/infrastructure/monitoring"
	"github.com/fridgelens/v1/internal/ports/inbound"
	"github.com/fridgelens/v1/pkg/healthcheck"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server represents the JSON API HTTP server
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	server  *http.Server
	router  *chi.Mux
	metrics *monitoring.MetricsCollector
	health  *healthcheck.HealthCheck
}

// Dependencies bundles the services the server exposes.
type Dependencies struct {
	Pipeline  inbound.PipelineService
	Favorites inbound.FavoritesService
	Profiles  inbound.ProfileService
	Workouts  inbound.WorkoutService
	OAuth     *auth.OAuthClient
	Tokens    *auth.TokenService
	Metrics   *monitoring.MetricsCollector
	Health    *healthcheck.HealthCheck
}

// New creates a new API server instance
func New(cfg *config.Config, logger *zap.Logger, deps Dependencies) *Server {
	s := &Server{
		config:  cfg,
		logger:  logger,
		metrics: deps.Metrics,
		health:  deps.Health,
	}

	s.router = s.setupRoutes(deps)
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s
}

// setupRoutes configures the JSON API routes
func (s *Server) setupRoutes(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics(s.metrics))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Get("/health", s.health.Handler())
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	h := handlers.NewAPIHandlers(deps.Pipeline, deps.Favorites, deps.Profiles, deps.Workouts, s.logger)
	authH := handlers.NewAuthAPIHandlers(deps.OAuth, deps.Tokens, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authH.Login)

		// Everything past login requires a session token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(deps.Tokens))

			r.Post("/analyze", h.Analyze)
			r.Get("/analysis", h.CurrentAnalysis)

			r.Post("/recipes/tip", h.CookingTip)
			r.Post("/recipes/{id}/workout", h.RecommendWorkout)

			r.Post("/workouts/accept", h.AcceptWorkout)
			r.Get("/workouts", h.ListWorkouts)
			r.Get("/workouts/weekly", h.WeeklyCompletion)
			r.Get("/workouts/stats", h.WorkoutStats)
			r.Delete("/workouts/{id}", h.DeleteWorkout)

			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.SaveProfile)

			r.Get("/favorites", h.ListFavorites)
			r.Post("/favorites", h.AddFavorite)
			r.Delete("/favorites/{id}", h.RemoveFavorite)
		})
	})

	return r
}

// Start begins serving requests.
func (s *Server) Start() error {
	s.logger.Info("API server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.server.Shutdown(ctx)
}
