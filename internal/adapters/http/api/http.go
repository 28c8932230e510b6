// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"

	"github.com/okian/expertcalc/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RecommendationDependencies
	ExpertDependencies
	StageDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	expertsHandler         *ExpertsHandler
	stagesHandler          *StagesHandler
	recommendationsHandler *RecommendationsHandler

	corsOrigins     []string
	rateLimit       int
	rateLimitWindow time.Duration
	maxOwned        int
	logger          logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the origins allowed by the CORS middleware.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithRateLimit bounds requests per client IP. requests <= 0 disables it.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		s.rateLimit = requests
		if window > 0 {
			s.rateLimitWindow = window
		}
	}
}

// WithMaxOwned caps the owned list accepted per request.
func WithMaxOwned(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxOwned = n
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...Option) *Server {
	s := &Server{
		corsOrigins:     []string{"*"},
		rateLimitWindow: time.Minute,
		maxOwned:        500,
		logger:          logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(deps)
	s.expertsHandler = NewExpertsHandler(deps)
	s.stagesHandler = NewStagesHandler(deps)
	s.recommendationsHandler = NewRecommendationsHandler(deps, s.maxOwned)
	return s
}

// Router builds the chi router with global middleware and every route.
func (s *Server) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	s.Register(ctx, r)
	return r
}

// Register attaches all HTTP routes to r.
func (s *Server) Register(_ context.Context, r chi.Router) {
	r.Get("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	r.Get("/metrics", s.healthHandler.HandleMetrics)

	r.Group(func(r chi.Router) {
		if s.rateLimit > 0 {
			r.Use(httprate.LimitByIP(s.rateLimit, s.rateLimitWindow))
		}
		r.Get("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
		r.Get("/experts", MetricsMiddleware(s.expertsHandler.HandleList, "experts"))
		r.Get("/experts/initial", MetricsMiddleware(s.expertsHandler.HandleInitial, "experts_initial"))
		r.Get("/stages/{tier}", MetricsMiddleware(s.stagesHandler.HandleGet, "stages"))
		r.Get("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleGet, "recommendations"))
		r.Post("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandlePost, "recommendations"))
	})
}

// ownedResponse lists owned expert ids.
type ownedResponse struct {
	Owned []string `json:"owned"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
