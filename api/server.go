// ABOUTME: Huma API server configuration and setup
// ABOUTME: Mounts Huma on a chi router with CORS, request logging and rate limiting

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"newsreader-app/api/handlers"
	"newsreader-app/api/middleware"
	"newsreader-app/core/interfaces"
)

// OpenAPI document metadata
const (
	APITitle   = "News Reader API"
	APIVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
	RateBurst  int

	// AllowedOrigins defaults to all origins
	AllowedOrigins []string
}

// Server is the read-only entries API
type Server struct {
	router  chi.Router
	api     huma.API
	limiter *middleware.RateLimiter
}

// NewServer creates the router, mounts the Huma API on it and registers the
// entry handlers. The OpenAPI document is served at /openapi.json and the
// docs UI at /docs.
func NewServer(cfg APIConfig, entries *handlers.EntriesHandler) *Server {
	s := &Server{router: chi.NewRouter()}

	// CORS must run first so preflight requests are answered before limiting
	s.router.Use(newCORS(cfg.AllowedOrigins).Handler)
	s.router.Use(chimw.Recoverer)

	if cfg.Logger != nil {
		s.router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, cfg.RateBurst)
		s.router.Use(middleware.RateLimitMiddleware(s.limiter))
	}

	config := huma.DefaultConfig(APITitle, APIVersion)
	config.Info.Description = "Read-only view of the latest merged Atom feed cycle"
	s.api = humachi.New(s.router, config)

	entries.RegisterRoutes(s.api)
	return s
}

// API returns the Huma API the routes are registered on
func (s *Server) API() huma.API {
	return s.api
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases background resources held by the middleware
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}

func newCORS(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader, "X-RateLimit-Limit", "Retry-After"},
		MaxAge:         300,
	})
}
