// Package api provides the HTTP API server and handlers for the Takibi application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/takibiapp/takibi-server/internal/store"
)

// apiVersion is the published API version, independent of the server build version.
const apiVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       *store.Store
	services    *Services
	router      *chi.Mux
	api         huma.API
	logger      *slog.Logger
	rateLimiter *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
//
// There is no authentication layer: the server is a single-household
// appliance reachable only on the campsite LAN, and clients discover it
// over mDNS. The IP-keyed rate limiter is the only gate.
func NewServer(store *store.Store, services *Services, rateLimiter *RateLimiter, logger *slog.Logger) *Server {
	s := &Server{
		store:       store,
		services:    services,
		router:      chi.NewRouter(),
		logger:      logger,
		rateLimiter: rateLimiter,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("Takibi API", apiVersion)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	// Browsers on the LAN hit the API from the PWA origin.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if s.rateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
	}
}

// registerRoutes registers all huma operations.
func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerInstanceRoutes()
	s.registerChecklistRoutes()
	s.registerTemplateRoutes()
	s.registerCategoryRoutes()
	s.registerRecipeRoutes()
	s.registerSuggestionRoutes()
	s.registerBackupRoutes()
}
