package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"TickerDash/internal/dashboard"
	"TickerDash/internal/model"
	"TickerDash/internal/pages"
)

// Config holds server configuration
type Config struct {
	Addr    string
	Log     zerolog.Logger
	DevMode bool
	Pages   []*pages.Page

	// Snapshot and Dashboard are nil when the build failed; BuildErr then
	// holds the reason and the dashboard routes answer 503.
	Snapshot  *model.Snapshot
	Dashboard *dashboard.Page
	BuildErr  error
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	pages     []*pages.Page
	snapshot  *model.Snapshot
	dashboard *dashboard.Page
	buildErr  error
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		pages:     cfg.Pages,
		snapshot:  cfg.Snapshot,
		dashboard: cfg.Dashboard,
		buildErr:  cfg.BuildErr,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
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
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/projects", func(r chi.Router) {
		for _, p := range s.pages {
			r.Method(http.MethodGet, "/"+p.Slug, p)
		}
	})

	s.router.Route("/dashboard", func(r chi.Router) {
		r.Use(s.requireSnapshot)
		r.Get("/", s.handleDashboard)
		r.Get("/figures", s.handleFigures)
		r.Get("/snapshot", s.handleSnapshot)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
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

// requireSnapshot answers 503 on dashboard routes when no snapshot was built.
func (s *Server) requireSnapshot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.snapshot == nil || s.dashboard == nil {
			s.log.Warn().Err(s.buildErr).Str("path", r.URL.Path).Msg("dashboard requested without snapshot")
			s.writeError(w, http.StatusServiceUnavailable, "snapshot unavailable")
			return
		}
		next.ServeHTTP(w, r)
	})
}
