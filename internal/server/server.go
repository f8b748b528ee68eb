package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Veraticus/number-classifier/internal/config"
	"github.com/Veraticus/number-classifier/internal/service"
)

// Server is the HTTP API server for the classification engine.
type Server struct {
	classifier service.Classifier
	facts      service.FactFetcher
	logger     *slog.Logger
	router     chi.Router
	startTime  time.Time
	version    string
	cfg        config.ServerConfig
}

// New creates a Server. facts may be nil, in which case every response
// carries the placeholder fact.
func New(cfg config.ServerConfig, classifier service.Classifier, facts service.FactFetcher) *Server {
	s := &Server{
		cfg:        cfg,
		classifier: classifier,
		facts:      facts,
		logger:     slog.Default(),
		startTime:  time.Now(),
		version:    "dev",
	}
	s.setupRoutes()
	return s
}

// WithLogger sets the logger used for request and fetch logging.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.logger = logger
	return s
}

// WithVersion sets the version reported by the health endpoint.
func (s *Server) WithVersion(version string) *Server {
	s.version = version
	return s
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.loggingMiddleware)
	r.Use(CORSMiddleware(s.cfg.CORS.AllowedOrigins))
	if s.cfg.RateLimit.RPS > 0 {
		limiter := NewRateLimiter(s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst)
		r.Use(RateLimitMiddleware(limiter))
	}

	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/api/classify-number", s.handleClassify)

	s.router = r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.ReadTimeout,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("Number classifier API listening", "addr", ln.Addr().String(), "version", s.version)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server", "timeout", s.cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
