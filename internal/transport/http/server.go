package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ukaji3/missingplot-go/internal/config"
	"github.com/ukaji3/missingplot-go/internal/metrics"
	"github.com/ukaji3/missingplot-go/internal/middleware"
)

// Dependencies are the collaborators of the router.
type Dependencies struct {
	Config   config.ServerConfig
	Estimate *EstimateHandler
	Health   *HealthHandler
	Metrics  *metrics.Metrics
	Logger   *slog.Logger
}

// NewRouter builds the router with its middleware chain.
func NewRouter(deps Dependencies) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))

	deps.Health.RegisterRoutes(r)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Group(func(r chi.Router) {
		if deps.Config.RateLimit.Enabled {
			limiter := middleware.NewRateLimiter(deps.Config.RateLimit.RPS, deps.Config.RateLimit.Burst, deps.Logger)
			r.Use(limiter.Handler)
		}
		r.Use(middleware.MaxBodySize(deps.Config.MaxBodyBytes))
		deps.Estimate.RegisterRoutes(r)
	})

	return r
}

// Server is the estimation HTTP server.
type Server struct {
	srv    *http.Server
	cfg    config.ServerConfig
	logger *slog.Logger
}

// NewServer creates a server for handler.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "server listening", slog.String("addr", s.cfg.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	return s.srv.Shutdown(shutdownCtx)
}
