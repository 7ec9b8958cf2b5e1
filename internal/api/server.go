// Package api provides the HTTP REST API for the entity search sidecar.
//
// It exposes fuzzy entity search, area resolution, domain help, the
// installation overview and the usage log to agents and user interfaces.
//
// The server follows the same lifecycle pattern as the other
// infrastructure components:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Thread Safety: All methods are safe for concurrent use from multiple goroutines.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/config"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/logging"
	"github.com/shbatm/ha-mcp-sub002/internal/infrastructure/metrics"
	"github.com/shbatm/ha-mcp-sub002/internal/registry"
	"github.com/shbatm/ha-mcp-sub002/internal/search"
	"github.com/shbatm/ha-mcp-sub002/internal/usage"
)

// gracefulShutdownTimeout is the maximum time to wait for in-flight requests
// to complete during shutdown.
const gracefulShutdownTimeout = 10 * time.Second

// UpstreamChecker verifies connectivity to Home Assistant for the health
// endpoint.
type UpstreamChecker interface {
	CheckAPI(ctx context.Context) error
}

// Deps holds the dependencies required by the API server.
type Deps struct {
	Config    config.APIConfig
	SearchCfg config.SearchConfig
	Logger    *logging.Logger
	Engine    *search.Engine
	States    registry.StateSource
	Resolver  *registry.Resolver
	Upstream  UpstreamChecker    // optional: reported by /health when set
	Usage     usage.Repository   // optional: /usage returns 404 when nil
	Metrics   *metrics.Recorder  // optional: disabled recorder is fine
	Version   string
}

// Server is the HTTP API server.
//
// It manages the HTTP listener, routes and middleware. The server is
// created with New() and started with Start().
type Server struct {
	cfg       config.APIConfig
	searchCfg config.SearchConfig
	logger    *logging.Logger
	engine    *search.Engine
	states    registry.StateSource
	resolver  *registry.Resolver
	upstream  UpstreamChecker
	usage     usage.Repository
	metrics   *metrics.Recorder
	version   string
	server    *http.Server
}

// New creates a new API server with the given dependencies.
//
// The server is not started until Start() is called.
//
// Parameters:
//   - deps: Required dependencies (config, logger, engine, sources)
//
// Returns:
//   - *Server: Configured server ready to start
//   - error: If required dependencies are missing
func New(deps Deps) (*Server, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if deps.Engine == nil {
		return nil, fmt.Errorf("search engine is required")
	}
	if deps.States == nil {
		return nil, fmt.Errorf("state source is required")
	}
	if deps.Resolver == nil {
		return nil, fmt.Errorf("area resolver is required")
	}

	return &Server{
		cfg:       deps.Config,
		searchCfg: deps.SearchCfg,
		logger:    deps.Logger,
		engine:    deps.Engine,
		states:    deps.States,
		resolver:  deps.Resolver,
		upstream:  deps.Upstream,
		usage:     deps.Usage,
		metrics:   deps.Metrics,
		version:   deps.Version,
	}, nil
}

// Start begins listening for HTTP connections.
//
// It builds the router and launches the HTTP listener in a background
// goroutine. The server can be stopped with Close().
func (s *Server) Start(ctx context.Context) error {
	router := s.buildRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler:           router,
		ReadTimeout:       time.Duration(s.cfg.Timeouts.Read) * time.Second,
		ReadHeaderTimeout: time.Duration(s.cfg.Timeouts.Read) * time.Second,
		WriteTimeout:      time.Duration(s.cfg.Timeouts.Write) * time.Second,
		IdleTimeout:       time.Duration(s.cfg.Timeouts.Idle) * time.Second,
	}

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", "error", err)
		}
	}()

	s.logger.Info("API server started", "address", s.server.Addr)
	return nil
}

// Close gracefully shuts down the API server, waiting up to 10 seconds for
// in-flight requests to complete.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
	defer cancel()

	s.logger.Info("API server shutting down")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}

// HealthCheck verifies the API server is running.
func (s *Server) HealthCheck(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("api health check: %w", ctx.Err())
	default:
	}

	if s.server == nil {
		return fmt.Errorf("api server not started")
	}
	return nil
}
