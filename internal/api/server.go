package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"chainboard/internal/api/handlers"
	"chainboard/internal/api/health"
	"chainboard/internal/metrics"
	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

// chartCacheTTL is the browser cache window for chart and explorer reads;
// the warehouse tables roll daily so short caching is safe
const chartCacheTTL = 60 * time.Second

// ServerConfig contains configuration for HTTP server
type ServerConfig struct {
	Port         int
	ServiceName  string
	Version      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Handlers bundles the route handlers the server mounts
type Handlers struct {
	Health   *health.Handler
	Charts   *handlers.ChartsHandler
	Market   *handlers.MarketHandler
	Explorer *handlers.ExplorerHandler
	Chat     *handlers.ChatHandler
}

// Server wraps HTTP server with lifecycle management
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewServer creates and configures HTTP server with all routes
func NewServer(cfg ServerConfig, h Handlers, log *logger.Logger) *Server {
	mux := http.NewServeMux()

	// Health check endpoints (Kubernetes probes)
	mux.HandleFunc("/health", h.Health.HandleHealth)
	mux.HandleFunc("/ready", h.Health.HandleReadiness)
	mux.HandleFunc("/live", h.Health.HandleLiveness)

	// Prometheus metrics endpoint
	mux.Handle("/metrics", metrics.Handler())

	// Market data (feed-backed, never errors)
	get := func(pattern string, hf http.HandlerFunc) {
		mux.Handle("GET "+pattern, withObservability(pattern, hf))
	}
	getCached := func(pattern string, hf http.HandlerFunc) {
		mux.Handle("GET "+pattern, withObservability(pattern, withCacheControl(chartCacheTTL, hf)))
	}

	get("/api/v1/price", h.Market.HandlePrice)
	get("/api/v1/feargreed", h.Market.HandleFearGreed)
	get("/api/v1/news", h.Market.HandleNews)
	get("/api/v1/distribution", h.Market.HandleDistribution)
	get("/api/v1/overview", h.Market.HandleOverview)

	// Warehouse charts and valuation ratios
	getCached("/api/v1/metrics/{name}", h.Charts.HandleMetric)
	getCached("/api/v1/indicators/{name}", h.Charts.HandleIndicator)
	get("/api/v1/mvrv", h.Charts.HandleMVRV)
	get("/api/v1/nupl", h.Charts.HandleNUPL)

	// Block explorer
	getCached("/api/v1/explorer/blocks", h.Explorer.HandleBlocks)
	getCached("/api/v1/explorer/blocks/{height}", h.Explorer.HandleBlock)
	getCached("/api/v1/explorer/txs/{hash}", h.Explorer.HandleTransaction)
	getCached("/api/v1/explorer/addresses/{address}", h.Explorer.HandleAddress)

	// Dashboard assistant
	mux.Handle("POST /api/v1/chat", withObservability("/api/v1/chat", http.HandlerFunc(h.Chat.HandleAsk)))

	// Root endpoint (service info)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"service":"%s","version":"%s","status":"running"}`,
			cfg.ServiceName, cfg.Version)
	})

	port := 8080
	if cfg.Port > 0 {
		port = cfg.Port
	}
	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout == 0 {
		writeTimeout = 10 * time.Second
	}

	log.Infof("HTTP server configured on port %d", port)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		log:        log,
	}
}

// Start begins listening for HTTP requests
// Blocks until server is stopped or encounters an error
func (s *Server) Start() error {
	s.log.Infof("Starting HTTP server on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "http server failed")
	}

	return nil
}

// Shutdown gracefully stops the HTTP server
// Waits for active connections to complete within timeout
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Stopping HTTP server...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "http server shutdown failed")
	}

	s.log.Info("✓ HTTP server stopped")
	return nil
}
