// Package server exposes the AQIMC pipeline over a JSON REST API: GET /,
// POST /encrypt, POST /decrypt and GET /test, plus a health endpoint and a
// separate Prometheus metrics listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/bilalwebs/AQIMC-Encryption-System/pipeline"
	"github.com/bilalwebs/AQIMC-Encryption-System/server/config"
	"github.com/bilalwebs/AQIMC-Encryption-System/server/healthcheck"
	"github.com/bilalwebs/AQIMC-Encryption-System/server/metrics"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server bundles the API handlers with their logger, metrics and config.
type Server struct {
	logger   *zap.Logger
	cfg      config.Config
	metrics  *metrics.APIMetrics
	registry *prometheus.Registry
}

// New creates a Server with a fresh metrics registry.
func New(logger *zap.Logger, cfg config.Config) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		logger:   logger,
		cfg:      cfg,
		metrics:  metrics.NewAPIMetrics(registry),
		registry: registry,
	}
}

// NewLogger builds the JSON logger the server and CLI log through.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	return logCfg.Build()
}

// Handler returns the API handler tree: the cipher routes, the health
// check, request ID tagging and CORS.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleHome)
	mux.HandleFunc("/encrypt", s.handleEncrypt)
	mux.HandleFunc("/decrypt", s.handleDecrypt)
	mux.HandleFunc("/test", s.handleTest)
	healthcheck.HandleHealthCheckRequest(mux, selfTestCheck)

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return corsMiddleware.Handler(s.withRequestID(mux))
}

// MetricsHandler serves the Prometheus registry backing the API metrics.
func (s *Server) MetricsHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return mux
}

// selfTestCheck adapts the pipeline self test to the health check contract.
func selfTestCheck(_ context.Context) error {
	result, err := pipeline.SelfTest()
	if err != nil {
		return err
	}
	if !result.Match {
		return fmt.Errorf("self test decrypted %q, want %q", result.Decrypted, result.Plaintext)
	}
	return nil
}

type requestIDKey struct{}

// withRequestID tags every request with a UUID, echoed in the X-Request-Id
// response header and attached to log lines.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger returns the server logger with the request ID attached.
func (s *Server) requestLogger(r *http.Request) *zap.Logger {
	if requestID, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return s.logger.With(zap.String("request_id", requestID))
	}
	return s.logger
}

// Run starts the API and metrics listeners and blocks until ctx is
// cancelled or either listener fails. Both listeners shut down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errGroup, ctx := errgroup.WithContext(ctx)

	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.APIPort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	metricsServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.MetricsPort),
		Handler:           s.MetricsHandler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	for _, httpServer := range []*http.Server{apiServer, metricsServer} {
		httpServer := httpServer // per-iteration copy; go.mod targets go 1.21 loop semantics
		errGroup.Go(func() error {
			// Handle graceful shutdown
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("listener on %s failed: %w", httpServer.Addr, err)
			}
			return nil
		})
	}

	s.logger.Info("AQIMC API listening",
		zap.Uint16("api_port", s.cfg.APIPort),
		zap.Uint16("metrics_port", s.cfg.MetricsPort),
	)

	return errGroup.Wait()
}
