// Package server exposes the suggestion proxy over HTTP:
//
//	GET /suggestions?q=<text>  -> ["candidate", ...]
//
// The response body is always a JSON array of strings. A missing or empty
// query returns [] with 200; a provider failure returns [] with 500.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"startpage/internal/suggest"
)

const shutdownTimeout = 5 * time.Second

// Config contains server configuration
type Config struct {
	Addr            string
	RateLimitPerSec int
	AllowedOrigins  []string
}

// breakerState is implemented by fetchers that sit behind a circuit breaker
type breakerState interface {
	State() gobreaker.State
}

// Server wraps the HTTP router and its dependencies
type Server struct {
	cfg     Config
	router  *gin.Engine
	fetcher suggest.Fetcher
	metrics *Metrics
	logger  *zap.Logger
}

// New creates a server. reg receives the proxy's metrics; it must also be a
// prometheus.Gatherer to serve /metrics.
func New(cfg Config, fetcher suggest.Fetcher, reg *prometheus.Registry, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if cfg.RateLimitPerSec <= 0 {
		cfg.RateLimitPerSec = 20
	}

	s := &Server{
		cfg:     cfg,
		fetcher: fetcher,
		metrics: NewMetrics(reg),
		logger:  logger.Named("server"),
	}

	router := gin.New()
	router.Use(recovery(s.logger), requestLogger(s.logger, s.metrics), corsMiddleware(cfg.AllowedOrigins))

	router.GET("/suggestions", rateLimit(cfg.RateLimitPerSec, s.metrics), s.handleSuggestions)
	router.GET("/healthz", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	s.router = router
	return s
}

// Handler returns the HTTP handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("suggestion proxy listening", zap.String("addr", s.cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down suggestion proxy")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleSuggestions(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		s.metrics.Requests.WithLabelValues(OutcomeEmptyQuery).Inc()
		c.JSON(http.StatusOK, []string{})
		return
	}

	start := time.Now()
	list, err := s.fetcher.Fetch(c.Request.Context(), query)
	s.metrics.ObserveUpstream(time.Since(start))
	if err != nil {
		if c.Request.Context().Err() == nil {
			s.logger.Warn("suggestion fetch failed", zap.String("query", query), zap.Error(err))
		}
		s.metrics.Requests.WithLabelValues(OutcomeFailed).Inc()
		c.JSON(http.StatusInternalServerError, []string{})
		return
	}
	if list == nil {
		list = []string{}
	}

	s.metrics.Requests.WithLabelValues(OutcomeOK).Inc()
	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, list)
}

func (s *Server) handleHealth(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if b, ok := s.fetcher.(breakerState); ok {
		body["provider"] = b.State().String()
	}
	c.JSON(http.StatusOK, body)
}
