package server

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Flyrell/shopsum/internal/stringutil"
	"github.com/Flyrell/shopsum/internal/tool"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestIDHeader is echoed back, or generated when the caller sends none.
const RequestIDHeader = "X-Request-ID"

const (
	shutdownTimeout = 10 * time.Second
	unknownStore    = "unknown"
)

// Runner is the tool invocation the worker exposes.
type Runner interface {
	Run(ctx context.Context, storeKey string) tool.Result
}

// Server exposes the tool over HTTP.
type Server struct {
	runner     Runner
	authSecret string
	logger     *log.Logger

	registry    *prometheus.Registry
	invocations *prometheus.CounterVec
	duration    prometheus.Histogram
}

// New creates a Server. An empty authSecret disables authentication.
func New(runner Runner, authSecret string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	s := &Server{
		runner:     runner,
		authSecret: authSecret,
		logger:     logger,
		registry:   prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shopsum_tool_invocations_total",
			Help: "Tool invocations by store and outcome.",
		}, []string{"store", "outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "shopsum_tool_duration_seconds",
			Help:    "Duration of tool invocations.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	s.registry.MustRegister(s.invocations, s.duration)
	return s
}

// Router builds the gin engine with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(s.logger.Writer()))
	r.Use(gin.Recovery())
	r.Use(requestID())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	authed := r.Group("/", s.auth())
	authed.GET("/", s.health)
	authed.GET("/orders", s.orders)
	return r
}

func (s *Server) health(c *gin.Context) {
	c.String(http.StatusOK, "shopsum worker is running")
}

func (s *Server) orders(c *gin.Context) {
	store := c.Query("store")

	start := time.Now()
	res := s.runner.Run(c.Request.Context(), store)
	s.duration.Observe(time.Since(start).Seconds())

	label := metricStore(res)
	if !res.OK() {
		s.invocations.WithLabelValues(label, "error").Inc()
		s.logger.Printf("[WARN] request_id=%s store=%s error: %s", c.GetString(RequestIDHeader), label, res.Error)
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	s.invocations.WithLabelValues(label, "ok").Inc()
	c.JSON(http.StatusOK, res)
}

// metricStore is the store label of the invocation metrics. The tool only
// reports a store once its credentials resolve, so unknown keys from callers
// share one series.
func metricStore(res tool.Result) string {
	if key := stringutil.EnvKey(res.Store); key != "" {
		return key
	}
	return unknownStore
}

// auth rejects requests whose Authorization header does not equal the
// shared secret.
func (s *Server) auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.authSecret != "" && c.GetHeader("Authorization") != s.authSecret {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("[INFO] shopsum worker listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Printf("[INFO] shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
