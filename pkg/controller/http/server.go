package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/koren-henrik/dxrelay/pkg/controller/jenkins"
	"github.com/koren-henrik/dxrelay/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr           string
	signingSecret  string
	metricsHandler http.Handler
	recorder       interfaces.NotificationRecorder
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithSigningSecret sets the secret used to verify notification signatures
func WithSigningSecret(secret string) Option {
	return func(c *config) {
		c.signingSecret = secret
	}
}

// WithMetricsHandler serves handler on /metrics
func WithMetricsHandler(handler http.Handler) Option {
	return func(c *config) {
		c.metricsHandler = handler
	}
}

// WithNotificationRecorder sets the recorder counting received notifications
func WithNotificationRecorder(recorder interfaces.NotificationRecorder) Option {
	return func(c *config) {
		c.recorder = recorder
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	pipelineRunUC interfaces.PipelineRunUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth)

	if cfg.metricsHandler != nil {
		router.Handle("/metrics", cfg.metricsHandler)
	}

	// Run notification endpoint
	runHandler := NewRunHandler(cfg.signingSecret, jenkins.NewProcessor(pipelineRunUC), cfg.recorder)
	router.Post("/hooks/jenkins/run", runHandler.Handle)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
