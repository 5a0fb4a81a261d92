// Package server implements the two-step web flow: upload a workbook,
// review and annotate its lines, then generate and download the PDF once.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"rootedweb/lbs-invoice/internal/aggregator"
	"rootedweb/lbs-invoice/internal/logging"
	"rootedweb/lbs-invoice/internal/metrics"
	"rootedweb/lbs-invoice/internal/render"
	"rootedweb/lbs-invoice/internal/session"
	"rootedweb/lbs-invoice/internal/sheetparser"
)

// WebAPI serves the invoice web flow.
type WebAPI struct {
	router *chi.Mux
	logger logging.Logger
	server *http.Server
	config Config
	deps   Dependencies
}

// Dependencies are the pipeline components used by the handlers.
type Dependencies struct {
	Parser     *sheetparser.Parser
	Aggregator *aggregator.Aggregator
	Generator  *render.Generator
	Store      *session.MemoryStore
	Metrics    *metrics.Metrics
}

// DefaultMaxUploadBytes caps uploads when no limit is configured.
const DefaultMaxUploadBytes = 10 << 20

// Config controls the HTTP server.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	MaxUploadBytes  int64
	RateLimitRPS    float64
	RateLimitBurst  int
	OutputDir       string
}

// NewWebAPI wires routes and middleware.
func NewWebAPI(logger logging.Logger, config Config, deps Dependencies) *WebAPI {
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if config.MaxUploadBytes <= 0 {
		config.MaxUploadBytes = DefaultMaxUploadBytes
	}

	w := &WebAPI{
		logger: logger,
		config: config,
		deps:   deps,
	}

	limiter := NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogger(logger))
	router.Use(middleware.Recoverer)

	router.Get("/", w.index)
	router.With(limiter.Handler).Post("/upload", w.upload)
	router.Get("/comments", w.comments)
	router.With(limiter.Handler).Post("/generate-pdf", w.generate)
	router.Get("/download-pdf", w.download)
	router.Get("/api/report", w.pendingReport)
	router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	router.NotFound(func(rw http.ResponseWriter, r *http.Request) {
		http.Redirect(rw, r, "/", http.StatusFound)
	})

	w.router = router
	w.server = &http.Server{
		Addr:              config.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return w
}

// Handler returns the routed handler.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (w *WebAPI) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Serve(ctx)
}

// Serve runs the server until ctx is done.
func (w *WebAPI) Serve(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		w.logger.WithField("addr", w.server.Addr).Info("Starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info("Shutdown initiated")

		timeout := w.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.WithError(err).Error("Graceful shutdown failed")
			err = w.server.Close()
		}
		return err
	}
}
