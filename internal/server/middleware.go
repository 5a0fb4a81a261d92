package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"rootedweb/lbs-invoice/internal/logging"
)

// RequestLogger logs each request once it completes.
func RequestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.WithFields(
				logging.F(logging.FieldMethod, r.Method),
				logging.F(logging.FieldPath, r.URL.Path),
				logging.F(logging.FieldRemoteAddr, r.RemoteAddr),
				logging.F(logging.FieldRequestID, middleware.GetReqID(r.Context())),
				logging.F(logging.FieldStatus, ww.Status()),
				logging.F(logging.FieldDuration, time.Since(start).String()),
			).Debug("Request handled")
		})
	}
}

// ErrResponse is the JSON error body.
type ErrResponse struct {
	Error string `json:"error"`
}

// RateLimiter throttles the expensive POST endpoints.
type RateLimiter struct {
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewRateLimiter allows rps requests per second with the given burst.
// A non-positive rps disables limiting.
func NewRateLimiter(rps float64, burst int, logger logging.Logger) *RateLimiter {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Handler rejects requests over the limit with 429.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			rl.logger.WithFields(
				logging.F(logging.FieldMethod, r.Method),
				logging.F(logging.FieldPath, r.URL.Path),
				logging.F(logging.FieldRemoteAddr, r.RemoteAddr),
			).Warn("Rate limit exceeded")

			w.Header().Set("Retry-After", "1")
			render.Status(r, http.StatusTooManyRequests)
			render.JSON(w, r, ErrResponse{Error: "Too many requests. Please retry shortly."})
			return
		}
		next.ServeHTTP(w, r)
	})
}
