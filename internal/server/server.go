// Package server provides the HTTP REST API for the launch orchestrator.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/db"
	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/pipeline"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/server/middleware"
	"github.com/jonathan/launch-orchestrator/internal/server/ratelimit"
)

const shutdownTimeout = 30 * time.Second

// Deps are the collaborators the server routes requests to
type Deps struct {
	Store        db.Store
	Orchestrator *pipeline.Orchestrator
	Runner       *pipeline.Runner
	JWT          *JWTService
	Limiter      *ratelimit.Limiter
	Logger       *zap.SugaredLogger
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	store        db.Store
	orchestrator *pipeline.Orchestrator
	runner       *pipeline.Runner
	registry     *steps.Registry
	jwt          *JWTService
	rateLimiter  *ratelimit.Limiter
	validate     *validator.Validate
	logger       *zap.SugaredLogger
}

// New creates a new server instance listening on addr
func New(addr string, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("server requires a store")
	}
	if deps.Orchestrator == nil {
		return nil, errors.New("server requires an orchestrator")
	}
	if deps.JWT == nil {
		return nil, errors.New("server requires a JWT service")
	}

	s := &Server{
		store:        deps.Store,
		orchestrator: deps.Orchestrator,
		runner:       deps.Runner,
		registry:     deps.Orchestrator.Registry(),
		jwt:          deps.JWT,
		rateLimiter:  deps.Limiter,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		logger:       observability.OrNop(deps.Logger),
	}
	s.validate.RegisterTagNameFunc(jsonFieldName)
	if s.runner == nil {
		s.runner = pipeline.NewRunner(deps.Orchestrator, s.registry, s.logger)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 15 * time.Minute, // full pipeline streams
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler with middleware applied
func (s *Server) Handler() http.Handler {
	auth := middleware.AuthMiddleware(s.jwt.AsTokenValidator())
	protect := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", observability.MetricsHandler())
	mux.HandleFunc("GET /tasks", s.handleListTasks)

	mux.Handle("POST /startups", protect(s.handleCreateStartup))
	mux.Handle("GET /startups", protect(s.handleListStartups))
	mux.Handle("GET /startups/{id}", protect(s.handleGetStartup))
	mux.Handle("DELETE /startups/{id}", protect(s.handleDeleteStartup))
	mux.Handle("GET /startups/{id}/tasks", protect(s.handleTaskBoard))
	mux.Handle("POST /startups/{id}/tasks/{task}", protect(s.handleRunTask))
	mux.Handle("POST /startups/{id}/pipeline/stream", protect(s.handleRunPipelineStream))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("server starting", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// jsonFieldName reports validation errors by their JSON name
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their endpoint budget
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging. It forwards
// Flush so event streams keep working behind the middleware.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Infow("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote", r.RemoteAddr,
			"duration", time.Since(start),
		)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warnw("failed to encode JSON response", "error", err)
	}
}

// errorResponse writes a plain error reply
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, ErrorResponse{Error: message, Code: http.StatusText(status)})
}

// writeError maps err to its status and writes the reply
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := NewErrorResponse(err)
	if status >= http.StatusInternalServerError {
		s.logger.Errorw("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	if resp.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(resp.RetryAfter))
	}
	s.jsonResponse(w, status, resp)
}

// extractClientID uses the remote IP as the client identifier.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warnw("rate limit exceeded",
		"client", s.extractClientID(r),
		"path", r.URL.Path,
		"limit", info.Limit,
		"reset", info.ResetTime.Format(time.RFC3339),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
