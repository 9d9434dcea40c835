package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/config"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/fetch"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/logger"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/pipeline"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/server/middleware"
	"github.com/Gautami60/GDGoist-ATS-Leaderboard-U/internal/server/ratelimit"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 30 * time.Second

// JobFetcher retrieves job posting text for the job_url request fields.
type JobFetcher interface {
	Fetch(ctx context.Context, url string) (*fetch.Result, bool, error)
}

// Options holds everything New needs.
type Options struct {
	Config    config.ServerConfig
	RateLimit *ratelimit.Config
	Pipeline  *pipeline.Pipeline
	// Fetcher is optional; without it job_url fields are rejected.
	Fetcher JobFetcher
	Logger  *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	pipeline       *pipeline.Pipeline
	fetcher        JobFetcher
	rateLimiter    *ratelimit.Limiter
	logger         *zap.Logger
	maxUploadBytes int64
}

// New creates a new server instance
func New(opts Options) (*Server, error) {
	if opts.Pipeline == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	log := logger.WithFields(opts.Logger)
	maxUpload := opts.Config.MaxUploadBytes()
	if maxUpload <= 0 {
		maxUpload = 10 << 20
	}

	s := &Server{
		pipeline:       opts.Pipeline,
		fetcher:        opts.Fetcher,
		rateLimiter:    ratelimit.NewLimiter(opts.RateLimit),
		logger:         log,
		maxUploadBytes: maxUpload,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("POST /score-text", s.handleScoreText)
	mux.HandleFunc("GET /model-info", s.handleModelInfo)
	mux.HandleFunc("GET /health", s.handleHealth)

	var handler http.Handler = mux
	handler = middleware.CORS(opts.Config.CORSOrigins)(handler)
	handler = s.withRateLimit(handler)
	handler = middleware.Logging(log)(handler)
	handler = middleware.RequestID(handler)

	s.httpServer = &http.Server{
		Addr:         opts.Config.Addr(),
		Handler:      handler,
		ReadTimeout:  opts.Config.ReadTimeout,
		WriteTimeout: opts.Config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves requests until ctx is cancelled or SIGINT/SIGTERM arrives,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", listener.Addr().String()))
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(extractClientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleModelInfo describes the similarity model in use
func (s *Server) handleModelInfo(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.pipeline.ModelInfo())
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored since it is client-controlled.
func extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := max(1, int(info.RetryAfter.Round(time.Second).Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
		zap.String(logger.FieldRequestID, middleware.GetRequestID(r.Context())))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
