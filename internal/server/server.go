// Package server provides the read-only HTTP API over the career metrics engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/craftd/internal/careermetrics"
	"github.com/jonathan/craftd/internal/config"
	"github.com/jonathan/craftd/internal/db"
	"github.com/jonathan/craftd/internal/server/middleware"
	"github.com/jonathan/craftd/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer     *http.Server
	mux            *http.ServeMux
	db             *db.DB
	service        *careermetrics.Service
	rateLimiter    *ratelimit.Limiter
	jwtService     *JWTService
	metrics        *Metrics
	validator      *validator.Validate
	allowedOrigins []string
}

// Config holds server configuration
type Config struct {
	Port             int
	DatabaseURL      string
	RecentEventLimit int
	AllowedOrigins   []string
	JWT              *config.JWTConfig
	RateLimit        *ratelimit.Config
}

// New connects to the database and creates a server reading from it.
func New(cfg Config) (*Server, error) {
	if cfg.JWT == nil {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		cfg.JWT = jwtConfig
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := newServer(database, cfg)
	s.db = database
	return s, nil
}

// newServer wires routes and middleware over any career record repository.
func newServer(repo careermetrics.Repository, cfg Config) *Server {
	s := &Server{
		service:        careermetrics.NewService(repo, careermetrics.WithRecentEventLimit(cfg.RecentEventLimit)),
		rateLimiter:    ratelimit.NewLimiter(cfg.RateLimit),
		jwtService:     NewJWTService(cfg.JWT),
		metrics:        NewMetrics(),
		validator:      validator.New(),
		allowedOrigins: cfg.AllowedOrigins,
	}

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	authed := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	api := func(handler http.HandlerFunc) http.Handler {
		return authed(handler)
	}

	mux := http.NewServeMux()
	s.mux = mux
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.Handle("GET /api/dashboard", api(s.handleDashboard))
	mux.Handle("GET /api/metrics/financial", api(s.handleFinancialMetrics))
	mux.Handle("GET /api/metrics/progression", api(s.handleCareerProgression))
	mux.Handle("GET /api/metrics/applications", api(s.handleApplicationMetrics))
	mux.Handle("GET /api/work-experiences", api(s.handleWorkExperiences))
	mux.Handle("GET /api/career-events", api(s.handleCareerEvents))
	mux.Handle("GET /api/salary-progression", api(s.handleSalaryProgression))

	mux.Handle("GET /api/charts/funnel", api(s.handleFunnelChart))
	mux.Handle("GET /api/charts/waterfall", api(s.handleWaterfallChart))
	mux.Handle("GET /api/charts/timeline", api(s.handleTimelineChart))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases the rate limiter and database pool.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withCORS adds CORS headers. An empty origin list allows any origin.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case len(s.allowedOrigins) == 0:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.allowedOrigins, origin):
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		endpoint, method := s.rateLimitRoute(r)

		allowed, info := s.rateLimiter.Allow(clientID, endpoint, method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.metrics.rateLimited.Inc()
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// unmatchedRoute is the rate limit endpoint for requests no route serves.
const unmatchedRoute = "unmatched"

// rateLimitRoute names the bucket for r by its registered route, so arbitrary
// paths and methods cannot create buckets of their own.
func (s *Server) rateLimitRoute(r *http.Request) (endpoint, method string) {
	_, pattern := s.mux.Handler(r)
	if pattern == "" {
		return unmatchedRoute, "*"
	}
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path, r.Method
	}
	return pattern, r.Method
}

// withLogging logs each request and records its Prometheus metrics.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		s.metrics.observeRequest(r.Pattern, r.Method, rec.status, elapsed)
		log.Printf("[%s] %s %d completed in %v", r.Method, r.URL.Path, rec.status, elapsed)
	})
}

// handleHealth returns server health status, including database reachability
// when the server is backed by PostgreSQL.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			log.Printf("[health] Database ping failed: %v", err)
			s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status and a caller-safe message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), publicMessage(err))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; forwarded headers are not trusted.
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
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retryAfter := int(info.RetryAfter.Seconds() + 0.999)
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
