package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonathan/jobtracker/internal/cache"
	"github.com/jonathan/jobtracker/internal/config"
	"github.com/jonathan/jobtracker/internal/db"
	"github.com/jonathan/jobtracker/internal/metrics"
	"github.com/jonathan/jobtracker/internal/server/middleware"
	"github.com/jonathan/jobtracker/internal/server/ratelimit"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Version is reported by the liveness route.
const Version = "2.0"

const shutdownTimeout = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       db.Store
	cache       cache.AnalyticsCache
	logger      *zap.Logger
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	authHandler *AuthHandler
	corsOrigin  string
	now         func() time.Time
}

// Deps are the collaborators a Server is built from.
type Deps struct {
	Store     db.Store
	Cache     cache.AnalyticsCache   // optional, defaults to cache.Nop
	Logger    *zap.Logger            // optional, defaults to zap.NewNop
	JWT       *config.JWTConfig      // required
	Password  *config.PasswordConfig // required
	RateLimit *ratelimit.Config      // optional, defaults to ratelimit.LoadConfig
}

// New creates a new server instance
func New(cfg config.ServerConfig, deps Deps) (*Server, error) {
	if deps.Store == nil {
		return nil, errors.New("server requires a store")
	}
	if deps.JWT == nil || deps.Password == nil {
		return nil, errors.New("server requires JWT and password configuration")
	}
	if deps.Cache == nil {
		deps.Cache = cache.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.RateLimit == nil {
		deps.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		store:       deps.Store,
		cache:       deps.Cache,
		logger:      deps.Logger,
		rateLimiter: ratelimit.NewLimiter(deps.RateLimit),
		jwtService:  NewJWTService(deps.JWT),
		corsOrigin:  cfg.CORSOrigin,
		now:         time.Now,
	}
	s.authHandler = NewAuthHandler(NewUserService(deps.Store, deps.Password), s.jwtService).WithLogger(deps.Logger)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withRecover(s.withRequestID(s.withLogging(s.withCORS(s.withRateLimit(s.routes())))))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return auth(h) }

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /api/auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", s.authHandler.Login)
	mux.Handle("PUT /api/auth/password", protected(s.authHandler.UpdatePassword))

	// /stats/summary has two segments so it never collides with /{id}
	mux.Handle("GET /api/jobs", protected(s.handleListApplications))
	mux.Handle("POST /api/jobs", protected(s.handleCreateApplication))
	mux.Handle("GET /api/jobs/stats/summary", protected(s.handleSummary))
	mux.Handle("GET /api/jobs/{id}", protected(s.handleGetApplication))
	mux.Handle("PUT /api/jobs/{id}", protected(s.handleUpdateApplication))
	mux.Handle("DELETE /api/jobs/{id}", protected(s.handleDeleteApplication))

	mux.Handle("GET /api/analytics/health/{id}", protected(s.handleHealthScore))
	mux.Handle("GET /api/analytics/velocity", protected(s.handleVelocity))
	mux.Handle("GET /api/analytics/insights", protected(s.handleInsights))
	mux.Handle("GET /api/analytics/predict/{id}", protected(s.handlePredict))

	mux.HandleFunc("/", s.handleNotFound)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.rateLimiter.Stop()
	s.logger.Info("server stopped")
	return err
}

// Close releases background resources without serving.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "JobTracker API is running!",
		"version": Version,
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.errorResponse(w, http.StatusNotFound, "Route not found: "+r.URL.Path)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, data, s.logger)
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a typed error to its status; unexpected errors are logged and hidden.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		s.errorResponse(w, status, "Something went wrong")
		return
	}
	s.errorResponse(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}
