// Package server exposes shell sessions over HTTP, a websocket stream and a
// read-only FUSE mount
package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/brettbedarf/webcli"
	"github.com/brettbedarf/webcli/config"
	"github.com/brettbedarf/webcli/internal/metrics"
	"github.com/brettbedarf/webcli/internal/util"
	"github.com/brettbedarf/webcli/shell"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog"
)

// ErrSessionLimit is returned when MaxSessions sessions are already open
var ErrSessionLimit = errors.New("session limit reached")

const readHeaderTimeout = 10 * time.Second

// Server owns the open sessions and the HTTP surface over them
type Server struct {
	cfg      *config.Config
	seed     shell.Seeder
	clock    webcli.Clock
	metrics  *metrics.Metrics
	sessions *xsync.Map[uuid.UUID, *shell.Session]
	open     atomic.Int64
	router   *gin.Engine
	http     *http.Server
	logger   zerolog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithClock pins the time source handed to new sessions
func WithClock(c webcli.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithMetrics replaces the server's collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a Server whose sessions start from seed
func New(cfg *config.Config, seed shell.Seeder, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg,
		seed:     seed,
		clock:    webcli.SystemClock{},
		sessions: xsync.NewMap[uuid.UUID, *shell.Session](),
		logger:   util.GetLogger("Server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors
func (s *Server) Metrics() *metrics.Metrics {
	return s.metrics
}

// NewSession opens a session over a freshly seeded tree
func (s *Server) NewSession(ctx context.Context) (*shell.Session, error) {
	if s.open.Add(1) > int64(s.cfg.MaxSessions) {
		s.open.Add(-1)
		return nil, ErrSessionLimit
	}
	sess, err := shell.Open(ctx, s.cfg, s.seed, shell.WithClock(s.clock), shell.WithObserver(s.metrics))
	if err != nil {
		s.open.Add(-1)
		return nil, err
	}
	s.sessions.Store(sess.ID, sess)
	s.metrics.SessionStarted()
	return sess, nil
}

// Session looks an open session up by id
func (s *Server) Session(id uuid.UUID) (*shell.Session, bool) {
	return s.sessions.Load(id)
}

// CloseSession drops a session and its tree. It reports whether the session
// was open.
func (s *Server) CloseSession(id uuid.UUID) bool {
	if _, loaded := s.sessions.LoadAndDelete(id); !loaded {
		return false
	}
	s.open.Add(-1)
	s.metrics.SessionEnded()
	s.logger.Info().Str("session", id.String()).Msg("Session closed")
	return true
}

// Len returns the number of open sessions
func (s *Server) Len() int {
	return s.sessions.Size()
}

// ListenAndServe serves the API on cfg.Addr until Shutdown is called
func (s *Server) ListenAndServe() error {
	s.http = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          util.NewLogLogger("HTTPServer", util.ErrorLevel),
	}
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("HTTP server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.requestLogger())
	router.Use(corsMiddleware(s.cfg.AllowedOrigins))
	if s.cfg.RateLimit > 0 {
		router.Use(rateLimit(s.cfg.RateLimit, s.cfg.RateBurst))
	}

	router.GET("/healthz", s.health)
	if s.cfg.Metrics {
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	api := router.Group("/api/sessions")
	api.POST("", s.createSession)
	api.GET("/:id", s.getSession)
	api.DELETE("/:id", s.deleteSession)
	api.POST("/:id/exec", s.exec)
	api.GET("/:id/complete", s.complete)
	api.GET("/:id/ws", s.stream)
	return router
}
