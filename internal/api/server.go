// Package api implements the sitelen HTTP API.
//
// The API exposes the pipeline stages over JSON:
//
//	POST /v1/parse              text → grammar trees
//	POST /v1/layout             text → selected arrangement per compound
//	POST /v1/render             text → artifacts, stored for download
//	GET  /v1/artifacts/{id}     download a rendered artifact
//	GET  /healthz               liveness and build information
//
// Request bodies are [pipeline.Options] documents; absent fields keep their
// defaults. Errors are reported as
//
//	{"error": {"code": "ILLEGAL_TOKEN", "message": "...", "input": "xyz"}, "request_id": "..."}
//
// with the HTTP status derived from the error code.
package api

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/sitelen/pkg/cache"
	"github.com/matzehuels/sitelen/pkg/pipeline"
)

const (
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes = 1 << 20

	// DefaultRequestTimeout bounds a single request, layout search included.
	DefaultRequestTimeout = 30 * time.Second
)

// Server serves the API on top of a pipeline runner. Rendered artifacts are
// kept in the runner's cache so any replica sharing it can serve downloads.
type Server struct {
	runner  *pipeline.Runner
	store   cache.Cache
	logger  *log.Logger
	timeout time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithRequestTimeout overrides DefaultRequestTimeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithArtifactStore stores artifacts in c instead of the runner's cache.
func WithArtifactStore(c cache.Cache) Option {
	return func(s *Server) { s.store = c }
}

// New creates a server. A nil logger discards output.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner:  runner,
		store:   runner.Cache,
		logger:  logger,
		timeout: DefaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/parse", s.handleParse)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
		r.Get("/artifacts/{id}", s.handleArtifact)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, errNotFound("no route for %s %s", r.Method, r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeErrorStatus(w, r, http.StatusMethodNotAllowed, errMethod(r.Method, r.URL.Path))
	})

	return r
}
