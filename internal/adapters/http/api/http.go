// Package api serves the precomputed documents over a read-only HTTP API.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/okian/gridiron/internal/adapters/repository"
	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/tables"
	"github.com/okian/gridiron/pkg/logger"
)

const (
	requestTimeout = 30 * time.Second
	corsMaxAge     = 300
)

// Reader is the subset of the document store the API reads from.
type Reader interface {
	ReadHomeSummary(ctx context.Context) (model.HomeSummary, error)
	ReadAggregate(ctx context.Context, slug string) (model.CollegeAggregate, error)
	ListAggregates(ctx context.Context) ([]model.CollegeAggregate, error)
}

// Server wires HTTP routes for the read API.
type Server struct {
	reader  Reader
	tables  *tables.Classification
	origins []string
	logger  logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithAllowedOrigins sets the CORS origin list. Empty means "*".
func WithAllowedOrigins(origins []string) Option {
	return func(s *Server) {
		if len(origins) > 0 {
			s.origins = origins
		}
	}
}

// WithTables sets the classification tables used to group positions.
func WithTables(t *tables.Classification) Option {
	return func(s *Server) {
		if t != nil {
			s.tables = t
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a read API over reader.
func NewServer(reader Reader, opts ...Option) *Server {
	s := &Server{
		reader:  reader,
		tables:  tables.New(),
		origins: []string{"*"},
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the router.
//
//	GET /api/home               -> home summary
//	GET /api/college/{slug}     -> one college page
//	GET /api/positions/{group}  -> colleges with players in a position group
//	GET /healthz                -> liveness
//	GET /metrics                -> Prometheus exposition
//	GET /openapi.yaml           -> API description
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         corsMaxAge,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/healthz", HandleHealth)
	r.Handle("/metrics", MetricsHandler())
	r.Get("/openapi.yaml", HandleOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/home", s.handleHome)
		r.Get("/college/{slug}", s.handleCollege)
		r.Get("/positions/{group}", s.handlePositions)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
	})
	return r
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeStoreError maps a store error to 404 or 500.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidID) {
		writeError(w, http.StatusNotFound, "not_found", ErrNotFound)
		return
	}
	s.logger.Error(r.Context(), "read failed", logger.String("op", op), logger.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, ErrInternal))
}
