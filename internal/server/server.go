// Package server exposes the planning pipeline over HTTP.
//
// The server shares the pipeline Runner with the CLI, so a plan requested
// over the API hits the same cache as one generated on the command line.
// When a MongoDB store is configured, finished plans can be persisted and
// listed through the /api/plans endpoints.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/errors"
	"github.com/expogrid/hallplan/pkg/pipeline"
	"github.com/expogrid/hallplan/pkg/render"
	"github.com/expogrid/hallplan/pkg/store"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	requestTimeout    = 60 * time.Second

	defaultListLimit = 20
	maxListLimit     = 100
)

// Server handles HTTP requests for the planning pipeline.
type Server struct {
	runner *pipeline.Runner
	store  *store.Store // nil disables the /api/plans endpoints
	logger *log.Logger
}

// New creates a server around an existing runner. The store may be nil.
func New(runner *pipeline.Runner, st *store.Store, logger *log.Logger) *Server {
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler builds the HTTP route tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/plan", s.handlePlan)
	r.Get("/api/plan.svg", s.handlePlanSVG)
	r.Get("/api/corridors.svg", s.handleCorridorsSVG)

	if s.store != nil {
		r.Route("/api/plans", func(r chi.Router) {
			r.Get("/", s.handleListPlans)
			r.Get("/{id}", s.handleGetPlan)
			r.Delete("/{id}", s.handleDeletePlan)
		})
	}

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("http server listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePlan runs the pipeline with options from the request body and
// responds with the serialized layout. An empty body runs with defaults.
func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Plan-Hash", result.PlanHash)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

// handlePlanSVG runs the pipeline with default options and responds with the
// rendered SVG. The scale query parameter tunes pixels per metre.
func (s *Server) handlePlanSVG(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}
	if v := r.URL.Query().Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			writeError(w, http.StatusBadRequest, "invalid scale: "+v)
			return
		}
		opts.Scale = scale
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// handleCorridorsSVG responds with the corridor adjacency graph laid out by
// Graphviz, for inspecting connectivity rather than exact hall coordinates.
func (s *Server) handleCorridorsSVG(w http.ResponseWriter, r *http.Request) {
	l, err := s.runner.Plan(r.Context(), pipeline.Options{})
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	net := corridor.NewNetwork(l.Hall, l.Corridors)
	svg, err := render.GraphSVG(r.Context(), net)
	if err != nil {
		s.logger.Error("render corridor graph", "error", err)
		writeError(w, http.StatusInternalServerError, "rendering corridor graph failed")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultListLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 || n > maxListLimit {
			writeError(w, http.StatusBadRequest, "invalid limit: "+v)
			return
		}
		limit = n
	}

	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("list plans", "error", err)
		writeError(w, http.StatusInternalServerError, "listing plans failed")
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	doc, err := s.store.Get(r.Context(), id)
	if errors.Is(err, errors.ErrCodeNotFound) {
		writeError(w, http.StatusNotFound, errors.UserMessage(err))
		return
	}
	if err != nil {
		s.logger.Error("get plan", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "loading plan failed")
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, errors.ErrCodeNotFound) {
		writeError(w, http.StatusNotFound, errors.UserMessage(err))
		return
	}
	if err != nil {
		s.logger.Error("delete plan", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "deleting plan failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writePipelineError maps pipeline errors to HTTP status codes. Invalid
// inputs are the caller's fault; everything else is a 500.
func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidGeometry,
		errors.ErrCodeInvalidInventory, errors.ErrCodeInvalidFormat:
		writeError(w, http.StatusBadRequest, errors.UserMessage(err))
	default:
		s.logger.Error("pipeline run failed", "error", err)
		writeError(w, http.StatusInternalServerError, "planning failed")
	}
}

// =============================================================================
// Response helpers
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
