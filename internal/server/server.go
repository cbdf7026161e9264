// Package server implements the MindGraph HTTP layout API.
//
// The API exposes the enhance pipeline over REST: clients POST raw diagram
// specs and receive enhanced specs with positions and recommended canvas
// dimensions. When a MongoDB store is configured, results can be persisted
// and fetched again by id.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/lycosa9527/mindgraph/pkg/buildinfo"
	"github.com/lycosa9527/mindgraph/pkg/errors"
	"github.com/lycosa9527/mindgraph/pkg/graphmap"
	"github.com/lycosa9527/mindgraph/pkg/mindmap"
	"github.com/lycosa9527/mindgraph/pkg/pipeline"
	"github.com/lycosa9527/mindgraph/pkg/store"
)

// Server handles HTTP requests for the layout API.
type Server struct {
	runner *pipeline.Runner
	store  *store.Store // nil disables persistence
	logger *log.Logger
}

// New creates a server. The store may be nil, in which case the diagram
// persistence endpoints return 503.
func New(runner *pipeline.Runner, st *store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  st,
		logger: logger,
	}
}

// Router configures all routes and middleware.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(s.logRequests)

	// Health check
	router.Get("/health", s.health)

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/layout/graph", s.layoutGraph)
		r.Post("/layout/tree", s.layoutTree)

		r.Route("/diagrams", func(r chi.Router) {
			r.Get("/{diagramID}", s.getDiagram)
			r.Delete("/{diagramID}", s.deleteDiagram)
		})
	})

	return router
}

// =============================================================================
// Request / Response Types
// =============================================================================

// graphRequest is the body of POST /api/v1/layout/graph.
type graphRequest struct {
	Spec     graphmap.Spec `json:"spec"`
	Strategy string        `json:"strategy,omitempty"`
	Seed     int64         `json:"seed,omitempty"`
	Save     bool          `json:"save,omitempty"`
}

// treeRequest is the body of POST /api/v1/layout/tree.
type treeRequest struct {
	Spec       mindmap.Spec `json:"spec"`
	Complexity string       `json:"complexity,omitempty"`
	Save       bool         `json:"save,omitempty"`
}

// layoutResponse wraps an enhanced spec with pipeline metadata.
type layoutResponse struct {
	ID       string          `json:"id,omitempty"`
	SpecHash string          `json:"spec_hash"`
	Cached   bool            `json:"cached"`
	Diagram  json.RawMessage `json:"diagram"`
}

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) layoutGraph(w http.ResponseWriter, r *http.Request) {
	var req graphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Graph:    &req.Spec,
		Strategy: req.Strategy,
		Seed:     req.Seed,
		Formats:  []string{pipeline.FormatJSON},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := layoutResponse{
		SpecHash: result.SpecHash,
		Cached:   result.CacheInfo.LayoutHit,
		Diagram:  result.Artifacts[pipeline.FormatJSON],
	}
	if req.Save {
		id, err := s.saveGraph(r, result)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.ID = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) layoutTree(w http.ResponseWriter, r *http.Request) {
	var req treeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidSpec, err, "decode request body"))
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Tree:       &req.Spec,
		Complexity: req.Complexity,
		Formats:    []string{pipeline.FormatJSON},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := layoutResponse{
		SpecHash: result.SpecHash,
		Cached:   result.CacheInfo.LayoutHit,
		Diagram:  result.Artifacts[pipeline.FormatJSON],
	}
	if req.Save {
		id, err := s.saveTree(r, result)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.ID = id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getDiagram(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "persistence is not configured"))
		return
	}
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "diagramID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) deleteDiagram(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "persistence is not configured"))
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "diagramID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) saveGraph(r *http.Request, result *pipeline.Result) (string, error) {
	if s.store == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "persistence is not configured")
	}
	return s.store.SaveGraph(r.Context(), result.Graph)
}

func (s *Server) saveTree(r *http.Request, result *pipeline.Result) (string, error) {
	if s.store == nil {
		return "", errors.New(errors.ErrCodeUnsupported, "persistence is not configured")
	}
	return s.store.SaveTree(r.Context(), result.Tree)
}

// =============================================================================
// Responses
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err)
	}
	writeJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  code,
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidSpec,
		errors.ErrCodeInvalidStrategy,
		errors.ErrCodeInvalidComplexity,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeFileNotFound,
		errors.ErrCodeDiagramNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
