package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/patchworklabs/patchwork/pkg/cache"
	"github.com/patchworklabs/patchwork/pkg/errors"
	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/pipeline"
	"github.com/patchworklabs/patchwork/pkg/quilt"
	"github.com/patchworklabs/patchwork/pkg/store"
)

// createRequest is the POST /api/quilts body: a raw graph plus optional
// metadata and render options.
type createRequest struct {
	Name  string      `json:"name,omitempty"`
	Graph graph.Graph `json:"graph"`
}

// createResponse extends the stored document with correction info that
// clients usually want immediately.
type createResponse struct {
	*store.Quilt
	Legal bool `json:"legal"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateQuilt(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}

	g, err := graph.ToQuilt(req.Graph)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph"))
		return
	}

	corrected, stats, err := s.runner.Correct(r.Context(), g, nil, pipeline.Options{})
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "correction failed"))
		return
	}

	// Stability and legality diverge: degenerate inputs stabilize without
	// ever becoming legal, and a capped run can still end legal.
	legal := quilt.Legal(corrected)
	if !stats.Stable && !legal {
		s.writeError(w, errors.New(errors.ErrCodeUnstable,
			"correction did not converge after %d passes", stats.Passes))
		return
	}

	q := store.NewQuilt(req.Name, corrected, stats)
	if data, err := graph.MarshalGraph(corrected); err == nil {
		q.GraphHash = cache.Hash(data)
	}
	if err := s.store.Put(r.Context(), q); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "store quilt"))
		return
	}

	writeJSON(w, http.StatusCreated, createResponse{Quilt: q, Legal: legal})
}

func (s *Server) handleListQuilts(w http.ResponseWriter, r *http.Request) {
	quilts, err := s.store.List(r.Context(), s.listLimit)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "list quilts"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quilts": quilts})
}

func (s *Server) handleGetQuilt(w http.ResponseWriter, r *http.Request) {
	q, err := s.loadQuilt(w, r)
	if q == nil || err != nil {
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuilt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			s.writeError(w, errors.New(errors.ErrCodeQuiltNotFound, "quilt %s not found", id))
			return
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "delete quilt"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRenderQuilt(w http.ResponseWriter, r *http.Request) {
	q, err := s.loadQuilt(w, r)
	if q == nil || err != nil {
		return
	}

	g, err := graph.ToQuilt(q.Graph)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "stored graph is invalid"))
		return
	}

	opts := pipeline.Options{Formats: []string{pipeline.FormatSVG}}
	if r.URL.Query().Get("vertices") == "true" {
		opts.ShowVertices = true
	}
	if r.URL.Query().Get("labels") == "true" {
		opts.ShowLabels = true
	}

	artifacts, err := s.runner.Render(r.Context(), g, opts)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render failed"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[pipeline.FormatSVG])
}

// loadQuilt fetches the quilt named by the id URL parameter, writing the
// error response itself. Returns nil when the response is already written.
func (s *Server) loadQuilt(w http.ResponseWriter, r *http.Request) (*store.Quilt, error) {
	id := chi.URLParam(r, "id")
	q, err := s.store.Get(r.Context(), id)
	if err != nil {
		if stderrors.Is(err, store.ErrNotFound) {
			s.writeError(w, errors.New(errors.ErrCodeQuiltNotFound, "quilt %s not found", id))
			return nil, err
		}
		s.writeError(w, errors.Wrap(errors.ErrCodeStorage, err, "load quilt"))
		return nil, err
	}
	return q, nil
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error struct {
		Code    errors.Code `json:"code"`
		Message string      `json:"message"`
	} `json:"error"`
}

// writeError maps structured error codes to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidGraph, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidVertex, errors.ErrCodeInvalidImage, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeQuiltNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnstable:
		status = http.StatusUnprocessableEntity
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}

	var resp errorResponse
	resp.Error.Code = errors.GetCode(err)
	resp.Error.Message = errors.UserMessage(err)
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
