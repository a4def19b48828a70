package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/errors"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/graph"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/pipeline"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/render/nodelink"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/talent"
)

// =============================================================================
// Request and Response Types
// =============================================================================

// SettingsRequest overrides layout settings. Omitted fields use the
// server defaults. A divider margin or offset of 0 is applied as given.
type SettingsRequest struct {
	GridSpacing   float64  `json:"grid_spacing,omitempty"`
	NodeSize      float64  `json:"node_size,omitempty"`
	Unit          string   `json:"unit,omitempty"`
	DividerMargin *float64 `json:"divider_margin,omitempty"`
	DividerOffset *float64 `json:"divider_offset,omitempty"`
}

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	Tree       json.RawMessage  `json:"tree"`
	Settings   *SettingsRequest `json:"settings,omitempty"`
	PreFilled  bool             `json:"prefilled,omitempty"`
	IncludeDOT bool             `json:"include_dot,omitempty"`
}

// LayoutResponse is the body of a successful layout.
type LayoutResponse struct {
	RequestID   string             `json:"request_id"`
	Graph       graph.Graph        `json:"graph"`
	Tiers       []graph.Tier       `json:"tiers"`
	Dividers    []graph.Divider    `json:"dividers"`
	Diagnostics []graph.Diagnostic `json:"diagnostics"`
	DOT         string             `json:"dot,omitempty"`
	Cached      bool               `json:"cached"`
}

// DragRequest is the body of POST /v1/drag.
type DragRequest struct {
	Tree      json.RawMessage  `json:"tree"`
	OrderID   int              `json:"order_id"`
	Position  graph.Position   `json:"position"`
	Settings  *SettingsRequest `json:"settings,omitempty"`
	PreFilled bool             `json:"prefilled,omitempty"`
}

// DragResponse returns the updated records with their new layout.
type DragResponse struct {
	RequestID   string             `json:"request_id"`
	Tree        []talent.Node      `json:"tree"`
	Graph       graph.Graph        `json:"graph"`
	Tiers       []graph.Tier       `json:"tiers"`
	Dividers    []graph.Divider    `json:"dividers"`
	Diagnostics []graph.Diagnostic `json:"diagnostics"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Tree) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "tree is required"))
		return
	}
	opts := s.options(req.Settings, req.PreFilled)

	ctx := r.Context()
	nodes, err := s.runner.Decode(ctx, req.Tree, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	l, cached, err := s.runner.LayoutWithCacheInfo(ctx, nodes, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := LayoutResponse{
		RequestID:   RequestIDFromContext(ctx),
		Graph:       l.Graph,
		Tiers:       nonNil(l.Tiers),
		Dividers:    nonNil(l.Dividers),
		Diagnostics: nonNil(l.Diagnostics),
		Cached:      cached,
	}
	if req.IncludeDOT {
		resp.DOT = nodelink.ToDOT(l.Graph, nodelink.Options{})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDrag(w http.ResponseWriter, r *http.Request) {
	var req DragRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Tree) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "tree is required"))
		return
	}
	opts := s.options(req.Settings, req.PreFilled)

	ctx := r.Context()
	nodes, err := s.runner.Decode(ctx, req.Tree, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	moved, l, err := s.runner.Drag(ctx, nodes, req.OrderID, req.Position, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DragResponse{
		RequestID:   RequestIDFromContext(ctx),
		Tree:        moved,
		Graph:       l.Graph,
		Tiers:       nonNil(l.Tiers),
		Dividers:    nonNil(l.Dividers),
		Diagnostics: nonNil(l.Diagnostics),
	})
}

// =============================================================================
// Helpers
// =============================================================================

// options merges request settings over the server defaults.
func (s *Server) options(req *SettingsRequest, preFilled bool) pipeline.Options {
	opts := s.defaults
	opts.Logger = s.logger
	opts.PreFilled = preFilled
	if req == nil {
		return opts
	}
	if req.GridSpacing != 0 {
		opts.GridSpacing = req.GridSpacing
	}
	if req.NodeSize != 0 {
		opts.NodeSize = req.NodeSize
	}
	if req.Unit != "" {
		opts.Unit = req.Unit
	}
	if req.DividerMargin != nil {
		opts.DividerMargin = req.DividerMargin
	}
	if req.DividerOffset != nil {
		opts.DividerOffset = req.DividerOffset
	}
	return opts
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeErrorStatus(w, r, http.StatusRequestEntityTooLarge,
				errors.Wrap(errors.ErrCodeInvalidInput, err, "request body exceeds %d bytes", s.maxBody))
			return false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body"))
		return false
	}
	return true
}

// statusFor maps error codes to HTTP statuses.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorStatus(w, r, statusFor(err), err)
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
		msg = "internal error"
	} else {
		s.logger.Warn("request rejected", "id", RequestIDFromContext(r.Context()), "code", code, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:      string(code),
		Message:   msg,
		RequestID: RequestIDFromContext(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
