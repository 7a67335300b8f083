package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/openscad-forge/customizer/internal/customizer"
	"github.com/openscad-forge/customizer/internal/emit"
	"github.com/openscad-forge/customizer/internal/state"
	"github.com/openscad-forge/customizer/internal/visibility"
)

// maxSourceBytes bounds request bodies; Customizer sources are small.
const maxSourceBytes = 4 << 20

type parseRequest struct {
	Source string `json:"source"`
}

type visibilityRequest struct {
	Source string            `json:"source"`
	Values map[string]string `json:"values"`
}

type emitRequest struct {
	Schema *customizer.Schema `json:"schema"`
}

type presetRequest struct {
	Model  string            `json:"model"`
	Name   string            `json:"name"`
	Values map[string]string `json:"values"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respond(w, http.StatusOK, customizer.Parse(req.Source))
}

func (s *Server) handleVisibility(w http.ResponseWriter, r *http.Request) {
	var req visibilityRequest
	if !s.decode(w, r, &req) {
		return
	}

	schema := customizer.Parse(req.Source)
	values := visibility.DefaultValues(schema)
	for name, value := range req.Values {
		values[name] = value
	}
	s.respond(w, http.StatusOK, visibility.Evaluate(schema, values))
}

func (s *Server) handleEmit(w http.ResponseWriter, r *http.Request) {
	var req emitRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Schema == nil {
		s.respondError(w, http.StatusBadRequest, "schema is required")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, emit.New().EmitSchema(req.Schema))
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	if model == "" {
		s.respondError(w, http.StatusBadRequest, "model query parameter is required")
		return
	}

	presets, err := s.store.ListPresets(model)
	if err != nil {
		s.logger.Error("list presets failed", "model", model, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to list presets")
		return
	}
	if presets == nil {
		presets = []*state.Preset{}
	}
	s.respond(w, http.StatusOK, presets)
}

func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	var req presetRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Model == "" || req.Name == "" {
		s.respondError(w, http.StatusBadRequest, "model and name are required")
		return
	}

	preset, err := s.store.SavePreset(req.Model, req.Name, req.Values)
	if err != nil {
		s.logger.Error("save preset failed", "model", req.Model, "name", req.Name, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to save preset")
		return
	}
	s.respond(w, http.StatusCreated, preset)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	model := r.URL.Query().Get("model")
	name := r.URL.Query().Get("name")
	if model == "" || name == "" {
		s.respondError(w, http.StatusBadRequest, "model and name query parameters are required")
		return
	}

	err := s.store.DeletePreset(model, name)
	switch {
	case errors.Is(err, state.ErrNotFound):
		s.respondError(w, http.StatusNotFound, "preset not found")
	case err != nil:
		s.logger.Error("delete preset failed", "model", model, "name", name, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to delete preset")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxSourceBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, map[string]string{"error": msg})
}
