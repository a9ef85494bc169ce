package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/notes"
	"github.com/meltforce/barbell/internal/onerm"
	"github.com/meltforce/barbell/internal/program"
	"github.com/meltforce/barbell/internal/render"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.programs.Presets(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	def, err := s.programs.Definition(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

// handleGenerate builds a plan. The athlete name defaults to the caller's
// display name and the preset to ?preset=. ?format=markdown or ?format=html
// renders the plan instead of returning JSON.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		req.Name = userInfoFromContext(r).DisplayName
	}
	if req.Preset == "" {
		req.Preset = r.URL.Query().Get("preset")
	}
	format := r.URL.Query().Get("format")
	annotate(r, "preset", req.Preset, "format", format, "athlete", req.Name)

	plan, err := s.programs.Generate(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	annotate(r, "plan_id", plan.ID, "resolved_preset", plan.Preset, "cycles", len(plan.Cycles))

	switch format {
	case "", "json":
		writeJSON(w, http.StatusOK, plan)
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(render.Markdown(plan)))
	case "html":
		page, err := render.HTML(plan)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page))
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown format " + format})
	}
}

type estimateRequest struct {
	Max    string `json:"max"`
	Method string `json:"method,omitempty"`
}

type estimateResponse struct {
	Input     string  `json:"input"`
	Method    string  `json:"method"`
	OneRepMax float64 `json:"one_rep_max"`
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	method, err := onerm.ParseMethod(req.Method)
	if err != nil {
		s.writeError(w, err)
		return
	}
	annotate(r, "estimate_method", method)
	oneRM, err := s.programs.Estimate(r.Context(), req.Max, string(method))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, estimateResponse{Input: req.Max, Method: string(method), OneRepMax: oneRM})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	if !s.notesEnabled(w) {
		return
	}
	list, err := s.notes.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	// Listings omit bodies; fetch a note by id for its text.
	for i := range list {
		list[i].Body = ""
	}
	if list == nil {
		list = []models.Note{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	if !s.notesEnabled(w) {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid note id"})
		return
	}
	n, err := s.notes.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) notesEnabled(w http.ResponseWriter) bool {
	if s.notes == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "notes store not configured"})
		return false
	}
	return true
}

// writeError maps domain errors to status codes. Unexpected errors are
// logged and reported as 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, program.ErrInvalidInput), errors.Is(err, onerm.ErrInvalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, program.ErrUnknownPreset), errors.Is(err, notes.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
