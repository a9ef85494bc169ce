package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meltforce/barbell/internal/models"
	"github.com/meltforce/barbell/internal/notes"
	"github.com/meltforce/barbell/internal/program"
)

const sheaJSON = `{"name":"Shea","maxes":{"Squat":"400","Press":"5x150","Deadlift":500,"Bench Press":"300"}}`

func newTestServer(t *testing.T, store notes.Store) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := program.NewService(program.MustLoadPresets(), store, program.Defaults{Preset: "wendler531"}, log)
	return New(svc, store, log)
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestHandleMeDefault verifies the /api/v1/me endpoint returns the dev user
// identity when no Tailscale middleware is active.
func TestHandleMeDefault(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var info UserInfo
	if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if info.Login != "local" {
		t.Errorf("login = %q, want %q", info.Login, "local")
	}
}

// TestListPresets verifies the preset listing.
func TestListPresets(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/presets", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var presets []models.PresetSummary
	if err := json.NewDecoder(rec.Body).Decode(&presets); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(presets) != 4 {
		t.Errorf("len(presets) = %d, want 4", len(presets))
	}
}

// TestGetPreset verifies preset detail and the 404 for unknown names.
func TestGetPreset(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/api/v1/presets/wendler531", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var def program.Definition
	if err := json.NewDecoder(rec.Body).Decode(&def); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if def.Name != "Wendler 531 Cycle" {
		t.Errorf("name = %q, want %q", def.Name, "Wendler 531 Cycle")
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/presets/westside", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown preset status = %d, want 404", rec.Code)
	}
}

// TestGenerateJSON verifies plan generation over HTTP.
func TestGenerateJSON(t *testing.T) {
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/programs", sheaJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var plan models.Plan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if plan.Athlete != "Shea" || len(plan.Cycles) != 2 {
		t.Errorf("plan athlete = %q cycles = %d", plan.Athlete, len(plan.Cycles))
	}
	first := plan.Cycles[0].Weeks[0][0].Entries[0].Prescription
	if first == nil || first.Sets[0].Load.Weight != 235 {
		t.Errorf("first prescription = %+v, want squat at 235", first)
	}
}

// TestGenerateDefaultsName verifies that the caller's identity fills a missing name.
func TestGenerateDefaultsName(t *testing.T) {
	body := `{"maxes":{"Squat":"400","Press":"200","Deadlift":"500","Bench Press":"300"}}`
	rec := do(t, newTestServer(t, nil), http.MethodPost, "/api/v1/programs", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var plan models.Plan
	if err := json.NewDecoder(rec.Body).Decode(&plan); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if plan.Athlete != "Local Dev User" {
		t.Errorf("athlete = %q, want %q", plan.Athlete, "Local Dev User")
	}
}

// TestGenerateFormats verifies the markdown and html renderings.
func TestGenerateFormats(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/v1/programs?format=markdown", sheaJSON)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "A. Squat 235x5, 270x5, 305x5+") {
		t.Errorf("markdown status = %d body:\n%s", rec.Code, rec.Body.String())
	}
	rec = do(t, s, http.MethodPost, "/api/v1/programs?format=html", sheaJSON)
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("html content type = %q", ct)
	}
	rec = do(t, s, http.MethodPost, "/api/v1/programs?format=pdf", sheaJSON)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("pdf status = %d, want 400", rec.Code)
	}
}

// TestGenerateErrors verifies the status mapping for bad requests.
func TestGenerateErrors(t *testing.T) {
	s := newTestServer(t, nil)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"bad json", `{`, http.StatusBadRequest},
		{"missing max", `{"name":"Shea","maxes":{"Squat":"400"}}`, http.StatusBadRequest},
		{"bad max", `{"name":"Shea","maxes":{"Squat":"lots","Press":"1","Deadlift":"1","Bench Press":"1"}}`, http.StatusBadRequest},
		{"unknown preset", `{"preset":"westside","name":"Shea"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, s, http.MethodPost, "/api/v1/programs", tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

// TestEstimate verifies the rep-max estimate endpoint.
func TestEstimate(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/v1/estimate", `{"max":"5x300"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp estimateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.OneRepMax != 350 || resp.Method != "epley" {
		t.Errorf("estimate = %v (%s), want 350 (epley)", resp.OneRepMax, resp.Method)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/estimate", `{"max":"a lot"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status = %d, want 400", rec.Code)
	}
}

// TestEstimateMethod verifies the formula can be chosen per request.
func TestEstimateMethod(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/api/v1/estimate", `{"max":"5x300","method":"brzycki"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp estimateResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if resp.OneRepMax != 340 || resp.Method != "brzycki" {
		t.Errorf("estimate = %v (%s), want 340 (brzycki)", resp.OneRepMax, resp.Method)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/estimate", `{"max":"5x300","method":"lombardi"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown method status = %d, want 400", rec.Code)
	}
}

// TestNotesEndpoints verifies listing and fetching notes from a SQLite store.
func TestNotesEndpoints(t *testing.T) {
	ctx := context.Background()
	store, err := notes.Open(ctx, notes.DriverSQLite, filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("notes.Open: %v", err)
	}
	defer store.Close()
	n, err := store.Upsert(ctx, models.Note{Title: "Rest", Source: "rest.txt", Hash: "h", Body: "Sleep eight hours."})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	s := newTestServer(t, store)

	rec := do(t, s, http.MethodGet, "/api/v1/notes", "")
	var list []models.Note
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(list) != 1 || list[0].Body != "" {
		t.Errorf("list = %+v, want one note without body", list)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/notes/"+n.ID.String(), "")
	var got models.Note
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.Body != "Sleep eight hours." {
		t.Errorf("body = %q", got.Body)
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/notes/not-a-uuid", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id status = %d, want 400", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/notes/00000000-0000-0000-0000-000000000001", ""); rec.Code != http.StatusNotFound {
		t.Errorf("missing note status = %d, want 404", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/programs?format=markdown", `{"include_notes":true,`+sheaJSON[1:])
	if !strings.Contains(rec.Body.String(), "Sleep eight hours.") {
		t.Errorf("plan missing notes:\n%s", rec.Body.String())
	}
}

// TestNotesDisabled verifies the 503 when no store is configured.
func TestNotesDisabled(t *testing.T) {
	if rec := do(t, newTestServer(t, nil), http.MethodGet, "/api/v1/notes", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}
