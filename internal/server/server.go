package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/meltforce/barbell/internal/notes"
	"github.com/meltforce/barbell/internal/program"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	programs *program.Service
	notes    notes.Store
	log      *slog.Logger
	identity func(http.Handler) http.Handler
	router   chi.Router
}

// New creates a new Server with all routes configured. store may be nil,
// which disables the notes endpoints.
func New(programs *program.Service, store notes.Store, log *slog.Logger) *Server {
	s := &Server{
		programs: programs,
		notes:    store,
		log:      log,
		identity: DevIdentity,
	}
	s.routes()
	return s
}

// SetTailscale resolves callers through the tailnet instead of the dev identity.
func (s *Server) SetTailscale(lc WhoIser) {
	s.identity = TailscaleIdentity(lc)
	s.routes()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogging(s.log))
	r.Use(middleware.Recoverer)
	r.Use(CORS)
	r.Use(s.identity)

	r.Get("/api/v1/me", s.handleMe)
	r.Get("/api/v1/presets", s.handleListPresets)
	r.Get("/api/v1/presets/{name}", s.handleGetPreset)
	r.Post("/api/v1/programs", s.handleGenerate)
	r.Post("/api/v1/estimate", s.handleEstimate)
	r.Get("/api/v1/notes", s.handleListNotes)
	r.Get("/api/v1/notes/{id}", s.handleGetNote)
	s.router = r
}
