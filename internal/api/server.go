package api

import (
	"log/slog"
	"net/http"

	"github.com/archithareddy21/portfolio-project/internal/config"
	"github.com/archithareddy21/portfolio-project/internal/extract"
	"github.com/archithareddy21/portfolio-project/internal/pipeline"
	"github.com/archithareddy21/portfolio-project/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API for resume parsing and the portfolio profile.
type Server struct {
	router       chi.Router
	store        *store.Store
	orchestrator *pipeline.Orchestrator
	extractor    *extract.Service
	log          *slog.Logger
	cfg          config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(st *store.Store, orch *pipeline.Orchestrator, extractor *extract.Service, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:        st,
		orchestrator: orch,
		extractor:    extractor,
		log:          log,
		cfg:          cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated when an API key is configured; open otherwise.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/parse-resume", s.handleParseResume)
		r.Get("/api/resumes", s.handleListResumes)
		r.Post("/api/use-resume", s.handleUseResume)
		r.Get("/api/profile-data", s.handleProfileData)
		r.Put("/api/profile", s.handleUpdateProfile)
		r.Post("/api/reparse", s.handleReparse)
		r.Get("/api/jobs/{jobID}", s.handleJobStatus)
		r.Get("/api/stats/extract", s.handleExtractStats)
		r.Get("/snapshots/{id}/resume.pdf", s.handleSnapshotDocument)
		r.Get("/snapshots/{id}/data.json", s.handleSnapshotData)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
