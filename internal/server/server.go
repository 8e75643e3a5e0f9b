package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/importer"
	"github.com/claude/liftlog/internal/session"
	"github.com/claude/liftlog/internal/state"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  *state.Store
	ctrl   *session.Controller
	imp    *importer.Importer
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(store *state.Store, ctrl *session.Controller, imp *importer.Importer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		ctrl:   ctrl,
		imp:    imp,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		// Catalog
		r.Get("/muscle-groups", s.handleListMuscleGroups)
		r.Get("/exercises", s.handleListExercises)
		r.Post("/exercises", s.handleCreateExercise)
		r.Get("/exercises/{id}", s.handleGetExercise)
		r.Put("/exercises/{id}", s.handleUpdateExercise)

		// Routine templates
		r.Get("/routines", s.handleListRoutines)
		r.Post("/routines", s.handleCreateRoutine)
		r.Post("/routines/import", s.handleImportRoutine)
		r.Get("/routines/{id}", s.handleGetRoutine)
		r.Put("/routines/{id}", s.handleUpdateRoutine)
		r.Delete("/routines/{id}", s.handleDeleteRoutine)
		r.Post("/routines/{id}/activate", s.handleActivateRoutine)
		r.Get("/routines/{id}/share", s.handleShareRoutine)
		r.Post("/routines/{id}/days", s.handleAddDay)
		r.Delete("/routines/{id}/days/{dayID}", s.handleRemoveDay)
		r.Post("/routines/{id}/days/{dayID}/sets", s.handleAddPlannedSet)
		r.Put("/routines/{id}/days/{dayID}/sets/order", s.handleReorderPlannedSets)
		r.Put("/routines/{id}/days/{dayID}/sets/{setID}", s.handleUpdatePlannedSet)
		r.Delete("/routines/{id}/days/{dayID}/sets/{setID}", s.handleRemovePlannedSet)

		// Active session lifecycle
		r.Get("/session", s.handleSessionStatus)
		r.Post("/session/start", s.handleStartSession)
		r.Post("/session/sets", s.handleRecordSet)
		r.Post("/session/sets/adhoc", s.handleRecordAdHocSet)
		r.Post("/session/advance", s.handleAdvanceSet)
		r.Post("/session/retreat", s.handleRetreatSet)
		r.Post("/session/complete", s.handleCompleteSession)
		r.Post("/session/cancel", s.handleCancelSession)

		// Analytics
		r.Get("/stats/volume", s.handleVolumeStats)
		r.Get("/stats/muscles", s.handleMuscleStats)

		// History export and sessions listing
		r.Get("/history", s.handleListHistory)
		r.Get("/history/export", s.handleExportCSV)

		// Settings
		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		// Bulk import rewrites history, so it sits behind the API key.
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/history/import", s.handleImportCSV)
		})
	})
}
