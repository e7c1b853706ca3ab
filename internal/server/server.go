// Package server exposes the timeline and game-room APIs over HTTP.
//
// Routes are versionless under /api. Timeline endpoints operate on the
// single working draft and its published snapshots; every draft write
// passes through the constraint solver before it is stored, so clients
// can never persist a document that violates finish-to-start ordering.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/tmarsh/gantry/pkg/errors"
	"github.com/tmarsh/gantry/pkg/observability"
	"github.com/tmarsh/gantry/pkg/plan"
	"github.com/tmarsh/gantry/pkg/rooms"
	"github.com/tmarsh/gantry/pkg/schedule"
	"github.com/tmarsh/gantry/pkg/store"
)

// Server holds the API's dependencies.
type Server struct {
	drafts   store.DraftStore
	versions store.VersionStore
	rooms    *rooms.Service
	logger   *log.Logger
}

// New creates a server over the given stores.
func New(drafts store.DraftStore, versions store.VersionStore, roomSvc *rooms.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		drafts:   drafts,
		versions: versions,
		rooms:    roomSvc,
		logger:   logger,
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/timeline", func(r chi.Router) {
			r.Get("/draft", s.handleGetDraft)
			r.Put("/draft", s.handlePutDraft)
			r.Get("/versions", s.handleListVersions)
			r.Post("/versions", s.handleCreateVersion)
			r.Get("/versions/{id}", s.handleGetVersion)
		})
		r.Route("/tictactoe", func(r chi.Router) {
			r.Post("/create", s.handleRoomCreate)
			r.Post("/join", s.handleRoomJoin)
			r.Post("/move", s.handleRoomMove)
			r.Get("/state", s.handleRoomState)
		})
	})

	return r
}

// logRequests emits one structured log line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

// handleGetDraft returns the working draft, seeding the demo document on
// first contact so a fresh deployment is never empty.
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	doc, err := s.drafts.Load(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		doc = plan.SeedDocument()
		if err := s.drafts.Save(r.Context(), doc); err != nil {
			s.fail(w, err)
			return
		}
	} else if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handlePutDraft replaces the working draft. The incoming document is
// normalized and settled before storage; the settled result is returned
// so clients can reconcile any dates the solver moved.
func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	var doc plan.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.fail(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decoding document"))
		return
	}
	if err := validateDocumentIDs(&doc); err != nil {
		s.fail(w, err)
		return
	}
	start := time.Now()
	observability.Solver().OnSettleStart(r.Context(), len(doc.Tasks))
	moved := schedule.SettleStats(&doc)
	observability.Solver().OnSettleComplete(r.Context(), len(doc.Tasks), moved, time.Since(start))
	if err := s.drafts.Save(r.Context(), &doc); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &doc)
}

// validateDocumentIDs rejects documents whose group or task identifiers
// would be unsafe as map keys or storage key components.
func validateDocumentIDs(doc *plan.Document) error {
	for _, g := range doc.Groups {
		if err := apperrors.ValidateID(g.ID); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "group %q", g.Name)
		}
	}
	for _, t := range doc.Tasks {
		if err := apperrors.ValidateID(t.ID); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "task %q", t.Name)
		}
	}
	return nil
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.versions.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if versions == nil {
		versions = []plan.Version{}
	}
	writeJSON(w, http.StatusOK, versions)
}

// handleCreateVersion snapshots the current draft. The label defaults to
// the next V<n> in sequence.
func (s *Server) handleCreateVersion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Label string `json:"label"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.fail(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decoding request"))
			return
		}
	}

	doc, err := s.drafts.Load(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, apperrors.New(apperrors.ErrCodeNotFound, "no draft to snapshot"))
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	label := body.Label
	if label == "" {
		label, err = store.NextLabel(r.Context(), s.versions)
		if err != nil {
			s.fail(w, err)
			return
		}
	}
	if err := apperrors.ValidateVersionLabel(label); err != nil {
		s.fail(w, err)
		return
	}

	v, err := s.versions.SaveVersion(r.Context(), label, doc)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := s.versions.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.fail(w, apperrors.New(apperrors.ErrCodeVersionNotFound, "version not found"))
		return
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
