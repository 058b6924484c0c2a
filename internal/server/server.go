// Package server exposes the conversation orchestrator over a small JSON API,
// one resource per screening session.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/interview"
)

// Handler wires the session store and the orchestrator to HTTP routes.
type Handler struct {
	store        *Store
	orchestrator *interview.Orchestrator
	logger       *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(store *Store, orchestrator *interview.Orchestrator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{store: store, orchestrator: orchestrator, logger: log}
}

// Router builds the chi router for the session API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getSession)
			r.Delete("/", h.deleteSession)
			r.Post("/turns", h.postTurn)
		})
	})

	return r
}

type turnRequest struct {
	Text string `json:"text"`
}

type turnResponse struct {
	Reply   string                 `json:"reply"`
	Display interview.DisplayState `json:"display"`
}

func (h *Handler) createSession(w http.ResponseWriter, _ *http.Request) {
	session := h.store.Create()
	h.logger.Info("session created", zap.String("session_id", session.ID))
	writeJSON(w, http.StatusCreated, session.Display())
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	var display interview.DisplayState
	err := h.store.WithSession(chi.URLParam(r, "sessionID"), func(session *interview.Session) {
		display = session.Display()
	})
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, display)
}

func (h *Handler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if err := h.store.Delete(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	h.logger.Info("session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) postTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	var resp turnResponse
	err := h.store.WithSession(chi.URLParam(r, "sessionID"), func(session *interview.Session) {
		resp.Reply, resp.Display = h.orchestrator.HandleTurn(r.Context(), session, req.Text)
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
