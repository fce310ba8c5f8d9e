package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/charlespura/MySocialLink/internal/domain"
	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/logger"
	"github.com/charlespura/MySocialLink/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeOpError maps session and domain errors onto HTTP statuses.
func writeOpError(w http.ResponseWriter, d deps.Deps, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, session.ErrBusy):
		writeError(w, http.StatusConflict, "operation already in flight")
	case errors.Is(err, session.ErrLocked):
		writeError(w, http.StatusForbidden, "page is locked")
	case errors.Is(err, domain.ErrPageNotFound):
		writeError(w, http.StatusNotFound, "page not found")
	case errors.Is(err, domain.ErrRemoteUnavailable):
		writeError(w, http.StatusBadGateway, "remote store unavailable")
	default:
		d.Logger.Error("unhandled request error", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

// sessionFromRequest resolves the {sid} path token to a live session.
func sessionFromRequest(w http.ResponseWriter, r *http.Request, d deps.Deps) (*session.Controller, bool) {
	sid := chi.URLParam(r, "sid")
	c, err := d.Sessions.Get(sid)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown or expired session")
		return nil, false
	}
	return c, true
}
