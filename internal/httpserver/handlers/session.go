package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/session"
)

type createSessionRequest struct {
	// Address is the page fragment to open, e.g. "#bob". Empty starts a
	// fresh draft.
	Address string `json:"address"`
}

type createSessionResponse struct {
	Token string        `json:"token"`
	State session.State `json:"state"`
}

// CreateSession mints a session token and points it at the requested
// page address.
func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if r.ContentLength != 0 {
			if !decodeBody(w, r, &req) {
				return
			}
		}

		token, c := d.Sessions.Create()
		st := c.SetAddress(r.Context(), req.Address)
		writeJSON(w, http.StatusCreated, createSessionResponse{Token: token, State: st})
	}
}

// GetSession returns the current session snapshot.
func GetSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, c.State())
	}
}

type addressRequest struct {
	Address string `json:"address"`
}

// SetSessionAddress navigates the session to another page address.
func SetSessionAddress(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		var req addressRequest
		if !decodeBody(w, r, &req) {
			return
		}
		writeJSON(w, http.StatusOK, c.SetAddress(r.Context(), req.Address))
	}
}

// RequestEdit moves the session toward authoring; a protected page
// answers with the password prompt instead of editing.
func RequestEdit(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		c.RequestEdit()
		writeJSON(w, http.StatusOK, c.State())
	}
}

type unlockRequest struct {
	Password string `json:"password"`
}

type unlockResponse struct {
	Unlocked bool          `json:"unlocked"`
	State    session.State `json:"state"`
}

// Unlock verifies the attempted password. Wrong attempts are not an
// HTTP error: the session stays in the prompt with a notice, and there
// is no attempt limit.
func Unlock(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		var req unlockRequest
		if !decodeBody(w, r, &req) {
			return
		}
		unlocked := c.Unlock(r.Context(), req.Password)
		writeJSON(w, http.StatusOK, unlockResponse{Unlocked: unlocked, State: c.State()})
	}
}

// CancelUnlock dismisses the password prompt.
func CancelUnlock(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		c.CancelUnlock()
		writeJSON(w, http.StatusOK, c.State())
	}
}

type saveRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Save publishes the draft under the requested username.
func Save(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		var req saveRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if err := c.Save(r.Context(), req.Username, req.Password); err != nil {
			writeOpError(w, d, err)
			return
		}
		writeJSON(w, http.StatusOK, c.State())
	}
}

type addLinkRequest struct {
	Platform string `json:"platform"`
}

// AddLink appends a new draft link for a cataloged platform.
func AddLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		var req addLinkRequest
		if !decodeBody(w, r, &req) {
			return
		}
		if _, err := c.AddLink(req.Platform); err != nil {
			writeOpError(w, d, err)
			return
		}
		writeJSON(w, http.StatusCreated, c.State())
	}
}

type updateLinkRequest struct {
	URL        *string `json:"url,omitempty"`
	Platform   *string `json:"platform,omitempty"`
	ToggleEdit bool    `json:"toggleEdit,omitempty"`
}

// UpdateLink mutates a draft link. Updates against an absent ID are a
// no-op, not an error.
func UpdateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		var req updateLinkRequest
		if !decodeBody(w, r, &req) {
			return
		}

		id := chi.URLParam(r, "id")
		if req.URL != nil {
			c.UpdateLink(id, *req.URL)
		}
		if req.Platform != nil {
			c.SetLinkPlatform(id, *req.Platform)
		}
		if req.ToggleEdit {
			c.ToggleEdit(id)
		}
		writeJSON(w, http.StatusOK, c.State())
	}
}

// DeleteLink removes a draft link. Absent IDs are a no-op.
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		c.DeleteLink(chi.URLParam(r, "id"))
		writeJSON(w, http.StatusOK, c.State())
	}
}

type copyResponse struct {
	Copied bool          `json:"copied"`
	URL    string        `json:"url,omitempty"`
	State  session.State `json:"state"`
}

// CopyAddress copies the shareable URL. It always acknowledges;
// clipboard failures are invisible here.
func CopyAddress(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		url := c.CopyAddress()
		writeJSON(w, http.StatusOK, copyResponse{Copied: url != "", URL: url, State: c.State()})
	}
}

type themeRequest struct {
	DarkMode bool `json:"darkMode"`
}

// Theme flips the dark mode preference.
func Theme(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := sessionFromRequest(w, r, d)
		if !ok {
			return
		}
		var req themeRequest
		if !decodeBody(w, r, &req) {
			return
		}
		c.SetDarkMode(req.DarkMode)
		writeJSON(w, http.StatusOK, c.State())
	}
}
