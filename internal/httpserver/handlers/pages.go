package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/charlespura/MySocialLink/internal/domain"
	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/logger"
)

// pageResponse is the public view of a published page. The password
// never leaves the store through this endpoint.
type pageResponse struct {
	Username  string        `json:"username"`
	Links     []domain.Link `json:"links"`
	Protected bool          `json:"protected"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`

	// Degraded marks a response served from the local link mirror
	// because the remote store was unreachable. Timestamps are zero and
	// the page is reported protected, since the mirror cannot tell.
	Degraded bool `json:"degraded,omitempty"`
}

type pageListResponse struct {
	Usernames []string `json:"usernames"`
}

// GetPage serves a published page read-only, without any session. When
// the remote store is down it falls back to the local link mirror; the
// mirror holds no passwords, so this can never bypass an unlock.
func GetPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := domain.NormalizeUsername(domain.ResolveAddress(chi.URLParam(r, "username")))
		if username == "" {
			writeError(w, http.StatusBadRequest, "invalid username")
			return
		}

		rec, err := d.Store.GetPage(r.Context(), username)
		if err != nil {
			if errors.Is(err, domain.ErrRemoteUnavailable) && d.Cache != nil {
				if links, ok := d.Cache.GetLinks(username); ok {
					d.Logger.Warn("serving page from local mirror",
						logger.String("username", username),
						logger.Error(err))
					writeJSON(w, http.StatusOK, pageResponse{
						Username:  username,
						Links:     links,
						Protected: true,
						Degraded:  true,
					})
					return
				}
			}
			writeOpError(w, d, err)
			return
		}

		writeJSON(w, http.StatusOK, pageResponse{
			Username:  rec.Username,
			Links:     rec.Links,
			Protected: rec.Protected(),
			CreatedAt: rec.CreatedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}
}

// ListPages serves the usernames of all published pages.
func ListPages(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		usernames, err := d.Store.AllUsernames(r.Context())
		if err != nil {
			writeOpError(w, d, err)
			return
		}
		if usernames == nil {
			usernames = []string{}
		}
		writeJSON(w, http.StatusOK, pageListResponse{Usernames: usernames})
	}
}
