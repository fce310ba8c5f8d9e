package handlers

import (
	"net/http"
	"time"

	"github.com/charlespura/MySocialLink/internal/catalog"
	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
)

type platformsResponse struct {
	Platforms  []catalog.Platform `json:"platforms"`
	LastReload time.Time          `json:"lastReload"`
}

// Platforms serves the current platform catalog in catalog order.
func Platforms(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, platformsResponse{
			Platforms:  d.Catalog.All(),
			LastReload: d.Catalog.LastReload(),
		})
	}
}
