package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/httpserver/handlers"
)

func init() { Register(registerPlatforms) }

func registerPlatforms(r chi.Router, d deps.Deps) {
	r.Get("/api/platforms", handlers.Platforms(d))
}
