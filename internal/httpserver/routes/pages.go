package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/httpserver/handlers"
)

func init() { Register(registerPages) }

func registerPages(r chi.Router, d deps.Deps) {
	r.Get("/api/pages", handlers.ListPages(d))
	r.Get("/api/pages/{username}", handlers.GetPage(d))
}
