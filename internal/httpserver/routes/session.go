package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/charlespura/MySocialLink/internal/httpserver/deps"
	"github.com/charlespura/MySocialLink/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.Route("/api/session", func(r chi.Router) {
		r.Post("/", handlers.CreateSession(d))
		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", handlers.GetSession(d))
			r.Post("/address", handlers.SetSessionAddress(d))
			r.Post("/edit", handlers.RequestEdit(d))
			r.Post("/unlock", handlers.Unlock(d))
			r.Delete("/unlock", handlers.CancelUnlock(d))
			r.Post("/save", handlers.Save(d))
			r.Post("/copy", handlers.CopyAddress(d))
			r.Post("/theme", handlers.Theme(d))
			r.Post("/links", handlers.AddLink(d))
			r.Patch("/links/{id}", handlers.UpdateLink(d))
			r.Delete("/links/{id}", handlers.DeleteLink(d))
		})
	})
}
