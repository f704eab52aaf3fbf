package handlers

import (
	"github.com/go-chi/chi"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", h.HealthHandler)
		r.Get("/live", h.LiveHandler)
		r.Get("/stats", h.StatsHandler)
		r.Get("/audit", h.AuditHandler)

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", h.ListCardsHandler)
			r.Post("/", h.CreateCardHandler)
			r.Get("/search", h.SearchCardsHandler)
			r.Get("/search-name", h.SearchCardsByNameHandler)
			r.Get("/by-name/{name}", h.ResolveCardHandler)
			r.Get("/issuer/{issuer}", h.CardsByIssuerHandler)
			r.Get("/tag/{tag}", h.CardsByTagHandler)
			r.Get("/{id}", h.GetCardHandler)
			r.Put("/{id}", h.UpdateCardHandler)
			r.Delete("/{id}", h.DeleteCardHandler)
		})
	})
}
