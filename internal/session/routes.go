package session

import (
	"net/http"

	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the session endpoints under /sessions.
func RegisterRoutes(r chi.Router, store *Store) {
	h := NewHandler(store)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(sessionContext)
			r.Get("/", h.Get)
			r.Delete("/", h.Delete)
			r.Post("/keys", h.Press)
			r.Get("/ws", h.Stream)
		})
	})
}

// sessionContext tags the request context with the {id} URL parameter.
func sessionContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.ContextWithSessionID(r.Context(), chi.URLParam(r, "id"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
