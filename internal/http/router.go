package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates the API router. Unsupported methods on known routes get
// a 405 from chi's method-not-allowed handling.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/enrollments", h.Enroll)
	r.Post("/v1/tenants", h.Provision)

	return r
}
