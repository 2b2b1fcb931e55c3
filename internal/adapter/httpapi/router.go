package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// NewRouter wires the HTTP surface: health probe, auth, and the three
// endpoints consumed by the presentation layer. The redis client is optional;
// without it the idempotency middleware is not installed.
func NewRouter(server *Server, tokens map[string]uuid.UUID, rdb *redis.Client) *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Use(Authenticator(tokens))

		r.Get("/accounts", server.ListAccounts)
		r.Get("/transactions", server.ListTransactions)

		r.Group(func(r chi.Router) {
			if rdb != nil {
				r.Use(Idempotency(rdb))
			}
			r.Post("/transfers", server.CreateTransfer)
		})
	})

	return r
}
