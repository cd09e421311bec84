package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs a chi router with all API endpoints registered.
func NewRouter(ledger Ledger, accounts Accounts) http.Handler {
	h := NewHandler(ledger, accounts)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.ListUsersHandler)
		r.Post("/", h.RegisterHandler)
		r.Post("/login", h.LoginHandler)
	})

	r.Route("/user/{userId}", func(r chi.Router) {
		r.Get("/", h.GetUserHandler)
		r.Post("/logout", h.LogoutHandler)
		r.Get("/balance", h.GetBalanceHandler)
		r.Post("/credit", h.CreditHandler)
		r.Post("/debit", h.DebitHandler)
		r.Get("/history", h.HistoryHandler)
		r.Get("/audit", h.AuditHandler)
	})

	return r
}
