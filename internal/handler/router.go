package handler

import (
	"net/http"

	"github.com/Dan9191/cashflow-service/internal/middleware"
	"github.com/gorilla/mux"
)

// NewRouter registers the public and protected routes
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(h.log), middleware.Recovery(h.log))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/waitlist", h.JoinWaitlist).Methods(http.MethodPost)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Protected routes
	auth := r.PathPrefix("/").Subrouter()
	auth.Use(middleware.AuthMiddleware(h.cfg))

	auth.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	auth.HandleFunc("/accounts", h.CreateAccount).Methods(http.MethodPost)
	auth.HandleFunc("/accounts/{id}", h.UpdateAccount).Methods(http.MethodPut)
	auth.HandleFunc("/accounts/{id}", h.DeleteAccount).Methods(http.MethodDelete)

	auth.HandleFunc("/incomes", h.ListIncomes).Methods(http.MethodGet)
	auth.HandleFunc("/incomes", h.CreateIncome).Methods(http.MethodPost)
	auth.HandleFunc("/incomes/{id}", h.UpdateIncome).Methods(http.MethodPut)
	auth.HandleFunc("/incomes/{id}", h.DeleteIncome).Methods(http.MethodDelete)

	auth.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	auth.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	auth.HandleFunc("/expenses/{id}", h.UpdateExpense).Methods(http.MethodPut)
	auth.HandleFunc("/expenses/{id}", h.DeleteExpense).Methods(http.MethodDelete)

	auth.HandleFunc("/dashboard", h.Dashboard).Methods(http.MethodGet)
	auth.HandleFunc("/projection", h.Projection).Methods(http.MethodGet)
	auth.HandleFunc("/upcoming", h.Upcoming).Methods(http.MethodGet)

	auth.HandleFunc("/linked-items", h.ListLinkedItems).Methods(http.MethodGet)
	auth.HandleFunc("/linked-items", h.LinkItem).Methods(http.MethodPost)
	auth.HandleFunc("/linked-accounts/{provider_account_id}/balance", h.UpdateLinkedBalance).Methods(http.MethodPut)

	return r
}
