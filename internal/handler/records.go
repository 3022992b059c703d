package handler

import (
	"net/http"

	"github.com/Dan9191/cashflow-service/internal/models"
)

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	account := models.Account{Active: true}
	if !decode(w, r, &account) {
		return
	}
	created, err := h.svc.CreateAccount(r.Context(), &account)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListAccounts lists the caller's accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// UpdateAccount handles account updates
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	account := models.Account{Active: true}
	if !decode(w, r, &account) {
		return
	}
	account.ID = id
	updated, err := h.svc.UpdateAccount(r.Context(), &account)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteAccount handles account removal
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteAccount(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateIncome handles recurring income creation
func (h *Handler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	var income models.Income
	if !decode(w, r, &income) {
		return
	}
	created, err := h.svc.CreateIncome(r.Context(), &income)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListIncomes lists the caller's recurring incomes
func (h *Handler) ListIncomes(w http.ResponseWriter, r *http.Request) {
	incomes, err := h.svc.ListIncomes(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, incomes)
}

// UpdateIncome handles recurring income updates
func (h *Handler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var income models.Income
	if !decode(w, r, &income) {
		return
	}
	income.ID = id
	updated, err := h.svc.UpdateIncome(r.Context(), &income)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteIncome handles recurring income removal
func (h *Handler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteIncome(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateExpense handles recurring expense creation
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var expense models.Expense
	if !decode(w, r, &expense) {
		return
	}
	created, err := h.svc.CreateExpense(r.Context(), &expense)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListExpenses lists the caller's recurring expenses
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// UpdateExpense handles recurring expense updates
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var expense models.Expense
	if !decode(w, r, &expense) {
		return
	}
	expense.ID = id
	updated, err := h.svc.UpdateExpense(r.Context(), &expense)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteExpense handles recurring expense removal
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
