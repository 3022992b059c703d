package handler

import (
	"net/http"

	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// Dashboard returns the monthly snapshot and health grade
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.svc.Dashboard(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// Projection returns the day-by-day balance forecast.
// Query: days (defaults to the configured horizon), starting_balance (defaults to net worth).
func (h *Handler) Projection(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", h.cfg.DefaultHorizonDays)
	if err != nil {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}
	var start *decimal.Decimal
	if raw := r.URL.Query().Get("starting_balance"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "starting_balance must be a number")
			return
		}
		start = &v
	}

	forecast, err := h.svc.Forecast(r.Context(), days, start)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

// Upcoming lists expenses due within ?days= (defaults to the reminder window)
func (h *Handler) Upcoming(w http.ResponseWriter, r *http.Request) {
	days, err := queryInt(r, "days", h.cfg.ReminderDaysAhead)
	if err != nil {
		writeError(w, http.StatusBadRequest, "days must be an integer")
		return
	}
	bills, err := h.svc.UpcomingBills(r.Context(), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bills)
}

type linkItemRequest struct {
	ProviderItemID string `json:"provider_item_id"`
	Institution    string `json:"institution"`
	AccessToken    string `json:"access_token"`
}

// LinkItem handles storing a provider connection
func (h *Handler) LinkItem(w http.ResponseWriter, r *http.Request) {
	var req linkItemRequest
	if !decode(w, r, &req) {
		return
	}
	item, err := h.svc.LinkItem(r.Context(), req.ProviderItemID, req.Institution, req.AccessToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ListLinkedItems lists the caller's provider connections with masked tokens
func (h *Handler) ListLinkedItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListLinkedItems(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if items == nil {
		items = []models.LinkedItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

// UpdateLinkedBalance is called by the account sync job with a fresh provider balance
func (h *Handler) UpdateLinkedBalance(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Balance decimal.Decimal `json:"balance"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := h.svc.UpdateLinkedBalance(r.Context(), mux.Vars(r)["provider_account_id"], req.Balance); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
