package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

type ExpenseHandler struct {
	expenses *store.ExpenseStore
	broadcaster
	logger *slog.Logger
}

func NewExpenseHandler(expenses *store.ExpenseStore, hub *websocket.Hub, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, broadcaster: broadcaster{hub}, logger: logger}
}

func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.expenses.List(r.Context())
	if err != nil {
		h.logger.Error("list expenses", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	expense, err := h.expenses.Create(r.Context(), body)
	if err != nil {
		h.logger.Error("create expense", "error", err)
		writeStoreError(w, err)
		return
	}
	if expense != nil {
		h.broadcast("expense", "created", expense.ID)
	}
	writeJSON(w, http.StatusOK, expense)
}

func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.expenses.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete expense", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	h.broadcast("expense", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
