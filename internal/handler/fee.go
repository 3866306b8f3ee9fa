package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

// FeeHandler serves fee configurations, exposed as /products.
type FeeHandler struct {
	fees *store.FeeStore
	broadcaster
	logger *slog.Logger
}

func NewFeeHandler(fees *store.FeeStore, hub *websocket.Hub, logger *slog.Logger) *FeeHandler {
	return &FeeHandler{fees: fees, broadcaster: broadcaster{hub}, logger: logger}
}

func (h *FeeHandler) List(w http.ResponseWriter, r *http.Request) {
	fees, err := h.fees.List(r.Context())
	if err != nil {
		h.logger.Error("list fees", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fees)
}

func (h *FeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	fee, err := h.fees.Create(r.Context(), body)
	if err != nil {
		h.logger.Error("create fee", "error", err)
		writeStoreError(w, err)
		return
	}
	if fee != nil {
		h.broadcast("fee", "created", fee.ID)
	}
	writeJSON(w, http.StatusOK, fee)
}

func (h *FeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	id := r.PathValue("id")
	fee, err := h.fees.Update(r.Context(), id, body)
	if err != nil {
		h.logger.Error("update fee", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	if fee != nil {
		h.broadcast("fee", "updated", fee.ID)
	}
	writeJSON(w, http.StatusOK, fee)
}

func (h *FeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.fees.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete fee", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	h.broadcast("fee", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
