package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/email"
	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

type PaymentHandler struct {
	payments *store.PaymentStore
	notifier *email.Notifier
	broadcaster
	logger *slog.Logger
}

func NewPaymentHandler(payments *store.PaymentStore, notifier *email.Notifier, hub *websocket.Hub, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{payments: payments, notifier: notifier, broadcaster: broadcaster{hub}, logger: logger}
}

func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.List(r.Context())
	if err != nil {
		h.logger.Error("list payments", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

// Create stores a payment. When the body asks for it, a receipt is mailed
// in the background; the response never waits for it.
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	shouldSend := truthy(body["shouldSendEmail"])
	targetEmail := str(body["targetEmail"])
	houseNumber := ""
	if truthy(body["houseNumber"]) {
		houseNumber = str(body["houseNumber"])
	}
	delete(body, "shouldSendEmail")
	delete(body, "targetEmail")
	delete(body, "houseNumber")

	payment, err := h.payments.Create(r.Context(), body)
	if err != nil {
		h.logger.Error("create payment", "error", err)
		writeStoreError(w, err)
		return
	}

	if payment != nil {
		h.broadcast("payment", "created", payment.ID)
		if shouldSend && targetEmail != "" && h.notifier.Enabled() {
			h.notifier.SendReceipt(targetEmail, email.Receipt{Payment: *payment, HouseNumber: houseNumber})
		}
	}
	writeJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.payments.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete payment", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	h.broadcast("payment", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
