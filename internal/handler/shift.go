package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

type ShiftHandler struct {
	shifts *store.ShiftStore
	broadcaster
	logger *slog.Logger
}

func NewShiftHandler(shifts *store.ShiftStore, hub *websocket.Hub, logger *slog.Logger) *ShiftHandler {
	return &ShiftHandler{shifts: shifts, broadcaster: broadcaster{hub}, logger: logger}
}

// Get returns the assignments of the period named by ?startDate, or {} when
// there is none.
func (h *ShiftHandler) Get(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.shifts.Assignments(r.Context(), r.URL.Query().Get("startDate"))
	if err != nil {
		h.logger.Error("get shift schedule", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assignments)
}

func (h *ShiftHandler) Save(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	startDate := str(body["startDate"])
	if err := h.shifts.Save(r.Context(), startDate, body["assignments"]); err != nil {
		h.logger.Error("save shift schedule", "start_date", startDate, "error", err)
		writeStoreError(w, err)
		return
	}

	h.broadcast("shift_schedule", "saved", startDate)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
