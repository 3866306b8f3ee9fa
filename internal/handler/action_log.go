package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
)

type ActionLogHandler struct {
	logs   *store.ActionLogStore
	logger *slog.Logger
}

func NewActionLogHandler(logs *store.ActionLogStore, logger *slog.Logger) *ActionLogHandler {
	return &ActionLogHandler{logs: logs, logger: logger}
}

// List returns log rows as stored, filtered by ?employeeId when given.
func (h *ActionLogHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.logs.List(r.Context(), r.URL.Query().Get("employeeId"))
	if err != nil {
		h.logger.Error("list action logs", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
