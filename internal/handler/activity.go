package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

// ActivityHandler serves one kind of employee absence: vacations or
// medical leaves.
type ActivityHandler struct {
	activities *store.ActivityStore
	entity     string
	broadcaster
	logger *slog.Logger
}

// NewActivityHandler serves activities; entity names them in change notices.
func NewActivityHandler(activities *store.ActivityStore, entity string, hub *websocket.Hub, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, entity: entity, broadcaster: broadcaster{hub}, logger: logger}
}

func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	activities, err := h.activities.List(r.Context())
	if err != nil {
		h.logger.Error("list activities", "entity", h.entity, "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	activity, err := h.activities.Create(r.Context(), body)
	if err != nil {
		h.logger.Error("create activity", "entity", h.entity, "error", err)
		writeStoreError(w, err)
		return
	}
	if activity != nil {
		h.broadcast(h.entity, "created", activity.ID)
	}
	writeJSON(w, http.StatusOK, activity)
}

func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.activities.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete activity", "entity", h.entity, "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	h.broadcast(h.entity, "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
