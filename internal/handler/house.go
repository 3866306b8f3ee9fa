package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

// HouseHandler serves the houses and their residents, exposed as /users.
type HouseHandler struct {
	houses *store.HouseStore
	broadcaster
	logger *slog.Logger
}

func NewHouseHandler(houses *store.HouseStore, hub *websocket.Hub, logger *slog.Logger) *HouseHandler {
	return &HouseHandler{houses: houses, broadcaster: broadcaster{hub}, logger: logger}
}

func (h *HouseHandler) List(w http.ResponseWriter, r *http.Request) {
	houses, err := h.houses.List(r.Context())
	if err != nil {
		h.logger.Error("list houses", "error", err)
		writeStoreError(w, err)
		return
	}
	h.logger.Debug("houses listed", "count", len(houses))
	writeJSON(w, http.StatusOK, houses)
}

func (h *HouseHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	id := r.PathValue("id")
	house, err := h.houses.Update(r.Context(), id, body)
	if err != nil {
		h.logger.Error("update house", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	if house == nil {
		h.logger.Warn("house not found or unchanged", "id", id)
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Casa no encontrada"})
		return
	}

	h.broadcast("house", "updated", house.ID)
	writeJSON(w, http.StatusOK, house)
}
