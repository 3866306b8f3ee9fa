package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

type MeetingHandler struct {
	meetings *store.MeetingStore
	broadcaster
	logger *slog.Logger
}

func NewMeetingHandler(meetings *store.MeetingStore, hub *websocket.Hub, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{meetings: meetings, broadcaster: broadcaster{hub}, logger: logger}
}

func (h *MeetingHandler) List(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.meetings.List(r.Context())
	if err != nil {
		h.logger.Error("list meetings", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meetings)
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	meeting, err := h.meetings.Create(r.Context(), body)
	if err != nil {
		h.logger.Error("create meeting", "error", err)
		writeStoreError(w, err)
		return
	}
	if meeting != nil {
		h.broadcast("meeting", "created", meeting.ID)
	}
	writeJSON(w, http.StatusOK, meeting)
}

// Update answers 200 with null when no meeting has the id, unlike houses.
func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	id := r.PathValue("id")
	meeting, err := h.meetings.Update(r.Context(), id, body)
	if err != nil {
		h.logger.Error("update meeting", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	if meeting != nil {
		h.broadcast("meeting", "updated", meeting.ID)
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.meetings.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete meeting", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	h.broadcast("meeting", "deleted", id)
	w.WriteHeader(http.StatusNoContent)
}
