package handler

import (
	"log/slog"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/store"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

type EmployeeHandler struct {
	employees *store.EmployeeStore
	broadcaster
	logger *slog.Logger
}

func NewEmployeeHandler(employees *store.EmployeeStore, hub *websocket.Hub, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{employees: employees, broadcaster: broadcaster{hub}, logger: logger}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.List(r.Context())
	if err != nil {
		h.logger.Error("list employees", "error", err)
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	employee, err := h.employees.Create(r.Context(), body)
	if err != nil {
		h.logger.Error("create employee", "error", err)
		writeStoreError(w, err)
		return
	}
	if employee != nil {
		h.broadcast("employee", "created", employee.ID)
	}
	writeJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	id := r.PathValue("id")
	employee, err := h.employees.Update(r.Context(), id, body)
	if err != nil {
		h.logger.Error("update employee", "id", id, "error", err)
		writeStoreError(w, err)
		return
	}
	if employee != nil {
		h.broadcast("employee", "updated", employee.ID)
	}
	writeJSON(w, http.StatusOK, employee)
}
