package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/condomaster/condomaster-api/internal/metrics"
	"github.com/condomaster/condomaster-api/internal/store"
)

type AuthHandler struct {
	users  *store.UserStore
	logger *slog.Logger
}

func NewAuthHandler(users *store.UserStore, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// Login checks email and password and returns the user's profile. The
// password is never logged.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(w, r)
	if err != nil {
		writeBodyError(w, err)
		return
	}

	email, _ := body["email"].(string)
	password, _ := body["password"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	password = strings.TrimSpace(password)

	user, err := h.users.Authenticate(r.Context(), email, password)
	if err != nil {
		metrics.RecordLogin("error")
		h.logger.Error("login lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error de conexión con la base de datos"})
		return
	}
	if user == nil {
		metrics.RecordLogin("invalid")
		h.logger.Warn("login rejected", "email", email)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales inválidas"})
		return
	}

	metrics.RecordLogin("ok")
	h.logger.Info("login succeeded", "email", email, "role", user["role"])
	writeJSON(w, http.StatusOK, user)
}
