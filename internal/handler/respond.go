package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/condomaster/condomaster-api/internal/gateway"
	"github.com/condomaster/condomaster-api/internal/websocket"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStoreError reports a failed store call as 500 with the store's own
// message.
func writeStoreError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": storeMessage(err)})
}

func storeMessage(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) {
		return gwErr.Error()
	}
	if errors.Is(err, gateway.ErrNotConfigured) {
		return gateway.ErrNotConfigured.Error()
	}
	if errors.Is(err, gateway.ErrMultipleRows) {
		return gateway.ErrMultipleRows.Error()
	}
	return err.Error()
}

// writeBodyError answers a request whose body could not be read as JSON.
func writeBodyError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":  "Error interno del servidor",
		"detail": err.Error(),
	})
}

// decodeBody reads a JSON object body. An empty body is an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var body map[string]any
	err := json.NewDecoder(r.Body).Decode(&body)
	switch {
	case errors.Is(err, io.EOF):
		return map[string]any{}, nil
	case err != nil:
		return nil, err
	case body == nil:
		return map[string]any{}, nil
	}
	return body, nil
}

// broadcaster publishes change notices when a hub is attached.
type broadcaster struct {
	hub *websocket.Hub
}

func (b broadcaster) broadcast(entity, action string, id any) {
	if b.hub != nil {
		b.hub.Broadcast(websocket.NewMessage(entity, action, id))
	}
}

// str renders a loosely typed body value as text; nil is "".
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// truthy follows JSON-ish truthiness: nil, false, 0 and "" are false.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	default:
		return true
	}
}
