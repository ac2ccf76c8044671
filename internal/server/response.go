// ABOUTME: JSON response helpers for the API endpoints
// ABOUTME: All assistant endpoints answer with the success/error envelope
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Status is already on the wire; nothing to do but record it
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// errorEnvelope is the failure shape shared by all assistant endpoints
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeError writes a {success:false, error} envelope
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Error: message})
}
