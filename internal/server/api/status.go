// Package api provides HTTP API handlers for the Mudra dashboard.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
)

// StatusHandler handles HTTP requests for the pipeline status snapshot.
type StatusHandler struct {
	app *app.App
}

// NewStatusHandler creates a new StatusHandler backed by the given app.
func NewStatusHandler(a *app.App) *StatusHandler {
	return &StatusHandler{app: a}
}

// ServeHTTP handles GET /api/status and returns the latest render snapshot.
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.app.Snapshot())
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
