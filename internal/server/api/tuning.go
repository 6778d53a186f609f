package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/config"
)

// TuningHandler handles HTTP requests for live tuning parameters.
type TuningHandler struct {
	tuner *config.Tuner
}

// NewTuningHandler creates a new TuningHandler with the given tuner.
func NewTuningHandler(t *config.Tuner) *TuningHandler {
	return &TuningHandler{tuner: t}
}

// ServeHTTP routes tuning requests.
func (h *TuningHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.tuner.Current())
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// update handles PUT /api/tuning.
func (h *TuningHandler) update(w http.ResponseWriter, r *http.Request) {
	// Decode over the current values so a partial body adjusts one knob
	// without resetting the rest
	next := h.tuner.Current()
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.tuner.Update(next); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.tuner.Current())
}
