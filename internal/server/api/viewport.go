package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/control"
)

// ViewportHandler handles HTTP requests for the hologram viewport geometry.
// The dashboard PUTs new geometry when its canvas is resized.
type ViewportHandler struct {
	app *app.App
}

// NewViewportHandler creates a new ViewportHandler backed by the given app.
func NewViewportHandler(a *app.App) *ViewportHandler {
	return &ViewportHandler{app: a}
}

// ServeHTTP routes viewport requests.
func (h *ViewportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.app.Viewport())
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// update handles PUT /api/viewport and replaces the drag mapping geometry.
func (h *ViewportHandler) update(w http.ResponseWriter, r *http.Request) {
	var vp control.Viewport
	if err := json.NewDecoder(r.Body).Decode(&vp); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.app.SetViewport(vp); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.app.Viewport())
}
