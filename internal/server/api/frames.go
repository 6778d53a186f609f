package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/mudra/internal/session"
)

// FramesHandler handles HTTP requests for recorded frame resources.
type FramesHandler struct {
	store *session.Store
}

// NewFramesHandler creates a new FramesHandler with the given store.
func NewFramesHandler(s *session.Store) *FramesHandler {
	return &FramesHandler{store: s}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/sessions/{id}/frames
func (h *FramesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Parse session ID from path: /api/sessions/{id}/frames
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "frames" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	sessionID := parts[0]

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, sessionID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Response types

type frameResponse struct {
	Sequence   int             `json:"sequence"`
	CapturedAt string          `json:"captured_at"`
	Hands      json.RawMessage `json:"hands"`
	State      json.RawMessage `json:"state"`
}

type listFramesResponse struct {
	Frames []frameResponse `json:"frames"`
}

// list handles GET /api/sessions/{id}/frames
func (h *FramesHandler) list(w http.ResponseWriter, r *http.Request, sessionID string) {
	// Verify the session exists
	if _, err := h.store.Sessions().GetByID(sessionID); err != nil {
		if errors.Is(err, session.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to verify session")
		return
	}

	frames, err := h.store.Frames().GetBySessionID(sessionID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list frames")
		return
	}

	response := listFramesResponse{
		Frames: make([]frameResponse, 0, len(frames)),
	}

	for _, f := range frames {
		response.Frames = append(response.Frames, frameResponse{
			Sequence:   f.Sequence,
			CapturedAt: f.CapturedAt.Format("2006-01-02T15:04:05Z07:00"),
			Hands:      f.Hands,
			State:      f.State,
		})
	}

	writeJSON(w, http.StatusOK, response)
}
