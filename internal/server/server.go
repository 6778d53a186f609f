// Package server provides the HTTP dashboard server for the Mudra hologram.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/session"
)

// Config holds the server configuration. Nil fields disable the routes
// that depend on them.
type Config struct {
	StaticDir string
	App       *app.App
	Tuner     *config.Tuner
	Store     *session.Store
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register pipeline endpoints if App is configured
	if s.config.App != nil {
		s.mux.Handle("/api/status", api.NewStatusHandler(s.config.App))
		s.mux.Handle("/api/viewport", api.NewViewportHandler(s.config.App))
		s.mux.Handle("/ws/state", NewStateHandler(s.config.App))
		s.mux.Handle("/stream", NewStreamHandler(s.config.App))
	}

	// Register the tuning endpoint if Tuner is configured
	if s.config.Tuner != nil {
		s.mux.Handle("/api/tuning", api.NewTuningHandler(s.config.Tuner))
	}

	// Register session API handlers if Store is configured
	if s.config.Store != nil {
		sessionsHandler := api.NewSessionsHandler(s.config.Store)
		framesHandler := api.NewFramesHandler(s.config.Store)

		// Use a wrapper to route between sessions and frames handlers
		sessionRouter := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Check if this is a frames request: /api/sessions/{id}/frames
			if strings.HasSuffix(r.URL.Path, "/frames") {
				framesHandler.ServeHTTP(w, r)
				return
			}
			sessionsHandler.ServeHTTP(w, r)
		})

		s.mux.Handle("/api/sessions", sessionRouter)
		s.mux.Handle("/api/sessions/", sessionRouter)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}
	if s.config.App != nil {
		response["pipeline"] = string(s.config.App.Status())
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
