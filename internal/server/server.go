// Package server provides the HTTP API for the gesture classification
// service.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/classify"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/store"
)

// Config holds the server configuration.
type Config struct {
	// Pipeline is the loaded classifier. Nil means the model artifacts
	// could not be loaded and the service runs degraded.
	Pipeline *classify.Pipeline

	// Detector produces hand landmarks from frames.
	Detector detector.Detector

	// Store records run history. Optional.
	Store *store.Store

	// StaticDir serves the browser frontend when non-empty.
	StaticDir string

	Log *logrus.Logger
}

// Server represents the HTTP server for the gesture service.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	if config.Log == nil {
		config.Log = logrus.New()
	}
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
	s.mux.HandleFunc("/api/classify", s.handleClassify)

	if s.config.Store != nil {
		s.mux.HandleFunc("/api/model", s.handleModel)
	}

	if s.config.Detector != nil {
		s.mux.Handle("/api/ws", NewStreamHandler(s.config.Pipeline, s.config.Detector, s.config.Log))
	}

	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface. All responses carry
// permissive CORS headers so the browser frontend can be served from
// elsewhere during development.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	status := "ok"
	if s.config.Pipeline == nil {
		status = "degraded"
	}

	response := map[string]interface{}{
		"status": status,
		"uptime": time.Since(s.start).String(),
	}
	if s.config.Pipeline != nil {
		response["classes"] = s.config.Pipeline.NumClasses()
	}

	writeJSON(w, http.StatusOK, response)
}

type modelResponse struct {
	ID        string  `json:"id"`
	Dataset   string  `json:"dataset"`
	Rows      int     `json:"rows"`
	Classes   int     `json:"classes"`
	Accuracy  float64 `json:"accuracy"`
	CreatedAt string  `json:"created_at"`
}

// handleModel handles GET requests to /api/model, reporting the most recent
// training run.
func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	run, err := s.config.Store.TrainingRuns().Latest()
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No training runs recorded")
			return
		}
		s.config.Log.WithError(err).Error("failed to load latest training run")
		writeError(w, http.StatusInternalServerError, "Failed to load training run")
		return
	}

	writeJSON(w, http.StatusOK, modelResponse{
		ID:        run.ID,
		Dataset:   run.DatasetPath,
		Rows:      run.Rows,
		Classes:   run.Classes,
		Accuracy:  run.Accuracy,
		CreatedAt: run.CreatedAt.Format(time.RFC3339),
	})
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
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
