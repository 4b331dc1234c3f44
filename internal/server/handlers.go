package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"skisnap/internal/config"
	"skisnap/internal/logger"
	"skisnap/internal/reports"
	"skisnap/internal/storage"
)

const initialPage = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Ski Conditions</title></head>
<body><h1>Ski Conditions</h1><p>No snapshot has been published yet. POST /generate to create one.</p></body></html>`

// HandleRoot serves the latest published page
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	data, err := s.Storage.GetFile(r.Context(), reports.IndexFile)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to load published page", map[string]interface{}{"error": err.Error()})
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(initialPage))
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(reports.IndexFile))
	w.Header().Set("Cache-Control", storage.CacheControl)
	_, _ = w.Write(data)
}

// HandleSnapshot serves the snapshot data
func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, reports.SnapshotFile)
}

// HandleFile serves one published file by name
func (s *Server) HandleFile(w http.ResponseWriter, r *http.Request) {
	s.serveFile(w, r, mux.Vars(r)["name"])
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	if err := storage.ValidateName(name); err != nil {
		http.Error(w, "Invalid file name", http.StatusBadRequest)
		return
	}

	data, err := s.Storage.GetFile(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		logger.Error("Failed to get file from storage", err, map[string]interface{}{"file": name})
		http.Error(w, "Failed to read file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(name))
	w.Header().Set("Cache-Control", storage.CacheControl)
	_, _ = w.Write(data)
}

// HandleListFiles lists the published files
func (s *Server) HandleListFiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.Storage.ListFiles(r.Context())
	if err != nil {
		logger.Error("Failed to list files", err)
		http.Error(w, "Failed to list files: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if names == nil {
		names = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"files": names,
		"count": len(names),
	})
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"version":   config.GetVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	s.mu.RLock()
	if s.lastResult != nil {
		health["last_snapshot"] = s.lastResult.SnapshotID
		health["last_generated_at"] = s.lastResult.GeneratedAt.Format(time.RFC3339)
	}
	if s.lastError != "" {
		health["last_error"] = s.lastError
	}
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, health)
}

// HandleGenerate runs one generate-and-publish cycle
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	result, ran, err := s.Generate(r.Context())
	if !ran {
		logger.Warn("Snapshot generation already in progress, rejecting request")
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":  "Snapshot generation already in progress",
			"status": "conflict",
		})
		return
	}
	if err != nil {
		logger.Error("Snapshot generation failed", err)
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"error":  err.Error(),
			"status": "failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("Failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}
