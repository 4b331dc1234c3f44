// Package server exposes the published snapshot over HTTP and triggers
// regeneration on request or on a fixed interval.
package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"skisnap/internal/reports"
	"skisnap/internal/storage"
)

// ReportGenerator runs one generate-and-publish cycle
type ReportGenerator interface {
	GenerateCompleteReport(ctx context.Context) (*reports.GenerationResult, error)
}

// Server represents the main application server
type Server struct {
	Storage   storage.StorageClient
	Generator ReportGenerator

	// generateMutex allows one generation at a time
	generateMutex sync.Mutex

	mu         sync.RWMutex
	lastResult *reports.GenerationResult
	lastError  string
}

// NewServer creates a new server instance
func NewServer(store storage.StorageClient, generator ReportGenerator) *Server {
	return &Server{
		Storage:   store,
		Generator: generator,
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/generate", s.HandleGenerate).Methods(http.MethodPost)
	router.HandleFunc("/snapshot.json", s.HandleSnapshot).Methods(http.MethodGet)
	router.HandleFunc("/files", s.HandleListFiles).Methods(http.MethodGet)
	router.HandleFunc("/files/{name}", s.HandleFile).Methods(http.MethodGet)
	router.HandleFunc("/{name}", s.HandleFile).Methods(http.MethodGet)
	router.HandleFunc("/", s.HandleRoot).Methods(http.MethodGet)

	return router
}

// Generate runs one cycle unless another is in progress. The second return
// value reports whether the cycle ran.
func (s *Server) Generate(ctx context.Context) (*reports.GenerationResult, bool, error) {
	if !s.generateMutex.TryLock() {
		return nil, false, nil
	}
	defer s.generateMutex.Unlock()

	result, err := s.Generator.GenerateCompleteReport(ctx)

	s.mu.Lock()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastResult, s.lastError = result, ""
	}
	s.mu.Unlock()

	return result, true, err
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
