// Package server exposes the scheduled-sync endpoint. An external
// scheduler (cron, cloud scheduler) POSTs here with a bearer credential
// and receives the batch summary as JSON.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/ermekov/taskfold/internal/sync"
)

// Runner is the part of the sync engine the endpoint needs
type Runner interface {
	Run(ctx context.Context) (sync.BatchResult, error)
}

// Server handles scheduled sync invocations
type Server struct {
	secret string
	engine Runner
	logger *log.Logger
}

// New creates a server. If logger is nil, a default logger writing to
// stderr is used.
func New(secret string, engine Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "[server] ", log.LstdFlags)
	}
	return &Server{secret: secret, engine: engine, logger: logger}
}

// Handler returns the route mux
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sync", s.handleSync)
	return mux
}

// ListenAndServe blocks serving the endpoint on addr
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	// Missing and invalid credentials are distinguished so operators
	// can tell a misconfigured scheduler from a bad secret.
	header := r.Header.Get("Authorization")
	if header == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization header"})
		return
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token != s.secret {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credential"})
		return
	}

	batch, err := s.engine.Run(r.Context())
	if err != nil {
		// Only the initial batch read can fail this way; per-identity
		// errors come back inside a 200 response.
		s.logger.Printf("batch failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, batch)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Response already committed; nothing to do but note it
		log.Printf("failed to encode response: %v", err)
	}
}
