package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/TechGear-Labs/concierge/internal/workflow"
)

// Runner executes the support workflow for one query.
type Runner interface {
	Run(ctx context.Context, query, sessionID string) workflow.State
}

type Server struct {
	router   *chi.Mux
	port     int
	workflow Runner
	logger   *slog.Logger
}

func NewServer(port int, wf Runner, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:   router,
		port:     port,
		workflow: wf,
		logger:   logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/concierge/status", s.status)
	router.Post("/chat", s.chat)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("API server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"agent":  "concierge",
		"status": "ready",
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
