package server

import (
	"context"
	"net/http"
	"time"

	"github.com/infsectest/ist-detector/pkg/logger"
)

// Server exposes the health-check endpoint.
type Server struct {
	server *http.Server
	logger *logger.Logger
}

func New(port string, logger *logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{server: httpServer, logger: logger}
}

func (s *Server) Start() error {
	s.logger.Infow("starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Infow("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
