package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Logger is the minimal logging surface the metrics server needs.
type Logger interface {
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// Server exports Prometheus metrics on its own port, away from the API.
type Server struct {
	port   int
	logger Logger
	srv    *http.Server
}

// NewServer creates a metrics server.
func NewServer(port int, logger Logger) *Server {
	return &Server{port: port, logger: logger}
}

// Start serves /metrics in the background.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: mux,
	}

	go func() {
		s.logger.Infof("metrics server listening on :%d", s.port)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Errorf("metrics server failed: %v", err)
		}
	}()
}

// Stop gracefully stops the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	s.logger.Infof("stopping metrics server")
	return s.srv.Shutdown(ctx)
}
