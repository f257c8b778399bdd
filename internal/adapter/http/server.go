package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mars-weather-etl/internal/domain"
	"mars-weather-etl/internal/pipeline"
)

// ResultProvider exposes the pipeline's readiness and latest derived tables.
type ResultProvider interface {
	CheckReadiness(ctx context.Context) error
	Result() *pipeline.Result
}

// Server exposes health, readiness, metrics, and read-only JSON views of the
// cleaned dataset for rendering collaborators.
type Server struct {
	httpServer *http.Server
	provider   ResultProvider
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and the
// /api view routes.
func NewServer(addr string, provider ResultProvider, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		provider: provider,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(provider))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /api/observations", s.handleObservations)
	mux.HandleFunc("GET /api/seasons", s.handleSeasons)
	mux.HandleFunc("GET /api/opacity", s.handleOpacity)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(provider ResultProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := provider.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleObservations(w http.ResponseWriter, _ *http.Request) {
	result, ok := s.currentResult(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":        len(result.Observations),
		"dropped":      result.Dropped,
		"observations": result.Observations,
	})
}

func (s *Server) handleSeasons(w http.ResponseWriter, _ *http.Request) {
	result, ok := s.currentResult(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"seasons": result.Seasonal,
	})
}

// handleOpacity distinguishes "the source never had an opacity column" from
// "column present but no values": the former reports available=false with no
// counts, the latter available=true with an empty list.
func (s *Server) handleOpacity(w http.ResponseWriter, _ *http.Request) {
	result, ok := s.currentResult(w)
	if !ok {
		return
	}
	if !result.HasOpacity {
		writeJSON(w, http.StatusOK, map[string]any{"available": false})
		return
	}
	counts := result.Opacity
	if counts == nil {
		counts = []domain.OpacityCount{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"available": true,
		"counts":    counts,
	})
}

func (s *Server) currentResult(w http.ResponseWriter) (*pipeline.Result, bool) {
	result := s.provider.Result()
	if result == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "dataset not loaded yet",
		})
		return nil, false
	}
	return result, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
