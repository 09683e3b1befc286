// Package httpapi serves the generated report and dataset queries over
// HTTP for dashboard frontends.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/echolens-labs/echolens-cli/internal/core/domain"
	"github.com/echolens-labs/echolens-cli/internal/core/ports/driving"
	"github.com/echolens-labs/echolens-cli/internal/logger"
)

// ErrMissingReportService is returned when no report service is provided.
var ErrMissingReportService = errors.New("httpapi: report service is required")

// Server exposes the report artifact and dataset endpoints.
type Server struct {
	report     driving.ReportService
	dataset    driving.DatasetService
	reportPath string
}

// NewServer creates a report server. The dataset service is optional;
// without it the counts and search endpoints report an error.
func NewServer(report driving.ReportService, dataset driving.DatasetService, reportPath string) (*Server, error) {
	if report == nil {
		return nil, ErrMissingReportService
	}
	return &Server{
		report:     report,
		dataset:    dataset,
		reportPath: reportPath,
	}, nil
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /report_with_sources.json", s.handleReport)
	mux.HandleFunc("GET /api/source_counts", s.handleCounts)
	mux.HandleFunc("POST /api/nl_sql_search", s.handleSearch)
	return withCORS(mux)
}

// Run serves until the context is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("Serving report on http://%s", addr)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// handleReport serves the report artifact file as-is. The artifact on
// disk is the source of truth, not an in-memory copy, so a regeneration
// by the watcher or another process is picked up immediately.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if _, err := os.Stat(s.reportPath); os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, "report not generated yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, s.reportPath)
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	if s.dataset == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset service not configured")
		return
	}

	counts, err := s.dataset.Counts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

type searchRequest struct {
	Prompt string `json:"nl_prompt"`
}

type searchResponse struct {
	Results []domain.EnrichedCitation `json:"results"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.dataset == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset service not configured")
		return
	}

	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	results, err := s.dataset.SemanticSearch(r.Context(), req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "No prompt")
		case errors.Is(err, domain.ErrLLMUnavailable):
			writeError(w, http.StatusServiceUnavailable, "LLM not configured")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if results == nil {
		results = []domain.EnrichedCitation{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Results: results})
}

// withCORS allows any origin. The server binds to loopback by default;
// the dashboard is served from file:// or another local port.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
