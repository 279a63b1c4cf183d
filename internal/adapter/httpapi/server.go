// Package httpapi exposes the two search entry points over HTTP, plus
// health, readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/recall-search-service/internal/domain"
	"github.com/couchcryptid/recall-search-service/internal/search"
)

// QueryService runs the two search operations. Implemented by
// search.Service.
type QueryService interface {
	QueryByLocation(ctx context.Context, p search.LocationParams) (search.Result, error)
	QueryByDate(ctx context.Context, p search.DateParams) (search.Result, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the search API and operational endpoints.
type Server struct {
	httpServer *http.Server
	service    QueryService
	ready      ReadinessChecker
	logger     *slog.Logger
}

// NewServer creates the HTTP server. A nil ReadinessChecker makes /readyz
// always ready (serve mode has no warm-up phase).
func NewServer(addr string, service QueryService, ready ReadinessChecker, logger *slog.Logger) *Server {
	s := &Server{
		service: service,
		ready:   ready,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/recalls", func(r chi.Router) {
		r.Get("/location", s.handleLocationQuery)
		r.Get("/date", s.handleDateQuery)
	})

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
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

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLocationQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := parseLimit(w, q.Get("limit"))
	if !ok {
		return
	}

	result, err := s.service.QueryByLocation(r.Context(), search.LocationParams{
		City:                q.Get("city"),
		Country:             q.Get("country"),
		DistributionPattern: q.Get("distribution_pattern"),
		RecallingFirm:       q.Get("recalling_firm"),
		State:               q.Get("state"),
		Status:              q.Get("status"),
		Mode:                q.Get("mode"),
		Limit:               limit,
	})
	s.writeResult(w, result, err)
}

func (s *Server) handleDateQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := parseLimit(w, q.Get("limit"))
	if !ok {
		return
	}

	result, err := s.service.QueryByDate(r.Context(), search.DateParams{
		RecallInitiationDate:     q.Get("recall_initiation_date"),
		CenterClassificationDate: q.Get("center_classification_date"),
		ReportDate:               q.Get("report_date"),
		TerminationDate:          q.Get("termination_date"),
		ProductDescription:       q.Get("product_description"),
		RecallingFirm:            q.Get("recalling_firm"),
		Status:                   q.Get("status"),
		Mode:                     q.Get("mode"),
		Limit:                    limit,
	})
	s.writeResult(w, result, err)
}

// writeResult maps the error taxonomy onto HTTP statuses: validation
// failures are the client's fault, upstream API failures are a bad gateway.
func (s *Server) writeResult(w http.ResponseWriter, result search.Result, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, result)
		return
	}

	var transportErr *domain.TransportError
	switch {
	case errors.Is(err, domain.ErrInvalidJoinMode),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidDateInput),
		errors.Is(err, domain.ErrTooManyDateTerms):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.As(err, &transportErr):
		s.logger.Error("upstream API failure", "status", transportErr.StatusCode)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		s.logger.Error("query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func parseLimit(w http.ResponseWriter, raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be an integer"})
		return 0, false
	}
	return limit, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
