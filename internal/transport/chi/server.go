package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/semsearch/internal/domain"
	"github.com/kailas-cloud/semsearch/internal/domain/search/request"
	"github.com/kailas-cloud/semsearch/internal/loader"
	healthuc "github.com/kailas-cloud/semsearch/internal/usecase/health"
)

// Error response codes.
const (
	CodeBadRequest           = "bad_request"
	CodeValidationFailed     = "validation_failed"
	CodeUnprocessable        = "unprocessable_entity"
	CodeInitializationFailed = "initialization_failed"
	CodeInternalError        = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SearchRequest is the POST /search body. Pointers distinguish an absent
// field (422) from a present-but-invalid value (400).
type SearchRequest struct {
	Query *string `json:"query"`
	TopK  *int    `json:"top_k"`
}

// SearchResultItem is one entry of the POST /search response array.
type SearchResultItem struct {
	ID          string  `json:"id"`
	TextSnippet string  `json:"text_snippet"`
	Score       float64 `json:"score"`
}

// HealthResponse is the GET /health and GET /ready body.
type HealthResponse struct {
	Status string                          `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks,omitempty"`
}

// HandleProvider yields the singleton service handle, initializing it on
// first use when eager startup is disabled.
type HandleProvider interface {
	Handle(ctx context.Context) (*loader.Handle, error)
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server exposes the search pipeline over HTTP.
type Server struct {
	provider      HandleProvider
	defaultTopK   int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(provider HandleProvider, defaultTopK int, logger *zap.Logger) *Server {
	s := &Server{
		provider:    provider,
		defaultTopK: defaultTopK,
		logger:      logger,
	}
	s.errorHandlers = []errorHandler{
		queryErrorHandler,
		sentinelHandler(domain.ErrInitialization,
			http.StatusInternalServerError, CodeInitializationFailed, domain.ErrInitialization.Error()),
	}
	return s
}

// Register mounts the API routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/ready", s.Ready)
	r.Post("/search", s.SearchDocuments)
	r.Get("/metrics", s.Metrics)
}

// HealthCheck handles GET /health. A static liveness probe: it answers ok
// regardless of whether the service handle has been initialized.
func (s *Server) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready handles GET /ready. Initializes the handle when needed and reports
// per-component readiness.
func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	handle, err := s.provider.Handle(r.Context())
	if err != nil {
		s.logger.Error("readiness: initialization failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "error"})
		return
	}

	report := handle.Health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status: string(report.Status),
		Checks: report.Checks,
	})
}

// SearchDocuments handles POST /search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, CodeUnprocessable, "Invalid request body: "+err.Error())
		return
	}

	if req.Query == nil {
		writeError(w, http.StatusUnprocessableEntity, CodeUnprocessable, "Field 'query' is required")
		return
	}
	if req.TopK != nil && *req.TopK <= 0 {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "top_k must be greater than zero")
		return
	}

	searchReq, err := request.New(*req.Query, derefInt(req.TopK), s.defaultTopK)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
		return
	}

	handle, err := s.provider.Handle(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results, err := handle.Search.Search(r.Context(), searchReq.Query(), searchReq.TopK())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = SearchResultItem{
			ID:          results[i].ID(),
			TextSnippet: results[i].TextSnippet(),
			Score:       results[i].Score(),
		}
	}

	writeJSON(w, http.StatusOK, items)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	for _, h := range s.errorHandlers {
		if h(w, err) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}

// queryErrorHandler maps domain.ErrQuery to 400, preserving the failure
// message so callers learn which constraint failed.
func queryErrorHandler(w http.ResponseWriter, err error) bool {
	if !errors.Is(err, domain.ErrQuery) {
		return false
	}
	writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
	return true
}

// sentinelHandler returns an errorHandler that matches a single sentinel
// error and responds with a fixed message, never leaking internals.
func sentinelHandler(sentinel error, status int, code, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
