// Package chi is the HTTP API surface: search, suggest, analytics,
// catalog categories, and health endpoints on a chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/domain/search/query"
	"github.com/casefind/casefind/internal/domain/search/result"
	"github.com/casefind/casefind/internal/repository/catalog"
	analyticsuc "github.com/casefind/casefind/internal/usecase/analytics"
	healthuc "github.com/casefind/casefind/internal/usecase/health"
	searchuc "github.com/casefind/casefind/internal/usecase/search"
	suggestuc "github.com/casefind/casefind/internal/usecase/suggest"
)

// errorCode names a machine-readable error class in API responses.
type errorCode string

const (
	codeBadRequest         errorCode = "bad_request"
	codeValidationFailed   errorCode = "validation_failed"
	codeUnauthorized       errorCode = "unauthorized"
	codeNotFound           errorCode = "not_found"
	codeCatalogUnavailable errorCode = "catalog_unavailable"
	codeInternalError      errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server bundles the HTTP handlers over the search services.
type Server struct {
	search        *searchuc.Service
	suggest       *suggestuc.Service
	analytics     *analyticsuc.Recorder
	catalog       catalog.Provider
	health        *healthuc.Service
	topQueries    int
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	suggest *suggestuc.Service,
	analytics *analyticsuc.Recorder,
	catalogProvider catalog.Provider,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		suggest:    suggest,
		analytics:  analytics,
		catalog:    catalogProvider,
		health:     health,
		topQueries: 10,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrEmptyInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, codeCatalogUnavailable),
		sentinelHandler(domain.ErrScenarioNotFound, http.StatusNotFound, codeNotFound),
	}
	return s
}

// RegisterRoutes mounts every API route on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/v1/search", s.Search)
	r.Get("/v1/suggest", s.Suggest)
	r.Get("/v1/analytics", s.Analytics)
	r.Get("/v1/scenarios/categories", s.Categories)
	r.Get("/healthz", s.Liveness)
	r.Get("/readyz", s.Readiness)
	r.Get("/metrics", s.Metrics)
}

// searchRequest is the POST /v1/search body.
type searchRequest struct {
	Text          string   `json:"text"`
	Categories    []string `json:"categories,omitempty"`
	Severities    []string `json:"severities,omitempty"`
	Urgent        bool     `json:"urgent,omitempty"`
	ValidatedOnly bool     `json:"validated_only,omitempty"`
	Page          int      `json:"page,omitempty"`
	PageSize      int      `json:"page_size,omitempty"`
	Highlight     bool     `json:"highlight,omitempty"`
}

type scenarioDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Keywords    []string `json:"keywords,omitempty"`
	Validated   bool     `json:"validated"`
}

type searchResultDTO struct {
	Scenario      scenarioDTO           `json:"scenario"`
	Score         float64               `json:"score"`
	MatchType     string                `json:"match_type"`
	MatchedFields []result.MatchedField `json:"matched_fields,omitempty"`
	Highlights    []result.Highlight    `json:"highlights,omitempty"`
}

type searchResponseDTO struct {
	Query         string             `json:"query"`
	Results       []searchResultDTO  `json:"results"`
	TotalMatches  int                `json:"total_matches"`
	ElapsedMs     int64              `json:"elapsed_ms"`
	AlgorithmUsed string             `json:"algorithm_used"`
	Filters       result.FiltersEcho `json:"filters"`
}

// Search handles POST /v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	severities, err := parseSeverities(req.Severities)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	resp, err := s.search.Search(r.Context(), searchuc.Params{
		Text: req.Text,
		Filters: query.Filters{
			Categories:    req.Categories,
			Severities:    severities,
			Urgent:        req.Urgent,
			ValidatedOnly: req.ValidatedOnly,
		},
		Page:      req.Page,
		PageSize:  req.PageSize,
		Highlight: req.Highlight,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, searchResponseToDTO(resp))
}

// Suggest handles GET /v1/suggest. It always answers 200; short
// inputs just produce an empty list.
func (s *Server) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
			return
		}
		limit = n
	}

	var sources []suggestuc.Source
	if raw := q.Get("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			sources = append(sources, suggestuc.Source(strings.TrimSpace(t)))
		}
	}

	resp := s.suggest.Suggest(r.Context(), q.Get("q"), limit, sources)
	writeJSON(w, http.StatusOK, resp)
}

// Analytics handles GET /v1/analytics.
func (s *Server) Analytics(w http.ResponseWriter, r *http.Request) {
	topN := s.topQueries
	if raw := r.URL.Query().Get("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			topN = n
		}
	}
	writeJSON(w, http.StatusOK, s.analytics.Snapshot(topN))
}

// Categories handles GET /v1/scenarios/categories.
func (s *Server) Categories(w http.ResponseWriter, r *http.Request) {
	scenarios, err := s.catalog.All(r.Context())
	if err != nil {
		s.handleDomainError(w, domain.ErrCatalogUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{
		"categories": catalog.Categories(scenarios),
	})
}

// Liveness handles GET /healthz.
func (s *Server) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness handles GET /readyz.
func (s *Server) Readiness(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func parseSeverities(raw []string) ([]domain.Severity, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]domain.Severity, 0, len(raw))
	for _, s := range raw {
		sev, err := domain.ParseSeverity(s)
		if err != nil {
			return nil, err
		}
		out = append(out, sev)
	}
	return out, nil
}

func searchResponseToDTO(resp result.Response) searchResponseDTO {
	items := make([]searchResultDTO, len(resp.Results))
	for i := range resp.Results {
		items[i] = searchResultToDTO(&resp.Results[i])
	}
	return searchResponseDTO{
		Query:         resp.Query,
		Results:       items,
		TotalMatches:  resp.TotalMatches,
		ElapsedMs:     resp.ElapsedMs,
		AlgorithmUsed: string(resp.AlgorithmUsed),
		Filters:       resp.Filters,
	}
}

func searchResultToDTO(r *result.Result) searchResultDTO {
	sc := r.Scenario()
	return searchResultDTO{
		Scenario: scenarioDTO{
			ID:          sc.ID,
			Title:       sc.Title,
			Description: sc.Description,
			Category:    sc.Category,
			Severity:    sc.Severity.String(),
			Keywords:    sc.Keywords,
			Validated:   sc.Validated,
		},
		Score:         r.Score(),
		MatchType:     string(r.MatchType()),
		MatchedFields: r.MatchedFields(),
		Highlights:    r.Highlights(),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidQuery,
		domain.ErrEmptyInput,
		domain.ErrCatalogUnavailable,
		domain.ErrScenarioNotFound,
		domain.ErrUnauthorized,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
