package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/repository/catalog"
	"github.com/casefind/casefind/internal/repository/embedding"
	"github.com/casefind/casefind/internal/repository/resultcache"
	analyticsuc "github.com/casefind/casefind/internal/usecase/analytics"
	healthuc "github.com/casefind/casefind/internal/usecase/health"
	"github.com/casefind/casefind/internal/usecase/highlight"
	"github.com/casefind/casefind/internal/usecase/keyword"
	searchuc "github.com/casefind/casefind/internal/usecase/search"
	suggestuc "github.com/casefind/casefind/internal/usecase/suggest"
	"github.com/casefind/casefind/internal/usecase/vectorize"
)

func testServer(t *testing.T) (*Server, *chirouter.Mux) {
	t.Helper()

	provider := catalog.NewMemory([]*domain.Scenario{
		{
			ID: "emp-001", Title: "Employer Not Paying Salary or Wages",
			Description: "Your employer has withheld salary payments.",
			Category:    "employment", Severity: domain.SeverityHigh,
			Keywords: []string{"salary", "wages"}, Validated: true,
		},
		{
			ID: "hou-001", Title: "Eviction Notice Received",
			Description: "Landlord served an eviction notice.",
			Category:    "housing", Severity: domain.SeverityCritical,
			Keywords: []string{"eviction"}, Validated: true,
		},
	})

	store, err := embedding.NewStore(64)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	recorder := analyticsuc.New()
	vec := vectorize.NewHashingVectorizer(64)
	searchSvc := searchuc.New(
		provider,
		store,
		vec,
		keyword.New(0, 0),
		highlight.New("", ""),
		resultcache.New(time.Minute, 100, 80),
		recorder,
		zap.NewNop(),
	)
	suggestSvc := suggestuc.New(provider, recorder, nil, zap.NewNop())
	healthSvc := healthuc.New(provider, nil)

	srv := NewServer(searchSvc, suggestSvc, recorder, provider, healthSvc, zap.NewNop())
	r := chirouter.NewRouter()
	srv.RegisterRoutes(r)
	return srv, r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestSearchHandler_OK(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "POST", "/v1/search", `{"text":"salary not paid"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	var resp searchResponseDTO
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) == 0 {
		t.Fatal("expected results")
	}
	if resp.Results[0].Scenario.ID != "emp-001" {
		t.Errorf("top hit = %s, want emp-001", resp.Results[0].Scenario.ID)
	}
	if resp.Results[0].Scenario.Severity != "high" {
		t.Errorf("severity = %q, want high", resp.Results[0].Scenario.Severity)
	}
}

func TestSearchHandler_EmptyText_400(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "POST", "/v1/search", `{"text":"   "}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}

	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != codeValidationFailed {
		t.Errorf("code = %s, want %s", errResp.Code, codeValidationFailed)
	}
}

func TestSearchHandler_MalformedBody_400(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "POST", "/v1/search", `{"text":`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestSearchHandler_UnknownSeverity_400(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "POST", "/v1/search", `{"text":"salary","severities":["catastrophic"]}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestSearchHandler_CategoryFilter(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "POST", "/v1/search", `{"text":"notice salary","categories":["housing"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp searchResponseDTO
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, item := range resp.Results {
		if item.Scenario.Category != "housing" {
			t.Errorf("result %s escaped category filter", item.Scenario.ID)
		}
	}
}

func TestSuggestHandler_ShortInput_EmptyList(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "GET", "/v1/suggest?q=e", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp suggestuc.Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Suggestions) != 0 {
		t.Errorf("expected no suggestions, got %d", len(resp.Suggestions))
	}
}

func TestSuggestHandler_Matches(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "GET", "/v1/suggest?q=evict&limit=5", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp suggestuc.Response
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected suggestions for 'evict'")
	}
	if len(resp.Suggestions) > 5 {
		t.Errorf("limit ignored, got %d suggestions", len(resp.Suggestions))
	}
}

func TestSuggestHandler_BadLimit_400(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "GET", "/v1/suggest?q=evict&limit=many", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}
}

func TestCategoriesHandler(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "GET", "/v1/scenarios/categories", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string][]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	cats := resp["categories"]
	if len(cats) != 2 || cats[0] != "employment" || cats[1] != "housing" {
		t.Errorf("categories = %v, want [employment housing]", cats)
	}
}

func TestAnalyticsHandler_CountsSearches(t *testing.T) {
	_, r := testServer(t)

	doJSON(t, r, "POST", "/v1/search", `{"text":"salary"}`)
	doJSON(t, r, "POST", "/v1/search", `{"text":"salary"}`)

	rr := doJSON(t, r, "GET", "/v1/analytics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var report analyticsuc.Report
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.TotalSearches != 2 {
		t.Errorf("total searches = %d, want 2", report.TotalSearches)
	}
	if len(report.TopQueries) == 0 || report.TopQueries[0].Name != "salary" {
		t.Errorf("top queries = %v, want salary first", report.TopQueries)
	}
}

func TestLivenessHandler(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "GET", "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	_, r := testServer(t)

	rr := doJSON(t, r, "GET", "/readyz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rr.Code, rr.Body.String())
	}

	var report healthuc.Report
	if err := json.NewDecoder(rr.Body).Decode(&report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Status != healthuc.Healthy {
		t.Errorf("status = %s, want %s", report.Status, healthuc.Healthy)
	}
}
