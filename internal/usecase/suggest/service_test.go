package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
)

type mockCatalog struct {
	scenarios []*domain.Scenario
	err       error
}

func (m *mockCatalog) All(_ context.Context) ([]*domain.Scenario, error) {
	return m.scenarios, m.err
}

type mockRecorder struct{ ticks int }

func (m *mockRecorder) RecordSuggest() { m.ticks++ }

func testCatalog() *mockCatalog {
	return &mockCatalog{scenarios: []*domain.Scenario{
		{ID: "emp-001", Title: "Employer Not Paying Salary or Wages", Category: "employment"},
		{ID: "emp-002", Title: "Wrongful Termination Without Notice", Category: "employment"},
		{ID: "hou-001", Title: "Eviction Notice Received", Category: "housing"},
	}}
}

func newService(catalog Catalog, rec Recorder) *Service {
	return New(catalog, rec, nil, zap.NewNop())
}

func TestSuggest_ShortInputYieldsEmptyList(t *testing.T) {
	rec := &mockRecorder{}
	svc := newService(testCatalog(), rec)

	for _, text := range []string{"", "e", "  s  "} {
		resp := svc.Suggest(context.Background(), text, 0, nil)
		if len(resp.Suggestions) != 0 {
			t.Errorf("input %q: expected empty list, got %d suggestions", text, len(resp.Suggestions))
		}
	}
	if rec.ticks != 0 {
		t.Error("short inputs must not tick analytics")
	}
}

func TestSuggest_PrefixOutranksSubstring(t *testing.T) {
	svc := newService(testCatalog(), &mockRecorder{})

	resp := svc.Suggest(context.Background(), "ev", 0, nil)
	if len(resp.Suggestions) < 1 {
		t.Fatal("expected suggestions for 'ev'")
	}
	// "Eviction Notice Received" is a prefix hit; "Employer..." does
	// not contain "ev" at all, so the top entry must be the eviction
	// title or the eviction phrase, never a substring-only hit above
	// a prefix hit.
	top := resp.Suggestions[0]
	if !strings.HasPrefix(strings.ToLower(top.Text), "ev") {
		t.Errorf("top suggestion %q is not a prefix match", top.Text)
	}
	for i := 1; i < len(resp.Suggestions); i++ {
		if resp.Suggestions[i].Score > resp.Suggestions[i-1].Score {
			t.Error("suggestions not ordered by descending score")
		}
	}
}

func TestSuggest_BlendsAllSources(t *testing.T) {
	svc := newService(testCatalog(), &mockRecorder{})

	resp := svc.Suggest(context.Background(), "em", 0, nil)
	got := map[Source]bool{}
	for _, sg := range resp.Suggestions {
		got[sg.Source] = true
	}
	if !got[SourceScenarioTitle] {
		t.Error("expected a scenario_title suggestion for 'em'")
	}
	if !got[SourceCategory] {
		t.Error("expected a category suggestion for 'em' (employment)")
	}
}

func TestSuggest_SourceFilter(t *testing.T) {
	svc := newService(testCatalog(), &mockRecorder{})

	resp := svc.Suggest(context.Background(), "em", 0, []Source{SourceCategory})
	if len(resp.Suggestions) == 0 {
		t.Fatal("expected category suggestions")
	}
	for _, sg := range resp.Suggestions {
		if sg.Source != SourceCategory {
			t.Errorf("source filter leaked %q suggestion %q", sg.Source, sg.Text)
		}
	}
}

func TestSuggest_DedupesByText(t *testing.T) {
	catalog := &mockCatalog{scenarios: []*domain.Scenario{
		{ID: "a", Title: "Eviction Notice", Category: "housing"},
		{ID: "b", Title: "eviction notice", Category: "housing"},
	}}
	svc := newService(catalog, &mockRecorder{})

	resp := svc.Suggest(context.Background(), "evict", 0, []Source{SourceScenarioTitle})
	if len(resp.Suggestions) != 1 {
		t.Fatalf("expected 1 deduped suggestion, got %d", len(resp.Suggestions))
	}
}

func TestSuggest_LimitDefaultsAndCaps(t *testing.T) {
	var scenarios []*domain.Scenario
	for i := 0; i < 40; i++ {
		scenarios = append(scenarios, &domain.Scenario{
			ID:       string(rune('a' + i)),
			Title:    "Salary Dispute Variant " + strings.Repeat("x", i+1),
			Category: "employment",
		})
	}
	svc := newService(&mockCatalog{scenarios: scenarios}, &mockRecorder{})

	if got := svc.Suggest(context.Background(), "salary", 0, nil); len(got.Suggestions) > DefaultLimit {
		t.Errorf("default limit: got %d suggestions, want at most %d", len(got.Suggestions), DefaultLimit)
	}
	if got := svc.Suggest(context.Background(), "salary", 100, nil); len(got.Suggestions) > MaxLimit {
		t.Errorf("cap: got %d suggestions, want at most %d", len(got.Suggestions), MaxLimit)
	}
}

func TestSuggest_CatalogFailureDegradesToPhrases(t *testing.T) {
	rec := &mockRecorder{}
	svc := newService(&mockCatalog{err: errors.New("catalog down")}, rec)

	resp := svc.Suggest(context.Background(), "eviction", 0, nil)
	if len(resp.Suggestions) == 0 {
		t.Fatal("phrase source should survive a catalog failure")
	}
	for _, sg := range resp.Suggestions {
		if sg.Source != SourceCommonPhrase {
			t.Errorf("unexpected %q suggestion after catalog failure", sg.Source)
		}
	}
	if rec.ticks != 1 {
		t.Errorf("analytics ticks = %d, want 1", rec.ticks)
	}
}
