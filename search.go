package casefind

import (
	"fmt"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/domain/search/query"
	"github.com/casefind/casefind/internal/domain/search/result"
	searchuc "github.com/casefind/casefind/internal/usecase/search"
)

// Severity levels, lowest to highest.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// Scenario is one catalog record.
type Scenario struct {
	ID          string
	Title       string
	Description string
	Category    string
	Severity    string
	Keywords    []string
	Variations  []string
	Validated   bool
}

// SearchOptions configures a search call.
type SearchOptions struct {
	Categories    []string
	Severities    []string
	Urgent        bool
	ValidatedOnly bool
	Page          int
	PageSize      int
	Highlight     bool
}

// MatchedField records which scenario field matched and how strongly.
type MatchedField struct {
	Field string
	Score float64
}

// Highlight is a scenario field with query tokens wrapped in markers.
type Highlight struct {
	Field string
	Text  string
}

// Result is a single search hit.
type Result struct {
	Scenario      Scenario
	Score         float64
	MatchType     string
	MatchedFields []MatchedField
	Highlights    []Highlight
}

// Response is the full outcome of one search call.
type Response struct {
	Query         string
	Results       []Result
	TotalMatches  int
	ElapsedMs     int64
	AlgorithmUsed string
}

// Suggestion is one type-ahead candidate.
type Suggestion struct {
	Text  string
	Type  string
	Score float64
}

// EntryCount is a name with its tally.
type EntryCount struct {
	Name  string
	Count int64
}

// AnalyticsReport is a point-in-time snapshot of usage counters.
type AnalyticsReport struct {
	TotalSearches  int64
	TotalSuggests  int64
	SuccessRate    float64
	AvgResponseMs  float64
	TopQueries     []EntryCount
	CategoryCounts []EntryCount
}

func (o *SearchOptions) toParams(text string) (searchuc.Params, error) {
	severities := make([]domain.Severity, 0, len(o.Severities))
	for _, s := range o.Severities {
		sev, err := domain.ParseSeverity(s)
		if err != nil {
			return searchuc.Params{}, err
		}
		severities = append(severities, sev)
	}

	return searchuc.Params{
		Text: text,
		Filters: query.Filters{
			Categories:    o.Categories,
			Severities:    severities,
			Urgent:        o.Urgent,
			ValidatedOnly: o.ValidatedOnly,
		},
		Page:      o.Page,
		PageSize:  o.PageSize,
		Highlight: o.Highlight,
	}, nil
}

func toDomainScenario(sc *Scenario) (*domain.Scenario, error) {
	severity := domain.SeverityLow
	if sc.Severity != "" {
		parsed, err := domain.ParseSeverity(sc.Severity)
		if err != nil {
			return nil, fmt.Errorf("severity: %w", err)
		}
		severity = parsed
	}

	out := &domain.Scenario{
		ID:          sc.ID,
		Title:       sc.Title,
		Description: sc.Description,
		Category:    sc.Category,
		Severity:    severity,
		Keywords:    sc.Keywords,
		Variations:  sc.Variations,
		Validated:   sc.Validated,
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func fromScenario(sc *domain.Scenario) Scenario {
	return Scenario{
		ID:          sc.ID,
		Title:       sc.Title,
		Description: sc.Description,
		Category:    sc.Category,
		Severity:    sc.Severity.String(),
		Keywords:    sc.Keywords,
		Variations:  sc.Variations,
		Validated:   sc.Validated,
	}
}

func fromResponse(resp result.Response) Response {
	results := make([]Result, len(resp.Results))
	for i := range resp.Results {
		results[i] = fromResult(&resp.Results[i])
	}
	return Response{
		Query:         resp.Query,
		Results:       results,
		TotalMatches:  resp.TotalMatches,
		ElapsedMs:     resp.ElapsedMs,
		AlgorithmUsed: string(resp.AlgorithmUsed),
	}
}

func fromResult(r *result.Result) Result {
	fields := make([]MatchedField, len(r.MatchedFields()))
	for i, f := range r.MatchedFields() {
		fields[i] = MatchedField{Field: f.Field, Score: f.Score}
	}
	highlights := make([]Highlight, len(r.Highlights()))
	for i, h := range r.Highlights() {
		highlights[i] = Highlight{Field: h.Field, Text: h.Text}
	}
	return Result{
		Scenario:      fromScenario(r.Scenario()),
		Score:         r.Score(),
		MatchType:     string(r.MatchType()),
		MatchedFields: fields,
		Highlights:    highlights,
	}
}
