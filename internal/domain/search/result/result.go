// Package result defines search hit and response value types.
package result

import "github.com/casefind/casefind/internal/domain"

// MatchType names the retrieval path that produced a hit.
type MatchType string

// Match types.
const (
	// Hybrid marks a response assembled from both retrieval paths.
	Hybrid   MatchType = "hybrid"
	Semantic MatchType = "semantic"
	Keyword  MatchType = "keyword"
)

// MatchedField records which scenario field matched and how strongly.
type MatchedField struct {
	Field string  `json:"field"`
	Score float64 `json:"score"`
	Span  string  `json:"span,omitempty"`
}

// Highlight is a scenario field with query tokens wrapped in markers.
type Highlight struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

// Result is a single search hit.
type Result struct {
	scenario      *domain.Scenario
	score         float64
	matchedFields []MatchedField
	highlights    []Highlight
	matchType     MatchType
}

// New creates a search hit.
func New(
	scenario *domain.Scenario, score float64,
	matchedFields []MatchedField, matchType MatchType,
) Result {
	return Result{
		scenario:      scenario,
		score:         score,
		matchedFields: matchedFields,
		matchType:     matchType,
	}
}

// Scenario returns the matched scenario.
func (r *Result) Scenario() *domain.Scenario { return r.scenario }

// Score returns the relevance score in [0, 1].
func (r *Result) Score() float64 { return r.score }

// MatchedFields returns the per-field match breakdown.
func (r *Result) MatchedFields() []MatchedField { return r.matchedFields }

// Highlights returns the highlighted fields, if requested.
func (r *Result) Highlights() []Highlight { return r.highlights }

// MatchType returns the retrieval path that produced this hit.
func (r *Result) MatchType() MatchType { return r.matchType }

// WithScore returns a copy of the hit carrying a replacement score.
func (r Result) WithScore(score float64) Result {
	r.score = score
	return r
}

// WithMatchType returns a copy of the hit carrying a replacement match type.
func (r Result) WithMatchType(t MatchType) Result {
	r.matchType = t
	return r
}

// WithHighlights returns a copy of the hit carrying highlights.
func (r Result) WithHighlights(hs []Highlight) Result {
	r.highlights = hs
	return r
}
