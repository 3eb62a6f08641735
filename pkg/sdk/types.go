package sdk

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Text          string   `json:"text"`
	Categories    []string `json:"categories,omitempty"`
	Severities    []string `json:"severities,omitempty"`
	Urgent        bool     `json:"urgent,omitempty"`
	ValidatedOnly bool     `json:"validated_only,omitempty"`
	Page          int      `json:"page,omitempty"`
	PageSize      int      `json:"page_size,omitempty"`
	Highlight     bool     `json:"highlight,omitempty"`
}

// Scenario is a catalog entry as returned by the service.
type Scenario struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Keywords    []string `json:"keywords,omitempty"`
	Validated   bool     `json:"validated"`
}

// MatchedField names a scenario field that contributed to the score.
type MatchedField struct {
	Field string  `json:"field"`
	Score float64 `json:"score"`
	Span  string  `json:"span,omitempty"`
}

// Highlight is a field rendered with match markers.
type Highlight struct {
	Field string `json:"field"`
	Text  string `json:"text"`
}

// SearchResult is one ranked hit.
type SearchResult struct {
	Scenario      Scenario       `json:"scenario"`
	Score         float64        `json:"score"`
	MatchType     string         `json:"match_type"`
	MatchedFields []MatchedField `json:"matched_fields,omitempty"`
	Highlights    []Highlight    `json:"highlights,omitempty"`
}

// FiltersEcho repeats the filters the server applied.
type FiltersEcho struct {
	Categories    []string `json:"categories,omitempty"`
	Severities    []string `json:"severities,omitempty"`
	Urgent        bool     `json:"urgent,omitempty"`
	ValidatedOnly bool     `json:"validated_only,omitempty"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Query         string         `json:"query"`
	Results       []SearchResult `json:"results"`
	TotalMatches  int            `json:"total_matches"`
	ElapsedMs     int64          `json:"elapsed_ms"`
	AlgorithmUsed string         `json:"algorithm_used"`
	Filters       FiltersEcho    `json:"filters"`
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	Text  string  `json:"text"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// SuggestResponse is the body of GET /v1/suggest.
type SuggestResponse struct {
	Text        string       `json:"text"`
	Suggestions []Suggestion `json:"suggestions"`
	ElapsedMs   int64        `json:"elapsed_ms"`
}

// EntryCount pairs a name with an occurrence count.
type EntryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// AnalyticsReport is the body of GET /v1/analytics.
type AnalyticsReport struct {
	TotalSearches  int64        `json:"total_searches"`
	TotalSuggests  int64        `json:"total_suggests"`
	SuccessRate    float64      `json:"success_rate"`
	AvgResponseMs  float64      `json:"avg_response_ms"`
	TopQueries     []EntryCount `json:"top_queries"`
	CategoryCounts []EntryCount `json:"category_counts"`
}

// HealthReport is the body of GET /readyz.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
