package result

// FiltersEcho mirrors the filters a search was executed with, for the
// response envelope.
type FiltersEcho struct {
	Categories    []string `json:"categories,omitempty"`
	Severities    []string `json:"severities,omitempty"`
	Urgent        bool     `json:"urgent,omitempty"`
	ValidatedOnly bool     `json:"validated_only,omitempty"`
}

// Response is the full outcome of one search call. Zero results is a
// normal outcome, not an error.
type Response struct {
	Query         string      `json:"query"`
	Results       []Result    `json:"results"`
	TotalMatches  int         `json:"total_matches"`
	ElapsedMs     int64       `json:"elapsed_ms"`
	AlgorithmUsed MatchType   `json:"algorithm_used"`
	Filters       FiltersEcho `json:"filters"`
}
