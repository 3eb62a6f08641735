// Package analytics tallies query frequency, filter usage, and response
// times. The state is observability-only and never gates correctness.
package analytics

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Recorder accumulates in-process search usage counters. One mutex
// guards the whole structure; contention is low and correctness
// matters more than fine-grained locking. Reset only by restart.
type Recorder struct {
	mu             sync.Mutex
	totalSearches  int64
	totalSuggests  int64
	successful     int64
	avgResponseMs  float64
	queryCounts    map[string]int64
	categoryCounts map[string]int64
}

// New creates an empty recorder.
func New() *Recorder {
	return &Recorder{
		queryCounts:    make(map[string]int64),
		categoryCounts: make(map[string]int64),
	}
}

// RecordSearch registers one completed search call.
func (r *Recorder) RecordSearch(queryText string, filterCategories []string, elapsed time.Duration, resultCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totalSearches++
	// Incremental mean avoids storing every sample.
	r.avgResponseMs += (float64(elapsed.Milliseconds()) - r.avgResponseMs) / float64(r.totalSearches)
	if resultCount > 0 {
		r.successful++
	}
	r.queryCounts[strings.ToLower(strings.TrimSpace(queryText))]++
	for _, cat := range filterCategories {
		r.categoryCounts[strings.ToLower(cat)]++
	}
}

// RecordSuggest registers one completed autocomplete call.
func (r *Recorder) RecordSuggest() {
	r.mu.Lock()
	r.totalSuggests++
	r.mu.Unlock()
}

// EntryCount is a name with its tally.
type EntryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Report is a point-in-time snapshot of usage counters.
type Report struct {
	TotalSearches  int64        `json:"total_searches"`
	TotalSuggests  int64        `json:"total_suggests"`
	SuccessRate    float64      `json:"success_rate"`
	AvgResponseMs  float64      `json:"avg_response_ms"`
	TopQueries     []EntryCount `json:"top_queries"`
	CategoryCounts []EntryCount `json:"category_counts"`
}

// Snapshot builds a report with the top-N queries and all category
// counts, both sorted by descending count (name ascending on ties, so
// the output is deterministic).
func (r *Recorder) Snapshot(topN int) Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := Report{
		TotalSearches:  r.totalSearches,
		TotalSuggests:  r.totalSuggests,
		AvgResponseMs:  r.avgResponseMs,
		TopQueries:     sortedEntries(r.queryCounts),
		CategoryCounts: sortedEntries(r.categoryCounts),
	}
	if r.totalSearches > 0 {
		rep.SuccessRate = float64(r.successful) / float64(r.totalSearches)
	}
	if topN > 0 && len(rep.TopQueries) > topN {
		rep.TopQueries = rep.TopQueries[:topN]
	}
	return rep
}

func sortedEntries(m map[string]int64) []EntryCount {
	out := make([]EntryCount, 0, len(m))
	for name, count := range m {
		out = append(out, EntryCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}
