// Package rank filters, deduplicates, and orders candidate search hits.
package rank

import (
	"sort"
	"strings"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/domain/search/query"
	"github.com/casefind/casefind/internal/domain/search/result"
)

// Apply runs the filter predicates in order (categories, severities,
// urgency, validated-only), deduplicates to the best hit per scenario,
// and sorts by descending score. The sort is stable: equal scores keep
// their original insertion order.
func Apply(hits []result.Result, f query.Filters) []result.Result {
	filtered := make([]result.Result, 0, len(hits))
	for i := range hits {
		if matchesFilters(hits[i].Scenario(), f) {
			filtered = append(filtered, hits[i])
		}
	}

	deduped := dedupeBestPerScenario(filtered)

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Score() > deduped[j].Score()
	})
	return deduped
}

func matchesFilters(s *domain.Scenario, f query.Filters) bool {
	if len(f.Categories) > 0 && !containsFold(f.Categories, s.Category) {
		return false
	}
	if len(f.Severities) > 0 && !containsSeverity(f.Severities, s.Severity) {
		return false
	}
	// Urgent narrows to high and critical severity.
	if f.Urgent && s.Severity < domain.SeverityHigh {
		return false
	}
	if f.ValidatedOnly && !s.Validated {
		return false
	}
	return true
}

// dedupeBestPerScenario keeps the highest-scoring hit per scenario id.
// A scenario may have matched once per embedding source field.
func dedupeBestPerScenario(hits []result.Result) []result.Result {
	best := make(map[string]int, len(hits))
	out := make([]result.Result, 0, len(hits))
	for i := range hits {
		id := hits[i].Scenario().ID
		if at, seen := best[id]; seen {
			if hits[i].Score() > out[at].Score() {
				out[at] = hits[i]
			}
			continue
		}
		best[id] = len(out)
		out = append(out, hits[i])
	}
	return out
}

func containsFold(list []string, v string) bool {
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}

func containsSeverity(list []domain.Severity, v domain.Severity) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Paginate slices ordered hits down to one page. Past-the-end pages
// yield an empty slice, not an error.
func Paginate(hits []result.Result, page, pageSize int) []result.Result {
	start := (page - 1) * pageSize
	if start >= len(hits) {
		return []result.Result{}
	}
	end := start + pageSize
	if end > len(hits) {
		end = len(hits)
	}
	return hits[start:end]
}
