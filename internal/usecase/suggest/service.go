// Package suggest produces type-ahead suggestions from scenario
// titles, catalog categories, and a curated common-phrase list.
package suggest

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/metrics"
)

const (
	// MinQueryLen is the shortest input that produces suggestions.
	// Anything shorter yields an empty list, not an error.
	MinQueryLen = 2
	// DefaultLimit applies when the caller passes no limit.
	DefaultLimit = 8
	// MaxLimit caps caller-supplied limits.
	MaxLimit = 20
)

// Source identifies where a suggestion came from.
type Source string

const (
	SourceScenarioTitle Source = "scenario_title"
	SourceCategory      Source = "category"
	SourceCommonPhrase  Source = "common_phrase"
)

// Per-source weights blend with the match-kind score so an exact
// prefix on a title outranks a substring hit in a stock phrase.
const (
	prefixScore    = 1.0
	substringScore = 0.6

	titleWeight    = 1.0
	categoryWeight = 0.9
	phraseWeight   = 0.8
)

// Suggestion is one type-ahead candidate.
type Suggestion struct {
	Text   string  `json:"text"`
	Source Source  `json:"type"`
	Score  float64 `json:"score"`
}

// Response is the autocomplete payload. It is always produced; a
// short or unmatched input simply carries zero suggestions.
type Response struct {
	Text        string       `json:"text"`
	Suggestions []Suggestion `json:"suggestions"`
	ElapsedMs   int64        `json:"elapsed_ms"`
}

// DefaultCommonPhrases seeds the phrase source when config supplies
// none.
var DefaultCommonPhrases = []string{
	"salary not paid",
	"eviction notice",
	"security deposit not returned",
	"workplace harassment",
	"wrongful termination",
	"visa renewal delayed",
	"defective product refund",
	"landlord not making repairs",
	"unpaid overtime",
	"discrimination at work",
}

// Service is the autocomplete orchestrator.
type Service struct {
	catalog  Catalog
	recorder Recorder
	phrases  []string
	logger   *zap.Logger
}

// New creates a suggest service. A nil phrase list falls back to
// DefaultCommonPhrases.
func New(catalog Catalog, recorder Recorder, phrases []string, logger *zap.Logger) *Service {
	if phrases == nil {
		phrases = DefaultCommonPhrases
	}
	return &Service{
		catalog:  catalog,
		recorder: recorder,
		phrases:  phrases,
		logger:   logger,
	}
}

// Suggest returns up to limit suggestions for a partial query. It
// never returns an error: catalog trouble degrades to phrase-only
// suggestions and short inputs yield an empty list.
func (s *Service) Suggest(ctx context.Context, text string, limit int, sources []Source) Response {
	start := time.Now()
	text = strings.TrimSpace(text)

	resp := Response{Text: text, Suggestions: []Suggestion{}}
	if len([]rune(text)) < MinQueryLen {
		resp.ElapsedMs = time.Since(start).Milliseconds()
		return resp
	}

	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	wanted := sourceSet(sources)
	needle := strings.ToLower(text)

	var pool []Suggestion
	if wanted[SourceScenarioTitle] || wanted[SourceCategory] {
		scenarios, err := s.catalog.All(ctx)
		if err != nil {
			s.logger.Warn("Suggestion catalog read failed, phrase source only", zap.Error(err))
		}
		seen := map[string]bool{}
		for _, sc := range scenarios {
			if wanted[SourceScenarioTitle] {
				pool = appendMatch(pool, sc.Title, needle, SourceScenarioTitle, titleWeight)
			}
			if wanted[SourceCategory] && !seen[strings.ToLower(sc.Category)] {
				seen[strings.ToLower(sc.Category)] = true
				pool = appendMatch(pool, sc.Category, needle, SourceCategory, categoryWeight)
			}
		}
	}
	if wanted[SourceCommonPhrase] {
		for _, phrase := range s.phrases {
			pool = appendMatch(pool, phrase, needle, SourceCommonPhrase, phraseWeight)
		}
	}

	resp.Suggestions = blend(pool, limit)
	resp.ElapsedMs = time.Since(start).Milliseconds()

	s.recorder.RecordSuggest()
	metrics.SuggestRequestsTotal.Inc()
	return resp
}

// appendMatch scores candidate against needle and appends it when it
// matches at all. Prefix hits outrank substring hits.
func appendMatch(pool []Suggestion, candidate, needle string, src Source, weight float64) []Suggestion {
	lower := strings.ToLower(candidate)
	var score float64
	switch {
	case strings.HasPrefix(lower, needle):
		score = prefixScore * weight
	case strings.Contains(lower, needle):
		score = substringScore * weight
	default:
		return pool
	}
	return append(pool, Suggestion{Text: candidate, Source: src, Score: score})
}

// blend dedupes by lowercased text keeping the best score, orders by
// score descending with insertion order breaking ties, and truncates.
func blend(pool []Suggestion, limit int) []Suggestion {
	best := make(map[string]int, len(pool))
	out := make([]Suggestion, 0, len(pool))
	for _, sg := range pool {
		key := strings.ToLower(sg.Text)
		if i, ok := best[key]; ok {
			if sg.Score > out[i].Score {
				out[i].Score = sg.Score
				out[i].Source = sg.Source
			}
			continue
		}
		best[key] = len(out)
		out = append(out, sg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sourceSet(sources []Source) map[Source]bool {
	if len(sources) == 0 {
		return map[Source]bool{
			SourceScenarioTitle: true,
			SourceCategory:      true,
			SourceCommonPhrase:  true,
		}
	}
	set := make(map[Source]bool, len(sources))
	for _, src := range sources {
		set[src] = true
	}
	return set
}
