// Package keyword scores scenarios by weighted token overlap with the
// query. It is the fallback retrieval path when the semantic path
// fails or comes back empty.
package keyword

import (
	"strings"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/domain/search/result"
)

// Default field boosts. Tuning knobs, overridable via config.
const (
	DefaultTitleBoost   = 2.0
	DefaultKeywordBoost = 1.5
	descriptionWeight   = 1.0
	variationWeight     = 0.8
)

// Matcher scores scenarios by substring overlap across title,
// description, keyword list, and variation phrases.
type Matcher struct {
	titleBoost   float64
	keywordBoost float64
}

// New creates a matcher. Non-positive boosts fall back to defaults.
func New(titleBoost, keywordBoost float64) *Matcher {
	if titleBoost <= 0 {
		titleBoost = DefaultTitleBoost
	}
	if keywordBoost <= 0 {
		keywordBoost = DefaultKeywordBoost
	}
	return &Matcher{titleBoost: titleBoost, keywordBoost: keywordBoost}
}

// Tokenize splits text on whitespace, lowercases, and de-duplicates,
// preserving first-occurrence order.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}

// Match scores every scenario against the query and returns hits with
// a positive score, in catalog order. Scores are normalized onto (0, 1]
// so that keyword and semantic hits rank on a comparable scale.
func (m *Matcher) Match(queryText string, scenarios []*domain.Scenario) []result.Result {
	tokens := Tokenize(queryText)
	if len(tokens) == 0 {
		return nil
	}

	hits := make([]result.Result, 0, len(scenarios))
	for _, s := range scenarios {
		raw, matched := m.scoreScenario(tokens, s)
		if raw <= 0 {
			continue
		}
		hits = append(hits, result.New(s, normalize(raw), matched, result.Keyword))
	}
	return hits
}

func (m *Matcher) scoreScenario(tokens []string, s *domain.Scenario) (float64, []result.MatchedField) {
	title := strings.ToLower(s.Title)
	desc := strings.ToLower(s.Description)

	var matched []result.MatchedField
	var total float64

	if n := countSubstringHits(tokens, title); n > 0 {
		score := m.titleBoost * float64(n)
		total += score
		matched = append(matched, result.MatchedField{Field: "title", Score: score, Span: s.Title})
	}
	if n := countSubstringHits(tokens, desc); n > 0 {
		score := descriptionWeight * float64(n)
		total += score
		matched = append(matched, result.MatchedField{Field: "description", Score: score})
	}
	if n := countListHits(tokens, s.Keywords); n > 0 {
		score := m.keywordBoost * float64(n)
		total += score
		matched = append(matched, result.MatchedField{Field: "keywords", Score: score})
	}
	if n := countListHits(tokens, s.Variations); n > 0 {
		score := variationWeight * float64(n)
		total += score
		matched = append(matched, result.MatchedField{Field: "variations", Score: score})
	}

	return total, matched
}

// countSubstringHits counts query tokens occurring as substrings of the
// (already lowercased) field text.
func countSubstringHits(tokens []string, text string) int {
	var n int
	for _, tok := range tokens {
		if strings.Contains(text, tok) {
			n++
		}
	}
	return n
}

// countListHits counts token hits across a list of phrases.
func countListHits(tokens []string, phrases []string) int {
	var n int
	for _, phrase := range phrases {
		n += countSubstringHits(tokens, strings.ToLower(phrase))
	}
	return n
}

// normalize maps a raw weighted sum onto (0, 1].
func normalize(raw float64) float64 {
	return raw / (raw + 1)
}
