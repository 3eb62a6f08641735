package search

import (
	"context"
	"time"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/domain/search/result"
	"github.com/casefind/casefind/internal/usecase/similarity"
)

// Catalog reads the scenario set.
type Catalog interface {
	All(ctx context.Context) ([]*domain.Scenario, error)
}

// EmbeddingIndex exposes stored scenario embeddings as similarity
// candidates.
type EmbeddingIndex interface {
	Candidates() []similarity.Candidate
}

// Cache memoizes full responses by canonical key.
type Cache interface {
	Get(key string) (result.Response, bool)
	Put(key string, resp result.Response)
}

// Recorder tallies completed searches.
type Recorder interface {
	RecordSearch(queryText string, filterCategories []string, elapsed time.Duration, resultCount int)
}

// Matcher is the keyword fallback path.
type Matcher interface {
	Match(queryText string, scenarios []*domain.Scenario) []result.Result
}

// Highlighter decorates hits with highlighted fields.
type Highlighter interface {
	Apply(hits []result.Result, queryText string) []result.Result
}
