// Package search sequences the full search pipeline: validation,
// cache check, semantic attempt, keyword fallback, filtering and
// ranking, optional highlighting, cache store, and analytics.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/domain/search/query"
	"github.com/casefind/casefind/internal/domain/search/result"
	"github.com/casefind/casefind/internal/metrics"
	"github.com/casefind/casefind/internal/usecase/rank"
	"github.com/casefind/casefind/internal/usecase/similarity"
)

// Tuning defaults. Overridable via config.
const (
	// DefaultMinSimilarity is the semantic relevance floor; candidates
	// below it are dropped before ranking.
	DefaultMinSimilarity = 0.3
	// DefaultTopK caps the semantic candidate set ahead of filtering.
	DefaultTopK = 50
)

// Params are the raw inputs of one search call, before validation.
type Params struct {
	Text      string
	Filters   query.Filters
	Page      int
	PageSize  int
	Highlight bool
}

// Service is the search orchestrator.
type Service struct {
	catalog       Catalog
	index         EmbeddingIndex
	vectorizer    domain.Vectorizer
	matcher       Matcher
	highlighter   Highlighter
	cache         Cache
	recorder      Recorder
	logger        *zap.Logger
	minSimilarity float64
	topK          int
}

// New creates a search service.
func New(
	catalog Catalog,
	index EmbeddingIndex,
	vectorizer domain.Vectorizer,
	matcher Matcher,
	highlighter Highlighter,
	cache Cache,
	recorder Recorder,
	logger *zap.Logger,
) *Service {
	return &Service{
		catalog:       catalog,
		index:         index,
		vectorizer:    vectorizer,
		matcher:       matcher,
		highlighter:   highlighter,
		cache:         cache,
		recorder:      recorder,
		logger:        logger,
		minSimilarity: DefaultMinSimilarity,
		topK:          DefaultTopK,
	}
}

// WithTuning overrides the similarity floor and candidate cap.
// Non-positive values keep the defaults.
func (s *Service) WithTuning(minSimilarity float64, topK int) *Service {
	if minSimilarity > 0 {
		s.minSimilarity = minSimilarity
	}
	if topK > 0 {
		s.topK = topK
	}
	return s
}

// semanticOutcome is the tagged result of the semantic attempt. The
// fallback decision reads these flags instead of branching on error
// values threaded through the pipeline.
type semanticOutcome struct {
	hits      []result.Result
	attempted bool
	failed    bool
}

// Search runs the pipeline for one query. Validation failures surface
// as domain.ErrInvalidQuery; every other internal failure degrades to
// a lesser algorithm. A response with zero results is a normal outcome.
func (s *Service) Search(ctx context.Context, p Params) (result.Response, error) {
	q, err := query.New(p.Text, p.Filters, p.Page, p.PageSize)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("none", "invalid").Inc()
		return result.Response{}, err
	}

	key := cacheKey(&q, p.Highlight)
	if cached, hit := s.cache.Get(key); hit {
		s.recorder.RecordSearch(q.Text(), q.Filters().Categories, time.Duration(cached.ElapsedMs)*time.Millisecond, len(cached.Results))
		metrics.SearchRequestsTotal.WithLabelValues(string(cached.AlgorithmUsed), "cached").Inc()
		return cached, nil
	}

	start := time.Now()

	scenarios, err := s.catalog.All(ctx)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("none", "error").Inc()
		return result.Response{}, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	byID := make(map[string]*domain.Scenario, len(scenarios))
	for _, sc := range scenarios {
		byID[sc.ID] = sc
	}

	sem := s.attemptSemantic(ctx, q.Text(), byID)

	ranked := rank.Apply(sem.hits, q.Filters())
	algorithm := result.Semantic

	if sem.failed || len(ranked) == 0 {
		// The keyword path runs either as the declared fallback or
		// opportunistically when semantic filtering left nothing.
		kwHits := s.matcher.Match(q.Text(), scenarios)
		if sem.attempted && !sem.failed {
			algorithm = result.Hybrid
			ranked = rank.Apply(append(sem.hits, kwHits...), q.Filters())
		} else {
			algorithm = result.Keyword
			ranked = rank.Apply(kwHits, q.Filters())
		}
	}

	total := len(ranked)
	page := rank.Paginate(ranked, q.Page(), q.PageSize())
	if p.Highlight {
		page = s.highlighter.Apply(page, q.Text())
	}

	elapsed := time.Since(start)
	resp := result.Response{
		Query:         q.Text(),
		Results:       page,
		TotalMatches:  total,
		ElapsedMs:     elapsed.Milliseconds(),
		AlgorithmUsed: algorithm,
		Filters:       filtersEcho(q.Filters()),
	}

	s.cache.Put(key, resp)
	s.recorder.RecordSearch(q.Text(), q.Filters().Categories, elapsed, len(page))

	metrics.SearchRequestsTotal.WithLabelValues(string(algorithm), "success").Inc()
	metrics.SearchDuration.WithLabelValues(string(algorithm)).Observe(elapsed.Seconds())
	metrics.SearchResultsReturned.WithLabelValues(string(algorithm)).Observe(float64(len(page)))

	return resp, nil
}

// attemptSemantic embeds the query and ranks stored embeddings. Every
// failure is swallowed into the outcome flags; the caller decides on
// fallback, the user never sees a semantic-path error.
func (s *Service) attemptSemantic(ctx context.Context, text string, byID map[string]*domain.Scenario) semanticOutcome {
	candidates := s.index.Candidates()
	if len(candidates) == 0 {
		return semanticOutcome{}
	}

	out := semanticOutcome{attempted: true}

	vec, err := s.vectorizer.Embed(ctx, text)
	if err != nil {
		s.logger.Warn("Semantic path degraded to keyword search", zap.Error(err))
		out.failed = true
		return out
	}

	matches, err := similarity.TopK(vec, candidates, s.topK)
	if err != nil {
		// A mid-computation dimension fault is a hard internal fault;
		// ingestion should have repaired vector lengths.
		s.logger.Error("Similarity ranking failed", zap.Error(err))
		out.failed = true
		return out
	}

	for _, m := range matches {
		if m.Score < s.minSimilarity {
			continue
		}
		sc, ok := byID[m.ID]
		if !ok {
			continue
		}
		score := m.Score
		if score > 1 {
			score = 1
		}
		fields := []result.MatchedField{{Field: string(m.SourceField), Score: score}}
		out.hits = append(out.hits, result.New(sc, score, fields, result.Semantic))
	}
	return out
}

// cacheKey extends the canonical query key with the highlight flag,
// since it changes the payload.
func cacheKey(q *query.Query, highlight bool) string {
	return fmt.Sprintf("%s|hl=%t", q.CacheKey(), highlight)
}

func filtersEcho(f query.Filters) result.FiltersEcho {
	echo := result.FiltersEcho{
		Categories:    f.Categories,
		Urgent:        f.Urgent,
		ValidatedOnly: f.ValidatedOnly,
	}
	for _, sev := range f.Severities {
		echo.Severities = append(echo.Severities, sev.String())
	}
	return echo
}
