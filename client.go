// Package casefind embeds the scenario search engine as a library:
// load a catalog, index it, and run search and autocomplete calls
// in-process without the HTTP layer.
package casefind

import (
	"context"
	"errors"
	"fmt"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/repository/catalog"
	"github.com/casefind/casefind/internal/repository/embedding"
	"github.com/casefind/casefind/internal/repository/resultcache"
	analyticsuc "github.com/casefind/casefind/internal/usecase/analytics"
	"github.com/casefind/casefind/internal/usecase/highlight"
	"github.com/casefind/casefind/internal/usecase/keyword"
	searchuc "github.com/casefind/casefind/internal/usecase/search"
	suggestuc "github.com/casefind/casefind/internal/usecase/suggest"
	"github.com/casefind/casefind/internal/usecase/vectorize"
)

// Client is the casefind library entry point.
type Client struct {
	provider   catalog.Provider
	searchSvc  *searchuc.Service
	suggestSvc *suggestuc.Service
	recorder   *analyticsuc.Recorder
	batch      *vectorize.BatchVectorizer
}

// New creates a Client over a scenario catalog. The catalog comes
// from WithScenarios or WithCatalogDir; everything else has working
// defaults (deterministic local vectorizer, five-minute cache).
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, o := range opts {
		o(cfg)
	}

	provider, scenarios, err := buildProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}

	vec := cfg.vectorizer
	if vec == nil {
		vec = vectorize.NewHashingVectorizer(cfg.dimensions)
	}
	batch, err := vectorize.NewBatch(vec, cfg.poolSize)
	if err != nil {
		return nil, fmt.Errorf("casefind: batch vectorizer: %w", err)
	}

	store, err := embedding.NewStore(vec.Dimension())
	if err != nil {
		batch.Release()
		return nil, fmt.Errorf("casefind: embedding store: %w", err)
	}
	if err := store.IndexCatalog(ctx, batch, scenarios, cfg.logger); err != nil {
		batch.Release()
		return nil, fmt.Errorf("casefind: index catalog: %w", err)
	}

	recorder := analyticsuc.New()
	searchSvc := searchuc.New(
		provider,
		store,
		vec,
		keyword.New(cfg.titleBoost, cfg.keywordBoost),
		highlight.New("", ""),
		resultcache.New(cfg.cacheTTL, cfg.cacheEntries, cfg.cacheEntries*8/10),
		recorder,
		cfg.logger,
	).WithTuning(cfg.minSimilarity, cfg.topK)

	return &Client{
		provider:   provider,
		searchSvc:  searchSvc,
		suggestSvc: suggestuc.New(provider, recorder, cfg.phrases, cfg.logger),
		recorder:   recorder,
		batch:      batch,
	}, nil
}

// Close releases the embedding worker pool.
func (c *Client) Close() {
	c.batch.Release()
}

// Search runs a free-text search. See SearchBuilder for a fluent
// alternative.
func (c *Client) Search(ctx context.Context, query string, opts *SearchOptions) (Response, error) {
	if opts == nil {
		opts = &SearchOptions{}
	}
	params, err := opts.toParams(query)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}

	resp, err := c.searchSvc.Search(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("search: %w", err)
	}
	return fromResponse(resp), nil
}

// Suggest returns type-ahead suggestions for a partial query.
func (c *Client) Suggest(ctx context.Context, text string, limit int) []Suggestion {
	resp := c.suggestSvc.Suggest(ctx, text, limit, nil)
	out := make([]Suggestion, len(resp.Suggestions))
	for i, s := range resp.Suggestions {
		out[i] = Suggestion{Text: s.Text, Type: string(s.Source), Score: s.Score}
	}
	return out
}

// Categories lists the catalog's distinct categories, sorted.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	scenarios, err := c.provider.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	return catalog.Categories(scenarios), nil
}

// Analytics returns a usage snapshot with the top-N queries.
func (c *Client) Analytics(topN int) AnalyticsReport {
	report := c.recorder.Snapshot(topN)
	return AnalyticsReport{
		TotalSearches:  report.TotalSearches,
		TotalSuggests:  report.TotalSuggests,
		SuccessRate:    report.SuccessRate,
		AvgResponseMs:  report.AvgResponseMs,
		TopQueries:     entryCounts(report.TopQueries),
		CategoryCounts: entryCounts(report.CategoryCounts),
	}
}

func entryCounts(in []analyticsuc.EntryCount) []EntryCount {
	out := make([]EntryCount, len(in))
	for i, e := range in {
		out[i] = EntryCount{Name: e.Name, Count: e.Count}
	}
	return out
}

func buildProvider(ctx context.Context, cfg *clientConfig) (catalog.Provider, []*domain.Scenario, error) {
	var provider catalog.Provider
	switch {
	case len(cfg.scenarios) > 0:
		domScenarios := make([]*domain.Scenario, len(cfg.scenarios))
		for i := range cfg.scenarios {
			sc, err := toDomainScenario(&cfg.scenarios[i])
			if err != nil {
				return nil, nil, fmt.Errorf("casefind: scenario %q: %w", cfg.scenarios[i].ID, err)
			}
			domScenarios[i] = sc
		}
		provider = catalog.NewMemory(domScenarios)
	case cfg.catalogDir != "":
		p, err := catalog.LoadDir(cfg.catalogDir, cfg.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("casefind: load catalog: %w", err)
		}
		provider = p
	default:
		return nil, nil, errors.New("casefind: catalog required (use WithScenarios or WithCatalogDir)")
	}

	scenarios, err := provider.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("casefind: read catalog: %w", err)
	}
	return provider, scenarios, nil
}
