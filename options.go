package casefind

import (
	"time"

	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/usecase/vectorize"
)

// Vectorizer turns text into a fixed-length vector. The default is a
// deterministic local hashing vectorizer; plug in an API-backed one
// for real semantic quality.
type Vectorizer = domain.Vectorizer

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	scenarios  []Scenario
	catalogDir string

	vectorizer Vectorizer
	dimensions int
	poolSize   int

	minSimilarity float64
	topK          int
	titleBoost    float64
	keywordBoost  float64

	cacheTTL     time.Duration
	cacheEntries int

	phrases []string
	logger  *zap.Logger
}

func defaultClientConfig() *clientConfig {
	return &clientConfig{
		dimensions:   vectorize.DefaultDimension,
		cacheTTL:     5 * time.Minute,
		cacheEntries: 1000,
		logger:       zap.NewNop(),
	}
}

// WithScenarios supplies the catalog directly.
func WithScenarios(scenarios []Scenario) Option {
	return func(c *clientConfig) {
		c.scenarios = scenarios
	}
}

// WithCatalogDir loads the catalog from a directory of JSON files.
func WithCatalogDir(dir string) Option {
	return func(c *clientConfig) {
		c.catalogDir = dir
	}
}

// WithVectorizer replaces the local hashing vectorizer.
func WithVectorizer(v Vectorizer) Option {
	return func(c *clientConfig) {
		c.vectorizer = v
	}
}

// WithDimensions sets the local vectorizer's dimension. Ignored when
// WithVectorizer is used.
func WithDimensions(d int) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.dimensions = d
		}
	}
}

// WithPoolSize sets the embedding worker pool size.
func WithPoolSize(n int) Option {
	return func(c *clientConfig) {
		c.poolSize = n
	}
}

// WithTuning overrides the semantic similarity floor and candidate cap.
func WithTuning(minSimilarity float64, topK int) Option {
	return func(c *clientConfig) {
		c.minSimilarity = minSimilarity
		c.topK = topK
	}
}

// WithBoosts overrides the keyword matcher's title and keyword weights.
func WithBoosts(title, keyword float64) Option {
	return func(c *clientConfig) {
		c.titleBoost = title
		c.keywordBoost = keyword
	}
}

// WithCache overrides the result cache TTL and entry ceiling.
func WithCache(ttl time.Duration, maxEntries int) Option {
	return func(c *clientConfig) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
		if maxEntries > 0 {
			c.cacheEntries = maxEntries
		}
	}
}

// WithCommonPhrases replaces the stock autocomplete phrase list.
func WithCommonPhrases(phrases []string) Option {
	return func(c *clientConfig) {
		c.phrases = phrases
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
