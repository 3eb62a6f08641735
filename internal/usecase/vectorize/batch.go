package vectorize

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/casefind/casefind/internal/domain"
)

// BatchVectorizer fans independent Embed calls out over a worker pool
// and joins them in input order. Embedding is a pure function, so the
// fan-out is safe; the chunking is not observable to callers.
type BatchVectorizer struct {
	inner domain.Vectorizer
	pool  *ants.Pool
}

// NewBatch creates a pooled batch vectorizer. poolSize defaults to
// half the CPUs, minimum 1.
func NewBatch(inner domain.Vectorizer, poolSize int) (*BatchVectorizer, error) {
	if poolSize < 1 {
		poolSize = runtime.NumCPU() / 2
		if poolSize < 1 {
			poolSize = 1
		}
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	return &BatchVectorizer{inner: inner, pool: pool}, nil
}

// Dimension delegates to the inner vectorizer.
func (b *BatchVectorizer) Dimension() int { return b.inner.Dimension() }

// Embed delegates a single text to the inner vectorizer.
func (b *BatchVectorizer) Embed(ctx context.Context, text string) ([]float32, error) {
	return b.inner.Embed(ctx, text)
}

// EmbedBatch embeds all texts concurrently, returning vectors in input
// order. The first error wins; remaining results are discarded.
func (b *BatchVectorizer) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	errs := make([]error, len(texts))

	var wg sync.WaitGroup
	for i, text := range texts {
		i, text := i, text // per-iteration copies: module builds with a pre-1.22 go directive
		wg.Add(1)
		submitErr := b.pool.Submit(func() {
			defer wg.Done()
			vectors[i], errs[i] = b.inner.Embed(ctx, text)
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = fmt.Errorf("submit embed task: %w", submitErr)
		}
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("batch embed [%d]: %w", i, err)
		}
	}
	return vectors, nil
}

// Release frees the worker pool.
func (b *BatchVectorizer) Release() {
	b.pool.Release()
}
