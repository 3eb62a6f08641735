package vectorize

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/metrics"
)

// InstrumentedVectorizer wraps a Vectorizer with logging and duration
// metrics. Transport-level metrics (API requests, tokens) belong to the
// provider adapter; this layer records end-to-end embed latency.
type InstrumentedVectorizer struct {
	inner    domain.Vectorizer
	provider string
	logger   *zap.Logger
}

// NewInstrumented wraps a vectorizer with observability.
func NewInstrumented(inner domain.Vectorizer, provider string, logger *zap.Logger) *InstrumentedVectorizer {
	return &InstrumentedVectorizer{inner: inner, provider: provider, logger: logger}
}

// Dimension delegates to the inner vectorizer.
func (v *InstrumentedVectorizer) Dimension() int { return v.inner.Dimension() }

// Embed delegates to the inner vectorizer, recording duration and outcome.
func (v *InstrumentedVectorizer) Embed(ctx context.Context, text string) ([]float32, error) {
	start := time.Now()

	vec, err := v.inner.Embed(ctx, text)

	duration := time.Since(start)

	if err != nil {
		v.logger.Error("Vectorization failed",
			zap.String("provider", v.provider),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		metrics.VectorizeRequestsTotal.WithLabelValues(v.provider, "error").Inc()
		return nil, fmt.Errorf("embed: %w", err)
	}

	metrics.VectorizeRequestsTotal.WithLabelValues(v.provider, "success").Inc()
	metrics.VectorizeRequestDuration.WithLabelValues(v.provider).Observe(duration.Seconds())

	v.logger.Debug("Vectorization completed",
		zap.String("provider", v.provider),
		zap.Duration("duration", duration),
		zap.Int("dimension", len(vec)),
	)
	return vec, nil
}

// EmbedBatch delegates batch embedding, falling back to sequential
// Embed when the inner vectorizer has no batch path.
func (v *InstrumentedVectorizer) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if bv, ok := v.inner.(domain.BatchVectorizer); ok {
		vecs, err := bv.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("batch embed: %w", err)
		}
		return vecs, nil
	}
	return domain.EmbedBatchFallback(ctx, v, texts)
}
