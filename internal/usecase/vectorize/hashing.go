// Package vectorize holds vectorizer implementations and decorators:
// a deterministic local feature-hashing vectorizer, a logging and
// metrics decorator, and a concurrent batch fan-out.
package vectorize

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"

	"github.com/casefind/casefind/internal/domain"
)

// DefaultDimension is the local vectorizer's vector length.
const DefaultDimension = 256

// HashingVectorizer embeds text by feature-hashing word tokens into a
// fixed-dimension L2-normalized vector. Purely local and deterministic:
// identical text always yields an identical vector, which makes it the
// default when no embedding provider is configured, and the reference
// vectorizer in tests.
type HashingVectorizer struct {
	dim int
}

// NewHashingVectorizer creates a local vectorizer. Non-positive dim
// falls back to DefaultDimension.
func NewHashingVectorizer(dim int) *HashingVectorizer {
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &HashingVectorizer{dim: dim}
}

// Dimension returns the vector length.
func (v *HashingVectorizer) Dimension() int { return v.dim }

// Embed hashes each lowercased token into a bucket and accumulates
// weights, then L2-normalizes. Blank text is rejected.
func (v *HashingVectorizer) Embed(_ context.Context, text string) ([]float32, error) {
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: text is blank", domain.ErrEmptyInput)
	}

	vec := make([]float32, v.dim)
	for _, tok := range tokens {
		h := fnv.New32a()
		_, _ = h.Write([]byte(tok))
		sum := h.Sum32()
		bucket := int(sum % uint32(v.dim))
		// Sign from a second hash bit spreads tokens across both
		// directions, reducing collisions' bias.
		if sum&0x80000000 != 0 {
			vec[bucket] -= 1
		} else {
			vec[bucket] += 1
		}
	}

	var norm float64
	for _, x := range vec {
		norm += float64(x) * float64(x)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

// EmbedBatch embeds each text in order.
func (v *HashingVectorizer) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return domain.EmbedBatchFallback(ctx, v, texts)
}
