package domain

import (
	"context"
	"fmt"
	"time"
)

// SourceField names the scenario field an embedding was generated from.
type SourceField string

// Embedding source fields.
const (
	SourceTitle       SourceField = "title"
	SourceDescription SourceField = "description"
	SourceCombined    SourceField = "combined"
	SourceKeywords    SourceField = "keywords"
)

// IsValid checks that the source field is one of the supported values.
func (f SourceField) IsValid() bool {
	switch f {
	case SourceTitle, SourceDescription, SourceCombined, SourceKeywords:
		return true
	}
	return false
}

// EmbeddingRecord is one stored vector for a scenario field.
// A scenario may carry several records, one per source field.
// Vectors are always exactly the vectorizer dimension; the embedding
// store pads or truncates on ingest.
type EmbeddingRecord struct {
	ScenarioID  string      `json:"scenario_id"`
	SourceField SourceField `json:"source_field"`
	Vector      []float32   `json:"vector"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Vectorizer is the shared text vectorization contract between layers.
// Implementations must be deterministic: identical text yields an
// identical vector within one process lifetime.
type Vectorizer interface {
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
}

// BatchVectorizer vectorizes multiple texts, preserving input order.
type BatchVectorizer interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// HealthChecker verifies vectorizer provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbedBatchFallback calls Embed once per text for vectorizers without
// a native batch path.
func EmbedBatchFallback(ctx context.Context, v Vectorizer, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := v.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("fallback embed [%d]: %w", i, err)
		}
		vectors[i] = vec
	}
	return vectors, nil
}

// FitVector pads a short vector with zeros or truncates a long one so
// that its length is exactly dim. Vectors already at dim are returned
// unchanged.
func FitVector(vec []float32, dim int) []float32 {
	switch {
	case len(vec) == dim:
		return vec
	case len(vec) > dim:
		return vec[:dim]
	default:
		fitted := make([]float32, dim)
		copy(fitted, vec)
		return fitted
	}
}
