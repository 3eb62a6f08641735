// Package similarity computes cosine similarity and top-K candidate selection.
package similarity

import (
	"fmt"
	"math"
	"sort"

	"github.com/casefind/casefind/internal/domain"
)

// Candidate is an (id, vector) pair offered for similarity ranking.
type Candidate struct {
	ID          string
	SourceField domain.SourceField
	Vector      []float32
}

// Match is a ranked candidate.
type Match struct {
	ID          string
	SourceField domain.SourceField
	Score       float64
}

// Cosine computes the cosine similarity of two equal-length vectors.
// Returns 0 when either vector has zero magnitude.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// TopK ranks candidates by descending cosine similarity against the
// query vector and truncates to limit. The sort is stable: candidates
// with equal scores keep their input order. A candidate whose vector
// length disagrees with the query is a hard fault and fails the whole
// call; ingestion is expected to have repaired dimensions already.
func TopK(query []float32, candidates []Candidate, limit int) ([]Match, error) {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score, err := Cosine(query, c.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %s/%s: %w", c.ID, c.SourceField, err)
		}
		matches = append(matches, Match{ID: c.ID, SourceField: c.SourceField, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
