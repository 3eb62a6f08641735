// Package embedding stores scenario embeddings in memory and
// normalizes the two supported ingestion shapes into EmbeddingRecord.
package embedding

import (
	"fmt"
	"sync"
	"time"

	"github.com/casefind/casefind/internal/domain"
	"github.com/casefind/casefind/internal/usecase/similarity"
)

// Store is an in-memory embedding index. Vectors are fitted to the
// configured dimension on ingest, so similarity search never sees a
// dimension mismatch from stored data.
type Store struct {
	mu      sync.RWMutex
	dim     int
	records []domain.EmbeddingRecord
}

// NewStore creates a store for vectors of the given dimension.
func NewStore(dim int) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	return &Store{dim: dim}, nil
}

// Dimension returns the store's vector length.
func (s *Store) Dimension() int { return s.dim }

// Add ingests one record, fitting the vector to the store dimension.
func (s *Store) Add(rec domain.EmbeddingRecord) error {
	if rec.ScenarioID == "" {
		return fmt.Errorf("embedding record without scenario id")
	}
	if !rec.SourceField.IsValid() {
		return fmt.Errorf("scenario %s: unknown source field %q", rec.ScenarioID, rec.SourceField)
	}
	rec.Vector = domain.FitVector(rec.Vector, s.dim)
	if rec.GeneratedAt.IsZero() {
		rec.GeneratedAt = time.Now()
	}

	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
	return nil
}

// AddAll ingests a flat record list.
func (s *Store) AddAll(records []domain.EmbeddingRecord) error {
	for i := range records {
		if err := s.Add(records[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// AddNested ingests the nested shape: scenarioID -> sourceField -> vector.
// Scenario ids are visited in sorted order so candidate order, and with
// it ranking tie-breaks, is deterministic.
func (s *Store) AddNested(byScenario map[string]map[string][]float32) error {
	for _, id := range sortedKeys(byScenario) {
		fields := byScenario[id]
		for _, field := range sortedKeys(fields) {
			rec := domain.EmbeddingRecord{
				ScenarioID:  id,
				SourceField: domain.SourceField(field),
				Vector:      fields[field],
			}
			if err := s.Add(rec); err != nil {
				return err
			}
		}
	}
	return nil
}

// Candidates returns all stored vectors as similarity candidates, in
// insertion order.
func (s *Store) Candidates() []similarity.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]similarity.Candidate, len(s.records))
	for i, rec := range s.records {
		out[i] = similarity.Candidate{
			ID:          rec.ScenarioID,
			SourceField: rec.SourceField,
			Vector:      rec.Vector,
		}
	}
	return out
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
