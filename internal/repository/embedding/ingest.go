package embedding

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/casefind/casefind/internal/domain"
)

// recordDTO is the flat ingestion shape.
type recordDTO struct {
	ScenarioID  string    `json:"scenarioId"`
	SourceField string    `json:"sourceField"`
	Vector      []float32 `json:"vector"`
}

// Ingest parses precomputed embedding JSON and loads it into the
// store. Two shapes are tolerated at this boundary only: a flat list
// of {scenarioId, sourceField, vector} records, or a nested mapping
// scenarioId -> sourceField -> vector. Everything past this function
// works on EmbeddingRecord.
func (s *Store) Ingest(data []byte) error {
	var flat []recordDTO
	if err := json.Unmarshal(data, &flat); err == nil {
		records := make([]domain.EmbeddingRecord, len(flat))
		for i, d := range flat {
			records[i] = domain.EmbeddingRecord{
				ScenarioID:  d.ScenarioID,
				SourceField: domain.SourceField(d.SourceField),
				Vector:      d.Vector,
			}
		}
		return s.AddAll(records)
	}

	var nested map[string]map[string][]float32
	if err := json.Unmarshal(data, &nested); err != nil {
		return fmt.Errorf("embedding data is neither a record list nor a nested map: %w", err)
	}
	return s.AddNested(nested)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
