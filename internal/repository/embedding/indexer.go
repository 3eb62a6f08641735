package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
)

// batchVectorizer is the consumer interface for catalog indexing.
type batchVectorizer interface {
	domain.Vectorizer
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// IndexCatalog generates and stores embeddings for every scenario's
// title, combined text, and keyword list. Texts for one scenario are
// embedded in a single batch so the fan-out in the vectorizer can run
// them concurrently.
func (s *Store) IndexCatalog(
	ctx context.Context, v batchVectorizer,
	scenarios []*domain.Scenario, logger *zap.Logger,
) error {
	start := time.Now()

	for _, sc := range scenarios {
		fields := indexableFields(sc)
		texts := make([]string, len(fields))
		for i, f := range fields {
			texts[i] = f.text
		}

		vecs, err := v.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("index scenario %s: %w", sc.ID, err)
		}
		for i, vec := range vecs {
			rec := domain.EmbeddingRecord{
				ScenarioID:  sc.ID,
				SourceField: fields[i].source,
				Vector:      vec,
				GeneratedAt: time.Now(),
			}
			if err := s.Add(rec); err != nil {
				return err
			}
		}
	}

	logger.Info("Catalog indexed",
		zap.Int("scenarios", len(scenarios)),
		zap.Int("embeddings", s.Len()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// fieldText pairs a source field with its embeddable text.
type fieldText struct {
	source domain.SourceField
	text   string
}

// indexableFields returns the non-empty embeddable texts of a scenario
// in a fixed order (title, combined, keywords), so the store's
// candidate order and with it ranking tie-breaks are the same across
// restarts.
func indexableFields(sc *domain.Scenario) []fieldText {
	fields := make([]fieldText, 0, 3)
	if sc.Title != "" {
		fields = append(fields, fieldText{domain.SourceTitle, sc.Title})
	}
	combined := strings.TrimSpace(sc.Title + " " + sc.Description)
	if combined != "" {
		fields = append(fields, fieldText{domain.SourceCombined, combined})
	}
	if len(sc.Keywords) > 0 {
		fields = append(fields, fieldText{domain.SourceKeywords, strings.Join(sc.Keywords, " ")})
	}
	return fields
}
