package suggest

import (
	"context"

	"github.com/casefind/casefind/internal/domain"
)

// Catalog reads the scenario set feeding title and category sources.
type Catalog interface {
	All(ctx context.Context) ([]*domain.Scenario, error)
}

// Recorder tallies completed autocomplete calls.
type Recorder interface {
	RecordSuggest()
}
