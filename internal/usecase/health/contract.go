package health

import (
	"context"

	"github.com/casefind/casefind/internal/domain"
)

// CatalogChecker checks scenario catalog availability.
type CatalogChecker interface {
	All(ctx context.Context) ([]*domain.Scenario, error)
}

// VectorizerChecker checks vectorizer availability.
type VectorizerChecker interface {
	HealthCheck(ctx context.Context) error
}
