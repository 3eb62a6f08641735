package catalog

import (
	"fmt"

	"github.com/casefind/casefind/internal/domain"
)

// scenarioDTO is the on-disk JSON shape of a scenario document.
// Severity travels as its lowercase name.
type scenarioDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Keywords    []string `json:"keywords"`
	Variations  []string `json:"variations"`
	Validated   bool     `json:"validated"`
}

func (d *scenarioDTO) toDomain() (*domain.Scenario, error) {
	sev, err := domain.ParseSeverity(d.Severity)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", d.ID, err)
	}
	s := &domain.Scenario{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Severity:    sev,
		Keywords:    d.Keywords,
		Variations:  d.Variations,
		Validated:   d.Validated,
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
