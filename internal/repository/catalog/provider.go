// Package catalog provides read access to the scenario catalog.
package catalog

import (
	"context"
	"sort"
	"strings"

	"github.com/casefind/casefind/internal/domain"
)

// Provider is the content-provider contract the search engine consumes.
type Provider interface {
	// All returns every scenario in the catalog.
	All(ctx context.Context) ([]*domain.Scenario, error)
	// ByCategory returns scenarios in the given category (case-insensitive).
	ByCategory(ctx context.Context, category string) ([]*domain.Scenario, error)
}

// Categories lists the distinct categories of a scenario set, sorted.
func Categories(scenarios []*domain.Scenario) []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, s := range scenarios {
		key := strings.ToLower(s.Category)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cats = append(cats, key)
	}
	sort.Strings(cats)
	return cats
}

// Memory is a static in-process provider, used in tests and as the
// backing store once scenarios are loaded from disk.
type Memory struct {
	scenarios []*domain.Scenario
}

// NewMemory creates a provider over a fixed scenario set.
func NewMemory(scenarios []*domain.Scenario) *Memory {
	return &Memory{scenarios: scenarios}
}

// All returns every scenario.
func (m *Memory) All(_ context.Context) ([]*domain.Scenario, error) {
	return m.scenarios, nil
}

// ByCategory returns scenarios matching the category.
func (m *Memory) ByCategory(_ context.Context, category string) ([]*domain.Scenario, error) {
	var out []*domain.Scenario
	for _, s := range m.scenarios {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out, nil
}
