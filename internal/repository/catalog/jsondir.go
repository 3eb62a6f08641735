package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/casefind/casefind/internal/domain"
)

// LoadDir reads every *.json file in dir and returns a Memory provider
// over the scenarios they contain. A file may hold either one scenario
// object or an array of them. Files are read in name order so the
// catalog's insertion order, and with it ranking tie-breaks, is stable
// across restarts. Malformed files fail the load; a catalog with a
// broken record is a deployment error, not something to serve around.
func LoadDir(dir string, logger *zap.Logger) (*Memory, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %w", domain.ErrCatalogUnavailable, dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var scenarios []*domain.Scenario
	seen := make(map[string]string)
	for _, name := range names {
		path := filepath.Join(dir, name)
		loaded, err := loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", domain.ErrCatalogUnavailable, name, err)
		}
		for _, s := range loaded {
			if prev, dup := seen[s.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate scenario id %q in %s (first seen in %s)",
					domain.ErrCatalogUnavailable, s.ID, name, prev)
			}
			seen[s.ID] = name
			scenarios = append(scenarios, s)
		}
	}

	logger.Info("Scenario catalog loaded",
		zap.String("dir", dir),
		zap.Int("files", len(names)),
		zap.Int("scenarios", len(scenarios)),
	)
	return NewMemory(scenarios), nil
}

func loadFile(path string) ([]*domain.Scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	// A file holds either a single object or an array.
	var dtos []scenarioDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		var single scenarioDTO
		if err := json.Unmarshal(data, &single); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		dtos = []scenarioDTO{single}
	}

	scenarios := make([]*domain.Scenario, 0, len(dtos))
	for i := range dtos {
		s, err := dtos[i].toDomain()
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}
