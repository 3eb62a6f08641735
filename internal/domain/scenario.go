package domain

import (
	"fmt"
	"strings"
)

// Severity is an ordered scenario severity level.
type Severity int

// Severity levels, lowest first.
const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

// String returns the lowercase severity name.
func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("severity(%d)", int(s))
}

// IsValid checks that the severity is one of the defined levels.
func (s Severity) IsValid() bool {
	_, ok := severityNames[s]
	return ok
}

// ParseSeverity converts a severity name to its level. Case-insensitive.
func ParseSeverity(name string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "low":
		return SeverityLow, nil
	case "medium":
		return SeverityMedium, nil
	case "high":
		return SeverityHigh, nil
	case "critical":
		return SeverityCritical, nil
	default:
		return 0, fmt.Errorf("unknown severity %q", name)
	}
}

// Scenario is a catalogued situation record. Immutable once loaded;
// the search engine holds read-only references.
type Scenario struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Severity    Severity `json:"-"`
	Keywords    []string `json:"keywords"`
	Variations  []string `json:"variations"`
	Validated   bool     `json:"validated"`
}

// Validate checks the minimal invariants of a loaded scenario.
func (s *Scenario) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("scenario id is required")
	}
	if s.Title == "" {
		return fmt.Errorf("scenario %s: title is required", s.ID)
	}
	if !s.Severity.IsValid() {
		return fmt.Errorf("scenario %s: invalid severity %d", s.ID, int(s.Severity))
	}
	return nil
}
