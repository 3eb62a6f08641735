// Package query defines the validated search query value type.
package query

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/casefind/casefind/internal/domain"
)

// Query parameter limits.
const (
	// MaxTextLength is the maximum allowed query text length, in
	// characters, after trimming.
	MaxTextLength   = 200
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// Filters narrows a search to matching scenarios. Empty lists mean "no
// restriction".
type Filters struct {
	Categories    []string
	Severities    []domain.Severity
	Urgent        bool
	ValidatedOnly bool
}

// IsEmpty reports whether no filter is active.
func (f Filters) IsEmpty() bool {
	return len(f.Categories) == 0 && len(f.Severities) == 0 && !f.Urgent && !f.ValidatedOnly
}

// Query is a validated search query.
type Query struct {
	text     string
	filters  Filters
	page     int
	pageSize int
}

// New validates and normalizes search parameters. Text is trimmed and
// must be 1..MaxTextLength characters. Defaults: page=1, pageSize=10;
// pageSize is capped at MaxPageSize.
func New(text string, filters Filters, page, pageSize int) (Query, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Query{}, fmt.Errorf("%w: text is required", domain.ErrInvalidQuery)
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return Query{}, fmt.Errorf("%w: text exceeds %d characters", domain.ErrInvalidQuery, MaxTextLength)
	}
	for _, s := range filters.Severities {
		if !s.IsValid() {
			return Query{}, fmt.Errorf("%w: invalid severity %d", domain.ErrInvalidQuery, int(s))
		}
	}
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Query{
		text:     text,
		filters:  filters,
		page:     page,
		pageSize: pageSize,
	}, nil
}

// Text returns the trimmed query text.
func (q *Query) Text() string { return q.text }

// Filters returns the active filters.
func (q *Query) Filters() Filters { return q.filters }

// Page returns the 1-based result page.
func (q *Query) Page() int { return q.page }

// PageSize returns the page size.
func (q *Query) PageSize() int { return q.pageSize }

// CacheKey builds a canonical key for the query: lowercased text plus
// stable-ordered filters and pagination. Two queries that differ only
// in filter list order or text casing share a key.
func (q *Query) CacheKey() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(q.text))

	cats := make([]string, len(q.filters.Categories))
	for i, c := range q.filters.Categories {
		cats[i] = strings.ToLower(c)
	}
	sort.Strings(cats)
	b.WriteString("|c=")
	b.WriteString(strings.Join(cats, ","))

	sevs := make([]string, len(q.filters.Severities))
	for i, s := range q.filters.Severities {
		sevs[i] = s.String()
	}
	sort.Strings(sevs)
	b.WriteString("|s=")
	b.WriteString(strings.Join(sevs, ","))

	fmt.Fprintf(&b, "|u=%t|v=%t|p=%d/%d",
		q.filters.Urgent, q.filters.ValidatedOnly, q.page, q.pageSize)
	return b.String()
}
