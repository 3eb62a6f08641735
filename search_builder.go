package casefind

import "context"

// SearchBuilder is a fluent builder for search calls.
type SearchBuilder struct {
	client *Client
	query  string
	opts   SearchOptions
}

// NewSearch starts a fluent search for the given text.
func (c *Client) NewSearch(query string) *SearchBuilder {
	return &SearchBuilder{client: c, query: query}
}

// Categories restricts results to the given categories.
func (b *SearchBuilder) Categories(cats ...string) *SearchBuilder {
	b.opts.Categories = append(b.opts.Categories, cats...)
	return b
}

// Severities restricts results to the given severity names.
func (b *SearchBuilder) Severities(sevs ...string) *SearchBuilder {
	b.opts.Severities = append(b.opts.Severities, sevs...)
	return b
}

// Urgent keeps only high and critical scenarios.
func (b *SearchBuilder) Urgent() *SearchBuilder {
	b.opts.Urgent = true
	return b
}

// ValidatedOnly keeps only reviewed scenarios.
func (b *SearchBuilder) ValidatedOnly() *SearchBuilder {
	b.opts.ValidatedOnly = true
	return b
}

// Page selects a result page.
func (b *SearchBuilder) Page(page, pageSize int) *SearchBuilder {
	b.opts.Page = page
	b.opts.PageSize = pageSize
	return b
}

// Highlight marks matched query tokens in the results.
func (b *SearchBuilder) Highlight() *SearchBuilder {
	b.opts.Highlight = true
	return b
}

// Do executes the search.
func (b *SearchBuilder) Do(ctx context.Context) (Response, error) {
	return b.client.Search(ctx, b.query, &b.opts)
}
