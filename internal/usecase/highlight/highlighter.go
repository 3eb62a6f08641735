// Package highlight wraps query-token occurrences in scenario text for
// UI display.
package highlight

import (
	"strings"
	"unicode/utf8"

	"github.com/casefind/casefind/internal/domain/search/result"
	"github.com/casefind/casefind/internal/usecase/keyword"
)

// Default highlight markers.
const (
	DefaultOpenMark  = "<mark>"
	DefaultCloseMark = "</mark>"
)

// maxFieldsPerResult bounds the highlight payload per hit.
const maxFieldsPerResult = 2

// Highlighter wraps matched query tokens with a marker pair.
type Highlighter struct {
	open  string
	close string
}

// New creates a highlighter. Empty markers fall back to defaults.
func New(open, close string) *Highlighter {
	if open == "" || close == "" {
		open, close = DefaultOpenMark, DefaultCloseMark
	}
	return &Highlighter{open: open, close: close}
}

// Apply attaches highlighted title/description fields to each hit.
// At most two fields per hit are highlighted, and only fields that
// actually contain a query token are included.
func (h *Highlighter) Apply(hits []result.Result, queryText string) []result.Result {
	tokens := keyword.Tokenize(queryText)
	if len(tokens) == 0 {
		return hits
	}

	out := make([]result.Result, len(hits))
	for i := range hits {
		s := hits[i].Scenario()
		var fields []result.Highlight
		if text, changed := h.mark(s.Title, tokens); changed {
			fields = append(fields, result.Highlight{Field: "title", Text: text})
		}
		if len(fields) < maxFieldsPerResult {
			if text, changed := h.mark(s.Description, tokens); changed {
				fields = append(fields, result.Highlight{Field: "description", Text: text})
			}
		}
		out[i] = hits[i].WithHighlights(fields)
	}
	return out
}

// mark wraps every case-insensitive token occurrence in text. Reports
// whether anything was wrapped. Matching walks text by rune and
// compares windows with EqualFold, so spans always sit on rune
// boundaries of the original text even when case folding changes byte
// widths (Ⱥ→ⱥ grows, İ→i shrinks).
func (h *Highlighter) mark(text string, tokens []string) (string, bool) {
	if text == "" {
		return text, false
	}

	// Rune boundaries of text; bounds[i+n] closes a window of n runes.
	bounds := make([]int, 0, len(text)+1)
	for i := range text {
		bounds = append(bounds, i)
	}
	bounds = append(bounds, len(text))

	// Collect non-overlapping match ranges per token, earliest-first.
	type span struct{ start, end int }
	var spans []span
	for _, tok := range tokens {
		n := utf8.RuneCountInString(tok)
		if n == 0 {
			continue
		}
		for bi := 0; bi+n < len(bounds); bi++ {
			start, end := bounds[bi], bounds[bi+n]
			if strings.EqualFold(text[start:end], tok) {
				spans = append(spans, span{start, end})
				bi += n - 1
			}
		}
	}
	if len(spans) == 0 {
		return text, false
	}

	// Order and merge overlapping spans so markers never nest.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j].start < spans[j-1].start; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}
	merged := spans[:1]
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}

	var b strings.Builder
	prev := 0
	for _, sp := range merged {
		b.WriteString(text[prev:sp.start])
		b.WriteString(h.open)
		b.WriteString(text[sp.start:sp.end])
		b.WriteString(h.close)
		prev = sp.end
	}
	b.WriteString(text[prev:])
	return b.String(), true
}
