// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package relevance

import "strings"

// Highlight markers wrapped around matched spans.
const (
	markStart = "<mark>"
	markEnd   = "</mark>"
)

// Highlight wraps every case-insensitive occurrence of every query term in
// <mark> tags. Overlapping or adjacent term matches are merged into one
// marked span, never nested. A blank query returns text unchanged.
func Highlight(text, query string) string {
	terms := Terms(query)
	if len(terms) == 0 || text == "" {
		return text
	}

	spans := matchSpans(text, terms)
	if len(spans) == 0 {
		return text
	}

	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text) + len(spans)*(len(markStart)+len(markEnd)))

	prev := 0
	for _, span := range spans {
		b.WriteString(string(runes[prev:span[0]]))
		b.WriteString(markStart)
		b.WriteString(string(runes[span[0]:span[1]]))
		b.WriteString(markEnd)
		prev = span[1]
	}
	b.WriteString(string(runes[prev:]))

	return b.String()
}
