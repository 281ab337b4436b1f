// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

package relevance

// ellipsis marks truncation at a snippet edge.
const ellipsis = "..."

// ExtractSnippets returns excerpt windows of text for display in search
// results. Text that already fits within maxLength (in runes) is returned
// whole as a single-element slice. Longer text is truncated to a maxLength
// window centered on the first match of any query term (or the text start
// when nothing matches), with an ellipsis appended at each truncated edge.
// Output is deterministic for identical inputs.
func ExtractSnippets(text, query string, maxLength int) []string {
	runes := []rune(text)
	if maxLength <= 0 || len(runes) <= maxLength {
		return []string{text}
	}

	// Window start is anchored on the earliest term match so the snippet
	// shows the reader why the document matched.
	start := 0
	if spans := matchSpans(text, Terms(query)); len(spans) > 0 {
		first := spans[0]
		start = first[0] - (maxLength-(first[1]-first[0]))/2
	}

	if start > len(runes)-maxLength {
		start = len(runes) - maxLength
	}
	if start < 0 {
		start = 0
	}
	end := start + maxLength

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = ellipsis + snippet
	}
	if end < len(runes) {
		snippet += ellipsis
	}

	return []string{snippet}
}
