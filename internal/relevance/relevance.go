// Shelfmark - Personal Book Review Platform
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shelfmark

// Package relevance provides pure scoring, highlighting, and snippet
// extraction over caller-supplied document fields, plus canonical cache-key
// construction for search result pages. Nothing here touches storage or the
// network; the API layer feeds documents in and caches pages under the keys
// built here.
package relevance

import (
	"strings"
	"unicode"
)

// Field names recognized by Score. Any other field counts at content weight.
const (
	FieldTitle   = "title"
	FieldAuthor  = "author"
	FieldExcerpt = "excerpt"
	FieldContent = "content"
)

// Field weights in fixed descending order of semantic importance. The
// ordering (title > author > excerpt > content) is the contract; the exact
// constants are tuning.
var fieldWeights = map[string]float64{
	FieldTitle:   10,
	FieldAuthor:  5,
	FieldExcerpt: 3,
	FieldContent: 1,
}

const defaultWeight = 1.0

// Score returns a weighted term-frequency score for the document fields
// against the query. A blank query scores 0. Matching is case-insensitive;
// every occurrence of every whitespace-delimited query term counts.
func Score(fields map[string]string, query string) float64 {
	terms := Terms(query)
	if len(terms) == 0 {
		return 0
	}

	var score float64
	for name, text := range fields {
		if text == "" {
			continue
		}

		weight, ok := fieldWeights[name]
		if !ok {
			weight = defaultWeight
		}

		lowered := simpleLower(text)
		for _, term := range terms {
			score += float64(strings.Count(lowered, term)) * weight
		}
	}

	return score
}

// Terms splits a query into lowercased whitespace-delimited terms.
// A blank query yields nil.
func Terms(query string) []string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return nil
	}

	terms := make([]string, len(fields))
	for i, f := range fields {
		terms[i] = simpleLower(f)
	}
	return terms
}

// simpleLower lowercases rune by rune. Unlike strings.ToLower it never
// changes rune counts, which keeps match offsets aligned with the original
// text, and it is locale-independent.
func simpleLower(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// lowerRunes returns the rune slice of s with each rune lowered.
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// matchSpans returns the rune-index intervals [start, end) of every
// case-insensitive occurrence of every term in text, merged so overlapping
// and adjacent matches form a single span. Spans are returned in ascending
// order.
func matchSpans(text string, terms []string) [][2]int {
	lowered := lowerRunes(text)

	var spans [][2]int
	for _, term := range terms {
		termRunes := []rune(term)
		if len(termRunes) == 0 {
			continue
		}
		for i := 0; i+len(termRunes) <= len(lowered); i++ {
			if runesEqual(lowered[i:i+len(termRunes)], termRunes) {
				spans = append(spans, [2]int{i, i + len(termRunes)})
			}
		}
	}

	return mergeSpans(spans)
}

func runesEqual(a, b []rune) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mergeSpans sorts spans and merges any that overlap or touch.
func mergeSpans(spans [][2]int) [][2]int {
	if len(spans) <= 1 {
		return spans
	}

	// Insertion sort: span lists are tiny.
	for i := 1; i < len(spans); i++ {
		for j := i; j > 0 && spans[j][0] < spans[j-1][0]; j-- {
			spans[j], spans[j-1] = spans[j-1], spans[j]
		}
	}

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s[0] <= last[1] {
			if s[1] > last[1] {
				last[1] = s[1]
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
