package search

import (
	"strings"

	"github.com/xrash/smetrics"
)

const (
	// scoreThreshold bounds how far from the query a fragment may drift.
	// Normalized edit distance above this is not a match.
	scoreThreshold = 0.4
	// minQueryLength avoids noise matches on single characters.
	minQueryLength = 2
)

// noMatch is the sentinel score for "field did not match".
const noMatch = -1.0

// fieldScore rates how well query matches anywhere inside text. Both inputs
// must already be lower-cased. Returns a normalized score in [0, 1] where 0
// is an exact substring hit, or noMatch when nothing comes close enough.
//
// Approximate matching slides windows of roughly query length across the
// text and takes the best Wagner-Fischer edit distance, so transpositions
// and small misspellings still land within the threshold.
func fieldScore(query, text string) float64 {
	if text == "" {
		return noMatch
	}
	if strings.Contains(text, query) {
		return 0
	}

	q := []rune(query)
	t := []rune(text)
	best := -1
	for w := len(q) - 1; w <= len(q)+1; w++ {
		if w < minQueryLength || w > len(t) {
			continue
		}
		for i := 0; i+w <= len(t); i++ {
			d := smetrics.WagnerFischer(query, string(t[i:i+w]), 1, 1, 1)
			if best < 0 || d < best {
				best = d
			}
			if best == 1 {
				// Nothing below 1 is possible here: distance 0 would have
				// been an exact substring hit.
				break
			}
		}
	}
	if best < 0 {
		return noMatch
	}
	norm := float64(best) / float64(len(q))
	if norm > scoreThreshold {
		return noMatch
	}
	return norm
}
