package search

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/deckworks/slidesearch/internal/enrich"
)

// All is the filter value meaning "no constraint on this dimension".
const All = "All"

const (
	// QueryLimit caps fuzzy results before filters apply.
	QueryLimit = 50
	// BrowseLimit caps the unscored listing returned for an empty query.
	BrowseLimit = 10
)

// Filters holds one selection per categorical dimension. The zero value (or
// All in any field) applies no constraint; active dimensions AND together.
type Filters struct {
	Deck         string
	Category     string
	Service      string
	Office       string
	Client       string
	BusinessType string
	Industry     string
}

func active(v string) bool { return v != "" && v != All }

// Match reports whether a slide passes every active filter.
func (f Filters) Match(s *enrich.Slide) bool {
	if active(f.Category) && s.Category != f.Category {
		return false
	}
	if active(f.Deck) && s.DeckDisplayName != f.Deck {
		return false
	}
	if active(f.Service) && !slices.Contains(s.Services, f.Service) {
		return false
	}
	if active(f.Office) && s.Office != f.Office {
		return false
	}
	if active(f.Client) && s.Client != f.Client {
		return false
	}
	if active(f.BusinessType) && s.BusinessType != f.BusinessType {
		return false
	}
	if active(f.Industry) {
		if s.Industry == "" || !strings.Contains(strings.ToLower(s.Industry), strings.ToLower(f.Industry)) {
			return false
		}
	}
	return true
}

// searchFields lists the weighted fields, highest weight first. The ordering
// doubles as match-report order, so the first reported match is always the
// strongest field.
var searchFields = []struct {
	name   string
	weight float64
	value  func(*enrich.Slide) string
}{
	{"enrichedText", 0.5, func(s *enrich.Slide) string { return s.EnrichedText }},
	{"text", 0.3, func(s *enrich.Slide) string { return s.Text }},
	{"client", 0.2, func(s *enrich.Slide) string { return s.Client }},
	{"industry", 0.15, func(s *enrich.Slide) string { return s.Industry }},
	{"category", 0.1, func(s *enrich.Slide) string { return s.Category }},
	{"indexService", 0.1, func(s *enrich.Slide) string { return s.IndexService }},
	{"businessType", 0.1, func(s *enrich.Slide) string { return s.BusinessType }},
	{"office", 0.05, func(s *enrich.Slide) string { return s.Office }},
	{"deckDisplayName", 0.05, func(s *enrich.Slide) string { return s.DeckDisplayName }},
	{"notes", 0.05, func(s *enrich.Slide) string { return s.Notes }},
}

// Match names a field that matched and the full field value it matched in.
type Match struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Result is one ranked slide. Score is 0..1, lower is better; Scored is
// false for unscored browse results (empty query).
type Result struct {
	Slide   enrich.Slide `json:"slide"`
	Score   float64      `json:"score"`
	Scored  bool         `json:"scored"`
	Matches []Match      `json:"matches,omitempty"`
}

// Index is an immutable search view over one enriched slide set. Field text
// is lower-cased once at build time.
type Index struct {
	slides []enrich.Slide
	docs   [][]string
}

// NewIndex builds an index over slides in load order.
func NewIndex(slides []enrich.Slide) *Index {
	docs := make([][]string, len(slides))
	for i := range slides {
		vals := make([]string, len(searchFields))
		for j := range searchFields {
			vals[j] = strings.ToLower(searchFields[j].value(&slides[i]))
		}
		docs[i] = vals
	}
	return &Index{slides: slides, docs: docs}
}

// Slides returns the underlying slide set in load order.
func (ix *Index) Slides() []enrich.Slide { return ix.slides }

// Search ranks slides against query and intersects with the active filters.
// An empty query skips ranking and returns the first BrowseLimit filtered
// slides, unscored, in load order.
func (ix *Index) Search(query string, f Filters) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		var out []Result
		for i := range ix.slides {
			if !f.Match(&ix.slides[i]) {
				continue
			}
			out = append(out, Result{Slide: ix.slides[i]})
			if len(out) == BrowseLimit {
				break
			}
		}
		return out
	}

	var ranked []Result
	q := strings.ToLower(query)
	if len([]rune(q)) >= minQueryLength {
		for i := range ix.slides {
			r, ok := ix.score(q, i)
			if ok {
				ranked = append(ranked, r)
			}
		}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].Score < ranked[b].Score })
	if len(ranked) > QueryLimit {
		ranked = ranked[:QueryLimit]
	}

	out := make([]Result, 0, len(ranked))
	for _, r := range ranked {
		if f.Match(&r.Slide) {
			out = append(out, r)
		}
	}
	return out
}

// score rates one slide against the query. The slide score is the best
// weight-adjusted field score; the adjustment (1-w)*(s+0.1) keeps a hit on a
// heavy field ahead of the same hit on a light one while staying in 0..1.
func (ix *Index) score(query string, i int) (Result, bool) {
	var matches []Match
	best := noMatch
	for j := range searchFields {
		s := fieldScore(query, ix.docs[i][j])
		if s < 0 {
			continue
		}
		adj := (1 - searchFields[j].weight) * (s + 0.1)
		if best < 0 || adj < best {
			best = adj
		}
		matches = append(matches, Match{Field: searchFields[j].name, Value: searchFields[j].value(&ix.slides[i])})
	}
	if best < 0 {
		return Result{}, false
	}
	return Result{Slide: ix.slides[i], Score: best, Scored: true, Matches: matches}, true
}

// MatchPercent converts a score to the 0-100 display value.
func MatchPercent(score float64) int {
	return int(math.Round((1 - score) * 100))
}

const (
	suggestionLimit = 5
	suggestionRunes = 60
)

// Suggestions derives autocomplete entries from the top results: first
// matched field value of each, truncated, deduplicated in first-seen order.
func Suggestions(results []Result) []string {
	seen := make(map[string]bool)
	var out []string
	for i, r := range results {
		if i == suggestionLimit {
			break
		}
		if len(r.Matches) == 0 {
			continue
		}
		v := []rune(r.Matches[0].Value)
		if len(v) > suggestionRunes {
			v = v[:suggestionRunes]
		}
		s := string(v) + "..."
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
