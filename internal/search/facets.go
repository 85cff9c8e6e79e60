package search

import (
	"sort"
	"strings"
)

// FacetValue is one selectable filter value with its slide count.
type FacetValue struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Facets lists the distinct values per filter dimension. Optional dimensions
// (office, client, business type, service, industry) only count slides that
// carry the field, so decks without index data contribute nothing there.
type Facets struct {
	Decks         []FacetValue `json:"decks"`
	Categories    []FacetValue `json:"categories"`
	Services      []FacetValue `json:"services"`
	Offices       []FacetValue `json:"offices"`
	Clients       []FacetValue `json:"clients"`
	BusinessTypes []FacetValue `json:"businessTypes"`
	Industries    []FacetValue `json:"industries"`
}

// Facets computes filter values and counts over the whole slide set.
func (ix *Index) Facets() Facets {
	decks := make(map[string]int)
	categories := make(map[string]int)
	services := make(map[string]int)
	offices := make(map[string]int)
	clients := make(map[string]int)
	businessTypes := make(map[string]int)
	industryValues := make(map[string]bool)

	for i := range ix.slides {
		s := &ix.slides[i]
		decks[s.DeckDisplayName]++
		categories[s.Category]++
		for _, svc := range s.Services {
			services[svc]++
		}
		if s.Office != "" {
			offices[s.Office]++
		}
		if s.Client != "" {
			clients[s.Client]++
		}
		if s.BusinessType != "" {
			businessTypes[s.BusinessType]++
		}
		for _, part := range strings.FieldsFunc(s.Industry, func(r rune) bool {
			return r == ',' || r == '&'
		}) {
			if part = strings.TrimSpace(part); part != "" {
				industryValues[part] = true
			}
		}
	}

	// Industry counts use substring containment, matching the industry
	// filter semantics rather than split-value equality.
	industries := make([]FacetValue, 0, len(industryValues))
	for v := range industryValues {
		count := 0
		lower := strings.ToLower(v)
		for i := range ix.slides {
			if ix.slides[i].Industry != "" && strings.Contains(strings.ToLower(ix.slides[i].Industry), lower) {
				count++
			}
		}
		industries = append(industries, FacetValue{Value: v, Count: count})
	}
	sort.Slice(industries, func(a, b int) bool { return industries[a].Value < industries[b].Value })

	return Facets{
		Decks:         sortedFacet(decks),
		Categories:    sortedFacet(categories),
		Services:      sortedFacet(services),
		Offices:       sortedFacet(offices),
		Clients:       sortedFacet(clients),
		BusinessTypes: sortedFacet(businessTypes),
		Industries:    industries,
	}
}

func sortedFacet(counts map[string]int) []FacetValue {
	out := make([]FacetValue, 0, len(counts))
	for v, c := range counts {
		out = append(out, FacetValue{Value: v, Count: c})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Value < out[b].Value })
	return out
}
