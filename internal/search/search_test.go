package search

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/deckworks/slidesearch/internal/deck"
	"github.com/deckworks/slidesearch/internal/enrich"
)

func fixtureSlides() []enrich.Slide {
	return []enrich.Slide{
		{
			SlideNumber:     1,
			DeckDisplayName: "Master Sales Deck",
			Text:            "Our pricing plans are flexible",
			EnrichedText:    "Our pricing plans are flexible",
			Category:        "Pricing",
		},
		{
			SlideNumber:     2,
			DeckDisplayName: "Master Sales Deck",
			Text:            "Demo pricing available on request",
			EnrichedText:    "Demo pricing available on request",
			Category:        "Pricing",
		},
		{
			SlideNumber:     1,
			DeckDisplayName: "Product Deck",
			Text:            "Live demo walkthrough",
			EnrichedText:    "Live demo walkthrough",
			Category:        "Demos",
		},
		{
			SlideNumber:     1,
			DeckDisplayName: "Global Case Studies",
			Text:            "Acme grew organic traffic",
			EnrichedText:    "Acme grew organic traffic Acme Retail & Fashion SEO eCommerce Berlin",
			Category:        "eCommerce",
			Client:          "Acme",
			Industry:        "Retail & Fashion",
			IndexService:    "SEO",
			BusinessType:    "eCommerce",
			Office:          "Berlin",
			Services:        []string{"SEO", "PPC"},
		},
		{
			SlideNumber:     2,
			DeckDisplayName: "Product Deck",
			Text:            "Unrelated words",
			EnrichedText:    "Unrelated words",
			Notes:           "quarterly report",
			Category:        "General",
		},
		{
			SlideNumber:     3,
			DeckDisplayName: "Product Deck",
			Text:            "quarterly report",
			EnrichedText:    "quarterly report",
			Category:        "General",
		},
	}
}

func resultKeys(results []Result) []string {
	keys := make([]string, len(results))
	for i, r := range results {
		keys[i] = fmt.Sprintf("%s#%d", r.Slide.DeckDisplayName, r.Slide.SlideNumber)
	}
	return keys
}

func TestSearch_ExactQuery(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	results := ix.Search("pricing", Filters{})

	want := []string{"Master Sales Deck#1", "Master Sales Deck#2"}
	if got := resultKeys(results); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, r := range results {
		if !r.Scored {
			t.Error("expected scored results for a non-empty query")
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score < results[i-1].Score {
			t.Error("expected scores in ascending order")
		}
	}
}

func TestSearch_FuzzyQuery(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	results := ix.Search("pricng", Filters{})
	if len(results) != 2 {
		t.Fatalf("expected 2 fuzzy results, got %d", len(results))
	}
	for _, r := range results {
		if r.Score <= 0 {
			t.Errorf("expected nonzero score for fuzzy match, got %v", r.Score)
		}
	}
}

func TestSearch_ExactBeatsFuzzy(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	exact := ix.Search("pricing", Filters{})
	fuzzy := ix.Search("pricng", Filters{})
	if len(exact) == 0 || len(fuzzy) == 0 {
		t.Fatal("expected results for both queries")
	}
	if exact[0].Score >= fuzzy[0].Score {
		t.Errorf("expected exact score %v below fuzzy score %v", exact[0].Score, fuzzy[0].Score)
	}
}

func TestSearch_HeavyFieldOutranksLightField(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	results := ix.Search("quarterly", Filters{})

	// Same phrase in the text of one slide and only the notes of another:
	// the text hit ranks first.
	want := []string{"Product Deck#3", "Product Deck#2"}
	if got := resultKeys(results); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if results[0].Matches[0].Field != "enrichedText" {
		t.Errorf("expected strongest field reported first, got %q", results[0].Matches[0].Field)
	}
	if results[1].Matches[0].Field != "notes" {
		t.Errorf("expected notes match, got %q", results[1].Matches[0].Field)
	}
}

func TestSearch_IndexMetadataIsSearchable(t *testing.T) {
	// "fashion" appears only in the industry metadata folded into the
	// enriched text, never in the slide body.
	ix := NewIndex(fixtureSlides())
	results := ix.Search("fashion", Filters{})
	if len(results) != 1 || results[0].Slide.Client != "Acme" {
		t.Fatalf("expected the Acme case study, got %v", resultKeys(results))
	}
}

func TestSearch_EmptyQueryBrowsesInLoadOrder(t *testing.T) {
	slides := make([]enrich.Slide, 12)
	for i := range slides {
		slides[i] = enrich.Slide{SlideNumber: i + 1, DeckDisplayName: "Big Deck", Category: "General"}
	}
	ix := NewIndex(slides)

	results := ix.Search("", Filters{})
	if len(results) != BrowseLimit {
		t.Fatalf("expected %d browse results, got %d", BrowseLimit, len(results))
	}
	for i, r := range results {
		if r.Scored {
			t.Error("expected unscored browse results")
		}
		if r.Slide.SlideNumber != i+1 {
			t.Errorf("expected load order, got slide %d at position %d", r.Slide.SlideNumber, i)
		}
	}
}

func TestSearch_EmptyQueryAppliesFilters(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	results := ix.Search("", Filters{Category: "Demos"})
	if len(results) != 1 || results[0].Slide.Category != "Demos" {
		t.Fatalf("expected the single Demos slide, got %v", resultKeys(results))
	}
}

func TestSearch_FilterIntersectsRankedResults(t *testing.T) {
	ix := NewIndex(fixtureSlides())

	unfiltered := ix.Search("demo", Filters{})
	filtered := ix.Search("demo", Filters{Category: "Pricing"})

	var want []Result
	for _, r := range unfiltered {
		if r.Slide.Category == "Pricing" {
			want = append(want, r)
		}
	}
	if !reflect.DeepEqual(filtered, want) {
		t.Errorf("expected filtered results %v, got %v", resultKeys(want), resultKeys(filtered))
	}
	if len(filtered) != 1 || filtered[0].Slide.SlideNumber != 2 {
		t.Errorf("expected only the sales demo slide, got %v", resultKeys(filtered))
	}
}

func TestSearch_ResultCap(t *testing.T) {
	slides := make([]enrich.Slide, QueryLimit+10)
	for i := range slides {
		slides[i] = enrich.Slide{
			SlideNumber:     i + 1,
			DeckDisplayName: "Big Deck",
			Text:            "pricing plans",
			EnrichedText:    "pricing plans",
			Category:        "Pricing",
		}
	}
	ix := NewIndex(slides)
	if got := len(ix.Search("pricing", Filters{})); got != QueryLimit {
		t.Errorf("expected %d results, got %d", QueryLimit, got)
	}
}

func TestSearch_ShortQueryMatchesNothing(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	if got := ix.Search("p", Filters{}); len(got) != 0 {
		t.Errorf("expected no results for a one-rune query, got %d", len(got))
	}
}

func TestSearch_EmptyCorpus(t *testing.T) {
	ix := NewIndex(nil)
	if got := ix.Search("pricing", Filters{}); len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
	if got := ix.Search("", Filters{}); len(got) != 0 {
		t.Errorf("expected no browse results, got %d", len(got))
	}
}

func TestFilters_Match(t *testing.T) {
	slides := fixtureSlides()
	caseStudy := &slides[3]
	salesSlide := &slides[0]

	tests := []struct {
		name  string
		f     Filters
		slide *enrich.Slide
		want  bool
	}{
		{"zero value matches", Filters{}, salesSlide, true},
		{"All matches", Filters{Category: All, Deck: All}, salesSlide, true},
		{"deck equality", Filters{Deck: "Master Sales Deck"}, salesSlide, true},
		{"deck mismatch", Filters{Deck: "Product Deck"}, salesSlide, false},
		{"category equality", Filters{Category: "eCommerce"}, caseStudy, true},
		{"service membership", Filters{Service: "PPC"}, caseStudy, true},
		{"service not listed", Filters{Service: "Email"}, caseStudy, false},
		{"office equality", Filters{Office: "Berlin"}, caseStudy, true},
		{"client equality", Filters{Client: "Acme"}, caseStudy, true},
		{"business type equality", Filters{BusinessType: "eCommerce"}, caseStudy, true},
		{"industry substring is case-insensitive", Filters{Industry: "retail"}, caseStudy, true},
		{"industry requires the field", Filters{Industry: "retail"}, salesSlide, false},
		{"dimensions AND together", Filters{Client: "Acme", Office: "London"}, caseStudy, false},
	}
	for _, tt := range tests {
		if got := tt.f.Match(tt.slide); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestMatchPercent(t *testing.T) {
	if got := MatchPercent(0); got != 100 {
		t.Errorf("expected 100 for a perfect score, got %d", got)
	}
	if got := MatchPercent(0.05); got != 95 {
		t.Errorf("expected 95, got %d", got)
	}
}

func TestSuggestions_DedupeAndOrder(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	results := ix.Search("quarterly", Filters{})

	// Both hits carry the same matched value, so one suggestion survives.
	want := []string{"quarterly report..."}
	if got := Suggestions(results); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSuggestions_TruncatesLongValues(t *testing.T) {
	long := ""
	for i := 0; i < 70; i++ {
		long += "x"
	}
	results := []Result{{Matches: []Match{{Field: "text", Value: long}}}}
	got := Suggestions(results)
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if len([]rune(got[0])) != suggestionRunes+3 {
		t.Errorf("expected %d runes, got %d", suggestionRunes+3, len([]rune(got[0])))
	}
}

func TestSuggestions_CappedAtFive(t *testing.T) {
	var results []Result
	for i := 0; i < 8; i++ {
		results = append(results, Result{Matches: []Match{{Field: "text", Value: fmt.Sprintf("value %d", i)}}})
	}
	if got := Suggestions(results); len(got) != suggestionLimit {
		t.Errorf("expected %d suggestions, got %d", suggestionLimit, len(got))
	}
}

func TestStore_ReplaceSwapsSnapshot(t *testing.T) {
	decks := []deck.Descriptor{{FileName: "a.json", DisplayName: "A"}}
	store := NewStore(decks, fixtureSlides())

	old := store.Index()
	if len(old.Slides()) != 6 {
		t.Fatalf("expected 6 slides, got %d", len(old.Slides()))
	}

	store.Replace([]deck.Descriptor{{FileName: "b.json", DisplayName: "B"}}, fixtureSlides()[:2])

	if len(store.Index().Slides()) != 2 {
		t.Errorf("expected 2 slides after replace, got %d", len(store.Index().Slides()))
	}
	// The old snapshot stays usable for in-flight requests.
	if len(old.Slides()) != 6 {
		t.Errorf("expected old snapshot untouched, got %d slides", len(old.Slides()))
	}
	if got := store.Decks(); len(got) != 1 || got[0].DisplayName != "B" {
		t.Errorf("expected replaced deck list, got %v", got)
	}
}

func TestFacets(t *testing.T) {
	ix := NewIndex(fixtureSlides())
	f := ix.Facets()

	wantDecks := []FacetValue{
		{Value: "Global Case Studies", Count: 1},
		{Value: "Master Sales Deck", Count: 2},
		{Value: "Product Deck", Count: 3},
	}
	if !reflect.DeepEqual(f.Decks, wantDecks) {
		t.Errorf("expected decks %v, got %v", wantDecks, f.Decks)
	}

	wantServices := []FacetValue{{Value: "PPC", Count: 1}, {Value: "SEO", Count: 1}}
	if !reflect.DeepEqual(f.Services, wantServices) {
		t.Errorf("expected services %v, got %v", wantServices, f.Services)
	}

	if len(f.Offices) != 1 || f.Offices[0].Value != "Berlin" || f.Offices[0].Count != 1 {
		t.Errorf("expected single Berlin office, got %v", f.Offices)
	}
	if len(f.Clients) != 1 || f.Clients[0].Value != "Acme" {
		t.Errorf("expected single Acme client, got %v", f.Clients)
	}

	// Compound industry values split into selectable parts.
	wantIndustries := []FacetValue{{Value: "Fashion", Count: 1}, {Value: "Retail", Count: 1}}
	if !reflect.DeepEqual(f.Industries, wantIndustries) {
		t.Errorf("expected industries %v, got %v", wantIndustries, f.Industries)
	}
}
