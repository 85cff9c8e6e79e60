package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/deckworks/slidesearch/internal/enrich"
)

// SystemPrompt pins the reply contract: a bare JSON object with one
// "relevantSlides" array of {slideNumber, deckDisplayName} pairs.
const SystemPrompt = `You are an intelligent presentation assistant. The user will provide a query. Your task is to analyze the following JSON data which contains slides from MULTIPLE presentations and identify the slides that are most relevant to the user's query.

Each slide has:
- text: extracted content from all slide elements
- category: automatically detected category (Pricing, Features, Case Studies, etc.)
- notes: speaker notes
- deckDisplayName: the presentation deck name
- slideNumber: the slide number

Respond with ONLY a JSON object containing a single key "relevantSlides". This key should hold an array of objects, where each object has two keys: "slideNumber" (the number of the relevant slide) and "deckDisplayName" (the name of the deck the slide belongs to).

Prioritize slides based on:
1. Direct text content matches
2. Category relevance to the query
3. Context from notes

It is crucial that you identify the correct source deck for each slide.

Do not add any explanation or introductory text. Only the JSON object is required. If no slides are relevant, return an empty array.

Example response: {"relevantSlides": [{"slideNumber": 15, "deckDisplayName": "Master Sales Deck"}, {"slideNumber": 8, "deckDisplayName": "Global Case Studies"}]}`

// slideProjection is the subset of enriched fields sent upstream. One
// projection serves every caller so the data the model sees never drifts
// from what the local ranker indexes.
type slideProjection struct {
	SlideNumber     int      `json:"slideNumber"`
	DeckDisplayName string   `json:"deckDisplayName"`
	Text            string   `json:"text"`
	Category        string   `json:"category"`
	Services        []string `json:"services,omitempty"`
	Client          string   `json:"client,omitempty"`
	Industry        string   `json:"industry,omitempty"`
	BusinessType    string   `json:"businessType,omitempty"`
	Office          string   `json:"office,omitempty"`
	Notes           string   `json:"notes,omitempty"`
}

// BuildUserPrompt serializes the query and every slide's projection into the
// user-turn prompt.
func BuildUserPrompt(query string, slides []enrich.Slide) (string, error) {
	projections := make([]slideProjection, len(slides))
	for i := range slides {
		s := &slides[i]
		projections[i] = slideProjection{
			SlideNumber:     s.SlideNumber,
			DeckDisplayName: s.DeckDisplayName,
			Text:            s.Text,
			Category:        s.Category,
			Services:        s.Services,
			Client:          s.Client,
			Industry:        s.Industry,
			BusinessType:    s.BusinessType,
			Office:          s.Office,
			Notes:           s.Notes,
		}
	}
	data, err := json.Marshal(projections)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("User Query: %q\n\nAll Slide Data:\n%s", query, data), nil
}
