package deck

// Descriptor identifies one deck in the decks.json manifest.
type Descriptor struct {
	FileName       string `json:"fileName"`
	DisplayName    string `json:"displayName"`
	PresentationID string `json:"presentationId"`
}

// Element is one content unit within a slide.
type Element struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// RawSlide is one slide as found in a deck export file. Slide identity is
// (deck display name, slide number): slideId alone is not unique across decks.
type RawSlide struct {
	SlideNumber int       `json:"slideNumber"`
	SlideID     string    `json:"slideId"`
	Notes       string    `json:"notes,omitempty"`
	Elements    []Element `json:"elements"`
}

// IndexRecord carries business metadata joined to a slide by slide number.
// It exists only for the global case studies deck.
type IndexRecord struct {
	SlideNumber int    `json:"slide_number"`
	Office      string `json:"office"`
	Client      string `json:"client"`
	Service     string `json:"service"`
	Type        string `json:"type"`
	Industry    string `json:"industry"`
	Notes       string `json:"notes"`
}

// SourceSlide is a raw slide tagged with its deck and, when available, the
// matching index record.
type SourceSlide struct {
	RawSlide
	Deck  Descriptor
	Index *IndexRecord
}
