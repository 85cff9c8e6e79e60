package enrich

import (
	"strings"

	"github.com/deckworks/slidesearch/internal/deck"
)

// Element types as they appear in deck exports.
const (
	ElementText  = "TEXT"
	ElementImage = "IMAGE"
	ElementTable = "TABLE"
)

const maxMetrics = 3

const servicesMarker = "Services Used:"

// Metric is one numeric-bearing element kept for display.
type Metric struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// Slide is the enriched, read-only search entity. Index-derived fields are
// set only when an index record matched; their zero value means absent.
type Slide struct {
	SlideNumber int            `json:"slideNumber"`
	SlideID     string         `json:"slideId"`
	Notes       string         `json:"notes,omitempty"`
	Elements    []deck.Element `json:"elements,omitempty"`

	DeckDisplayName string `json:"deckDisplayName"`
	PresentationID  string `json:"presentationId"`

	Office       string `json:"office,omitempty"`
	Client       string `json:"client,omitempty"`
	IndexService string `json:"indexService,omitempty"`
	BusinessType string `json:"businessType,omitempty"`
	Industry     string `json:"industry,omitempty"`
	IndexNotes   string `json:"indexNotes,omitempty"`

	Text string `json:"text"`
	// EnrichedText is a ranking signal only and is never serialized.
	EnrichedText string   `json:"-"`
	Category     string   `json:"category"`
	Metrics      []Metric `json:"metrics"`
	Services     []string `json:"services"`
	ElementCount int      `json:"elementCount"`
	HasImages    bool     `json:"hasImages"`
	HasTables    bool     `json:"hasTables"`
}

// Enrich derives the searchable slide from one raw slide. It is a pure
// function of its input: enriching the same source twice yields the same
// slide, and slides can be enriched in any order.
func Enrich(src deck.SourceSlide) Slide {
	s := Slide{
		SlideNumber:     src.SlideNumber,
		SlideID:         src.SlideID,
		Notes:           src.Notes,
		Elements:        src.Elements,
		DeckDisplayName: src.Deck.DisplayName,
		PresentationID:  src.Deck.PresentationID,
	}
	if src.Index != nil {
		s.Office = src.Index.Office
		s.Client = src.Index.Client
		s.IndexService = src.Index.Service
		s.BusinessType = src.Index.Type
		s.Industry = src.Index.Industry
		s.IndexNotes = src.Index.Notes
	}

	var texts []string
	for _, el := range src.Elements {
		if strings.TrimSpace(el.Text) == "" {
			continue
		}
		texts = append(texts, el.Text)
		s.ElementCount++
	}
	s.Text = strings.Join(texts, " ")
	s.EnrichedText = enrichText(s.Text, &s)
	s.Category = Classify(s.Text, src.Notes, src.Deck.DisplayName, src.Elements, src.Index)
	s.Metrics = extractMetrics(src.Elements)
	s.Services = extractServices(src.Elements)

	for _, el := range src.Elements {
		switch el.Type {
		case ElementImage:
			s.HasImages = true
		case ElementTable:
			s.HasTables = true
		}
	}
	return s
}

// EnrichAll enriches every source slide, preserving load order.
func EnrichAll(srcs []deck.SourceSlide) []Slide {
	slides := make([]Slide, len(srcs))
	for i, src := range srcs {
		slides[i] = Enrich(src)
	}
	return slides
}

// enrichText appends index metadata to the extracted text so a query for a
// client or industry name also hits slides that never spell it out.
func enrichText(base string, s *Slide) string {
	enriched := base
	for _, extra := range []string{s.Client, s.Industry, s.IndexService, s.BusinessType, s.Office} {
		if extra != "" {
			enriched += " " + extra
		}
	}
	return enriched
}

func extractMetrics(elements []deck.Element) []Metric {
	var metrics []Metric
	for _, el := range elements {
		if el.Text == "" || !containsDigit(el.Text) {
			continue
		}
		metrics = append(metrics, Metric{Text: el.Text, Type: el.Type})
		if len(metrics) == maxMetrics {
			break
		}
	}
	return metrics
}

func extractServices(elements []deck.Element) []string {
	var raw string
	for _, el := range elements {
		if strings.Contains(el.Text, servicesMarker) {
			raw = el.Text
			break
		}
	}
	if raw == "" {
		return nil
	}
	raw = strings.TrimSpace(strings.Replace(raw, servicesMarker, "", 1))

	var services []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ',' || r == '&'
	}) {
		if part = strings.TrimSpace(part); part != "" {
			services = append(services, part)
		}
	}
	return services
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
