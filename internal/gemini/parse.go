package gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/deckworks/slidesearch/internal/enrich"
)

// SlideRef identifies one slide in a model reply. Both fields together form
// the identity: slide numbers repeat across decks.
type SlideRef struct {
	SlideNumber     int    `json:"slideNumber"`
	DeckDisplayName string `json:"deckDisplayName"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ParseResponse extracts slide references from a raw generateContent body.
// The model's text may be wrapped in code fences; those are stripped before
// parsing. A reply that parses but lacks the relevantSlides array (or holds
// it in the wrong shape) means zero results, not an error.
func ParseResponse(raw []byte) ([]SlideRef, error) {
	var resp generateResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received")
	}
	text := stripCodeBlock(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return nil, fmt.Errorf("no content received")
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("parse slide references: %w (raw: %s)", err, truncate(text, 200))
	}
	refsRaw, ok := payload["relevantSlides"]
	if !ok {
		return nil, nil
	}
	var refs []SlideRef
	if err := json.Unmarshal(refsRaw, &refs); err != nil {
		return nil, nil
	}
	return refs, nil
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return s
}

// Resolve maps references back to in-memory slides by exact equality on
// (slideNumber, deckDisplayName) jointly. References that do not resolve —
// stale or hallucinated — are dropped silently; that tolerance is part of
// the contract.
func Resolve(refs []SlideRef, slides []enrich.Slide) []enrich.Slide {
	type key struct {
		number int
		deck   string
	}
	lookup := make(map[key]int, len(slides))
	for i := range slides {
		k := key{slides[i].SlideNumber, slides[i].DeckDisplayName}
		if _, ok := lookup[k]; !ok {
			lookup[k] = i
		}
	}

	var out []enrich.Slide
	for _, ref := range refs {
		if i, ok := lookup[key{ref.SlideNumber, ref.DeckDisplayName}]; ok {
			out = append(out, slides[i])
		}
	}
	return out
}
