package importer

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/deckworks/slidesearch/internal/deck"
)

// HTMLImporter handles HTML exports. Each heading (h1-h6) starts a new
// slide with the heading as its first element; paragraph-level content
// becomes TEXT elements on the current slide.
type HTMLImporter struct{}

func (p *HTMLImporter) Import(r io.Reader, filename string) ([]deck.RawSlide, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var slides []deck.RawSlide
	var elements []deck.Element

	flush := func() {
		if len(elements) == 0 {
			return
		}
		slides = append(slides, newSlide(len(slides)+1, elements))
		elements = nil
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if isHeading(n.Data) {
				flush()
				if t := textContent(n); t != "" {
					elements = append(elements, deck.Element{Type: "TEXT", Text: t})
				}
				return
			}
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "img":
				elements = append(elements, deck.Element{Type: "IMAGE"})
				return
			case "table":
				if t := textContent(n); t != "" {
					elements = append(elements, deck.Element{Type: "TABLE", Text: t})
				}
				return
			case "p", "li", "blockquote":
				if t := textContent(n); t != "" {
					elements = append(elements, deck.Element{Type: "TEXT", Text: t})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	flush()

	return slides, nil
}

func isHeading(tag string) bool {
	switch tag {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
