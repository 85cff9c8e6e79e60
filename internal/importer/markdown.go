package importer

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/deckworks/slidesearch/internal/deck"
)

// MarkdownImporter handles Markdown exports using goldmark. Thematic breaks
// (---) separate slides, the common convention of Markdown slide tooling;
// each heading or block inside a slide becomes one TEXT element.
type MarkdownImporter struct{}

func (p *MarkdownImporter) Import(r io.Reader, filename string) ([]deck.RawSlide, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var slides []deck.RawSlide
	var elements []deck.Element

	flush := func() {
		if len(elements) == 0 {
			return
		}
		slides = append(slides, newSlide(len(slides)+1, elements))
		elements = nil
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.ThematicBreak:
			flush()
		case *ast.Heading:
			title := string(node.Text(src))
			if title != "" {
				elements = append(elements, deck.Element{Type: "TEXT", Text: title})
			}
		default:
			if t := extractText(n, src); t != "" {
				elements = append(elements, deck.Element{Type: "TEXT", Text: t})
			}
		}
	}
	flush()

	return slides, nil
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// carry their own source lines; container blocks (lists, quotes) only have
// children.
func extractText(n ast.Node, src []byte) string {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		var buf bytes.Buffer
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	var parts []string
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t := extractText(c, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
