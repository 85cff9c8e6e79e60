// Package importer converts real presentation exports (PDF, Markdown, HTML)
// into the JSON deck format the loader consumes. It is an offline data-prep
// step; the search service itself only ever reads the JSON output.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/deckworks/slidesearch/internal/deck"
)

// Importer converts one export file into raw slides.
type Importer interface {
	Import(r io.Reader, filename string) ([]deck.RawSlide, error)
}

// SupportedExtensions lists file extensions this tool can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate importer for a filename.
func ForFile(filename string) (Importer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFImporter{FallbackPdftotext: true}, nil
	case ".md", ".markdown":
		return &MarkdownImporter{}, nil
	case ".html", ".htm":
		return &HTMLImporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// newSlide numbers a slide and assigns a synthetic slide ID. Imported decks
// have no export-side IDs, and identity downstream is (deck, slideNumber)
// anyway.
func newSlide(number int, elements []deck.Element) deck.RawSlide {
	return deck.RawSlide{
		SlideNumber: number,
		SlideID:     fmt.Sprintf("s%d", number),
		Elements:    elements,
	}
}
