// deckimport converts a presentation export (PDF, Markdown or HTML) into the
// JSON deck format and registers it in decks.json.
//
// Usage:
//
//	deckimport -in master-sales.pdf -name "Master Sales Deck" -data ./data
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deckworks/slidesearch/internal/deck"
	"github.com/deckworks/slidesearch/internal/importer"
)

func main() {
	var (
		in             = flag.String("in", "", "input file (.pdf, .md, .html)")
		name           = flag.String("name", "", "deck display name")
		dataDir        = flag.String("data", "data", "data directory holding decks.json")
		presentationID = flag.String("presentation-id", "", "optional source presentation ID")
	)
	flag.Parse()

	if *in == "" || *name == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(*in, *name, *dataDir, *presentationID); err != nil {
		fmt.Fprintln(os.Stderr, "deckimport:", err)
		os.Exit(1)
	}
}

func run(in, name, dataDir, presentationID string) error {
	imp, err := importer.ForFile(in)
	if err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	slides, err := imp.Import(f, filepath.Base(in))
	if err != nil {
		return fmt.Errorf("import %s: %w", in, err)
	}
	if len(slides) == 0 {
		return fmt.Errorf("no slides found in %s", in)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	fileName := deckFileName(name)
	export := struct {
		Slides []deck.RawSlide `json:"slides"`
	}{Slides: slides}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dataDir, fileName), data, 0o644); err != nil {
		return err
	}

	if err := updateManifest(dataDir, deck.Descriptor{
		FileName:       fileName,
		DisplayName:    name,
		PresentationID: presentationID,
	}); err != nil {
		return err
	}

	fmt.Printf("imported %d slides into %s\n", len(slides), fileName)
	return nil
}

// deckFileName slugifies a display name into a deck file name.
func deckFileName(name string) string {
	slug := strings.ToLower(name)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	slug = strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), "-"), "-")
	if slug == "" {
		slug = "deck"
	}
	return slug + ".json"
}

// updateManifest adds or replaces the manifest entry for d.
func updateManifest(dataDir string, d deck.Descriptor) error {
	path := filepath.Join(dataDir, deck.ManifestFile)

	var decks []deck.Descriptor
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &decks); err != nil {
			return fmt.Errorf("parse manifest: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	replaced := false
	for i := range decks {
		if decks[i].FileName == d.FileName {
			decks[i] = d
			replaced = true
			break
		}
	}
	if !replaced {
		decks = append(decks, d)
	}

	data, err := json.MarshalIndent(decks, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
