package deck

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ManifestFile lists the decks to load.
	ManifestFile = "decks.json"
	// IndexFile is the optional business-metadata index for the global case
	// studies deck. Its absence is not an error.
	IndexFile = "global-case-studies-index.json"
	// IndexDeckFile is the one deck the index applies to, matched by exact
	// file-name equality.
	IndexDeckFile = "global-case-studies.json"
)

type deckExport struct {
	Slides []RawSlide `json:"slides"`
}

// Load reads the manifest and every deck file beneath dir. Deck files are
// read concurrently; a single failed read fails the whole load, so callers
// never see a partial deck set. The index file is attached to slides of the
// global case studies deck when present and silently skipped otherwise.
func Load(ctx context.Context, dir string, log *slog.Logger) ([]Descriptor, []SourceSlide, error) {
	manifest, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, nil, fmt.Errorf("read manifest: %w", err)
	}
	var decks []Descriptor
	if err := json.Unmarshal(manifest, &decks); err != nil {
		return nil, nil, fmt.Errorf("parse manifest: %w", err)
	}

	index := loadIndex(dir, log)

	type deckResult struct {
		idx    int
		slides []SourceSlide
		err    error
	}
	results := make(chan deckResult, len(decks))

	for i, d := range decks {
		go func(i int, d Descriptor) {
			slides, err := loadDeck(dir, d, index)
			results <- deckResult{idx: i, slides: slides, err: err}
		}(i, d)
	}

	// Join on all reads before returning anything.
	byDeck := make([][]SourceSlide, len(decks))
	var firstErr error
	for range decks {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		case r := <-results:
			if r.err != nil && firstErr == nil {
				firstErr = r.err
			}
			byDeck[r.idx] = r.slides
		}
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}

	var all []SourceSlide
	for _, slides := range byDeck {
		all = append(all, slides...)
	}
	log.Info("loaded decks", "decks", len(decks), "slides", len(all))
	return decks, all, nil
}

// loadIndex reads the optional index file and returns a slide-number lookup.
// Missing or unparseable index data degrades to nil.
func loadIndex(dir string, log *slog.Logger) map[int]*IndexRecord {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		log.Info("no index file found, proceeding without index data")
		return nil
	}
	var records []IndexRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Info("index file unparseable, proceeding without index data", "error", err)
		return nil
	}
	lookup := make(map[int]*IndexRecord, len(records))
	for i := range records {
		lookup[records[i].SlideNumber] = &records[i]
	}
	return lookup
}

func loadDeck(dir string, d Descriptor, index map[int]*IndexRecord) ([]SourceSlide, error) {
	data, err := os.ReadFile(filepath.Join(dir, d.FileName))
	if err != nil {
		return nil, fmt.Errorf("read deck %s: %w", d.FileName, err)
	}
	var export deckExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("parse deck %s: %w", d.FileName, err)
	}

	slides := make([]SourceSlide, 0, len(export.Slides))
	for _, raw := range export.Slides {
		src := SourceSlide{RawSlide: raw, Deck: d}
		if index != nil && d.FileName == IndexDeckFile {
			src.Index = index[raw.SlideNumber]
		}
		slides = append(slides, src)
	}
	return slides, nil
}
