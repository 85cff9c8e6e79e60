package search

import (
	"sync"

	"github.com/deckworks/slidesearch/internal/deck"
	"github.com/deckworks/slidesearch/internal/enrich"
)

// Store holds the current deck set and search index. Reloads build a fresh
// index and swap it in whole; an in-flight search keeps working against the
// snapshot it grabbed, never a half-built one.
type Store struct {
	mu    sync.RWMutex
	decks []deck.Descriptor
	idx   *Index
}

func NewStore(decks []deck.Descriptor, slides []enrich.Slide) *Store {
	return &Store{decks: decks, idx: NewIndex(slides)}
}

// Replace swaps in a newly loaded slide set.
func (s *Store) Replace(decks []deck.Descriptor, slides []enrich.Slide) {
	idx := NewIndex(slides)
	s.mu.Lock()
	s.decks = decks
	s.idx = idx
	s.mu.Unlock()
}

// Index returns the current immutable snapshot.
func (s *Store) Index() *Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idx
}

// Decks returns the current manifest descriptors.
func (s *Store) Decks() []deck.Descriptor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.decks
}
