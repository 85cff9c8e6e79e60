package api

import (
	"encoding/json"
	"net/http"

	"github.com/deckworks/slidesearch/internal/enrich"
	"github.com/deckworks/slidesearch/internal/search"
)

type searchResult struct {
	Slide        enrich.Slide   `json:"slide"`
	Score        *float64       `json:"score,omitempty"`
	MatchPercent *int           `json:"matchPercent,omitempty"`
	Matches      []search.Match `json:"matches,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := search.Filters{
		Deck:         q.Get("deck"),
		Category:     q.Get("category"),
		Service:      q.Get("service"),
		Office:       q.Get("office"),
		Client:       q.Get("client"),
		BusinessType: q.Get("businessType"),
		Industry:     q.Get("industry"),
	}

	results := s.store.Index().Search(q.Get("q"), filters)

	out := make([]searchResult, len(results))
	for i, res := range results {
		out[i] = searchResult{Slide: res.Slide, Matches: res.Matches}
		if res.Scored {
			score := res.Score
			percent := search.MatchPercent(res.Score)
			out[i].Score = &score
			out[i].MatchPercent = &percent
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":     out,
		"total":       len(out),
		"suggestions": search.Suggestions(results),
	})
}

func (s *Server) handleFacets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Index().Facets())
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"decks":  s.store.Decks(),
		"slides": len(s.store.Index().Slides()),
	})
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.reload == nil {
		jsonError(w, "reload not configured", http.StatusNotFound)
		return
	}
	decks, slides, err := s.reload(r.Context())
	if err != nil {
		// Keep serving the previous snapshot.
		s.log.Error("reload failed", "error", err)
		jsonError(w, "reload failed", http.StatusInternalServerError)
		return
	}
	s.store.Replace(decks, slides)
	s.log.Info("reloaded decks", "decks", len(decks), "slides", len(slides))
	writeJSON(w, http.StatusOK, map[string]any{
		"decks":  len(decks),
		"slides": len(slides),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
