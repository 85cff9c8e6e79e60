package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/deckworks/slidesearch/internal/gemini"
)

type aiSearchRequest struct {
	AIQuery string `json:"aiQuery"`
}

// handleAISearch relays the raw upstream ranking response to the caller.
// Wrong method is rejected with 405 by the router.
func (s *Server) handleAISearch(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.runAISearch(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(raw)
}

// handleAISearchResolved reconciles the upstream reply against the in-memory
// slide set and returns full slides instead of references.
func (s *Server) handleAISearchResolved(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.runAISearch(w, r)
	if !ok {
		return
	}
	refs, err := gemini.ParseResponse(raw)
	if err != nil {
		s.log.Error("unparseable ai response", "error", err)
		jsonError(w, "An internal server error occurred.", http.StatusInternalServerError)
		return
	}
	resolved := gemini.Resolve(refs, s.store.Index().Slides())
	writeJSON(w, http.StatusOK, map[string]any{
		"results": resolved,
		"total":   len(resolved),
	})
}

// runAISearch validates the request, checks configuration and performs the
// upstream round trip. On failure it writes the error response itself and
// returns ok=false.
func (s *Server) runAISearch(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		jsonError(w, "failed to read request", http.StatusBadRequest)
		return nil, false
	}
	var req aiSearchRequest
	if err := json.Unmarshal(body, &req); err != nil || strings.TrimSpace(req.AIQuery) == "" {
		jsonError(w, "AI query is required.", http.StatusBadRequest)
		return nil, false
	}

	if s.cfg.GeminiAPIKey == "" || s.gemini == nil {
		s.log.Error("GEMINI_API_KEY is not set on the server")
		jsonError(w, "Server configuration error.", http.StatusInternalServerError)
		return nil, false
	}

	raw, err := s.gemini.RankSlides(r.Context(), req.AIQuery, s.store.Index().Slides())
	if err != nil {
		var upstream *gemini.UpstreamError
		if errors.As(err, &upstream) {
			s.log.Error("gemini api error", "status", upstream.StatusCode, "body", upstream.Body)
		} else {
			s.log.Error("ai search failed", "error", err)
		}
		jsonError(w, "An internal server error occurred.", http.StatusInternalServerError)
		return nil, false
	}
	return raw, true
}
