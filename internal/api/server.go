package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/deckworks/slidesearch/internal/config"
	"github.com/deckworks/slidesearch/internal/deck"
	"github.com/deckworks/slidesearch/internal/enrich"
	"github.com/deckworks/slidesearch/internal/gemini"
	"github.com/deckworks/slidesearch/internal/search"
)

// ReloadFunc re-runs load+enrich and returns a fresh deck and slide set. The
// server only swaps the store when it succeeds.
type ReloadFunc func(ctx context.Context) ([]deck.Descriptor, []enrich.Slide, error)

// Server is the HTTP API for slide search.
type Server struct {
	router chi.Router
	store  *search.Store
	gemini *gemini.Client
	reload ReloadFunc
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server. reload may be nil to
// disable the reload endpoint.
func NewServer(store *search.Store, gem *gemini.Client, reload ReloadFunc, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:  store,
		gemini: gem,
		reload: reload,
		log:    log,
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Get("/api/decks", s.handleDecks)
		r.Get("/api/search", s.handleSearch)
		r.Get("/api/facets", s.handleFacets)
		r.Post("/api/ai-search", s.handleAISearch)
		r.Post("/api/ai-search/resolved", s.handleAISearchResolved)
		r.Post("/api/reload", s.handleReload)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
