package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/deckworks/slidesearch/internal/api"
	"github.com/deckworks/slidesearch/internal/config"
	"github.com/deckworks/slidesearch/internal/deck"
	"github.com/deckworks/slidesearch/internal/enrich"
	"github.com/deckworks/slidesearch/internal/gemini"
	"github.com/deckworks/slidesearch/internal/search"
)

func main() {
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reload := func(ctx context.Context) ([]deck.Descriptor, []enrich.Slide, error) {
		decks, srcs, err := deck.Load(ctx, cfg.DataDir, log)
		if err != nil {
			return nil, nil, err
		}
		return decks, enrich.EnrichAll(srcs), nil
	}

	// A failed initial load is fatal: no partial deck set is ever served.
	decks, slides, err := reload(ctx)
	if err != nil {
		log.Error("failed to load decks", "error", err)
		os.Exit(1)
	}
	store := search.NewStore(decks, slides)

	var gem *gemini.Client
	if cfg.GeminiAPIKey != "" {
		gem = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	} else {
		log.Info("GEMINI_API_KEY not set, AI search disabled")
	}

	srv := api.NewServer(store, gem, reload, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if gem != nil {
			gem.Close()
		}
	}()

	log.Info("starting slidesearch", "port", cfg.Port, "decks", len(decks), "slides", len(slides))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
