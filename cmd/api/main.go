package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"justwe/backend/internal/classify"
	"justwe/backend/internal/config"
	"justwe/backend/internal/corpus"
	"justwe/backend/internal/db"
	"justwe/backend/internal/memory"
	"justwe/backend/internal/respond"
	"justwe/backend/internal/server"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()
	store := loadCorpus(ctx, cfg)
	if store.Empty() {
		log.Printf("corpus is empty; retrieval will be skipped for every message")
	}

	crisis, err := classify.NewCrisisClassifier()
	if err != nil {
		log.Fatalf("crisis rules failed to load: %v", err)
	}
	emotion, err := classify.NewEmotionClassifier()
	if err != nil {
		log.Fatalf("emotion rules failed to load: %v", err)
	}

	if cfg.GroqAPIKey == "" {
		log.Printf("GROQ_API_KEY is not set; generation will fall back to corpus and templates")
	}
	gen := respond.NewGroqChatClient(cfg.GroqAPIKey, cfg.GroqBaseURL, time.Duration(cfg.GenTimeoutSeconds)*time.Second)

	mem := memory.NewStore()
	orch := respond.NewOrchestrator(
		crisis,
		emotion,
		corpus.NewMatcher(store, corpus.TFIDF{}),
		gen,
		respond.NewTemplatePool(rand.New(rand.NewSource(time.Now().UnixNano()))),
		mem,
		respond.Options{
			Model:      cfg.GroqModel,
			MaxTokens:  cfg.GenMaxTokens,
			GenTimeout: time.Duration(cfg.GenTimeoutSeconds) * time.Second,
		},
	)

	app := server.New(cfg, orch, store, mem)
	httpServer := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("justwe api listening on http://localhost:%s", cfg.AppPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

// loadCorpus builds the retrieval store from Postgres when configured and
// from CSV files otherwise. Load failures are logged and degrade to an empty
// store; the service still answers via generation and templates.
func loadCorpus(ctx context.Context, cfg config.Config) *corpus.Store {
	if cfg.CorpusDatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg.CorpusDatabaseURL)
		if err != nil {
			log.Printf("corpus database unavailable, continuing without corpus: %v", err)
			return corpus.NewStore(nil, nil)
		}
		defer pool.Close()

		store, err := corpus.LoadPostgres(ctx, pool)
		if err != nil {
			log.Printf("corpus database load failed, continuing without corpus: %v", err)
			return corpus.NewStore(nil, nil)
		}
		return store
	}

	store, err := corpus.LoadFiles(ctx, cfg.CorpusEmotionPath, cfg.CorpusSupportPaths)
	if err != nil {
		log.Printf("corpus file load failed, continuing without corpus: %v", err)
		return corpus.NewStore(nil, nil)
	}
	return store
}
