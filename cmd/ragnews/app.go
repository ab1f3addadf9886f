package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/nitishbaidya/RAG-News/internal/config"
	"github.com/nitishbaidya/RAG-News/internal/embedding"
	"github.com/nitishbaidya/RAG-News/internal/feed"
	"github.com/nitishbaidya/RAG-News/internal/llm"
	"github.com/nitishbaidya/RAG-News/internal/logger"
	"github.com/nitishbaidya/RAG-News/internal/rag"
	"github.com/nitishbaidya/RAG-News/internal/store"
)

// app bundles everything a command needs after startup.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	store  store.ArticleStore
	engine *rag.Engine
}

// newApp loads configuration and wires the pipeline. Missing required
// configuration is fatal here; run-time failures degrade later.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.LogLevel)

	emb := buildEmbedder(cfg)
	st, err := buildStore(cfg, emb, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	sources := make([]feed.Source, len(cfg.Feeds))
	for i, f := range cfg.Feeds {
		sources[i] = feed.Source{Name: f.Name, URL: f.URL}
	}
	fetcher := feed.New(sources,
		feed.WithHTTPClient(&http.Client{Timeout: cfg.FetchTimeout}),
		feed.WithDelay(cfg.FetchDelayMin, cfg.FetchDelayMax),
		feed.WithLogger(log),
	)

	gen := llm.NewClient(cfg.NIMAPIKey, cfg.NIMBaseURL, cfg.ChatModel, log)

	return &app{
		cfg:    cfg,
		log:    log,
		store:  st,
		engine: rag.New(st, fetcher, gen, cfg.TopicSources, log),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

func buildEmbedder(cfg *config.Config) embedding.Embedder {
	if cfg.Embedder == config.EmbedderOpenAI {
		return embedding.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	return embedding.NewLocalClient(
		embedding.WithLocalBaseURL(cfg.LocalEmbeddingURL),
		embedding.WithLocalModel(cfg.LocalEmbeddingModel),
	)
}

func buildStore(cfg *config.Config, emb embedding.Embedder, log *logger.Logger) (store.ArticleStore, error) {
	if cfg.VectorBackend == config.BackendPinecone {
		return store.NewPineconeStore(cfg.PineconeAPIKey, cfg.PineconeIndexHost, emb, log), nil
	}
	return store.NewSQLiteStore(cfg.SQLitePath, emb, log)
}

// signalContext returns a context cancelled by Ctrl-C.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
