// Package rag composes the feed fetcher, article store, and answer
// generator into the user-facing pipeline operations.
package rag

import (
	"context"
	"fmt"

	"github.com/nitishbaidya/RAG-News/internal/logger"
	"github.com/nitishbaidya/RAG-News/internal/models"
	"github.com/nitishbaidya/RAG-News/internal/store"
)

const (
	// DefaultQueryK is how many documents a query retrieves.
	DefaultQueryK = 3

	// topicsPerSource is how many recent documents are sampled from
	// each topic source.
	topicsPerSource = 7
)

// User-facing degradation messages. Run-time failures surface as these
// rather than as errors (config failures are the only fatal ones).
const (
	noInfoResponse         = "No relevant information found. Please try a different query."
	noTopicsPlaceholder    = "No documents available for topic extraction"
	topicsErrorPlaceholder = "Error extracting topics"
	answerErrorResponse    = "Sorry, I encountered an error while generating a response."
	summaryErrorResponse   = "Failed to generate summary."
)

// Fetcher pulls new articles from the configured feeds.
// Implementations: feed.Fetcher.
type Fetcher interface {
	FetchNew(ctx context.Context, exclude map[string]bool) ([]models.Article, error)
}

// AnswerGenerator wraps the completion backend.
// Implementations: llm.Client.
type AnswerGenerator interface {
	Answer(ctx context.Context, query string, docs []models.Document) (string, error)
	ExtractTopics(ctx context.Context, docs []models.Document, maxTopics int) ([]string, error)
	Summarize(ctx context.Context, text string) (string, error)
}

// Engine orchestrates refresh, topic extraction, and querying.
type Engine struct {
	store        store.ArticleStore
	fetcher      Fetcher
	llm          AnswerGenerator
	topicSources []string
	maxTopics    int
	log          *logger.Logger
}

// New creates an engine. topicSources names the feeds sampled for
// topic extraction, in order.
func New(st store.ArticleStore, fetcher Fetcher, gen AnswerGenerator, topicSources []string, log *logger.Logger) *Engine {
	return &Engine{
		store:        st,
		fetcher:      fetcher,
		llm:          gen,
		topicSources: topicSources,
		maxTopics:    10,
		log:          log,
	}
}

// Refresh fetches new articles from every feed, skipping URLs already
// stored, and persists the rest. Returns the number of articles added.
// The URL listing must succeed: proceeding without it would break the
// dedup invariant, so its failure aborts the refresh.
func (e *Engine) Refresh(ctx context.Context) (int, error) {
	existing, err := e.store.ListURLs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stored urls: %w", err)
	}

	articles, err := e.fetcher.FetchNew(ctx, existing)
	if err != nil {
		return 0, fmt.Errorf("fetch articles: %w", err)
	}

	if len(articles) == 0 {
		e.log.Info("no new articles found")
		return 0, nil
	}

	e.log.Info("storing new articles", "count", len(articles))
	if err := e.store.AddDocuments(ctx, models.DocumentsFromArticles(articles)); err != nil {
		return 0, fmt.Errorf("store articles: %w", err)
	}

	return len(articles), nil
}

// Topics samples recent documents from the topic sources and asks the
// generator for the main topics. Failures degrade to placeholder
// entries; this operation never returns an error.
func (e *Engine) Topics(ctx context.Context) []string {
	var sample []models.Document
	for _, source := range e.topicSources {
		docs, err := e.store.DocumentsBySource(ctx, source, topicsPerSource)
		if err != nil {
			e.log.Warn("per-source listing failed", "source", source, "error", err)
			continue
		}
		sample = append(sample, docs...)
	}

	if len(sample) == 0 {
		return []string{noTopicsPlaceholder}
	}

	e.log.Info("extracting topics", "documents", len(sample))
	topics, err := e.llm.ExtractTopics(ctx, sample, e.maxTopics)
	if err != nil {
		e.log.Error("topic extraction failed", "error", err)
		return []string{topicsErrorPlaceholder}
	}
	return topics
}

// Query retrieves the k most relevant documents and generates an
// answer grounded in them. Retrieval or generation failures degrade to
// canned responses; this operation never returns an error.
func (e *Engine) Query(ctx context.Context, text string, k int) models.QueryResult {
	if k <= 0 {
		k = DefaultQueryK
	}

	docs, err := e.store.SimilaritySearch(ctx, text, k)
	if err != nil {
		e.log.Error("similarity search failed", "error", err)
		docs = nil
	}

	if len(docs) == 0 {
		return models.QueryResult{
			Query:    text,
			Sources:  []models.SourceInfo{},
			Response: noInfoResponse,
		}
	}

	response, err := e.llm.Answer(ctx, text, docs)
	if err != nil {
		e.log.Error("answer generation failed", "error", err)
		response = answerErrorResponse
	}

	sources := make([]models.SourceInfo, len(docs))
	for i, d := range docs {
		sources[i] = models.SourceInfoFromDocument(d)
	}

	return models.QueryResult{
		Query:    text,
		Sources:  sources,
		Response: response,
	}
}

// Summarize produces a summary of arbitrary text, degrading to a
// placeholder on failure.
func (e *Engine) Summarize(ctx context.Context, text string) string {
	summary, err := e.llm.Summarize(ctx, text)
	if err != nil {
		e.log.Error("summarization failed", "error", err)
		return summaryErrorResponse
	}
	return summary
}

// Clear deletes every stored document.
func (e *Engine) Clear(ctx context.Context) error {
	return e.store.Clear(ctx)
}

// Stats reports store statistics.
func (e *Engine) Stats(ctx context.Context) (store.Stats, error) {
	return e.store.Stats(ctx)
}
