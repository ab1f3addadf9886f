// Package store persists embedded news articles and serves similarity
// search over them. Two backends are provided: a local SQLite store
// with exact metadata listing, and a Pinecone adapter matching the
// original hosted deployment.
package store

import (
	"context"

	"github.com/nitishbaidya/RAG-News/internal/models"
)

// ArticleStore is the vector index boundary used by the orchestrator.
// Implementations: SQLiteStore, PineconeStore.
type ArticleStore interface {
	// AddDocuments embeds and persists documents. A nil or empty batch
	// is a no-op.
	AddDocuments(ctx context.Context, docs []models.Document) error

	// SimilaritySearch returns up to k documents ranked by embedding
	// similarity to the query text.
	SimilaritySearch(ctx context.Context, query string, k int) ([]models.Document, error)

	// DocumentsBySource returns up to limit documents from the named
	// source, newest first. Source matching is case-insensitive.
	DocumentsBySource(ctx context.Context, source string, limit int) ([]models.Document, error)

	// ListURLs returns the URL of every stored document, used for
	// dedup at refresh time.
	ListURLs(ctx context.Context) (map[string]bool, error)

	// DeleteByIDs removes specific documents.
	DeleteByIDs(ctx context.Context, ids []string) error

	// Clear irreversibly deletes every stored document.
	Clear(ctx context.Context) error

	// Stats reports backend statistics.
	Stats(ctx context.Context) (Stats, error)

	// Close releases backend resources.
	Close() error
}

// Stats describes the state of a store backend.
type Stats struct {
	Backend       string `json:"backend"`
	DocumentCount int    `json:"document_count"`
}
