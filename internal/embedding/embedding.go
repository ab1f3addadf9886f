// Package embedding provides vector embedding clients for article text.
package embedding

import "context"

// Embedder generates vector embeddings for text.
// Implementations: LocalClient (Ollama-compatible endpoint),
// OpenAIClient (hosted embeddings API).
type Embedder interface {
	// EmbedDocuments embeds a batch of texts for storage/indexing.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery embeds a search query (may use a different prefix).
	EmbedQuery(ctx context.Context, query string) ([]float32, error)
}
