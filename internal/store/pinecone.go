package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nitishbaidya/RAG-News/internal/embedding"
	"github.com/nitishbaidya/RAG-News/internal/logger"
	"github.com/nitishbaidya/RAG-News/internal/models"
)

const (
	// listQueryTopK is the ceiling on the metadata-only scan used for
	// URL listing. Pinecone has no native full listing on serverless
	// starter indexes, so dedup silently degrades once the stored
	// document count exceeds this.
	listQueryTopK = 10000

	// bySourceCandidates is how many similarity hits are fetched
	// before client-side source filtering. The listing can under-
	// return when fewer than this many top hits belong to the source.
	bySourceCandidates = 100
)

// PineconeStore adapts a Pinecone index over its REST API. Documents
// are stored with their text under the "text" metadata field plus the
// {title, url, date, source} record.
//
// Per-source listing and URL enumeration are approximations built on
// broad similarity queries; the SQLite backend should be preferred
// where exact listing matters.
type PineconeStore struct {
	apiKey    string
	indexHost string
	dims      int
	embedder  embedding.Embedder
	client    *http.Client
	log       *logger.Logger
}

// PineconeOption configures a PineconeStore.
type PineconeOption func(*PineconeStore)

// WithPineconeHTTPClient overrides the HTTP client (used in tests).
func WithPineconeHTTPClient(c *http.Client) PineconeOption {
	return func(s *PineconeStore) { s.client = c }
}

// WithPineconeDimensions sets the index dimensionality used for the
// zero-vector metadata scan. Defaults to 768.
func WithPineconeDimensions(dims int) PineconeOption {
	return func(s *PineconeStore) { s.dims = dims }
}

// NewPineconeStore creates a Pinecone-backed article store. indexHost
// is the index endpoint, e.g. "https://my-index-abc123.svc.us-east-1.pinecone.io".
func NewPineconeStore(apiKey, indexHost string, embedder embedding.Embedder, log *logger.Logger, opts ...PineconeOption) *PineconeStore {
	s := &PineconeStore{
		apiKey:    apiKey,
		indexHost: strings.TrimSuffix(indexHost, "/"),
		dims:      768,
		embedder:  embedder,
		client:    &http.Client{Timeout: 30 * time.Second},
		log:       log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close is a no-op; the adapter holds no persistent connections.
func (s *PineconeStore) Close() error { return nil }

// --- wire types ---

type pineconeVector struct {
	ID       string            `json:"id"`
	Values   []float32         `json:"values"`
	Metadata map[string]string `json:"metadata"`
}

type pineconeUpsertRequest struct {
	Vectors []pineconeVector `json:"vectors"`
}

type pineconeQueryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
	IncludeValues   bool      `json:"includeValues"`
}

type pineconeMatch struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Metadata map[string]string `json:"metadata"`
}

type pineconeQueryResponse struct {
	Matches []pineconeMatch `json:"matches"`
}

type pineconeDeleteRequest struct {
	IDs       []string `json:"ids,omitempty"`
	DeleteAll bool     `json:"deleteAll,omitempty"`
}

type pineconeStatsResponse struct {
	TotalVectorCount int `json:"totalVectorCount"`
}

// AddDocuments embeds and upserts a batch of documents.
func (s *PineconeStore) AddDocuments(ctx context.Context, docs []models.Document) error {
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	vecs, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed documents: %w", err)
	}
	if len(vecs) != len(docs) {
		return fmt.Errorf("embedder returned %d vectors for %d documents", len(vecs), len(docs))
	}

	req := pineconeUpsertRequest{Vectors: make([]pineconeVector, len(docs))}
	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.New().String()
		}
		req.Vectors[i] = pineconeVector{
			ID:     id,
			Values: vecs[i],
			Metadata: map[string]string{
				"text":   doc.Content,
				"title":  doc.Title,
				"url":    doc.URL,
				"date":   doc.Date,
				"source": doc.Source,
			},
		}
	}

	if err := s.post(ctx, "/vectors/upsert", req, nil); err != nil {
		return fmt.Errorf("pinecone upsert: %w", err)
	}
	return nil
}

// SimilaritySearch embeds the query and returns the k nearest
// documents.
func (s *PineconeStore) SimilaritySearch(ctx context.Context, query string, k int) ([]models.Document, error) {
	if k <= 0 {
		k = 5
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	return s.queryByVector(ctx, queryVec, k)
}

// DocumentsBySource approximates a per-source listing: a broad
// similarity search using the source name as the query, filtered
// client-side by exact case-insensitive source match, sorted newest
// first, truncated to limit. Documents with unparseable dates sort as
// least recent.
func (s *PineconeStore) DocumentsBySource(ctx context.Context, source string, limit int) ([]models.Document, error) {
	if limit <= 0 {
		limit = 10
	}

	candidates, err := s.SimilaritySearch(ctx, source+" news", bySourceCandidates)
	if err != nil {
		return nil, err
	}

	var filtered []models.Document
	for _, doc := range candidates {
		if strings.EqualFold(doc.Source, source) {
			filtered = append(filtered, doc)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return docTime(filtered[i]).After(docTime(filtered[j]))
	})

	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// ListURLs enumerates stored URLs through a metadata-only zero-vector
// query capped at listQueryTopK matches.
func (s *PineconeStore) ListURLs(ctx context.Context) (map[string]bool, error) {
	req := pineconeQueryRequest{
		Vector:          make([]float32, s.dims),
		TopK:            listQueryTopK,
		IncludeMetadata: true,
		IncludeValues:   false,
	}

	var resp pineconeQueryResponse
	if err := s.post(ctx, "/query", req, &resp); err != nil {
		return nil, fmt.Errorf("pinecone url scan: %w", err)
	}

	urls := make(map[string]bool)
	for _, m := range resp.Matches {
		if url := m.Metadata["url"]; url != "" {
			urls[url] = true
		}
	}
	return urls, nil
}

// DeleteByIDs removes specific documents.
func (s *PineconeStore) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.post(ctx, "/vectors/delete", pineconeDeleteRequest{IDs: ids}, nil); err != nil {
		return fmt.Errorf("pinecone delete: %w", err)
	}
	return nil
}

// Clear deletes every vector in the index.
func (s *PineconeStore) Clear(ctx context.Context) error {
	if err := s.post(ctx, "/vectors/delete", pineconeDeleteRequest{DeleteAll: true}, nil); err != nil {
		return fmt.Errorf("pinecone clear: %w", err)
	}
	return nil
}

// Stats reports the index vector count.
func (s *PineconeStore) Stats(ctx context.Context) (Stats, error) {
	var resp pineconeStatsResponse
	if err := s.post(ctx, "/describe_index_stats", struct{}{}, &resp); err != nil {
		return Stats{}, fmt.Errorf("pinecone stats: %w", err)
	}
	return Stats{Backend: "pinecone", DocumentCount: resp.TotalVectorCount}, nil
}

func (s *PineconeStore) queryByVector(ctx context.Context, vec []float32, k int) ([]models.Document, error) {
	req := pineconeQueryRequest{
		Vector:          vec,
		TopK:            k,
		IncludeMetadata: true,
		IncludeValues:   false,
	}

	var resp pineconeQueryResponse
	if err := s.post(ctx, "/query", req, &resp); err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}

	docs := make([]models.Document, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		docs = append(docs, models.Document{
			ID:      m.ID,
			Content: m.Metadata["text"],
			Title:   m.Metadata["title"],
			URL:     m.Metadata["url"],
			Date:    m.Metadata["date"],
			Source:  m.Metadata["source"],
		})
	}
	return docs, nil
}

func (s *PineconeStore) post(ctx context.Context, path string, reqBody, respBody any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.indexHost+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Api-Key", s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pinecone error (%d): %s", resp.StatusCode, string(data))
	}

	if respBody != nil {
		if err := json.Unmarshal(data, respBody); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// docTime parses a document's stored date; unparseable dates come back
// as the zero time so they sort last.
func docTime(d models.Document) time.Time {
	t, err := time.Parse(time.RFC3339, d.Date)
	if err != nil {
		return time.Time{}
	}
	return t
}
