package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"
)

const (
	defaultLocalBaseURL = "http://localhost:11434/api/embed"
	defaultLocalModel   = "nomic-embed-text"
	localMaxRetries     = 5
	localInitialDelay   = 1 * time.Second
)

// LocalClient embeds text via an Ollama-compatible API. It uses nomic
// task prefixes for asymmetric retrieval: "search_document: " when
// indexing articles, "search_query: " for user questions.
type LocalClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// LocalClientOption configures a LocalClient.
type LocalClientOption func(*LocalClient)

// WithLocalBaseURL sets the inference server URL.
func WithLocalBaseURL(url string) LocalClientOption {
	return func(c *LocalClient) { c.baseURL = url }
}

// WithLocalModel sets the model name.
func WithLocalModel(model string) LocalClientOption {
	return func(c *LocalClient) { c.model = model }
}

// NewLocalClient creates a local embedding client. Defaults to
// localhost:11434 with nomic-embed-text.
func NewLocalClient(opts ...LocalClientOption) *LocalClient {
	c := &LocalClient{
		baseURL: defaultLocalBaseURL,
		model:   defaultLocalModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// localEmbedRequest is the Ollama /api/embed request body. Input may
// be a string or an array of strings; we always send an array.
type localEmbedRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// localEmbedResponse is the Ollama /api/embed response body.
type localEmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
}

// EmbedDocuments embeds a batch of article texts for indexing.
func (c *LocalClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}
	prefixed := make([]string, len(texts))
	for i, t := range texts {
		prefixed[i] = "search_document: " + t
	}
	return c.embed(ctx, prefixed)
}

// EmbedQuery embeds a search query.
func (c *LocalClient) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vecs, err := c.embed(ctx, []string{"search_query: " + query})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (c *LocalClient) embed(ctx context.Context, texts []string) ([][]float32, error) {
	body, err := json.Marshal(localEmbedRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < localMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt))) * localInitialDelay
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("local embedding request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("local embedding error (%d): %s", resp.StatusCode, string(respBody))
			if resp.StatusCode >= 500 {
				continue
			}
			return nil, lastErr
		}

		var embedResp localEmbedResponse
		if err := json.Unmarshal(respBody, &embedResp); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		if len(embedResp.Embeddings) != len(texts) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embedResp.Embeddings))
		}

		return embedResp.Embeddings, nil
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", localMaxRetries, lastErr)
}
