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
	openaiBaseURL      = "https://api.openai.com/v1/embeddings"
	openaiModel        = "text-embedding-3-small"
	openaiBatchSize    = 2048 // OpenAI max batch size
	openaiMaxRetries   = 3
	openaiInitialDelay = 1 * time.Second
)

// OpenAIClient embeds text via the OpenAI embeddings API.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

type openaiRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model"`
}

type openaiResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
		Index     int       `json:"index"`
	} `json:"data"`
}

type openaiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// OpenAIClientOption configures an OpenAIClient.
type OpenAIClientOption func(*OpenAIClient)

// WithOpenAIBaseURL overrides the API endpoint (used in tests).
func WithOpenAIBaseURL(url string) OpenAIClientOption {
	return func(c *OpenAIClient) { c.baseURL = url }
}

// WithOpenAIModel overrides the embedding model.
func WithOpenAIModel(model string) OpenAIClientOption {
	return func(c *OpenAIClient) { c.model = model }
}

// NewOpenAIClient creates a new OpenAI embeddings client.
func NewOpenAIClient(apiKey string, opts ...OpenAIClientOption) *OpenAIClient {
	c := &OpenAIClient{
		apiKey:  apiKey,
		baseURL: openaiBaseURL,
		model:   openaiModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EmbedDocuments embeds article texts for indexing, batching as needed.
func (c *OpenAIClient) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	if len(texts) <= openaiBatchSize {
		return c.embed(ctx, texts)
	}

	var all [][]float32
	for i := 0; i < len(texts); i += openaiBatchSize {
		end := i + openaiBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		embeddings, err := c.embed(ctx, texts[i:end])
		if err != nil {
			return nil, fmt.Errorf("batch %d-%d failed: %w", i, end, err)
		}
		all = append(all, embeddings...)
	}
	return all, nil
}

// EmbedQuery embeds a search query.
func (c *OpenAIClient) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	embeddings, err := c.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (c *OpenAIClient) embed(ctx context.Context, texts []string) ([][]float32, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	body, err := json.Marshal(openaiRequest{Input: texts, Model: c.model})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	// Retry with exponential backoff on rate limits and server errors.
	var lastErr error
	for attempt := 0; attempt < openaiMaxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(math.Pow(2, float64(attempt))) * openaiInitialDelay
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
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("http request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response body: %w", err)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			var apiErr openaiError
			if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
				lastErr = fmt.Errorf("openai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
			} else {
				lastErr = fmt.Errorf("openai api error (%d): %s", resp.StatusCode, string(respBody))
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				continue
			}
			return nil, lastErr
		}

		var openaiResp openaiResponse
		if err := json.Unmarshal(respBody, &openaiResp); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}

		if len(openaiResp.Data) != len(texts) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(openaiResp.Data))
		}

		embeddings := make([][]float32, len(openaiResp.Data))
		for _, d := range openaiResp.Data {
			if d.Index < 0 || d.Index >= len(embeddings) {
				return nil, fmt.Errorf("invalid embedding index: %d", d.Index)
			}
			embeddings[d.Index] = d.Embedding
		}
		return embeddings, nil
	}

	return nil, fmt.Errorf("max retries (%d) exceeded: %w", openaiMaxRetries, lastErr)
}
