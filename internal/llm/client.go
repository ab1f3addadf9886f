// Package llm generates answers, topic lists, and summaries from
// retrieved news documents via an OpenAI-compatible chat completion
// API (NVIDIA NIM in the reference deployment).
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/nitishbaidya/RAG-News/internal/logger"
	"github.com/nitishbaidya/RAG-News/internal/models"
)

const (
	answerTemperature = 0.3
	answerMaxTokens   = 1024

	// Topics use a slightly higher temperature for diversity.
	topicsTemperature = 0.7
	topicsMaxTokens   = 256
	topicsSampleSize  = 15

	summaryTemperature = 0.3
	summaryMaxTokens   = 512
)

// DefaultMaxTopics is the topic count requested from the model.
const DefaultMaxTopics = 10

// Client wraps a chat completion backend.
type Client struct {
	client openai.Client
	model  string
	log    *logger.Logger
}

// NewClient creates a chat client for the given OpenAI-compatible
// endpoint and model.
func NewClient(apiKey, baseURL, model string, log *logger.Logger) *Client {
	return &Client{
		client: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
		),
		model: model,
		log:   log,
	}
}

// Answer generates a response to the query grounded in the given
// documents. The context block is assembled under MaxContextChars.
func (c *Client) Answer(ctx context.Context, query string, docs []models.Document) (string, error) {
	contextBlock := FormatDocumentsWithLimit(docs, MaxContextChars)

	prompt := fmt.Sprintf(`Answer the following question about UK public policy based on the provided context.
If the question cannot be answered based on the context, simply state that you don't have enough information.

Context:
%s

Question: %s

Answer:`, contextBlock, query)

	c.log.Debug("sending query to completion backend", "model", c.model, "context_chars", len(contextBlock))

	return c.complete(ctx, prompt, answerTemperature, answerMaxTokens)
}

// ExtractTopics asks the model for the main topics across a sample of
// documents. At most topicsSampleSize documents are considered, and at
// most maxTopics topics are returned.
func (c *Client) ExtractTopics(ctx context.Context, docs []models.Document, maxTopics int) ([]string, error) {
	if maxTopics <= 0 {
		maxTopics = DefaultMaxTopics
	}

	sample := docs
	if len(sample) > topicsSampleSize {
		sample = sample[:topicsSampleSize]
	}

	contextBlock := FormatDocumentsWithLimit(sample, MaxContextChars)

	prompt := fmt.Sprintf(`Below are snippets from various news articles about UK public policy and politics.

Articles:
%s

Based only on these articles, identify the main topics discussed.
List exactly %d topics as a bulleted list in the format:
• Topic 1
• Topic 2

Keep each topic name very short (1-3 words). Don't use complete sentences. For example, use "NHS Funding" not "The funding challenges facing the NHS".`, contextBlock, maxTopics)

	c.log.Debug("extracting topics", "documents", len(sample))

	text, err := c.complete(ctx, prompt, topicsTemperature, topicsMaxTokens)
	if err != nil {
		return nil, err
	}
	return parseTopics(text, maxTopics), nil
}

// Summarize produces a concise summary of the given text, truncating
// the input to the context budget first.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if len(text) > MaxContextChars {
		text = text[:MaxContextChars] + "..."
	}

	prompt := fmt.Sprintf(`Summarize the following text in a concise manner:

%s

Summary:`, text)

	return c.complete(ctx, prompt, summaryTemperature, summaryMaxTokens)
}

func (c *Client) complete(ctx context.Context, prompt string, temperature float64, maxTokens int64) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
