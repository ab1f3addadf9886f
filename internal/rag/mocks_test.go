package rag

import (
	"context"
	"strings"

	"github.com/nitishbaidya/RAG-News/internal/models"
	"github.com/nitishbaidya/RAG-News/internal/store"
)

// mockStore is an in-memory ArticleStore with per-method failure
// switches and call recording.
type mockStore struct {
	docs []models.Document

	failListURLs  bool
	failAdd       bool
	failSearch    bool
	failBySource  bool
	searchResults []models.Document

	addCalls      int
	bySourceCalls []string
}

var _ store.ArticleStore = (*mockStore)(nil)

func (m *mockStore) AddDocuments(ctx context.Context, docs []models.Document) error {
	m.addCalls++
	if m.failAdd {
		return errMock
	}
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *mockStore) SimilaritySearch(ctx context.Context, query string, k int) ([]models.Document, error) {
	if m.failSearch {
		return nil, errMock
	}
	if len(m.searchResults) > k {
		return m.searchResults[:k], nil
	}
	return m.searchResults, nil
}

func (m *mockStore) DocumentsBySource(ctx context.Context, source string, limit int) ([]models.Document, error) {
	m.bySourceCalls = append(m.bySourceCalls, source)
	if m.failBySource {
		return nil, errMock
	}
	var out []models.Document
	for _, d := range m.docs {
		if strings.EqualFold(d.Source, source) {
			out = append(out, d)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockStore) ListURLs(ctx context.Context) (map[string]bool, error) {
	if m.failListURLs {
		return nil, errMock
	}
	urls := make(map[string]bool, len(m.docs))
	for _, d := range m.docs {
		urls[d.URL] = true
	}
	return urls, nil
}

func (m *mockStore) DeleteByIDs(ctx context.Context, ids []string) error { return nil }

func (m *mockStore) Clear(ctx context.Context) error {
	m.docs = nil
	return nil
}

func (m *mockStore) Stats(ctx context.Context) (store.Stats, error) {
	return store.Stats{Backend: "mock", DocumentCount: len(m.docs)}, nil
}

func (m *mockStore) Close() error { return nil }

// mockFetcher serves a fixed article list, honoring the exclude set the
// way the real fetcher does.
type mockFetcher struct {
	articles []models.Article
	fail     bool

	lastExclude map[string]bool
}

func (m *mockFetcher) FetchNew(ctx context.Context, exclude map[string]bool) ([]models.Article, error) {
	m.lastExclude = exclude
	if m.fail {
		return nil, errMock
	}
	var out []models.Article
	for _, a := range m.articles {
		if !exclude[a.URL] {
			out = append(out, a)
		}
	}
	return out, nil
}

// mockGenerator returns canned completions and records inputs.
type mockGenerator struct {
	answer  string
	topics  []string
	summary string

	failAnswer  bool
	failTopics  bool
	failSummary bool

	answerCalls int
	topicsCalls int
	lastQuery   string
	lastDocs    []models.Document
}

func (m *mockGenerator) Answer(ctx context.Context, query string, docs []models.Document) (string, error) {
	m.answerCalls++
	m.lastQuery = query
	m.lastDocs = docs
	if m.failAnswer {
		return "", errMock
	}
	return m.answer, nil
}

func (m *mockGenerator) ExtractTopics(ctx context.Context, docs []models.Document, maxTopics int) ([]string, error) {
	m.topicsCalls++
	m.lastDocs = docs
	if m.failTopics {
		return nil, errMock
	}
	return m.topics, nil
}

func (m *mockGenerator) Summarize(ctx context.Context, text string) (string, error) {
	if m.failSummary {
		return "", errMock
	}
	return m.summary, nil
}

type mockError string

func (e mockError) Error() string { return string(e) }

const errMock = mockError("mock failure")
