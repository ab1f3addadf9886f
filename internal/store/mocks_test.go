package store

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"
)

// ErrMockEmbedding is returned by failing mock embedders.
var ErrMockEmbedding = errors.New("mock embedding error")

// mockEmbedder produces deterministic vectors. Texts sharing a keyword
// registered via vocab get identical vectors, so similarity ranking in
// tests is predictable; everything else gets a hash-derived vector.
type mockEmbedder struct {
	mu        sync.Mutex
	vocab     map[string][]float32
	CallCount int
	LastTexts []string
	Fail      bool
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{vocab: make(map[string][]float32)}
}

// register maps a keyword to a fixed direction in embedding space.
func (m *mockEmbedder) register(keyword string, vec []float32) {
	m.vocab[keyword] = vec
}

func (m *mockEmbedder) vectorFor(text string) []float32 {
	for keyword, vec := range m.vocab {
		if strings.Contains(text, keyword) {
			return vec
		}
	}
	h := fnv.New32a()
	h.Write([]byte(text))
	sum := h.Sum32()
	return []float32{float32(sum%97) + 1, float32(sum%89) + 1, float32(sum%83) + 1}
}

func (m *mockEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	m.LastTexts = texts
	if m.Fail {
		return nil, ErrMockEmbedding
	}

	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = m.vectorFor(t)
	}
	return vecs, nil
}

func (m *mockEmbedder) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	if m.Fail {
		return nil, ErrMockEmbedding
	}
	return m.vectorFor(query), nil
}
