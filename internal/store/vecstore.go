package store

import (
	"container/heap"
	"context"
	"database/sql"
	"encoding/binary"
	"math"
	"sync"
)

// vecStore provides brute-force vector search backed by SQLite BLOBs.
// Vectors are loaded into memory for fast cosine similarity. At news
// corpus sizes (thousands of articles) this is sub-millisecond and
// returns exact, not approximate, results.
type vecStore struct {
	db *sql.DB

	mu      sync.RWMutex
	vectors map[string][]float32 // article id -> normalized embedding
}

// scoredID pairs an article ID with a similarity score.
type scoredID struct {
	ID    string
	Score float64
}

// newVecStore creates the vectors table if needed and loads existing
// vectors into memory.
func newVecStore(db *sql.DB) (*vecStore, error) {
	vs := &vecStore{
		db:      db,
		vectors: make(map[string][]float32),
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS vectors (
			article_id TEXT PRIMARY KEY,
			embedding  BLOB NOT NULL,
			dimensions INTEGER NOT NULL
		)
	`)
	if err != nil {
		return nil, err
	}

	if err := vs.loadAll(); err != nil {
		return nil, err
	}
	return vs, nil
}

func (vs *vecStore) loadAll() error {
	rows, err := vs.db.Query("SELECT article_id, embedding, dimensions FROM vectors")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var blob []byte
		var dims int
		if err := rows.Scan(&id, &blob, &dims); err != nil {
			return err
		}
		vs.vectors[id] = blobToFloat32(blob, dims)
	}
	return rows.Err()
}

// upsert stores a vector for the given article. The vector is
// normalized on insert so dot product equals cosine similarity.
func (vs *vecStore) upsert(ctx context.Context, articleID string, vector []float32) error {
	normalized := normalize(vector)
	blob := float32ToBlob(normalized)

	vs.mu.Lock()
	defer vs.mu.Unlock()

	_, err := vs.db.ExecContext(ctx, `
		INSERT INTO vectors (article_id, embedding, dimensions)
		VALUES (?, ?, ?)
		ON CONFLICT(article_id) DO UPDATE SET
			embedding=excluded.embedding, dimensions=excluded.dimensions
	`, articleID, blob, len(normalized))
	if err != nil {
		return err
	}

	vs.vectors[articleID] = normalized
	return nil
}

// search returns the top-K articles by cosine similarity, tracked with
// a min-heap.
func (vs *vecStore) search(queryVec []float32, limit int) []scoredID {
	if limit <= 0 {
		limit = 10
	}
	normalizedQuery := normalize(queryVec)

	vs.mu.RLock()
	h := &minHeap{}
	heap.Init(h)
	for id, vec := range vs.vectors {
		if len(vec) != len(normalizedQuery) {
			continue
		}
		score := dotProduct(normalizedQuery, vec)
		if h.Len() < limit {
			heap.Push(h, scoredID{ID: id, Score: score})
		} else if score > (*h)[0].Score {
			(*h)[0] = scoredID{ID: id, Score: score}
			heap.Fix(h, 0)
		}
	}
	vs.mu.RUnlock()

	results := make([]scoredID, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		results[i] = heap.Pop(h).(scoredID)
	}
	return results
}

// delete removes a vector by article ID.
func (vs *vecStore) delete(ctx context.Context, articleID string) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	_, err := vs.db.ExecContext(ctx, "DELETE FROM vectors WHERE article_id = ?", articleID)
	if err != nil {
		return err
	}
	delete(vs.vectors, articleID)
	return nil
}

// clear removes every vector.
func (vs *vecStore) clear(ctx context.Context) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	_, err := vs.db.ExecContext(ctx, "DELETE FROM vectors")
	if err != nil {
		return err
	}
	vs.vectors = make(map[string][]float32)
	return nil
}

// count returns the number of stored vectors.
func (vs *vecStore) count() int {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.vectors)
}

// minHeap implements heap.Interface for top-K selection (min at root).
type minHeap []scoredID

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].Score < h[j].Score }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(scoredID)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// --- math helpers ---

func normalize(v []float32) []float32 {
	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	norm = math.Sqrt(norm)

	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dotProduct(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// --- serialization helpers ---

func float32ToBlob(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func blobToFloat32(b []byte, dims int) []float32 {
	v := make([]float32, dims)
	for i := 0; i < dims && i*4+4 <= len(b); i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
