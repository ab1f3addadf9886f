package store

import (
	"context"
	"database/sql"
	"math"
	"testing"
)

func newTestVecStore(t *testing.T) *vecStore {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	vs, err := newVecStore(db)
	if err != nil {
		t.Fatalf("newVecStore: %v", err)
	}
	return vs
}

func TestVecStore_SearchRanksByCosine(t *testing.T) {
	vs := newTestVecStore(t)
	ctx := context.Background()

	vs.upsert(ctx, "exact", []float32{1, 0, 0})
	vs.upsert(ctx, "close", []float32{0.9, 0.1, 0})
	vs.upsert(ctx, "far", []float32{0, 0, 1})

	results := vs.search([]float32{1, 0, 0}, 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "exact" || results[1].ID != "close" {
		t.Errorf("wrong ranking: %v", results)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("scores not descending: %v", results)
	}
}

func TestVecStore_SearchSkipsMismatchedDimensions(t *testing.T) {
	vs := newTestVecStore(t)
	ctx := context.Background()

	vs.upsert(ctx, "threedim", []float32{1, 0, 0})
	vs.upsert(ctx, "twodim", []float32{1, 0})

	results := vs.search([]float32{1, 0, 0}, 10)
	if len(results) != 1 || results[0].ID != "threedim" {
		t.Errorf("expected only the matching-dimension vector, got %v", results)
	}
}

func TestVecStore_PersistsAcrossReload(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()

	vs, err := newVecStore(db)
	if err != nil {
		t.Fatalf("newVecStore: %v", err)
	}
	if err := vs.upsert(context.Background(), "a", []float32{0.5, 0.5}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	reloaded, err := newVecStore(db)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.count() != 1 {
		t.Fatalf("expected 1 vector after reload, got %d", reloaded.count())
	}

	results := reloaded.search([]float32{0.5, 0.5}, 1)
	if len(results) != 1 || results[0].ID != "a" {
		t.Fatalf("reloaded vector not searchable: %v", results)
	}
	if math.Abs(results[0].Score-1.0) > 1e-5 {
		t.Errorf("identical vector should score ~1.0, got %f", results[0].Score)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	out := normalize([]float32{0, 0, 0})
	for _, x := range out {
		if x != 0 {
			t.Fatalf("zero vector should normalize to zero, got %v", out)
		}
	}
}
