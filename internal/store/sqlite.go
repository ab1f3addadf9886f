package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nitishbaidya/RAG-News/internal/embedding"
	"github.com/nitishbaidya/RAG-News/internal/logger"
	"github.com/nitishbaidya/RAG-News/internal/models"
)

// SQLiteStore keeps article metadata in SQLite and embeddings in a
// brute-force vector store sharing the same database. Unlike the
// hosted-index adapter it supports exact metadata listing: ListURLs
// and DocumentsBySource scan the articles table directly instead of
// approximating through a broad similarity search.
type SQLiteStore struct {
	db       *sql.DB
	vectors  *vecStore
	embedder embedding.Embedder
	log      *logger.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
// A "~" prefix expands to the user's home directory.
func NewSQLiteStore(dbPath string, embedder embedding.Embedder, log *logger.Logger) (*SQLiteStore, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db, embedder: embedder, log: log}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	vectors, err := newVecStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init vector store: %w", err)
	}
	s.vectors = vectors

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS articles (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			url        TEXT NOT NULL UNIQUE,
			date       TEXT NOT NULL,
			source     TEXT NOT NULL,
			content    TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
		CREATE INDEX IF NOT EXISTS idx_articles_date ON articles(date);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AddDocuments embeds and persists a batch of documents. Documents
// whose URL is already stored are skipped, preserving the uniqueness
// invariant even if the caller's dedup check raced a concurrent add.
func (s *SQLiteStore) AddDocuments(ctx context.Context, docs []models.Document) error {
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

	for i, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.New().String()
		}

		res, err := s.db.ExecContext(ctx, `
			INSERT INTO articles (id, title, url, date, source, content)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(url) DO NOTHING
		`, id, doc.Title, doc.URL, doc.Date, doc.Source, doc.Content)
		if err != nil {
			return fmt.Errorf("save article %s: %w", doc.URL, err)
		}

		inserted, _ := res.RowsAffected()
		if inserted == 0 {
			s.log.Debug("duplicate url, not inserted", "url", doc.URL)
			continue
		}

		if err := s.vectors.upsert(ctx, id, vecs[i]); err != nil {
			return fmt.Errorf("store vector for %s: %w", doc.URL, err)
		}
	}

	return nil
}

// SimilaritySearch embeds the query and returns the k nearest
// documents.
func (s *SQLiteStore) SimilaritySearch(ctx context.Context, query string, k int) ([]models.Document, error) {
	if k <= 0 {
		k = 5
	}

	queryVec, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	scored := s.vectors.search(queryVec, k)

	docs := make([]models.Document, 0, len(scored))
	for _, sc := range scored {
		doc, err := s.getDocument(ctx, sc.ID)
		if err != nil {
			s.log.Warn("vector without article row, skipping", "id", sc.ID, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// DocumentsBySource lists documents from one source, newest first.
// This is an exact scan of the articles table, not the broad-search
// heuristic the hosted adapter has to use.
func (s *SQLiteStore) DocumentsBySource(ctx context.Context, source string, limit int) ([]models.Document, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, url, date, source, content
		FROM articles
		WHERE lower(source) = lower(?)
		ORDER BY date DESC
		LIMIT ?
	`, source, limit)
	if err != nil {
		return nil, fmt.Errorf("query by source: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListURLs returns every stored article URL.
func (s *SQLiteStore) ListURLs(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT url FROM articles")
	if err != nil {
		return nil, fmt.Errorf("list urls: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]bool)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		if url != "" {
			urls[url] = true
		}
	}
	return urls, rows.Err()
}

// DeleteByIDs removes specific documents and their vectors.
func (s *SQLiteStore) DeleteByIDs(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id); err != nil {
			return fmt.Errorf("delete article %s: %w", id, err)
		}
		if err := s.vectors.delete(ctx, id); err != nil {
			return fmt.Errorf("delete vector %s: %w", id, err)
		}
	}
	return nil
}

// Clear deletes every stored document and vector.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM articles"); err != nil {
		return fmt.Errorf("clear articles: %w", err)
	}
	return s.vectors.clear(ctx)
}

// Stats reports the stored document count.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count); err != nil {
		return Stats{}, fmt.Errorf("count articles: %w", err)
	}
	return Stats{Backend: "sqlite", DocumentCount: count}, nil
}

func (s *SQLiteStore) getDocument(ctx context.Context, id string) (models.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, url, date, source, content
		FROM articles WHERE id = ?
	`, id)

	var d models.Document
	err := row.Scan(&d.ID, &d.Title, &d.URL, &d.Date, &d.Source, &d.Content)
	if err == sql.ErrNoRows {
		return d, fmt.Errorf("article not found: %s", id)
	}
	return d, err
}

func scanDocuments(rows *sql.Rows) ([]models.Document, error) {
	var docs []models.Document
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.URL, &d.Date, &d.Source, &d.Content); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
