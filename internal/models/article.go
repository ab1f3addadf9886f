// Package models defines the article and document types shared across
// the ingestion and retrieval pipeline.
package models

import (
	"time"

	"github.com/araddon/dateparse"
)

// Article is a freshly fetched news article. Articles are ephemeral:
// they exist between feed fetch and vector store insertion, then only
// as stored documents.
type Article struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
}

// Document is an article as persisted in the vector store: text content
// plus the metadata record stored alongside the embedding. The Date
// field holds an ISO-8601 (RFC 3339) string, matching the wire format
// of the vector backends.
type Document struct {
	ID      string `json:"id,omitempty"`
	Content string `json:"content"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// SourceInfo is the metadata projection of a retrieved document,
// returned to callers as part of a query result.
type SourceInfo struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Date   string `json:"date"`
	Source string `json:"source"`
}

// QueryResult is the outcome of a RAG query: the question, the
// generated answer, and the documents it was grounded on.
type QueryResult struct {
	Query    string       `json:"query"`
	Sources  []SourceInfo `json:"sources"`
	Response string       `json:"response"`
}

// ParseDate parses a feed-supplied date string. Feeds disagree on
// formats (RFC 822 variants, ISO-8601, date-only), so parsing is
// lenient and falls back to the current time rather than failing.
func ParseDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Now()
	}
	return t
}

// DocumentFromArticle converts an article into its stored form.
func DocumentFromArticle(a Article) Document {
	return Document{
		Content: a.Content,
		Title:   a.Title,
		URL:     a.URL,
		Date:    a.PublishedAt.Format(time.RFC3339),
		Source:  a.Source,
	}
}

// DocumentsFromArticles converts a batch of articles.
func DocumentsFromArticles(articles []Article) []Document {
	docs := make([]Document, len(articles))
	for i, a := range articles {
		docs[i] = DocumentFromArticle(a)
	}
	return docs
}

// SourceInfoFromDocument projects a document's metadata.
func SourceInfoFromDocument(d Document) SourceInfo {
	return SourceInfo{
		Title:  d.Title,
		URL:    d.URL,
		Date:   d.Date,
		Source: d.Source,
	}
}
