package models

import (
	"testing"
	"time"
)

func TestParseDate_KnownFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "RFC 822 with numeric zone",
			input: "Mon, 02 Jan 2006 15:04:05 +0000",
			want:  time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC),
		},
		{
			name:  "RFC 822 with zone name",
			input: "Tue, 18 Mar 2025 09:30:00 GMT",
			want:  time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "ISO 8601",
			input: "2025-03-18T09:30:00Z",
			want:  time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2025-03-18",
			want:  time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.input)
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate_UnparseableFallsBackToNow(t *testing.T) {
	for _, input := range []string{"", "not a date", "yesterday-ish"} {
		before := time.Now()
		got := ParseDate(input)
		after := time.Now()

		if got.Before(before) || got.After(after) {
			t.Errorf("ParseDate(%q) = %v, expected a current timestamp", input, got)
		}
	}
}

func TestDocumentFromArticle(t *testing.T) {
	published := time.Date(2025, 3, 18, 9, 30, 0, 0, time.UTC)
	a := Article{
		Title:       "NHS waiting lists fall",
		Content:     "Waiting lists fell for the third month.",
		URL:         "https://example.org/nhs",
		PublishedAt: published,
		Source:      "bbc",
	}

	doc := DocumentFromArticle(a)

	if doc.Content != a.Content {
		t.Errorf("content = %q, want %q", doc.Content, a.Content)
	}
	if doc.Title != a.Title || doc.URL != a.URL || doc.Source != a.Source {
		t.Errorf("metadata not carried over: %+v", doc)
	}
	if doc.Date != "2025-03-18T09:30:00Z" {
		t.Errorf("date = %q, want RFC 3339 string", doc.Date)
	}
}

func TestDocumentsFromArticles_Empty(t *testing.T) {
	if docs := DocumentsFromArticles(nil); len(docs) != 0 {
		t.Errorf("expected empty slice, got %d docs", len(docs))
	}
}

func TestSourceInfoFromDocument(t *testing.T) {
	doc := Document{
		ID:      "abc",
		Content: "body",
		Title:   "T",
		URL:     "https://example.org/t",
		Date:    "2025-03-18T09:30:00Z",
		Source:  "guardian",
	}

	info := SourceInfoFromDocument(doc)
	if info.Title != "T" || info.URL != doc.URL || info.Date != doc.Date || info.Source != "guardian" {
		t.Errorf("unexpected projection: %+v", info)
	}
}
