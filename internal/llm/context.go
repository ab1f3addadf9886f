package llm

import (
	"fmt"
	"strings"

	"github.com/nitishbaidya/RAG-News/internal/models"
)

const (
	// MaxContextChars bounds the retrieved text included in one prompt,
	// keeping a buffer below the model's 4096-token window.
	MaxContextChars = 3500

	// metadataOverhead approximates the rendered metadata header per
	// document when dividing the budget.
	metadataOverhead = 150

	// perDocumentCap stops a small doc set producing absurdly long
	// individual excerpts.
	perDocumentCap = 1000

	// minMeaningfulContent is the smallest remaining budget worth
	// rendering another document into.
	minMeaningfulContent = 100

	// noDocumentsMarker is the context used when nothing was retrieved.
	noDocumentsMarker = "No documents available."
)

// FormatDocumentsWithLimit renders documents into a prompt context
// block without exceeding maxChars in total. Each document gets an
// equal share of the budget (less metadata overhead, capped at
// perDocumentCap); rendering stops once the budget is spent or the
// remainder is too small to be meaningful. Truncated content is marked
// with an ellipsis.
func FormatDocumentsWithLimit(docs []models.Document, maxChars int) string {
	if len(docs) == 0 {
		return noDocumentsMarker
	}

	allowance := maxChars/len(docs) - metadataOverhead
	if allowance > perDocumentCap {
		allowance = perDocumentCap
	}
	if allowance < minMeaningfulContent {
		// Too many documents to share the budget evenly; give each a
		// minimal excerpt and let the budget decide how many fit.
		allowance = minMeaningfulContent
	}

	var blocks []string
	total := 0

	for i, doc := range docs {
		if total >= maxChars {
			break
		}

		header := fmt.Sprintf("Document %d:\nTitle: %s\nSource: %s\nDate: %s\nURL: %s\n\nContent: ",
			i+1, orDefault(doc.Title, "Untitled"), orDefault(doc.Source, "Unknown"), doc.Date, doc.URL)

		// Reserve room for the ellipsis marker and block separators so
		// the rendered total stays strictly within the budget.
		remaining := maxChars - total - len(header) - 5
		if remaining < minMeaningfulContent {
			break
		}

		limit := allowance
		if limit > remaining {
			limit = remaining
		}

		content := doc.Content
		if len(content) > limit {
			content = content[:limit] + "..."
		}

		block := header + content + "\n"
		blocks = append(blocks, block)
		total += len(block) + 1 // account for the joining newline
	}

	return strings.Join(blocks, "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
