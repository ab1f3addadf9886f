package feed

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ExtractContent pulls the readable body text out of an article page.
// Readability is tried first; if it fails or comes back empty, the page
// is parsed directly and boilerplate elements are stripped. The result
// has all whitespace collapsed to single spaces. Returns "" when no
// usable text can be extracted.
func ExtractContent(html string, pageURL *url.URL) string {
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err == nil {
		if text := normalizeWhitespace(article.TextContent); text != "" {
			return text
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, header, footer, nav").Remove()
	return normalizeWhitespace(doc.Text())
}

// normalizeWhitespace collapses all runs of whitespace into single
// spaces and trims the ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
