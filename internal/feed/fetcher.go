// Package feed fetches articles from configured RSS/Atom feeds and
// extracts their full text.
package feed

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/nitishbaidya/RAG-News/internal/logger"
	"github.com/nitishbaidya/RAG-News/internal/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// maxArticleBody caps how much of an article page is read.
const maxArticleBody = 4 << 20 // 4MB

// Source names an RSS/Atom feed to poll.
type Source struct {
	Name string
	URL  string
}

// Fetcher polls a fixed set of feeds and produces articles whose URLs
// are not already known. A single failing feed or article page is
// logged and skipped; it never aborts the whole fetch.
type Fetcher struct {
	sources  []Source
	parser   *gofeed.Parser
	client   *http.Client
	delayMin time.Duration
	delayMax time.Duration
	log      *logger.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient overrides the HTTP client used for article pages.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithDelay sets the randomized politeness delay between article
// fetches. Zero max disables throttling.
func WithDelay(min, max time.Duration) Option {
	return func(f *Fetcher) {
		f.delayMin = min
		f.delayMax = max
	}
}

// WithLogger sets the fetcher's logger.
func WithLogger(l *logger.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

// New creates a fetcher for the given sources, polled in order.
func New(sources []Source, opts ...Option) *Fetcher {
	f := &Fetcher{
		sources:  sources,
		parser:   gofeed.NewParser(),
		client:   &http.Client{Timeout: 10 * time.Second},
		delayMin: 1 * time.Second,
		delayMax: 3 * time.Second,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchNew fetches every configured feed, skips entries whose link is
// in exclude, and returns fully extracted articles. Entries whose page
// yields no text are dropped. Returns early with ctx.Err() if the
// context is cancelled mid-fetch.
func (f *Fetcher) FetchNew(ctx context.Context, exclude map[string]bool) ([]models.Article, error) {
	var articles []models.Article

	for _, src := range f.sources {
		f.log.Info("fetching feed", "source", src.Name)

		parsed, err := f.parser.ParseURLWithContext(src.URL, ctx)
		if err != nil {
			if ctx.Err() != nil {
				return articles, ctx.Err()
			}
			f.log.Warn("feed fetch failed, skipping", "source", src.Name, "error", err)
			continue
		}

		for _, item := range parsed.Items {
			if item.Link == "" {
				continue
			}
			if exclude[item.Link] {
				f.log.Debug("skipping already indexed article", "title", item.Title)
				continue
			}

			if err := f.throttle(ctx); err != nil {
				return articles, err
			}

			content, err := f.fetchArticleContent(ctx, item.Link)
			if err != nil {
				if ctx.Err() != nil {
					return articles, ctx.Err()
				}
				f.log.Warn("article fetch failed, skipping", "url", item.Link, "error", err)
				continue
			}
			if content == "" {
				f.log.Debug("no extractable content, skipping", "url", item.Link)
				continue
			}

			articles = append(articles, models.Article{
				Title:       item.Title,
				Content:     content,
				URL:         item.Link,
				PublishedAt: publishedAt(item),
				Source:      src.Name,
			})
		}
	}

	f.log.Info("fetched new articles", "count", len(articles))
	return articles, nil
}

// fetchArticleContent downloads an article page and extracts its text.
func (f *Fetcher) fetchArticleContent(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch article: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleBody))
	if err != nil {
		return "", fmt.Errorf("read article body: %w", err)
	}

	pageURL, _ := url.Parse(link)
	return ExtractContent(string(body), pageURL), nil
}

// throttle sleeps a random interval in [delayMin, delayMax] so source
// servers are not hammered. Respects cancellation.
func (f *Fetcher) throttle(ctx context.Context) error {
	if f.delayMax <= 0 {
		return nil
	}
	delay := f.delayMin
	if spread := f.delayMax - f.delayMin; spread > 0 {
		delay += time.Duration(rand.Int63n(int64(spread)))
	}
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	return models.ParseDate(item.Published)
}
