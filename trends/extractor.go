package trends

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	extractWorkers   = 4
	extractTimeout   = 20 * time.Second
	maxPageBytes     = 4 << 20
	excerptMaxRunes  = 200
	extractUserAgent = "autoblog-trends/1.0"
)

// Extractor fetches a headline's page and reduces it to a short excerpt.
type Extractor struct {
	Client *http.Client
}

// NewExtractor returns an extractor with a bounded HTTP client.
func NewExtractor() *Extractor {
	return &Extractor{Client: &http.Client{Timeout: extractTimeout}}
}

// Excerpt returns the page's own summary, or the start of its readable text.
func (e *Extractor) Excerpt(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("headline URL is empty")
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid headline URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", extractUserAgent)
	resp, err := e.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned %d", resp.StatusCode)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageBytes), parsed)
	if err != nil {
		return "", fmt.Errorf("readability extraction failed: %w", err)
	}

	text := strings.TrimSpace(article.Excerpt)
	if text == "" {
		text = strings.TrimSpace(article.TextContent)
	}
	return truncateRunes(strings.Join(strings.Fields(text), " "), excerptMaxRunes), nil
}

// Enrich fills Excerpt on the first n headlines using a small worker pool.
// Pages that cannot be extracted keep an empty excerpt.
func (e *Extractor) Enrich(ctx context.Context, headlines []Headline, n int) {
	n = min(n, len(headlines))
	if n <= 0 {
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(extractWorkers, n); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if excerpt, err := e.Excerpt(ctx, headlines[i].URL); err == nil {
					headlines[i].Excerpt = excerpt
				}
			}
		}()
	}
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
