package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

// PageExtractor fetches an article page and extracts its readable body text.
// Used for sources whose feed entries carry no usable content. Best-effort:
// any failure yields an empty string.
type PageExtractor struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

func NewPageExtractor(client *http.Client, userAgent string, timeout time.Duration) *PageExtractor {
	return &PageExtractor{
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

func (p *PageExtractor) Extract(ctx context.Context, pageURL string) string {
	if p == nil || p.client == nil || pageURL == "" {
		return ""
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, "GET", pageURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		slog.Debug("Article page fetch failed", "url", pageURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "text/html") {
		return ""
	}

	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageSize), parsedURL)
	if err != nil {
		slog.Debug("Content extraction failed", "url", pageURL, "error", err)
		return ""
	}

	return strings.Join(strings.Fields(article.TextContent), " ")
}
