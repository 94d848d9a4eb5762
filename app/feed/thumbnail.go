package feed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const maxPageSize = 10 * 1024 * 1024 // 10MB

// Image extraction patterns over raw entry content, tried in order: inline
// image tags, images nested in a figure, CSS background images, lazy-load
// attributes, responsive source sets.
var imagePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<img[^>]+src=['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?is)<figure[^>]*>.*?<img[^>]+src=['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?is)background-image:\s*url\(['"]?([^'")]+)['"]?\)`),
	regexp.MustCompile(`(?is)data-src=['"]([^'"]+)['"]`),
	regexp.MustCompile(`(?is)srcset=['"]([^'"]+)['"]`),
}

// Meta tags probed on the article page, in order.
var metaSelectors = []string{
	`meta[property="og:image"]`,
	`meta[property="og:image:url"]`,
	`meta[name="twitter:image"]`,
	`meta[name="twitter:image:src"]`,
	`meta[property="twitter:image"]`,
	`meta[name="msapplication-TileImage"]`,
	`meta[itemprop="image"]`,
}

// Content-area selectors probed on the article page when no metadata or
// structured data yields an image.
var contentImageSelectors = []string{
	"article img",
	".entry-content img",
	".post-content img",
	".article-body img",
	"main img",
}

// Resolver finds a representative image URL for an entry through a layered
// fallback chain. Every step is best-effort; resolution failure is never an
// error.
type Resolver struct {
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

func NewResolver(client *http.Client, userAgent string, timeout time.Duration) *Resolver {
	return &Resolver{
		client:    client,
		userAgent: userAgent,
		timeout:   timeout,
	}
}

// Resolve runs the fallback chain: structured media metadata, then a pattern
// search over the raw content, then a live fetch of the article page. Each
// step runs only if the previous found nothing.
func (r *Resolver) Resolve(ctx context.Context, e Entry, articleURL string) string {
	strategies := []func() string{
		func() string { return thumbnailFromMedia(e) },
		func() string { return thumbnailFromRawContent(e) },
		func() string { return r.thumbnailFromArticlePage(ctx, articleURL) },
	}

	for _, strategy := range strategies {
		if u := strategy(); u != "" {
			return u
		}
	}
	return ""
}

// thumbnailFromMedia checks structured feed metadata: an explicit thumbnail
// reference, then the first media content declared as an image, then the
// first image enclosure.
func thumbnailFromMedia(e Entry) string {
	if e.MediaThumbnail != "" {
		return e.MediaThumbnail
	}
	for _, media := range e.MediaContents {
		if strings.HasPrefix(media.Type, "image") && media.URL != "" {
			return media.URL
		}
	}
	for _, enclosure := range e.Enclosures {
		if strings.HasPrefix(enclosure.Type, "image") && enclosure.URL != "" {
			return enclosure.URL
		}
	}
	return ""
}

// thumbnailFromRawContent searches the unstripped content body for image
// markup. Inline data URLs and tracking pixels are rejected.
func thumbnailFromRawContent(e Entry) string {
	raw := RawContent(e)
	if raw == "" {
		return ""
	}

	for _, pattern := range imagePatterns {
		match := pattern.FindStringSubmatch(raw)
		if match == nil {
			continue
		}
		if u := match[1]; usableImageURL(u) {
			return u
		}
	}
	return ""
}

// thumbnailFromArticlePage fetches the article page and scrapes it for an
// image: Open Graph and Twitter meta tags, the Microsoft tile image,
// itemprop image, JSON-LD structured data, then content-area selectors.
// Network or parse failures yield "".
func (r *Resolver) thumbnailFromArticlePage(ctx context.Context, articleURL string) string {
	if r == nil || r.client == nil || articleURL == "" {
		return ""
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, "GET", articleURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		slog.Debug("Thumbnail page fetch failed", "url", articleURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		slog.Debug("Thumbnail page parse failed", "url", articleURL, "error", err)
		return ""
	}

	for _, selector := range metaSelectors {
		if content, ok := doc.Find(selector).First().Attr("content"); ok {
			if content != "" && !strings.HasPrefix(content, "data:") {
				return resolveURL(articleURL, content)
			}
		}
	}

	if u := imageFromJSONLD(doc); u != "" {
		return resolveURL(articleURL, u)
	}

	for _, selector := range contentImageSelectors {
		if src, ok := doc.Find(selector).First().Attr("src"); ok {
			if usableImageURL(src) {
				return resolveURL(articleURL, src)
			}
		}
	}

	return ""
}

// imageFromJSONLD reads the image field of JSON-LD structured data: either a
// string or the first element of a list.
func imageFromJSONLD(doc *goquery.Document) string {
	found := ""
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data struct {
			Image any `json:"image"`
		}
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		switch image := data.Image.(type) {
		case string:
			found = image
		case []any:
			if len(image) > 0 {
				if u, ok := image[0].(string); ok {
					found = u
				}
			}
		}
		return found == ""
	})
	return found
}

func usableImageURL(u string) bool {
	return u != "" && !strings.HasPrefix(u, "data:") && !strings.Contains(strings.ToLower(u), "pixel")
}

// resolveURL resolves a possibly-relative image reference against the
// article URL's base.
func resolveURL(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
