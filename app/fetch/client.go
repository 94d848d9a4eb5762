// Package fetch implements the outbound side of collection: downloading and
// parsing syndication feeds and querying the keyword-search API. Publisher
// quirks (URL rewriting, header spoofing, encoding repair) live here so the
// pipeline never sees them.
package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"newsprism/app/feed"
	"newsprism/app/sources"
)

const maxFeedSize = 10 * 1024 * 1024 // 10MB

type Client struct {
	httpClient *http.Client
	parser     *gofeed.Parser
	apiKey     string
	userAgent  string
	timeout    time.Duration
}

func NewClient(httpClient *http.Client, apiKey, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: httpClient,
		parser:     gofeed.NewParser(),
		apiKey:     apiKey,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch downloads and parses one syndication source into raw entries.
func (c *Client) Fetch(ctx context.Context, src sources.Source) (*feed.FeedMeta, []feed.Entry, error) {
	data, err := c.download(ctx, fixGoogleNewsURL(src.URL), headersFor(src.URL))
	if err != nil {
		return nil, nil, err
	}

	data = repairEncoding(data)

	parsed, err := c.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	meta := &feed.FeedMeta{
		Title:       parsed.Title,
		Link:        parsed.Link,
		Description: parsed.Description,
	}
	if parsed.Image != nil {
		meta.ImageURL = parsed.Image.URL
	}

	entries := make([]feed.Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, entryFromItem(item))
	}

	return meta, entries, nil
}

func (c *Client) download(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// entryFromItem maps a parsed feed item onto the pipeline's raw entry shape,
// including the media extensions the thumbnail resolver inspects.
func entryFromItem(item *gofeed.Item) feed.Entry {
	entry := feed.Entry{
		Title:           item.Title,
		Link:            item.Link,
		Content:         item.Content,
		Description:     item.Description,
		Published:       item.Published,
		PublishedParsed: item.PublishedParsed,
		Updated:         item.Updated,
		UpdatedParsed:   item.UpdatedParsed,
	}

	if item.Image != nil {
		entry.MediaThumbnail = item.Image.URL
	}

	if media, ok := item.Extensions["media"]; ok {
		if thumbnails := media["thumbnail"]; len(thumbnails) > 0 {
			if u := thumbnails[0].Attrs["url"]; u != "" {
				entry.MediaThumbnail = u
			}
		}
		for _, content := range media["content"] {
			entry.MediaContents = append(entry.MediaContents, feed.MediaRef{
				URL:  content.Attrs["url"],
				Type: content.Attrs["type"],
			})
		}
	}

	for _, enclosure := range item.Enclosures {
		if enclosure == nil {
			continue
		}
		entry.Enclosures = append(entry.Enclosures, feed.MediaRef{
			URL:  enclosure.URL,
			Type: enclosure.Type,
		})
	}

	return entry
}
