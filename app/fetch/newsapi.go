package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"newsprism/app/feed"
	"newsprism/app/sources"
)

type searchResponse struct {
	Status   string          `json:"status"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Articles []searchArticle `json:"articles"`
}

type searchArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

// Search issues one keyword query against the search API, scoped to
// articles published since from. The API reports publish times with an
// explicit offset, so no zone guessing is needed.
func (c *Client) Search(ctx context.Context, src sources.Source, keyword string, from time.Time) ([]feed.Entry, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search API key is not configured")
	}

	endpoint, err := url.Parse(src.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}

	query := endpoint.Query()
	query.Set("q", keyword)
	query.Set("from", from.UTC().Format("2006-01-02"))
	query.Set("sortBy", "publishedAt")
	query.Set("language", "en")
	query.Set("pageSize", "20")
	query.Set("apiKey", c.apiKey)
	endpoint.RawQuery = query.Encode()

	data, err := c.download(ctx, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	if parsed.Status != "" && parsed.Status != "ok" {
		return nil, fmt.Errorf("search API error %s: %s", parsed.Code, parsed.Message)
	}

	entries := make([]feed.Entry, 0, len(parsed.Articles))
	for _, article := range parsed.Articles {
		entry := feed.Entry{
			Title:        article.Title,
			Link:         article.URL,
			Content:      article.Content,
			Description:  article.Description,
			Published:    article.PublishedAt,
			SourceName:   article.Source.Name,
			ThumbnailURL: article.URLToImage,
		}
		if t, err := time.Parse(time.RFC3339, article.PublishedAt); err == nil {
			entry.PublishedParsed = &t
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
