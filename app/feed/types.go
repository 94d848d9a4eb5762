package feed

import (
	"time"
)

// Entry is the unprocessed unit returned by a fetcher for one source: a bag
// of optional fields. It exists only while one source's batch is processed.
type Entry struct {
	Title       string
	Link        string
	Content     string
	Summary     string
	Description string

	Published       string
	PublishedParsed *time.Time
	Updated         string
	UpdatedParsed   *time.Time

	MediaThumbnail string
	MediaContents  []MediaRef
	Enclosures     []MediaRef

	// Fields reported by the keyword-search API alongside the entry.
	SourceName   string
	ThumbnailURL string
}

type MediaRef struct {
	URL  string
	Type string
}

type FeedMeta struct {
	Title       string
	Link        string
	Description string
	ImageURL    string
}

// Article is the normalized output record. Immutable once built; held only
// for the duration of one collection call.
type Article struct {
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	URL          string    `json:"url"`
	PublishedAt  time.Time `json:"published_date"`
	Source       string    `json:"source"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	HashID       string    `json:"hash_id"`
}

type SourceStat struct {
	Articles int    `json:"articles"`
	Error    string `json:"error,omitempty"`
}

// Provenance records per-source outcomes and pipeline stage counts for one
// collection call.
type Provenance struct {
	Succeeded  []string              `json:"succeeded"`
	Failed     []string              `json:"failed"`
	BySource   map[string]SourceStat `json:"by_source"`
	PreDedup   int                   `json:"pre_dedup"`
	PostDedup  int                   `json:"post_dedup"`
	PreFilter  int                   `json:"pre_filter"`
	PostFilter int                   `json:"post_filter"`
}

type Result struct {
	Articles   []Article  `json:"articles"`
	Provenance Provenance `json:"provenance"`
	FetchedAt  time.Time  `json:"fetched_at"`
}
