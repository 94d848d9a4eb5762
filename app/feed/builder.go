package feed

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"newsprism/app/sources"
)

// ErrUnusableEntry signals an entry that cannot become a record.
var ErrUnusableEntry = errors.New("entry is missing a title or link")

// Builder assembles normalized Articles from raw entries.
type Builder struct {
	resolver *Resolver
	pages    *PageExtractor
	now      func() time.Time
}

func NewBuilder(resolver *Resolver, pages *PageExtractor) *Builder {
	return &Builder{
		resolver: resolver,
		pages:    pages,
		now:      time.Now,
	}
}

// Build constructs an Article from a raw entry, or returns ErrUnusableEntry
// when title or link is missing. An undiscoverable date defaults to the
// build instant; thumbnail resolution failure leaves the field empty.
func (b *Builder) Build(ctx context.Context, e Entry, src sources.Source) (Article, error) {
	title := strings.TrimSpace(e.Title)
	link := strings.TrimSpace(e.Link)
	if title == "" || link == "" {
		return Article{}, ErrUnusableEntry
	}

	body := ExtractContent(e)
	if body == "" && src.ExtractContent {
		body = b.pages.Extract(ctx, link)
	}

	publishedAt, ok := EntryDate(e)
	if !ok {
		publishedAt = NormalizeTime(b.now())
	}

	// The search API reports its own image URL and publisher name; the
	// fallback chain only runs for syndication entries.
	thumbnail := e.ThumbnailURL
	if thumbnail == "" && src.Kind != sources.KindKeywordSearch && b.resolver != nil {
		thumbnail = b.resolver.Resolve(ctx, e, link)
	}

	source := e.SourceName
	if source == "" {
		source = src.Name
	}

	return Article{
		Title:        title,
		Content:      body,
		URL:          link,
		PublishedAt:  publishedAt,
		Source:       source,
		ThumbnailURL: thumbnail,
		HashID:       Fingerprint(title, link),
	}, nil
}

// Fingerprint derives the dedup identity of a record from exactly its title
// and URL. MD5 is an identity key here, not a security boundary.
func Fingerprint(title, url string) string {
	sum := md5.Sum([]byte(title + url))
	return hex.EncodeToString(sum[:])
}
