package feed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"newsprism/app/sources"
)

const (
	// Keyword queries per collection are bounded to a prefix of the
	// configured keyword list to stay inside the search API's rate limits.
	maxSearchKeywords = 5

	// Sentinel the search API substitutes for withdrawn article bodies.
	removedContentSentinel = "[Removed]"

	maxDefaultConcurrency = 8
)

// Fetcher is the external fetch abstraction for syndication sources.
// Transport-level quirks (encoding repair, URL rewriting, retries) are the
// implementation's concern.
type Fetcher interface {
	Fetch(ctx context.Context, src sources.Source) (*FeedMeta, []Entry, error)
}

// Searcher queries a keyword-search API source for one keyword scoped to a
// recency window.
type Searcher interface {
	Search(ctx context.Context, src sources.Source, keyword string, from time.Time) ([]Entry, error)
}

// Collector orchestrates fetches across all configured sources, builds
// records, and pipes the merged set through dedup and keyword filtering.
// Any single source or keyword failing is logged and skipped; collection
// never aborts.
type Collector struct {
	config      *sources.Config
	fetcher     Fetcher
	searcher    Searcher
	builder     *Builder
	concurrency int
	now         func() time.Time
}

// NewCollector builds a collector. A non-positive concurrency defaults to
// one worker per configured source, capped to avoid overwhelming upstreams.
func NewCollector(config *sources.Config, fetcher Fetcher, searcher Searcher, builder *Builder, concurrency int) *Collector {
	if concurrency <= 0 {
		concurrency = min(max(len(config.Sources), 1), maxDefaultConcurrency)
	}
	return &Collector{
		config:      config,
		fetcher:     fetcher,
		searcher:    searcher,
		builder:     builder,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Collect gathers articles published within the last hoursBack hours from
// every configured source, deduplicates them, and filters by excluded
// keywords (the built-in defaults when exclude is empty). Sources are
// fetched with bounded parallelism; the merge order is deterministic:
// syndication sources in configuration order, then search results in
// keyword order.
func (c *Collector) Collect(ctx context.Context, hoursBack int, exclude []string) (*Result, error) {
	now := NormalizeTime(c.now())
	cutoff := now.Add(-time.Duration(hoursBack) * time.Hour)

	syndication := c.config.Syndication()
	searches := c.config.KeywordSearch()

	keywords := c.config.SearchKeywords
	if len(keywords) > maxSearchKeywords {
		keywords = keywords[:maxSearchKeywords]
	}

	feedArticles := make([][]Article, len(syndication))
	feedErrs := make([]error, len(syndication))
	searchArticles := make([][][]Article, len(searches))
	searchErrs := make([][]error, len(searches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, src := range syndication {
		i, src := i, src
		g.Go(func() error {
			feedArticles[i], feedErrs[i] = c.collectFeed(gctx, src, cutoff)
			return nil
		})
	}

	for i, src := range searches {
		i, src := i, src
		searchArticles[i] = make([][]Article, len(keywords))
		searchErrs[i] = make([]error, len(keywords))
		for j, keyword := range keywords {
			j, keyword := j, keyword
			g.Go(func() error {
				searchArticles[i][j], searchErrs[i][j] = c.collectSearch(gctx, src, keyword, cutoff)
				return nil
			})
		}
	}

	g.Wait()

	merged := make([]Article, 0, 64)
	provenance := Provenance{BySource: make(map[string]SourceStat, len(c.config.Sources))}

	for i, src := range syndication {
		if feedErrs[i] != nil {
			slog.Warn("Source fetch failed", "source", src.Name, "error", feedErrs[i])
			provenance.Failed = append(provenance.Failed, src.Name)
			provenance.BySource[src.Name] = SourceStat{Error: feedErrs[i].Error()}
			continue
		}
		merged = append(merged, feedArticles[i]...)
		provenance.Succeeded = append(provenance.Succeeded, src.Name)
		provenance.BySource[src.Name] = SourceStat{Articles: len(feedArticles[i])}
	}

	for i, src := range searches {
		count := 0
		failures := 0
		var firstErr error

		for j, keyword := range keywords {
			if searchErrs[i][j] != nil {
				slog.Warn("Keyword query failed", "source", src.Name, "keyword", keyword, "error", searchErrs[i][j])
				failures++
				if firstErr == nil {
					firstErr = searchErrs[i][j]
				}
				continue
			}
			merged = append(merged, searchArticles[i][j]...)
			count += len(searchArticles[i][j])
		}

		if len(keywords) > 0 && failures == len(keywords) {
			provenance.Failed = append(provenance.Failed, src.Name)
			provenance.BySource[src.Name] = SourceStat{Error: firstErr.Error()}
			continue
		}
		provenance.Succeeded = append(provenance.Succeeded, src.Name)
		provenance.BySource[src.Name] = SourceStat{Articles: count}
	}

	provenance.PreDedup = len(merged)
	unique := Dedupe(merged)
	provenance.PostDedup = len(unique)

	// The caller's exclusion list wins over the configured one; the built-in
	// defaults apply only when both are empty.
	if len(exclude) == 0 {
		exclude = c.config.ExcludeKeywords
	}

	provenance.PreFilter = len(unique)
	filtered := FilterByKeywords(unique, exclude)
	provenance.PostFilter = len(filtered)

	slog.Info("Collection complete",
		"sources_ok", len(provenance.Succeeded),
		"sources_failed", len(provenance.Failed),
		"collected", provenance.PreDedup,
		"unique", provenance.PostDedup,
		"articles", provenance.PostFilter)

	return &Result{Articles: filtered, Provenance: provenance, FetchedAt: now}, nil
}

// collectFeed fetches one syndication source and builds records from its
// entries. Entries older than the cutoff are skipped only when a date was
// actually discoverable: undated entries cannot be proven stale, so they are
// stamped "now" by the builder and kept.
func (c *Collector) collectFeed(ctx context.Context, src sources.Source, cutoff time.Time) ([]Article, error) {
	_, entries, err := c.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("feed returned no entries")
	}

	articles := make([]Article, 0, len(entries))
	for _, entry := range entries {
		if published, ok := EntryDate(entry); ok && published.Before(cutoff) {
			continue
		}

		article, err := c.builder.Build(ctx, entry, src)
		if err != nil {
			slog.Debug("Skipping entry", "source", src.Name, "error", err)
			continue
		}
		articles = append(articles, article)
	}

	slog.Debug("Source collected", "source", src.Name, "entries", len(entries), "articles", len(articles))
	return articles, nil
}

// collectSearch issues one keyword query against a search API source.
// Articles whose content field is empty or withdrawn are discarded; records
// are built directly from the API's own fields.
func (c *Collector) collectSearch(ctx context.Context, src sources.Source, keyword string, cutoff time.Time) ([]Article, error) {
	entries, err := c.searcher.Search(ctx, src, keyword, cutoff)
	if err != nil {
		return nil, err
	}

	articles := make([]Article, 0, len(entries))
	for _, entry := range entries {
		if entry.Content == "" || entry.Content == removedContentSentinel {
			continue
		}
		// The API's content field is truncated; its description is the
		// usable body when present.
		if entry.Description != "" {
			entry.Content = entry.Description
		}

		article, err := c.builder.Build(ctx, entry, src)
		if err != nil {
			slog.Debug("Skipping search result", "source", src.Name, "keyword", keyword, "error", err)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}
