package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"newsprism/app/sources"
)

// ErrUnknownSource is returned when a source name is not configured.
var ErrUnknownSource = errors.New("unknown source")

// HealthReport is the outcome of probing every configured source once.
type HealthReport struct {
	Timestamp     time.Time       `json:"timestamp"`
	Total         int             `json:"total"`
	Healthy       int             `json:"healthy"`
	Unhealthy     int             `json:"unhealthy"`
	HealthyList   []string        `json:"healthy_list"`
	UnhealthyList []string        `json:"unhealthy_list"`
	PerSource     map[string]bool `json:"per_source"`
}

// SourceTest is the detailed result of probing a single named source.
type SourceTest struct {
	Name           string  `json:"name"`
	Endpoint       string  `json:"endpoint"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	EntriesFound   int     `json:"entries_found"`
	Title          string  `json:"title"`
	Error          string  `json:"error,omitempty"`
}

// HealthChecker probes configured sources for reachability and validity. It
// reuses the collector's fetch abstraction but never produces records.
type HealthChecker struct {
	config      *sources.Config
	fetcher     Fetcher
	searcher    Searcher
	concurrency int
	now         func() time.Time
}

func NewHealthChecker(config *sources.Config, fetcher Fetcher, searcher Searcher, concurrency int) *HealthChecker {
	if concurrency <= 0 {
		concurrency = min(max(len(config.Sources), 1), maxDefaultConcurrency)
	}
	return &HealthChecker{
		config:      config,
		fetcher:     fetcher,
		searcher:    searcher,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// CheckAll probes every configured source independently. A source is healthy
// iff one fetch attempt yields at least one entry; one unhealthy source
// never affects the verdict for others.
func (h *HealthChecker) CheckAll(ctx context.Context) *HealthReport {
	report := &HealthReport{
		Timestamp: NormalizeTime(h.now()),
		Total:     len(h.config.Sources),
		PerSource: make(map[string]bool, len(h.config.Sources)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)

	for _, src := range h.config.Sources {
		src := src
		g.Go(func() error {
			healthy := h.probe(gctx, src)
			mu.Lock()
			report.PerSource[src.Name] = healthy
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	for _, src := range h.config.Sources {
		if report.PerSource[src.Name] {
			report.HealthyList = append(report.HealthyList, src.Name)
		} else {
			report.UnhealthyList = append(report.UnhealthyList, src.Name)
		}
	}
	report.Healthy = len(report.HealthyList)
	report.Unhealthy = len(report.UnhealthyList)

	return report
}

// TestSource probes a single named source and reports fetch timing and
// entry counts. An unknown name yields ErrUnknownSource.
func (h *HealthChecker) TestSource(ctx context.Context, name string) (*SourceTest, error) {
	src, ok := h.config.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}

	result := &SourceTest{Name: src.Name, Endpoint: src.URL}
	start := time.Now()

	if src.Kind == sources.KindKeywordSearch {
		entries, err := h.searcher.Search(ctx, src, h.probeKeyword(), h.probeWindow())
		result.ElapsedSeconds = time.Since(start).Seconds()
		if err != nil {
			result.Error = err.Error()
			return result, nil
		}
		result.EntriesFound = len(entries)
		return result, nil
	}

	meta, entries, err := h.fetcher.Fetch(ctx, src)
	result.ElapsedSeconds = time.Since(start).Seconds()
	if err != nil {
		result.Error = err.Error()
		return result, nil
	}
	result.EntriesFound = len(entries)
	if meta != nil {
		result.Title = meta.Title
	}
	return result, nil
}

func (h *HealthChecker) probe(ctx context.Context, src sources.Source) bool {
	if src.Kind == sources.KindKeywordSearch {
		entries, err := h.searcher.Search(ctx, src, h.probeKeyword(), h.probeWindow())
		return err == nil && len(entries) > 0
	}

	_, entries, err := h.fetcher.Fetch(ctx, src)
	return err == nil && len(entries) > 0
}

func (h *HealthChecker) probeKeyword() string {
	if len(h.config.SearchKeywords) > 0 {
		return h.config.SearchKeywords[0]
	}
	return "news"
}

func (h *HealthChecker) probeWindow() time.Time {
	return NormalizeTime(h.now()).Add(-24 * time.Hour)
}
