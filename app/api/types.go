package api

import (
	"context"
	"time"

	"newsprism/app/feed"
	"newsprism/app/sources"
)

type CollectorInterface interface {
	Collect(ctx context.Context, hoursBack int, exclude []string) (*feed.Result, error)
}

type HealthCheckerInterface interface {
	CheckAll(ctx context.Context) *feed.HealthReport
	TestSource(ctx context.Context, name string) (*feed.SourceTest, error)
}

var _ CollectorInterface = (*feed.Collector)(nil)
var _ HealthCheckerInterface = (*feed.HealthChecker)(nil)

type Handler struct {
	collector    CollectorInterface
	checker      HealthCheckerInterface
	snapshot     *feed.Snapshot
	config       *sources.Config
	defaultHours int
	snapshotAge  time.Duration
	version      string
}

type articlesResponse struct {
	Articles         []feed.Article  `json:"articles"`
	Count            int             `json:"count"`
	ExcludedKeywords []string        `json:"excluded_keywords"`
	Provenance       feed.Provenance `json:"provenance"`
}

type sourceInfo struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Kind     string `json:"kind"`
}
