package tasks

import (
	"context"
	"testing"
	"time"

	"newsprism/app/feed"
	"newsprism/app/sources"
)

type stubFetcher struct {
	entries []feed.Entry
}

func (s *stubFetcher) Fetch(_ context.Context, src sources.Source) (*feed.FeedMeta, []feed.Entry, error) {
	return &feed.FeedMeta{Title: src.Name}, s.entries, nil
}

func stubCollector() (*feed.Collector, *feed.HealthChecker) {
	published := time.Now().UTC().Add(-time.Hour)
	fetcher := &stubFetcher{
		entries: []feed.Entry{{
			Title:           "Story",
			Link:            "https://example.com/1",
			Content:         "Body",
			PublishedParsed: &published,
		}},
	}

	config := &sources.Config{
		Sources: []sources.Source{{Name: "stub", Kind: sources.KindSyndication}},
	}

	builder := feed.NewBuilder(nil, nil)
	collector := feed.NewCollector(config, fetcher, nil, builder, 1)
	checker := feed.NewHealthChecker(config, fetcher, nil, 1)
	return collector, checker
}

func TestRefreshDigestTask_UpdatesSnapshot(t *testing.T) {
	collector, _ := stubCollector()
	snapshot := feed.NewSnapshot()

	task := NewRefreshDigestTask(collector, snapshot, 24)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	result := snapshot.Result()
	if result == nil {
		t.Fatalf("Expected snapshot populated")
	}
	if len(result.Articles) != 1 {
		t.Errorf("Expected 1 article in snapshot, got %d", len(result.Articles))
	}
	if !snapshot.Fresh(time.Minute) {
		t.Errorf("Expected fresh snapshot immediately after refresh")
	}
}

func TestRefreshDigestTask_CancelledContext(t *testing.T) {
	collector, _ := stubCollector()
	snapshot := feed.NewSnapshot()

	task := NewRefreshDigestTask(collector, snapshot, 24)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := task.Execute(ctx); err == nil {
		t.Errorf("Expected error for cancelled context")
	}
	if snapshot.Result() != nil {
		t.Errorf("Cancelled task must not populate the snapshot")
	}
}

func TestCheckHealthTask_UpdatesSnapshot(t *testing.T) {
	_, checker := stubCollector()
	snapshot := feed.NewSnapshot()

	task := NewCheckHealthTask(checker, snapshot)
	task.Start()

	if err := task.Execute(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	report := snapshot.Health()
	if report == nil {
		t.Fatalf("Expected health report in snapshot")
	}
	if report.Healthy != 1 || report.Unhealthy != 0 {
		t.Errorf("Expected 1 healthy source, got %d/%d", report.Healthy, report.Unhealthy)
	}
}

func TestScheduler_RunsStartupTasks(t *testing.T) {
	collector, checker := stubCollector()
	snapshot := feed.NewSnapshot()

	scheduler := NewScheduler(collector, checker, snapshot, 24, time.Hour, 2)
	scheduler.Start()
	defer scheduler.Stop()

	deadline := time.After(5 * time.Second)
	for snapshot.Result() == nil || snapshot.Health() == nil {
		select {
		case <-deadline:
			t.Fatalf("Startup tasks did not populate the snapshot in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if len(snapshot.Result().Articles) != 1 {
		t.Errorf("Expected 1 article from startup refresh, got %d", len(snapshot.Result().Articles))
	}
}
