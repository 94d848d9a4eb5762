package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"newsprism/app/sources"
)

func TestCheckAll_Verdicts(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)

	config := testConfig([]sources.Source{
		{Name: "healthy", Kind: sources.KindSyndication},
		{Name: "erroring", Kind: sources.KindSyndication},
		{Name: "empty", Kind: sources.KindSyndication},
	}, nil)

	fetcher := &fakeFetcher{
		entries: map[string][]Entry{
			"healthy": {datedEntry("Story", "https://h/1", recent)},
			"empty":   {},
		},
		errs: map[string]error{"erroring": fmt.Errorf("timeout")},
	}

	checker := NewHealthChecker(config, fetcher, nil, 2)
	checker.now = func() time.Time { return now }

	report := checker.CheckAll(context.Background())

	if report.Total != 3 {
		t.Errorf("Expected total 3, got %d", report.Total)
	}
	if report.Healthy != 1 || report.Unhealthy != 2 {
		t.Errorf("Expected 1 healthy / 2 unhealthy, got %d/%d", report.Healthy, report.Unhealthy)
	}
	if !report.PerSource["healthy"] {
		t.Errorf("Source with entries should be healthy")
	}
	if report.PerSource["erroring"] {
		t.Errorf("Erroring source should be unhealthy")
	}
	// A reachable feed with zero entries is still unhealthy.
	if report.PerSource["empty"] {
		t.Errorf("Empty feed should be unhealthy")
	}
	if len(report.HealthyList) != 1 || report.HealthyList[0] != "healthy" {
		t.Errorf("Unexpected healthy list: %v", report.HealthyList)
	}
}

func TestCheckAll_ListsFollowConfigOrder(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)

	config := testConfig([]sources.Source{
		{Name: "b-source", Kind: sources.KindSyndication},
		{Name: "a-source", Kind: sources.KindSyndication},
	}, nil)

	fetcher := &fakeFetcher{
		entries: map[string][]Entry{
			"b-source": {datedEntry("S", "https://b/1", recent)},
			"a-source": {datedEntry("S", "https://a/1", recent)},
		},
	}

	checker := NewHealthChecker(config, fetcher, nil, 2)

	report := checker.CheckAll(context.Background())

	if len(report.HealthyList) != 2 || report.HealthyList[0] != "b-source" || report.HealthyList[1] != "a-source" {
		t.Errorf("Expected configuration order, got %v", report.HealthyList)
	}
}

func TestCheckAll_SearchSourceProbed(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)

	config := testConfig([]sources.Source{
		{Name: "search", Kind: sources.KindKeywordSearch},
	}, []string{"pride"})

	searcher := &fakeSearcher{
		entries: map[string][]Entry{
			"pride": {datedEntry("Result", "https://s/1", recent)},
		},
	}

	checker := NewHealthChecker(config, nil, searcher, 1)

	report := checker.CheckAll(context.Background())

	if !report.PerSource["search"] {
		t.Errorf("Search source with results should be healthy")
	}
}

func TestTestSource_UnknownName(t *testing.T) {
	config := testConfig([]sources.Source{
		{Name: "known", Kind: sources.KindSyndication},
	}, nil)

	checker := NewHealthChecker(config, &fakeFetcher{}, nil, 1)

	_, err := checker.TestSource(context.Background(), "missing")
	if !errors.Is(err, ErrUnknownSource) {
		t.Errorf("Expected ErrUnknownSource, got %v", err)
	}
}

func TestTestSource_ReportsDetails(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-time.Hour)

	config := testConfig([]sources.Source{
		{Name: "alpha", URL: "https://a/feed", Kind: sources.KindSyndication},
	}, nil)

	fetcher := &fakeFetcher{
		entries: map[string][]Entry{
			"alpha": {datedEntry("One", "https://a/1", recent), datedEntry("Two", "https://a/2", recent)},
		},
	}

	checker := NewHealthChecker(config, fetcher, nil, 1)

	result, err := checker.TestSource(context.Background(), "alpha")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if result.Name != "alpha" || result.Endpoint != "https://a/feed" {
		t.Errorf("Unexpected identity fields: %+v", result)
	}
	if result.EntriesFound != 2 {
		t.Errorf("Expected 2 entries found, got %d", result.EntriesFound)
	}
	if result.Title != "alpha" {
		t.Errorf("Expected feed title recorded, got %q", result.Title)
	}
	if result.Error != "" {
		t.Errorf("Expected no error, got %q", result.Error)
	}
}

func TestTestSource_FetchFailureInResult(t *testing.T) {
	config := testConfig([]sources.Source{
		{Name: "broken", URL: "https://b/feed", Kind: sources.KindSyndication},
	}, nil)

	fetcher := &fakeFetcher{errs: map[string]error{"broken": fmt.Errorf("connection refused")}}

	checker := NewHealthChecker(config, fetcher, nil, 1)

	result, err := checker.TestSource(context.Background(), "broken")
	if err != nil {
		t.Fatalf("Fetch failures belong in the result, not the error return: %v", err)
	}
	if result.Error == "" {
		t.Errorf("Expected failure recorded in the result")
	}
	if result.EntriesFound != 0 {
		t.Errorf("Expected zero entries, got %d", result.EntriesFound)
	}
}
