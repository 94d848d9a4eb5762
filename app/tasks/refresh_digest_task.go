package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"newsprism/app/feed"
)

// RefreshDigestTask runs a full collection pass and stores the result in the
// shared snapshot, keeping the served digest warm.
type RefreshDigestTask struct {
	Task
	collector *feed.Collector
	snapshot  *feed.Snapshot
	hoursBack int
}

func NewRefreshDigestTask(collector *feed.Collector, snapshot *feed.Snapshot, hoursBack int) *RefreshDigestTask {
	return &RefreshDigestTask{
		Task:      NewTask(TaskTypeRefreshDigest),
		collector: collector,
		snapshot:  snapshot,
		hoursBack: hoursBack,
	}
}

func (t *RefreshDigestTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	result, err := t.collector.Collect(ctx, t.hoursBack, nil)
	if err != nil {
		return fmt.Errorf("failed to refresh digest: %w", err)
	}

	t.snapshot.SetResult(result)

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"duration", t.GetDuration(),
		"articles", len(result.Articles),
		"sources_ok", len(result.Provenance.Succeeded),
		"sources_failed", len(result.Provenance.Failed))

	return nil
}
