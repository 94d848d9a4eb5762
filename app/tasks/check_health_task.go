package tasks

import (
	"context"
	"log/slog"

	"newsprism/app/feed"
)

// CheckHealthTask probes every configured source and stores the report in
// the shared snapshot. Diagnostic only; it never produces records.
type CheckHealthTask struct {
	Task
	checker  *feed.HealthChecker
	snapshot *feed.Snapshot
}

func NewCheckHealthTask(checker *feed.HealthChecker, snapshot *feed.Snapshot) *CheckHealthTask {
	return &CheckHealthTask{
		Task:     NewTask(TaskTypeCheckHealth),
		checker:  checker,
		snapshot: snapshot,
	}
}

func (t *CheckHealthTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	report := t.checker.CheckAll(ctx)
	t.snapshot.SetHealth(report)

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"duration", t.GetDuration(),
		"healthy", report.Healthy,
		"unhealthy", report.Unhealthy)

	return nil
}
