package tasks

import (
	"strings"
	"testing"
)

func TestNewTask_Identity(t *testing.T) {
	task := NewTask(TaskTypeRefreshDigest)

	if task.GetType() != TaskTypeRefreshDigest {
		t.Errorf("Expected type %s, got %s", TaskTypeRefreshDigest, task.GetType())
	}
	if !strings.HasPrefix(task.GetID(), string(TaskTypeRefreshDigest)+"-") {
		t.Errorf("Expected ID prefixed with type, got %s", task.GetID())
	}
	if task.GetMaxRetries() != DefaultMaxRetries {
		t.Errorf("Expected default max retries %d, got %d", DefaultMaxRetries, task.GetMaxRetries())
	}
}

func TestTask_RetryAccounting(t *testing.T) {
	task := NewTask(TaskTypeCheckHealth)

	for i := 0; i < DefaultMaxRetries; i++ {
		if !task.CanRetry() {
			t.Fatalf("Expected retry %d to be allowed", i+1)
		}
		task.IncrementRetryCount()
	}

	if task.CanRetry() {
		t.Errorf("Expected retries exhausted after %d increments", DefaultMaxRetries)
	}
	if task.GetRetryCount() != DefaultMaxRetries {
		t.Errorf("Expected retry count %d, got %d", DefaultMaxRetries, task.GetRetryCount())
	}
}

func TestTask_DurationBeforeStart(t *testing.T) {
	task := NewTask(TaskTypeRefreshDigest)

	if task.GetDuration() != 0 {
		t.Errorf("Expected zero duration before Start, got %v", task.GetDuration())
	}

	task.Start()
	if task.StartedAt == nil {
		t.Errorf("Expected StartedAt set after Start")
	}
}
