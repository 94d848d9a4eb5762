package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"newsprism/app/feed"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

// Health probes run on every Nth scheduler tick; probing all sources is
// considerably heavier than a digest refresh.
const healthCheckEvery = 4

type Scheduler struct {
	collector   *feed.Collector
	checker     *feed.HealthChecker
	snapshot    *feed.Snapshot
	hoursBack   int
	interval    time.Duration
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
}

func NewScheduler(collector *feed.Collector, checker *feed.HealthChecker, snapshot *feed.Snapshot,
	hoursBack int, interval time.Duration, workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	if workerCount <= 0 {
		workerCount = 1
	}

	return &Scheduler{
		collector:   collector,
		checker:     checker,
		snapshot:    snapshot,
		hoursBack:   hoursBack,
		interval:    interval,
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, 32),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueStartupTasks()

		tick := 0
		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				tick++
				s.enqueueTick(tick)
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) enqueueStartupTasks() {
	if err := s.EnqueueTask(NewRefreshDigestTask(s.collector, s.snapshot, s.hoursBack)); err != nil {
		slog.Warn("Failed to enqueue RefreshDigestTask", "error", err)
	}
	if err := s.EnqueueTask(NewCheckHealthTask(s.checker, s.snapshot)); err != nil {
		slog.Warn("Failed to enqueue CheckHealthTask", "error", err)
	}
}

func (s *Scheduler) enqueueTick(tick int) {
	if err := s.EnqueueTask(NewRefreshDigestTask(s.collector, s.snapshot, s.hoursBack)); err != nil {
		slog.Warn("Failed to enqueue RefreshDigestTask", "error", err)
	}

	if tick%healthCheckEvery == 0 {
		if err := s.EnqueueTask(NewCheckHealthTask(s.checker, s.snapshot)); err != nil {
			slog.Warn("Failed to enqueue CheckHealthTask", "error", err)
		}
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)
	if err == nil {
		return
	}

	slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

	if !task.CanRetry() {
		slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		return
	}

	task.IncrementRetryCount()
	retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
	if retryDelay > 30*time.Second {
		retryDelay = 30 * time.Second
	}

	slog.Warn("Task retry scheduled", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

	go func() {
		time.Sleep(retryDelay)
		select {
		case <-s.ctx.Done():
			slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
		default:
			if retryErr := s.EnqueueTask(task); retryErr != nil {
				slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
			}
		}
	}()
}
