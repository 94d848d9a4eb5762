package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling: queue management and worker pool control.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
