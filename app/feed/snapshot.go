package feed

import (
	"sync"
	"time"
)

// Snapshot holds the most recent collection result and health report for
// cheap concurrent reads. Process-local only; nothing survives a restart.
type Snapshot struct {
	mu     sync.RWMutex
	result *Result
	health *HealthReport
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) SetResult(result *Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
}

func (s *Snapshot) Result() *Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Fresh reports whether the held result exists and is younger than maxAge.
func (s *Snapshot) Fresh(maxAge time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result != nil && time.Since(s.result.FetchedAt) <= maxAge
}

func (s *Snapshot) SetHealth(report *HealthReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = report
}

func (s *Snapshot) Health() *HealthReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.health
}
