package service

import (
	"sync/atomic"
	"time"
)

// Stats counts completed requests since process start. Nothing here is
// persisted; a restart resets the counters.
type Stats struct {
	completions atomic.Uint64
	summaries   atomic.Uint64
	startedAt   time.Time
}

func NewStats() *Stats {
	return &Stats{startedAt: time.Now()}
}

func (s *Stats) CompletionDone() {
	s.completions.Add(1)
}

func (s *Stats) SummaryDone() {
	s.summaries.Add(1)
}

func (s *Stats) Snapshot() (completions, summaries uint64, uptime time.Duration) {
	return s.completions.Load(), s.summaries.Load(), time.Since(s.startedAt)
}
