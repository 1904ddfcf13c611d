package export

import (
	"sync/atomic"
	"time"
)

// Stats are the shared counters for one export run. Workers increment
// them concurrently, so every field is atomic.
type Stats struct {
	total     atomic.Int64
	processed atomic.Int64
	errors    atomic.Int64
	startNano atomic.Int64
}

// Begin resets the counters and stamps the fan-out start time.
func (s *Stats) Begin(total int) {
	s.total.Store(int64(total))
	s.processed.Store(0)
	s.errors.Store(0)
	s.startNano.Store(time.Now().UnixNano())
}

func (s *Stats) RecordProcessed() {
	s.processed.Add(1)
}

func (s *Stats) RecordError() {
	s.errors.Add(1)
}

// StatsSnapshot is one consistent-enough read of the counters with the
// derived display values.
type StatsSnapshot struct {
	Total     int64
	Processed int64
	Errors    int64
	Percent   float64
	Elapsed   time.Duration
	Rate      float64
}

func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		Total:     s.total.Load(),
		Processed: s.processed.Load(),
		Errors:    s.errors.Load(),
	}
	if start := s.startNano.Load(); start > 0 {
		snap.Elapsed = time.Since(time.Unix(0, start))
	}
	if snap.Total > 0 {
		snap.Percent = float64(snap.Processed+snap.Errors) / float64(snap.Total) * 100
	}
	if secs := snap.Elapsed.Seconds(); secs > 0 {
		snap.Rate = float64(snap.Processed) / secs
	}
	return snap
}
