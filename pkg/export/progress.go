package export

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// ProgressReporter renders a single overwriting status line on a fixed
// interval for the lifetime of one fan-out.
type ProgressReporter struct {
	stats    *Stats
	interval time.Duration
	w        io.Writer

	done     chan struct{}
	finished sync.WaitGroup
	stopOnce sync.Once
}

func NewProgressReporter(stats *Stats, interval time.Duration, w io.Writer) *ProgressReporter {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	if w == nil {
		w = io.Discard
	}
	return &ProgressReporter{
		stats:    stats,
		interval: interval,
		w:        w,
		done:     make(chan struct{}),
	}
}

func (r *ProgressReporter) Start() {
	r.finished.Add(1)
	go func() {
		defer r.finished.Done()
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.render()
			case <-r.done:
				return
			}
		}
	}()
}

// Stop ends the ticker loop, waits for it, and renders one final line so
// the terminal reflects the true final counts. Safe to call twice.
func (r *ProgressReporter) Stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		r.finished.Wait()
		r.render()
		fmt.Fprintln(r.w)
	})
}

func (r *ProgressReporter) render() {
	snap := r.stats.Snapshot()
	fmt.Fprintf(r.w, "\r[*] Processing users: %d/%d (%.1f%%) | errors: %d | elapsed: %s | %.1f users/s",
		snap.Processed+snap.Errors, snap.Total, snap.Percent, snap.Errors,
		snap.Elapsed.Truncate(time.Second), snap.Rate)
}
