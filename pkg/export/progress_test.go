package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressReporterFinalRender(t *testing.T) {
	var stats Stats
	stats.Begin(10)
	for i := 0; i < 7; i++ {
		stats.RecordProcessed()
	}
	stats.RecordError()

	var buf bytes.Buffer
	// Long interval: no tick fires, only the final render.
	r := NewProgressReporter(&stats, time.Hour, &buf)
	r.Start()
	r.Stop()

	out := buf.String()
	assert.Contains(t, out, "8/10")
	assert.Contains(t, out, "errors: 1")
	assert.Contains(t, out, "80.0%")
}

func TestProgressReporterStopIsIdempotent(t *testing.T) {
	var stats Stats
	stats.Begin(1)

	var buf bytes.Buffer
	r := NewProgressReporter(&stats, time.Hour, &buf)
	r.Start()
	r.Stop()
	first := buf.Len()
	r.Stop()

	assert.Equal(t, first, buf.Len(), "second Stop must not render again")
}

func TestProgressReporterTicks(t *testing.T) {
	var stats Stats
	stats.Begin(4)
	stats.RecordProcessed()

	var buf bytes.Buffer
	r := NewProgressReporter(&stats, 5*time.Millisecond, &buf)
	r.Start()
	time.Sleep(30 * time.Millisecond)
	r.Stop()

	assert.Greater(t, bytes.Count(buf.Bytes(), []byte("\r")), 1,
		"expected multiple overwriting renders")
}

func TestStatsSnapshotZeroElapsedGuard(t *testing.T) {
	var stats Stats
	snap := stats.Snapshot()
	assert.Zero(t, snap.Rate)
	assert.Zero(t, snap.Percent)
}
