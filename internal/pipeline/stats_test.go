package pipeline

import (
	"testing"
	"time"
)

func TestProcessingStatsSnapshotPercentiles(t *testing.T) {
	stats := NewProcessingStats(time.Hour)
	stats.Record(100, 3, false)
	stats.Record(200, 2, false)
	stats.Record(300, 0, false)
	stats.Record(400, 1, false)
	stats.Record(500, 0, true)

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.Completed != 4 || snap.Failed != 1 {
		t.Fatalf("expected 4 completed / 1 failed, got %d / %d", snap.Completed, snap.Failed)
	}
	if snap.Headings != 6 {
		t.Fatalf("expected 6 headings emitted, got %d", snap.Headings)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestProcessingStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewProcessingStats(10 * time.Millisecond)
	stats.Record(100, 3, false)
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}
	// Lifetime counters survive the window.
	if snap.Completed != 1 {
		t.Fatalf("expected completed=1 after prune, got %d", snap.Completed)
	}
	if snap.Headings != 3 {
		t.Fatalf("expected headings=3 after prune, got %d", snap.Headings)
	}

	stats.Record(200, 2, false)
	snap = stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinMs != 200 || snap.MaxMs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestProcessingStatsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewProcessingStats(time.Hour)
	stats.Record(-10, 0, false)
	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}
