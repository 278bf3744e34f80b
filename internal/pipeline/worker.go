package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/outliner/internal/fragment"
	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/resultstore"
)

// Worker processes a single document job.
type Worker struct {
	extractor *outline.Extractor
	sink      *resultstore.Client // nil when no sink is configured
	stats     *ProcessingStats
	log       *slog.Logger
}

func NewWorker(extractor *outline.Extractor, sink *resultstore.Client, stats *ProcessingStats, log *slog.Logger) *Worker {
	return &Worker{
		extractor: extractor,
		sink:      sink,
		stats:     stats,
		log:       log,
	}
}

// Process runs the full extraction pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	start := time.Now()
	fail := func(phase string, headings int) {
		job.SetStatus(StatusFailed, phase)
		w.stats.Record(time.Since(start).Milliseconds(), headings, true)
	}

	// Phase 1: Extract positioned fragments from the raw file.
	job.SetStatus(StatusExtracting, "extracting")
	src, err := fragment.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		fail("extracting", 0)
		return
	}

	frags, err := src.Extract(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("fragment extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		fail("extracting", 0)
		return
	}
	job.SetCounts(len(frags), -1, -1)

	// Phase 2: Normalize and score.
	job.SetStatus(StatusAnalyzing, "analyzing")
	blocks := outline.Normalize(frags)
	job.SetCounts(-1, len(blocks), -1)

	// Phase 3: Assemble the outline. An empty document is a valid
	// result, not a failure.
	job.SetStatus(StatusAssembling, "assembling")
	result := w.extractor.ExtractBlocks(blocks)
	job.SetCounts(-1, -1, len(result.Headings))
	log.Info("outline assembled",
		"fragments", len(frags),
		"blocks", len(blocks),
		"headings", len(result.Headings),
		"title", result.Title)

	// Phase 4: Push to the result sink when one is configured.
	if w.sink != nil {
		job.SetStatus(StatusStoring, "storing")
		if err := w.store(ctx, job, &result); err != nil {
			log.Error("sink store failed", "error", err)
			job.AddError(fmt.Sprintf("store: %s", err))
			job.SetResult(&result)
			fail("storing", len(result.Headings))
			return
		}
	}

	job.SetResult(&result)
	job.SetStatus(StatusCompleted, "done")
	w.stats.Record(time.Since(start).Milliseconds(), len(result.Headings), false)
}

// store pushes the outline to the sink, retrying transient failures.
func (w *Worker) store(ctx context.Context, job *Job, result *outline.Outline) error {
	rec := resultstore.OutlineRecord{
		DocID:       job.DocID,
		Filename:    job.Filename,
		Outline:     result,
		ProcessedAt: time.Now().UTC(),
	}

	var lastErr error
	for attempt := range MaxRetries {
		lastErr = w.sink.PutOutline(ctx, rec)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		w.log.Warn("retryable sink error", "job_id", job.ID, "attempt", attempt, "error", lastErr)
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
