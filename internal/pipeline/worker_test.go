package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgallion1/outliner/internal/outline"
	"github.com/dgallion1/outliner/internal/resultstore"
)

var testMarkdown = []byte(`# Quarterly Review

An opening paragraph with enough running words to read as body text.

## Revenue

Revenue grew steadily across the quarter in every region we track.

## Expenses

Expenses stayed flat relative to the previous reporting period.
`)

func newTestWorker(t *testing.T, sink *resultstore.Client) *Worker {
	t.Helper()
	extractor, err := outline.NewExtractor(outline.DefaultConfig())
	if err != nil {
		t.Fatalf("new extractor: %v", err)
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewWorker(extractor, sink, NewProcessingStats(time.Hour), log)
}

func TestWorkerProcessMarkdown(t *testing.T) {
	w := newTestWorker(t, nil)
	job := NewJob("review.md", testMarkdown)

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	result := job.Result()
	if result == nil {
		t.Fatal("expected a result outline")
	}
	if result.Title != "Quarterly Review" {
		t.Errorf("expected title %q, got %q", "Quarterly Review", result.Title)
	}
	if len(result.Headings) < 2 {
		t.Fatalf("expected at least 2 headings, got %d", len(result.Headings))
	}
	if snap.Progress.Fragments == 0 || snap.Progress.Blocks == 0 {
		t.Errorf("expected progress counts, got %+v", snap.Progress)
	}
	if snap.Progress.Headings != len(result.Headings) {
		t.Errorf("progress headings %d != result headings %d",
			snap.Progress.Headings, len(result.Headings))
	}
}

func TestWorkerProcessUnsupportedFormat(t *testing.T) {
	w := newTestWorker(t, nil)
	job := NewJob("data.xlsx", []byte("not a document"))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %q", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected an error to be recorded")
	}
}

func TestWorkerProcessEmptyDocument(t *testing.T) {
	w := newTestWorker(t, nil)
	job := NewJob("empty.md", []byte(""))

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("empty document should complete with an empty outline, got %q", snap.Status)
	}
	result := job.Result()
	if result == nil || result.Headings == nil {
		t.Fatal("expected non-nil empty outline")
	}
	if len(result.Headings) != 0 {
		t.Errorf("expected 0 headings, got %d", len(result.Headings))
	}
}

func TestWorkerStoresToSink(t *testing.T) {
	var gotRec resultstore.OutlineRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotRec); err != nil {
			t.Errorf("decode sink request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	sink := resultstore.NewClient(srv.URL, "")
	defer sink.Close()

	w := newTestWorker(t, sink)
	job := NewJob("review.md", testMarkdown)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if gotRec.DocID != job.DocID {
		t.Errorf("sink received doc ID %q, expected %q", gotRec.DocID, job.DocID)
	}
	if gotRec.Outline == nil || gotRec.Outline.Title != "Quarterly Review" {
		t.Errorf("sink received unexpected outline: %+v", gotRec.Outline)
	}
}

func TestWorkerSinkPermanentFailureFailsJob(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	sink := resultstore.NewClient(srv.URL, "")
	defer sink.Close()

	w := newTestWorker(t, sink)
	job := NewJob("review.md", testMarkdown)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed after permanent sink error, got %q", snap.Status)
	}
	// The outline itself still computed; it stays readable from memory.
	if job.Result() == nil {
		t.Error("expected result to be kept despite sink failure")
	}
}
