package metrics

import (
	"testing"
	"time"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
)

func TestRecorderJobTiming(t *testing.T) {
	r := NewRecorder()
	job := trace.Job{ID: 1, Class: trace.Interactive}

	r.JobDispatched(job)
	time.Sleep(5 * time.Millisecond)
	if elapsed := r.JobSucceeded(job); elapsed < 5*time.Millisecond {
		t.Errorf("Elapsed time too short: %v", elapsed)
	}

	// The entry is consumed; a second end yields no duration.
	if elapsed := r.JobSucceeded(job); elapsed != 0 {
		t.Errorf("Expected zero duration for unknown entry, got %v", elapsed)
	}
}

func TestRecorderDispatchIdempotent(t *testing.T) {
	r := NewRecorder()
	job := trace.Job{ID: 2, Class: trace.Batch}

	r.JobDispatched(job)
	first := r.entries[job.ID]
	r.JobDispatched(job)
	if r.entries[job.ID] != first {
		t.Errorf("Second dispatch overwrote the start time")
	}
}
