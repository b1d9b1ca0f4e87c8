package metrics

import (
	"fmt"
	"sync"
	"time"

	"k8s.io/klog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
)

// Recorder tracks per-job dispatch-to-completion wall time and feeds the
// replay collectors. Job units run concurrently, so the entry map is
// mutex-guarded.
type Recorder struct {
	mu      sync.Mutex
	entries map[int]time.Time
}

func NewRecorder() *Recorder {
	return &Recorder{
		entries: make(map[int]time.Time),
	}
}

// JobDispatched starts the job's wall-time observation.
func (r *Recorder) JobDispatched(job trace.Job) {
	r.entryStart(job.ID, dispatchedJobs)
}

// JobSucceeded ends the observation and returns the elapsed wall time.
func (r *Recorder) JobSucceeded(job trace.Job) time.Duration {
	return r.entryEnd(job.ID, jobTime, succeededJobs)
}

// JobFailed ends the observation for a failed job.
func (r *Recorder) JobFailed(job trace.Job) time.Duration {
	return r.entryEnd(job.ID, jobTime, failedJobs)
}

// JobSimulated counts a batch job replayed without the external engine.
func (r *Recorder) JobSimulated(job trace.Job) {
	simulatedJobs.Inc()
}

// EngineInvocation observes the wall time of one engine run.
func (r *Recorder) EngineInvocation(elapsed time.Duration) {
	engineTime.Observe(elapsed.Seconds())
}

func (r *Recorder) entryStart(id int, counterInc prometheus.Counter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.entries[id]; !found {
		r.entries[id] = time.Now()
		counterInc.Inc()
	}
}

func (r *Recorder) entryEnd(id int, summary prometheus.Summary, counterInc prometheus.Counter) time.Duration {
	r.mu.Lock()
	start, found := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()

	if !found {
		klog.V(4).Infof("error recording job %d: %v", id, fmt.Errorf("entry not exist to provide a duration"))
		return 0
	}
	elapsed := time.Since(start)
	summary.Observe(elapsed.Seconds())
	counterInc.Inc()
	return elapsed
}
