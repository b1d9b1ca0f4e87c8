package executor

import (
	"errors"
	"sort"
	"sync"
	"time"

	"k8s.io/klog"

	"github.com/tracie-bench/tracie/cmd/executor/options"
	"github.com/tracie-bench/tracie/pkg/apis/trace"
	"github.com/tracie-bench/tracie/pkg/engine"
	"github.com/tracie-bench/tracie/pkg/metrics"
	"github.com/tracie-bench/tracie/pkg/tracefile"
)

// ErrInterrupted reports an external abort during scheduling. Jobs
// dispatched before the abort are not awaited on this path.
var ErrInterrupted = errors.New("replay interrupted")

// Executor replays a generated trace against the wall clock: one
// goroutine per job, dispatched in arrival order from a single reference
// start instant.
type Executor struct {
	trace         *trace.Trace
	engineConf    *engine.Conf
	ufTaskTime    time.Duration
	batchTaskTime time.Duration
	recorder      *metrics.Recorder
	baseTimestamp time.Time
}

func NewExecutor(opt *options.Option) (*Executor, error) {
	tr, err := tracefile.Read(opt.JobsFile, opt.TasksFile)
	if err != nil {
		return nil, err
	}

	conf, err := engine.LoadConf(opt.EngineConf)
	if err != nil {
		return nil, err
	}

	// Replay order is arrival time, ties broken by job ID.
	sort.Slice(tr.Jobs, func(i, j int) bool {
		if tr.Jobs[i].ArrivalTime != tr.Jobs[j].ArrivalTime {
			return tr.Jobs[i].ArrivalTime < tr.Jobs[j].ArrivalTime
		}
		return tr.Jobs[i].ID < tr.Jobs[j].ID
	})

	return &Executor{
		trace:         tr,
		engineConf:    conf,
		ufTaskTime:    durationSeconds(opt.UFTaskTime),
		batchTaskTime: durationSeconds(opt.BatchTaskTime),
		recorder:      metrics.NewRecorder(),
	}, nil
}

// JobCount returns the number of jobs loaded from the trace.
func (e *Executor) JobCount() int {
	return len(e.trace.Jobs)
}

// Run starts the replay clock and blocks until every dispatched job
// completes, or until stopCh closes while waiting for a job's arrival.
func (e *Executor) Run(stopCh <-chan struct{}) error {
	e.baseTimestamp = time.Now()
	klog.Infof("Replay started: %d jobs", len(e.trace.Jobs))

	var wg sync.WaitGroup
	for i := range e.trace.Jobs {
		job := e.trace.Jobs[i]

		// Late jobs dispatch immediately; there is no catch-up burst.
		if remaining := e.untilArrival(job); remaining > 0 {
			timer := time.NewTimer(remaining)
			select {
			case <-timer.C:
			case <-stopCh:
				timer.Stop()
				klog.Errorf("%.2fs | interrupted with %d of %d jobs dispatched",
					e.SimTime().Seconds(), i, len(e.trace.Jobs))
				return ErrInterrupted
			}
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			e.runJob(job, e.trace.Tasks[job.ID])
		}()
	}

	klog.Infof("%.2fs | all %d jobs dispatched, waiting for completion",
		e.SimTime().Seconds(), len(e.trace.Jobs))
	wg.Wait()

	klog.Infof("Replay finished, total time %.2fs", e.SimTime().Seconds())
	return nil
}

// SimTime is the elapsed wall time since the replay clock started.
func (e *Executor) SimTime() time.Duration {
	return time.Since(e.baseTimestamp)
}

func (e *Executor) untilArrival(job trace.Job) time.Duration {
	return time.Until(e.baseTimestamp.Add(durationSeconds(job.ArrivalTime)))
}

func durationSeconds(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
