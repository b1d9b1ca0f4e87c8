package executor

import (
	"errors"
	"sync"
	"time"

	"k8s.io/klog"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
	"github.com/tracie-bench/tracie/pkg/engine"
)

// runJob drives one job to completion. Failures never escape the job:
// sibling jobs and the scheduling loop are unaffected.
func (e *Executor) runJob(job trace.Job, offsets []float64) {
	e.recorder.JobDispatched(job)

	switch job.Class {
	case trace.Interactive:
		e.runInteractive(job, offsets)
	case trace.Batch:
		e.runBatch(job)
	}
}

// runInteractive fans out one goroutine per recorded task offset and
// waits for all of them. Task simulation has no failure path.
func (e *Executor) runInteractive(job trace.Job, offsets []float64) {
	jobStart := time.Now()
	klog.Infof("%.2fs | job %d (UF, %s) started, expecting %d tasks",
		e.SimTime().Seconds(), job.ID, job.App, job.TaskCount)

	var wg sync.WaitGroup
	for i := range offsets {
		wg.Add(1)
		go func(taskID int, offset float64) {
			defer wg.Done()
			e.runInteractiveTask(job, taskID, jobStart, offset)
		}(i, offsets[i])
	}
	wg.Wait()

	elapsed := e.recorder.JobSucceeded(job)
	klog.Infof("%.2fs | job %d (UF) completed all %d tasks (%.2fs)",
		e.SimTime().Seconds(), job.ID, job.TaskCount, elapsed.Seconds())
}

func (e *Executor) runInteractiveTask(job trace.Job, taskID int, jobStart time.Time, offset float64) {
	if wait := time.Until(jobStart.Add(durationSeconds(offset))); wait > 0 {
		time.Sleep(wait)
	}

	start := time.Now()
	klog.V(2).Infof("%.2fs | job %d (UF) -> task %d arrived",
		e.SimTime().Seconds(), job.ID, taskID)

	time.Sleep(e.ufTaskTime)

	klog.V(2).Infof("%.2fs | job %d (UF) <- task %d done (%.3fs)",
		e.SimTime().Seconds(), job.ID, taskID, time.Since(start).Seconds())
}

// runBatch invokes the external engine when the job's app has a
// registered command template, and falls back to an aggregate simulated
// sleep otherwise.
func (e *Executor) runBatch(job trace.Job) {
	tmpl, found := engine.GetTemplate(job.App)
	if !found {
		e.simulateBatch(job)
		return
	}

	klog.Infof("%.2fs | job %d (B, %s) started on engine: %s",
		e.SimTime().Seconds(), job.ID, job.App, engine.CommandLine(e.engineConf, tmpl, job))

	start := time.Now()
	err := engine.Invoke(e.engineConf, tmpl, job)
	e.recorder.EngineInvocation(time.Since(start))

	if err == nil {
		elapsed := e.recorder.JobSucceeded(job)
		klog.Infof("%.2fs | job %d (B, %s) completed on engine (%.2fs)",
			e.SimTime().Seconds(), job.ID, job.App, elapsed.Seconds())
		return
	}

	elapsed := e.recorder.JobFailed(job)
	var notFound *engine.NotFoundError
	var exitErr *engine.ExitError
	switch {
	case errors.As(err, &notFound):
		klog.Errorf("%.2fs | job %d (B, %s) failed: %v; check the engine configuration",
			e.SimTime().Seconds(), job.ID, job.App, err)
	case errors.As(err, &exitErr):
		klog.Errorf("%.2fs | job %d (B, %s) failed on engine (%.2fs): %v, stderr: %s",
			e.SimTime().Seconds(), job.ID, job.App, elapsed.Seconds(), err, exitErr.Stderr)
	default:
		klog.Errorf("%.2fs | job %d (B, %s) failed on engine (%.2fs): %v",
			e.SimTime().Seconds(), job.ID, job.App, elapsed.Seconds(), err)
	}
}

func (e *Executor) simulateBatch(job trace.Job) {
	e.recorder.JobSimulated(job)
	klog.Infof("%.2fs | job %d (B, %s) started in simulation, %d tasks",
		e.SimTime().Seconds(), job.ID, job.App, job.TaskCount)

	time.Sleep(time.Duration(job.TaskCount) * e.batchTaskTime)

	elapsed := e.recorder.JobSucceeded(job)
	klog.Infof("%.2fs | job %d (B) completed in simulation (%.2fs)",
		e.SimTime().Seconds(), job.ID, elapsed.Seconds())
}
