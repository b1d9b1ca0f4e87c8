package metrics

import "github.com/prometheus/client_golang/prometheus"

const subsysReplay string = "tracie_replay"

var (
	jobTime = prometheus.NewSummary(prometheus.SummaryOpts{
		Subsystem: subsysReplay,
		Name:      "job_seconds",
		Help:      "Job wall time from dispatch to completion.",
	})

	engineTime = prometheus.NewSummary(prometheus.SummaryOpts{
		Subsystem: subsysReplay,
		Name:      "engine_seconds",
		Help:      "Wall time of external engine invocations.",
	})

	dispatchedJobs = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsysReplay,
		Name:      "dispatched_count",
		Help:      "Number of jobs dispatched from the trace.",
	})

	succeededJobs = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsysReplay,
		Name:      "succeeded_count",
		Help:      "Number of jobs that completed successfully.",
	})

	// failedJobs = dispatchedJobs - succeededJobs once the replay drains
	failedJobs = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsysReplay,
		Name:      "failed_count",
		Help:      "Number of jobs that failed on the external engine.",
	})

	simulatedJobs = prometheus.NewCounter(prometheus.CounterOpts{
		Subsystem: subsysReplay,
		Name:      "simulated_count",
		Help:      "Number of batch jobs replayed as pure simulation.",
	})
)

// RegisterReplay registers the replay collectors. Call at most once.
func RegisterReplay() {
	prometheus.MustRegister(jobTime, engineTime)
	prometheus.MustRegister(dispatchedJobs, succeededJobs, failedJobs, simulatedJobs)
}
