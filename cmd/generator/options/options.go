package options

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/tracie-bench/tracie/pkg/tracefile"
)

type Option struct {
	Profile       string
	NumJobs       int
	ArrivalScale  float64
	DurationScale float64
	JobsOut       string
	TasksOut      string
	Seed          uint64
}

func NewOption() *Option {
	o := Option{}
	return &o
}

func (o *Option) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Profile, "profile", "", "Workload profile to use")
	fs.IntVar(&o.NumJobs, "num-jobs", 0, "Total number of jobs to generate")
	fs.Float64Var(&o.ArrivalScale, "arrival-scale", 1.0, "Scaling factor applied to every job inter-arrival sample")
	fs.Float64Var(&o.DurationScale, "duration-scale", 1.0, "Scaling factor applied to every job's task count")
	fs.StringVar(&o.JobsOut, "jobs-out", tracefile.DefaultJobsFile, "Output file for the jobs table")
	fs.StringVar(&o.TasksOut, "tasks-out", tracefile.DefaultTasksFile, "Output file for the task arrival table")
	fs.Uint64Var(&o.Seed, "seed", 0, "RNG seed; 0 seeds from the current time")
}

func (o *Option) CheckOptionOrDie() error {
	if o.Profile == "" {
		return fmt.Errorf("profile file must be specified")
	}
	if o.NumJobs <= 0 {
		return fmt.Errorf("number of jobs must be positive")
	}
	if o.ArrivalScale < 0 {
		return fmt.Errorf("arrival scale must be non-negative")
	}
	if o.DurationScale < 0 {
		return fmt.Errorf("duration scale must be non-negative")
	}
	return nil
}
