package options

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/tracie-bench/tracie/pkg/tracefile"
)

type Option struct {
	JobsFile           string
	TasksFile          string
	UFTaskTime         float64
	BatchTaskTime      float64
	EngineConf         string
	Yes                bool
	MetricsBindAddress string
}

func NewOption() *Option {
	o := Option{}
	return &o
}

func (o *Option) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.JobsFile, "jobs-file", tracefile.DefaultJobsFile, "Input jobs table")
	fs.StringVar(&o.TasksFile, "tasks-file", tracefile.DefaultTasksFile, "Input task arrival table")
	fs.Float64Var(&o.UFTaskTime, "uf-task-time", 0.05, "Simulated duration of one UF task in seconds")
	fs.Float64Var(&o.BatchTaskTime, "batch-task-time", 0.1, "Simulated duration of one batch task in seconds")
	fs.StringVar(&o.EngineConf, "engine-conf", "", "Engine configuration file; built-in defaults are used when empty")
	fs.BoolVar(&o.Yes, "yes", false, "Start the replay without waiting for confirmation")
	fs.StringVar(&o.MetricsBindAddress, "metrics-bind-address", "", "Address to serve Prometheus metrics on during the replay; disabled when empty")
}

func (o *Option) CheckOptionOrDie() error {
	if o.JobsFile == "" || o.TasksFile == "" {
		return fmt.Errorf("jobs and tasks files must be specified")
	}
	if o.UFTaskTime < 0 || o.BatchTaskTime < 0 {
		return fmt.Errorf("simulated task durations must be non-negative")
	}
	return nil
}
