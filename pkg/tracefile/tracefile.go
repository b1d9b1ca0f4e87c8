package tracefile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
)

// Default trace file names shared by the generator and the executor.
const (
	DefaultJobsFile  = "generated_jobs.csv"
	DefaultTasksFile = "generated_tasks.csv"
)

var (
	jobsHeader  = []string{"job_id", "arrival_time_sec", "job_type", "app_type", "task_count"}
	tasksHeader = []string{"job_id", "task_arrival_timestamps_within_job"}
)

// Write persists the trace as the jobs/tasks CSV pair. Task rows follow
// the job order of tr.Jobs.
func Write(jobsPath, tasksPath string, tr *trace.Trace) error {
	if err := writeJobs(jobsPath, tr.Jobs); err != nil {
		return err
	}
	return writeTasks(tasksPath, tr)
}

func writeJobs(path string, jobs []trace.Job) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating jobs file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(jobsHeader); err != nil {
		return err
	}
	for _, job := range jobs {
		record := []string{
			strconv.Itoa(job.ID),
			formatSeconds(job.ArrivalTime),
			string(job.Class),
			job.App,
			strconv.Itoa(job.TaskCount),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeTasks(path string, tr *trace.Trace) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating tasks file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tasksHeader); err != nil {
		return err
	}
	for _, job := range tr.Jobs {
		record := make([]string, 0, 1+len(tr.Tasks[job.ID]))
		record = append(record, strconv.Itoa(job.ID))
		for _, offset := range tr.Tasks[job.ID] {
			record = append(record, formatSeconds(offset))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Read loads the trace pair and checks that every job has an offset list
// of the recorded length.
func Read(jobsPath, tasksPath string) (*trace.Trace, error) {
	jobs, err := ReadJobs(jobsPath)
	if err != nil {
		return nil, err
	}
	tasks, err := ReadTasks(tasksPath)
	if err != nil {
		return nil, err
	}

	for _, job := range jobs {
		offsets, found := tasks[job.ID]
		if !found {
			return nil, fmt.Errorf("job %d has no task arrival row", job.ID)
		}
		if len(offsets) != job.TaskCount {
			return nil, fmt.Errorf("job %d records %d tasks but has %d arrival offsets",
				job.ID, job.TaskCount, len(offsets))
		}
	}

	return &trace.Trace{Jobs: jobs, Tasks: tasks}, nil
}

// ReadJobs parses the jobs table.
func ReadJobs(path string) ([]trace.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening jobs file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading jobs file: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("jobs file %q is empty", path)
	}

	jobs := make([]trace.Job, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != len(jobsHeader) {
			return nil, fmt.Errorf("malformed jobs row %v", record)
		}
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("malformed job_id %q: %v", record[0], err)
		}
		arrival, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed arrival_time_sec %q: %v", record[1], err)
		}
		class := trace.JobClass(record[2])
		if class != trace.Batch && class != trace.Interactive {
			return nil, fmt.Errorf("unknown job_type %q", record[2])
		}
		count, err := strconv.Atoi(record[4])
		if err != nil || count < 1 {
			return nil, fmt.Errorf("malformed task_count %q", record[4])
		}
		jobs = append(jobs, trace.Job{
			ID:          id,
			ArrivalTime: arrival,
			Class:       class,
			App:         record[3],
			TaskCount:   count,
		})
	}
	return jobs, nil
}

// ReadTasks parses the variable-width tasks table.
func ReadTasks(path string) (trace.TaskTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening tasks file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading tasks file: %v", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("tasks file %q is empty", path)
	}

	tasks := make(trace.TaskTable, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			return nil, fmt.Errorf("malformed tasks row %v", record)
		}
		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("malformed job_id %q: %v", record[0], err)
		}
		offsets := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			offset, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed task offset %q: %v", field, err)
			}
			offsets = append(offsets, offset)
		}
		tasks[id] = offsets
	}
	return tasks, nil
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
