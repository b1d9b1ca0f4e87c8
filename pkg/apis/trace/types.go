package trace

// JobClass partitions jobs into the two replay branches.
type JobClass string

const (
	// Batch jobs either invoke the external engine or sleep for an
	// aggregate simulated duration.
	Batch JobClass = "B"
	// Interactive jobs fan out one simulated task per recorded offset.
	Interactive JobClass = "UF"
)

// Job is one row of the generated jobs table.
type Job struct {
	ID          int
	ArrivalTime float64 // seconds since trace start
	Class       JobClass
	App         string
	TaskCount   int
}

// TaskTable maps a job ID to its task arrival offsets in seconds,
// relative to the job's own start and sorted ascending. The offset list
// length always equals the job's TaskCount.
type TaskTable map[int][]float64

// Trace pairs the job sequence with its task arrival table.
type Trace struct {
	Jobs  []Job
	Tasks TaskTable
}
