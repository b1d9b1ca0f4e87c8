package generator

import (
	"math"
	"sort"
	"time"

	"golang.org/x/exp/rand"
	"k8s.io/klog"

	"github.com/tracie-bench/tracie/cmd/generator/options"
	"github.com/tracie-bench/tracie/pkg/apis/trace"
	"github.com/tracie-bench/tracie/pkg/profile"
	"github.com/tracie-bench/tracie/pkg/tracefile"
)

// minTaskDuration floors the task duration sample so the task count
// ratio never divides by zero.
const minTaskDuration = 1e-6

// Generator turns a workload profile into a job trace. One RNG stream
// drives every draw, so a fixed seed reproduces the trace bit for bit.
// Generate consumes the stream: repeat runs need a fresh Generator.
type Generator struct {
	profile       *profile.Profile
	numJobs       int
	arrivalScale  float64
	durationScale float64
	jobsOut       string
	tasksOut      string
	rng           *rand.Rand
}

func NewGenerator(opt *options.Option) (*Generator, error) {
	seed := opt.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewSource(seed)

	prof, err := profile.Load(opt.Profile, src)
	if err != nil {
		return nil, err
	}

	gen := New(prof, opt.NumJobs, opt.ArrivalScale, opt.DurationScale, src)
	gen.jobsOut = opt.JobsOut
	gen.tasksOut = opt.TasksOut
	return gen, nil
}

// New builds a generator over an already-loaded profile. The profile's
// samplers must be bound to src.
func New(prof *profile.Profile, numJobs int, arrivalScale, durationScale float64, src rand.Source) *Generator {
	return &Generator{
		profile:       prof,
		numJobs:       numJobs,
		arrivalScale:  arrivalScale,
		durationScale: durationScale,
		rng:           rand.New(src),
	}
}

func (g *Generator) Run() error {
	klog.Infof("Generating %d jobs from profile %q (arrival scale %g, duration scale %g)",
		g.numJobs, g.profile.Name, g.arrivalScale, g.durationScale)

	tr := g.Generate()

	err := tracefile.Write(g.jobsOut, g.tasksOut, tr)
	if err != nil {
		return err
	}

	klog.Infof("Wrote %d jobs to %s and their task arrivals to %s",
		len(tr.Jobs), g.jobsOut, g.tasksOut)
	return nil
}

// Generate materializes the whole trace, jobs sorted by arrival time
// with ties kept in ID order.
func (g *Generator) Generate() *trace.Trace {
	tr := &trace.Trace{
		Jobs:  make([]trace.Job, 0, g.numJobs),
		Tasks: make(trace.TaskTable, g.numJobs),
	}

	tTotal := 0.0
	for id := 0; id < g.numJobs; id++ {
		class := trace.Interactive
		if g.rng.Float64() < g.profile.BatchProbability {
			class = trace.Batch
		}

		jobDuration := g.profile.SamplerFor(profile.JobDuration, class).Sample()
		taskDuration := math.Max(g.profile.SamplerFor(profile.TaskDuration, class).Sample(), minTaskDuration)
		interArrival := g.profile.SamplerFor(profile.JobInterArrival, class).Sample()

		// The scale factor applies to every inter-arrival gap, never to
		// the accumulated arrival time.
		tTotal += interArrival * g.arrivalScale

		taskCount := int(jobDuration / taskDuration * g.durationScale)
		if taskCount < 1 {
			taskCount = 1
		}

		app := g.profile.AppPool[g.rng.Intn(len(g.profile.AppPool))]

		taskSampler := g.profile.SamplerFor(profile.TaskInterArrival, class)
		offsets := make([]float64, taskCount)
		withinJob := 0.0
		for k := range offsets {
			withinJob += taskSampler.Sample()
			offsets[k] = roundMicros(withinJob)
		}

		tr.Jobs = append(tr.Jobs, trace.Job{
			ID:          id,
			ArrivalTime: roundMicros(tTotal),
			Class:       class,
			App:         app,
			TaskCount:   taskCount,
		})
		tr.Tasks[id] = offsets
	}

	// Arrivals are non-decreasing by construction; the stable sort keeps
	// ID order for equal arrivals in the degenerate arrival-scale 0 mode.
	sort.SliceStable(tr.Jobs, func(i, j int) bool {
		return tr.Jobs[i].ArrivalTime < tr.Jobs[j].ArrivalTime
	})

	return tr
}

func roundMicros(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
