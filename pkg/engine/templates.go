package engine

import (
	"fmt"
	"strconv"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
)

// Template builds the engine command line for one application
// identifier. Whether a batch job runs on the real engine or falls back
// to simulation depends only on its app having a registered template.
type Template interface {
	Name() string
	// Args returns the launcher arguments, starting with the jar
	// invocation keyword.
	Args(conf *Conf, job trace.Job) []string
}

var templates = map[string]Template{}

// RegisterTemplate wires an application identifier to its engine command.
func RegisterTemplate(t Template) {
	templates[t.Name()] = t
}

// GetTemplate looks up the template registered for an app identifier.
func GetTemplate(app string) (Template, bool) {
	t, found := templates[app]
	return t, found
}

func init() {
	RegisterTemplate(piTemplate{})
	RegisterTemplate(wordcountTemplate{})
	RegisterTemplate(grepTemplate{})
	RegisterTemplate(terasortTemplate{})
}

const (
	samplesPerMap    = 1000
	grepPattern      = "Tracie"
	teragenRowFactor = 1000
)

// piTemplate scales the map count directly from the job's task count.
type piTemplate struct{}

func (piTemplate) Name() string { return "pi" }

func (piTemplate) Args(conf *Conf, job trace.Job) []string {
	return []string{"jar", conf.Jar, "pi", strconv.Itoa(job.TaskCount), strconv.Itoa(samplesPerMap)}
}

// wordcountTemplate needs pre-staged input; task count cannot steer it,
// so only the output location varies with the job.
type wordcountTemplate struct{}

func (wordcountTemplate) Name() string { return "wordcount" }

func (wordcountTemplate) Args(conf *Conf, job trace.Job) []string {
	return []string{"jar", conf.Jar, "wordcount", "/inputs/wordcount_data",
		fmt.Sprintf("/outputs/wordcount_%d", job.ID)}
}

// grepTemplate needs pre-staged input like wordcount.
type grepTemplate struct{}

func (grepTemplate) Name() string { return "grep" }

func (grepTemplate) Args(conf *Conf, job trace.Job) []string {
	return []string{"jar", conf.Jar, "grep", "/inputs/grep_data",
		fmt.Sprintf("/outputs/grep_%d", job.ID), grepPattern}
}

// terasortTemplate runs teragen, the write-heavy half of the benchmark.
// Task counts are small, so they scale up to a row count.
type terasortTemplate struct{}

func (terasortTemplate) Name() string { return "terasort" }

func (terasortTemplate) Args(conf *Conf, job trace.Job) []string {
	return []string{"jar", conf.Jar, "teragen",
		strconv.Itoa(job.TaskCount * teragenRowFactor),
		fmt.Sprintf("/outputs/teragen_%d", job.ID)}
}
