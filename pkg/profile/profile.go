package profile

import (
	"fmt"
	"os"

	"golang.org/x/exp/rand"
	"sigs.k8s.io/yaml"

	"github.com/tracie-bench/tracie/pkg/apis/trace"
	"github.com/tracie-bench/tracie/pkg/distribution"
)

// Parameter base keys. Each combines with a job class suffix ("B" or
// "UF") to name one sampler, e.g. "J_D_B" is the batch job duration.
const (
	JobDuration      = "J_D"
	TaskDuration     = "T_D"
	JobInterArrival  = "J_AT"
	TaskInterArrival = "T_AT"
)

var baseKeys = []string{JobDuration, TaskDuration, JobInterArrival, TaskInterArrival}

// PDF describes one parametrized distribution in the profile document.
type PDF struct {
	Type   string    `json:"type"`
	Params []float64 `json:"params"`
}

type profileSpec struct {
	Name             string         `json:"name"`
	BatchProbability float64        `json:"P_B"`
	AppPool          []string       `json:"app_pool"`
	Parameters       map[string]PDF `json:"parameters"`
}

// Profile is a loaded workload profile: read-only configuration shared
// by the trace generator.
type Profile struct {
	Name             string
	BatchProbability float64
	AppPool          []string
	Samplers         map[string]*distribution.Sampler
}

// Load reads a profile document (YAML or JSON) and binds one sampler per
// declared parameter to src.
func Load(path string, src rand.Source) (*Profile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %v", err)
	}

	var spec profileSpec
	if err := yaml.Unmarshal(content, &spec); err != nil {
		return nil, fmt.Errorf("parsing profile: %v", err)
	}

	if spec.BatchProbability < 0 || spec.BatchProbability > 1 {
		return nil, fmt.Errorf("P_B must be within [0,1], got %g", spec.BatchProbability)
	}
	if len(spec.AppPool) == 0 {
		return nil, fmt.Errorf("app_pool must not be empty")
	}

	samplers := make(map[string]*distribution.Sampler, len(baseKeys)*2)
	for _, base := range baseKeys {
		for _, class := range []trace.JobClass{trace.Batch, trace.Interactive} {
			key := base + "_" + string(class)
			pdf, found := spec.Parameters[key]
			if !found {
				return nil, fmt.Errorf("missing parameter %q", key)
			}
			sampler, err := distribution.New(pdf.Type, pdf.Params, src)
			if err != nil {
				return nil, fmt.Errorf("parameter %q: %v", key, err)
			}
			samplers[key] = sampler
		}
	}

	return &Profile{
		Name:             spec.Name,
		BatchProbability: spec.BatchProbability,
		AppPool:          spec.AppPool,
		Samplers:         samplers,
	}, nil
}

// SamplerFor returns the sampler for a base key and job class.
func (p *Profile) SamplerFor(base string, class trace.JobClass) *distribution.Sampler {
	return p.Samplers[base+"_"+string(class)]
}
