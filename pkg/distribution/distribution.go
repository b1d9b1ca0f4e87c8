package distribution

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// builder validates params and constructs the underlying distribution.
type builder func(params []float64, src rand.Source) (distuv.Rander, error)

var families = map[string]builder{
	"norm": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 2); err != nil {
			return nil, err
		}
		if p[1] <= 0 {
			return nil, fmt.Errorf("sigma must be positive, got %g", p[1])
		}
		return distuv.Normal{Mu: p[0], Sigma: p[1], Src: src}, nil
	},
	"lognorm": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 2); err != nil {
			return nil, err
		}
		if p[1] <= 0 {
			return nil, fmt.Errorf("sigma must be positive, got %g", p[1])
		}
		return distuv.LogNormal{Mu: p[0], Sigma: p[1], Src: src}, nil
	},
	"expon": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 1); err != nil {
			return nil, err
		}
		if p[0] <= 0 {
			return nil, fmt.Errorf("scale must be positive, got %g", p[0])
		}
		return distuv.Exponential{Rate: 1 / p[0], Src: src}, nil
	},
	"uniform": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 2); err != nil {
			return nil, err
		}
		if p[1] < p[0] {
			return nil, fmt.Errorf("max %g below min %g", p[1], p[0])
		}
		return distuv.Uniform{Min: p[0], Max: p[1], Src: src}, nil
	},
	"pareto": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 2); err != nil {
			return nil, err
		}
		if p[0] <= 0 || p[1] <= 0 {
			return nil, fmt.Errorf("xm and alpha must be positive, got %g, %g", p[0], p[1])
		}
		return distuv.Pareto{Xm: p[0], Alpha: p[1], Src: src}, nil
	},
	"weibull": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 2); err != nil {
			return nil, err
		}
		if p[0] <= 0 || p[1] <= 0 {
			return nil, fmt.Errorf("k and lambda must be positive, got %g, %g", p[0], p[1])
		}
		return distuv.Weibull{K: p[0], Lambda: p[1], Src: src}, nil
	},
	"gamma": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 2); err != nil {
			return nil, err
		}
		if p[0] <= 0 || p[1] <= 0 {
			return nil, fmt.Errorf("alpha and beta must be positive, got %g, %g", p[0], p[1])
		}
		return distuv.Gamma{Alpha: p[0], Beta: p[1], Src: src}, nil
	},
	"constant": func(p []float64, src rand.Source) (distuv.Rander, error) {
		if err := wantParams(p, 1); err != nil {
			return nil, err
		}
		if p[0] < 0 {
			return nil, fmt.Errorf("value must be non-negative, got %g", p[0])
		}
		return constant(p[0]), nil
	},
}

func wantParams(p []float64, n int) error {
	if len(p) != n {
		return fmt.Errorf("expected %d parameters, got %d", n, len(p))
	}
	return nil
}

// constant always returns the same value. Useful for degenerate profiles
// and deterministic tests.
type constant float64

func (c constant) Rand() float64 { return float64(c) }

// Sampler draws non-negative values from one parametrized distribution
// family. Immutable after construction; only the underlying RNG stream
// advances between calls.
type Sampler struct {
	family string
	params []float64
	dist   distuv.Rander
}

// New builds a sampler for the named family. It fails if the family is
// unknown or the parameters are invalid for that family.
func New(family string, params []float64, src rand.Source) (*Sampler, error) {
	build, found := families[family]
	if !found {
		return nil, fmt.Errorf("unknown distribution family %q", family)
	}
	dist, err := build(params, src)
	if err != nil {
		return nil, fmt.Errorf("distribution %q: %v", family, err)
	}
	return &Sampler{family: family, params: params, dist: dist}, nil
}

// Family returns the distribution family name the sampler was built from.
func (s *Sampler) Family() string {
	return s.family
}

// Sample returns one draw, clamped to zero from below.
func (s *Sampler) Sample() float64 {
	return math.Max(0, s.dist.Rand())
}
