package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewUnknownFamily(t *testing.T) {
	_, err := New("zipf", []float64{1}, rand.NewSource(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown distribution family")
}

func TestNewInvalidParams(t *testing.T) {
	cases := []struct {
		name   string
		family string
		params []float64
	}{
		{"norm non-positive sigma", "norm", []float64{0, -1}},
		{"norm wrong param count", "norm", []float64{0}},
		{"expon non-positive scale", "expon", []float64{0}},
		{"uniform inverted bounds", "uniform", []float64{2, 1}},
		{"pareto non-positive alpha", "pareto", []float64{1, 0}},
		{"weibull non-positive k", "weibull", []float64{0, 1}},
		{"gamma non-positive beta", "gamma", []float64{1, -2}},
		{"constant negative value", "constant", []float64{-1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(c.family, c.params, rand.NewSource(1))
			require.Error(t, err)
		})
	}
}

func TestSampleNonNegative(t *testing.T) {
	// A negative mean makes raw draws mostly negative; clamping must
	// keep every sample at or above zero.
	s, err := New("norm", []float64{-5, 1}, rand.NewSource(7))
	require.NoError(t, err)

	for i := 0; i < 1000; i++ {
		if v := s.Sample(); v < 0 {
			t.Fatalf("negative sample %g", v)
		}
	}
}

func TestConstantSampler(t *testing.T) {
	s, err := New("constant", []float64{2.5}, rand.NewSource(1))
	require.NoError(t, err)
	assert.Equal(t, "constant", s.Family())
	for i := 0; i < 10; i++ {
		assert.Equal(t, 2.5, s.Sample())
	}
}

func TestSampleDeterministicStream(t *testing.T) {
	a, err := New("lognorm", []float64{0, 1}, rand.NewSource(42))
	require.NoError(t, err)
	b, err := New("lognorm", []float64{0, 1}, rand.NewSource(42))
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Sample(), b.Sample())
	}
}
