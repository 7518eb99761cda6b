package environment

import (
	"testing"

	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestDiscreteSpec(t *testing.T) {
	spec := NewDiscreteSpec(Observation, []int{3, 3, 3, 3})

	assert.Equal(t, []int{3, 3, 3, 3}, spec.Cardinalities())
	assert.Equal(t, Discrete, spec.Cardinality)
	assert.True(t, spec.Contains([]int{0, 1, 2, 2}))
	assert.False(t, spec.Contains([]int{3, 0, 0, 0}))
	assert.False(t, spec.Contains([]int{0, -1, 0, 0}))
	assert.False(t, spec.Contains([]int{0, 0, 0}))
}

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	step := ts.New(ts.Mid, 1, []int{0}, 2)
	assert.False(t, limit.End(&step))
	assert.True(t, step.Mid())

	step = ts.New(ts.Mid, 1, []int{0}, 3)
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
	assert.Equal(t, ts.Timeout, step.EndType())
}

func TestFunctionEnder(t *testing.T) {
	goal := NewFunctionEnder(func(s []int) bool {
		return s[0] == 2 && s[1] == 2
	}, ts.TerminalStateReached)

	step := ts.New(ts.Mid, 0, []int{2, 1}, 1)
	assert.False(t, goal.End(&step))

	step = ts.New(ts.Mid, 0, []int{2, 2}, 2)
	assert.True(t, goal.End(&step))
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
}

func TestIntervalLimit(t *testing.T) {
	_, err := NewIntervalLimit([]r1.Interval{{Min: 0, Max: 1}}, nil,
		ts.TerminalStateReached)
	assert.Error(t, err)

	limit, err := NewIntervalLimit([]r1.Interval{{Min: -1, Max: 1}}, []int{1},
		ts.TerminalStateReached)
	require.NoError(t, err)

	step := ts.New(ts.Mid, 0, []int{0}, 1)
	step.Features = []float64{100, 0.5}
	assert.False(t, limit.End(&step))

	step.Features = []float64{0, -1.5}
	assert.True(t, limit.End(&step))
	assert.True(t, step.Last())
}

func TestDiscretizer(t *testing.T) {
	d, err := NewDiscretizer([]r1.Interval{
		{Min: 0, Max: 3},
		{Min: -1, Max: 1},
	}, []int{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, d.Cardinalities())

	assert.Equal(t, []int{0, 0}, d.Discretize([]float64{0, -1}))
	assert.Equal(t, []int{1, 1}, d.Discretize([]float64{1.5, 0.5}))
	assert.Equal(t, []int{2, 1}, d.Discretize([]float64{3, 1}))
	assert.Equal(t, []int{2, 0}, d.Discretize([]float64{10, -10}))

	_, err = NewDiscretizer([]r1.Interval{{Min: 1, Max: 1}}, []int{2})
	assert.Error(t, err)
}

func TestStarters(t *testing.T) {
	c, err := NewCategoricalStarter([]int{3, 1}, 42)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		start := c.Start()
		assert.True(t, start[0] >= 0 && start[0] < 3)
		assert.Equal(t, 0, start[1])
	}

	_, err = NewCategoricalStarter([]int{0}, 42)
	assert.Error(t, err)

	single := NewSingleStarter([]int{1, 2})
	start := single.Start()
	start[0] = 5
	assert.Equal(t, []int{1, 2}, single.Start())

	u := NewUniformStarter([]r1.Interval{{Min: 2, Max: 3}}, 42)
	for i := 0; i < 100; i++ {
		f := u.StartFeatures()
		assert.True(t, f[0] >= 2 && f[0] <= 3)
	}
}

func TestUniformActions(t *testing.T) {
	sampler := NewUniformActions(7, 1)
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		a := sampler.SampleAction()
		require.True(t, a >= 0 && a < 7)
		seen[a] = true
	}
	assert.Len(t, seen, 7)
}
