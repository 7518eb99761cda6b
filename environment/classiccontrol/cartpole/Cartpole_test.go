package cartpole

import (
	"testing"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestCartpoleFallsWithoutControl(t *testing.T) {
	task, err := NewDefaultBalance(0, 3)
	require.NoError(t, err)

	c, step, err := New(task, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, DefaultBins, c.StateCardinalities())
	assert.Equal(t, 3, c.ActionCount())
	assert.True(t, step.First())
	assert.Len(t, step.Features, 4)

	spec := env.NewDiscreteSpec(env.Observation, c.StateCardinalities())
	done := false
	steps := 0
	for !done && steps < 1000 {
		step, done, err = c.Step(2)
		require.NoError(t, err)
		require.True(t, spec.Contains(step.Observation), "%v", step)
		steps++
	}

	// Constantly pushing right topples the pole
	assert.True(t, done)
	assert.True(t, step.Last())
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.Less(t, steps, 1000)
}

func TestCartpoleStepLimit(t *testing.T) {
	task, err := NewDefaultBalance(5, 3)
	require.NoError(t, err)
	c, _, err := New(task, nil, 3)
	require.NoError(t, err)

	var step ts.TimeStep
	done := false
	for i := 0; i < 5 && !done; i++ {
		// Alternate pushes to keep the pole up for a few steps
		step, done, err = c.Step(i % 2 * 2)
		require.NoError(t, err)
	}
	assert.True(t, done)
	assert.Equal(t, ts.Timeout, step.EndType())
}

func TestCartpoleIllegalAction(t *testing.T) {
	task, err := NewDefaultBalance(0, 3)
	require.NoError(t, err)
	c, _, err := New(task, nil, 3)
	require.NoError(t, err)

	_, _, err = c.Step(3)
	assert.Error(t, err)
	assert.NoError(t, c.Render())
	assert.NoError(t, c.Close())
}

func TestCartpoleBadStart(t *testing.T) {
	s := env.NewUniformStarter([]r1.Interval{{Min: 10, Max: 11},
		{}, {}, {}}, 1)
	task, err := NewBalance(s, 0, FailAngle)
	require.NoError(t, err)

	_, _, err = New(task, nil, 1)
	assert.Error(t, err)
}

func BenchmarkCartpoleStep(b *testing.B) {
	task, _ := NewDefaultBalance(0, 1)
	c, _, err := New(task, nil, 1)
	if err != nil {
		b.Fatal(err)
	}

	for i := 0; i < b.N; i++ {
		if _, done, _ := c.Step(i % 3); done {
			c.Reset()
		}
	}
}
