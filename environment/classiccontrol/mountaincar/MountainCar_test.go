package mountaincar

import (
	"bytes"
	"testing"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestMountainCarRocksToGoal(t *testing.T) {
	task, err := NewDefaultGoal(0, 1)
	require.NoError(t, err)

	m, step, err := New(task, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, DefaultBins, m.StateCardinalities())
	assert.Equal(t, 3, m.ActionCount())
	assert.True(t, step.First())

	// Accelerating in the direction of travel pumps energy into the car
	spec := env.NewDiscreteSpec(env.Observation, m.StateCardinalities())
	done := false
	steps := 0
	for !done && steps < 1000 {
		action := 2
		if step.Features[1] < 0 {
			action = 0
		}
		step, done, err = m.Step(action)
		require.NoError(t, err)
		require.True(t, spec.Contains(step.Observation), "%v", step)
		steps++

		if !done {
			assert.Equal(t, -1.0, step.Reward)
		}
	}

	assert.True(t, done)
	assert.Equal(t, 0.0, step.Reward)
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
}

func TestMountainCarStepLimit(t *testing.T) {
	task, err := NewDefaultGoal(3, 1)
	require.NoError(t, err)
	m, _, err := New(task, nil, 1)
	require.NoError(t, err)

	var step ts.TimeStep
	for i := 0; i < 3; i++ {
		step, _, err = m.Step(1)
		require.NoError(t, err)
	}
	assert.True(t, step.Last())
	assert.Equal(t, ts.Timeout, step.EndType())
}

func TestMountainCarIllegalAction(t *testing.T) {
	task, err := NewDefaultGoal(0, 1)
	require.NoError(t, err)
	m, _, err := New(task, nil, 1)
	require.NoError(t, err)

	_, _, err = m.Step(3)
	assert.Error(t, err)
}

func TestMountainCarBadStart(t *testing.T) {
	s := env.NewUniformStarter([]r1.Interval{{Min: 1, Max: 1},
		{Min: 0, Max: 0}}, 1)
	task, err := NewGoal(s, 0, GoalPosition)
	require.NoError(t, err)

	_, _, err = New(task, nil, 1)
	assert.Error(t, err)
}

func TestMountainCarRender(t *testing.T) {
	task, err := NewDefaultGoal(0, 1)
	require.NoError(t, err)
	m, _, err := New(task, nil, 1)
	require.NoError(t, err)

	var buf bytes.Buffer
	m.SetOutput(&buf)
	require.NoError(t, m.Render())
	assert.Contains(t, buf.String(), "🚗")
}
