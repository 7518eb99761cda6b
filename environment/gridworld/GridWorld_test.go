package gridworld

import (
	"bytes"
	"testing"

	env "github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGridWorld(t *testing.T) *GridWorld {
	s := env.NewSingleStarter([]int{0, 0})
	task, err := NewGoal(s, []int{2}, []int{1}, 2, 3, TimeStepReward,
		GoalReward)
	require.NoError(t, err)

	g, step, err := New(2, 3, task, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, step.Observation)
	return g
}

func TestGridWorldWalls(t *testing.T) {
	g := newGridWorld(t)
	assert.Equal(t, []int{3, 2}, g.StateCardinalities())
	assert.Equal(t, 4, g.ActionCount())

	step, done, err := g.Step(Left)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, []int{0, 0}, step.Observation)
	assert.Equal(t, TimeStepReward, step.Reward)

	step, _, err = g.Step(Down)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0}, step.Observation)
	assert.Equal(t, 2, step.Number)

	_, _, err = g.Step(7)
	assert.Error(t, err)
}

func TestGridWorldReachesGoal(t *testing.T) {
	g := newGridWorld(t)

	var step ts.TimeStep
	var done bool
	var err error
	for _, a := range []int{Right, Right, Up} {
		step, done, err = g.Step(a)
		require.NoError(t, err)
	}

	assert.True(t, done)
	assert.True(t, step.Last())
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.Equal(t, []int{2, 1}, step.Observation)
	assert.Equal(t, GoalReward, step.Reward)

	step, err = g.Reset()
	require.NoError(t, err)
	assert.True(t, step.First())
	assert.Equal(t, []int{0, 0}, step.Observation)
}

func TestGridWorldRender(t *testing.T) {
	g := newGridWorld(t)
	var buf bytes.Buffer
	g.SetOutput(&buf)

	require.NoError(t, g.Render())
	assert.Contains(t, buf.String(), "A")
	assert.Contains(t, buf.String(), "G")
	assert.NoError(t, g.Close())
}

func TestNewGoalBounds(t *testing.T) {
	s := env.NewSingleStarter([]int{0, 0})
	_, err := NewGoal(s, []int{3}, []int{0}, 2, 3, -1, 0)
	assert.Error(t, err)
	_, err = NewGoal(s, []int{0, 1}, []int{0}, 2, 3, -1, 0)
	assert.Error(t, err)
}

func TestResetRejectsStartOutsideGrid(t *testing.T) {
	s := env.NewSingleStarter([]int{5, 0})
	task, err := NewGoal(s, []int{0}, []int{0}, 2, 3, -1, 0)
	require.NoError(t, err)

	_, _, err = New(2, 3, task, 1)
	assert.Error(t, err)
}
