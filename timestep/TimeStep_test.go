package timestep

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCopiesObservation(t *testing.T) {
	state := []int{1, 2, 3}
	step := New(First, 0, state, 0)

	state[0] = 9
	assert.Equal(t, []int{1, 2, 3}, step.Observation)
	assert.True(t, step.First())
	assert.False(t, step.Last())
}

func TestEndType(t *testing.T) {
	step := New(Mid, 1.0, []int{0}, 4)
	assert.Equal(t, Nil, step.EndType())

	step.StepType = Last
	step.SetEnd(Timeout)
	assert.True(t, step.Last())
	assert.Equal(t, Timeout, step.EndType())
	assert.Equal(t, "Timeout", step.EndType().String())
}
