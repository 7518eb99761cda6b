package rlcar

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShape(t *testing.T) {
	car, step, err := New(Config{}, 1)
	require.NoError(t, err)
	defer car.Close()

	assert.Equal(t, []int{3, 3, 3, 3}, car.StateCardinalities())
	assert.Equal(t, 7, car.ActionCount())
	assert.Equal(t, ActionNames, car.ActionNames())
	assert.Len(t, car.obstacles, NumObstacles)

	assert.True(t, step.First())
	assert.Len(t, step.Observation, len(SensorAngles))
	for _, s := range step.Observation {
		assert.True(t, s >= 0 && s < SensorBins)
	}
}

func TestObstaclesClearOfStart(t *testing.T) {
	car, _, err := New(Config{}, 7)
	require.NoError(t, err)
	defer car.Close()

	for _, o := range car.obstacles {
		d := math.Hypot(o.x-StartX, o.y-StartY)
		assert.GreaterOrEqual(t, d, StartClear)
	}
}

func TestSensorsWithoutObstacles(t *testing.T) {
	car, _, err := New(Config{}, 1)
	require.NoError(t, err)
	defer car.Close()

	// Zero obstacles selects the default, so remove them by hand
	for _, o := range car.obstacles {
		car.world.DestroyBody(o.body)
	}
	car.obstacles = nil
	step, err := car.Reset()
	require.NoError(t, err)

	// From the left wall midway up, no sensor reaches a wall
	for i, reading := range step.Features {
		assert.InDelta(t, SensorLength, reading, 1e-6, "sensor %d", i)
	}
	assert.Equal(t, []int{2, 2, 2, 2}, step.Observation)
}

func TestCrashIntoWall(t *testing.T) {
	car, _, err := New(Config{}, 1)
	require.NoError(t, err)
	defer car.Close()

	// Rotate to face the left wall, then drive into it
	for i := 0; i < 12; i++ {
		_, done, err := car.Step(LZ)
		require.NoError(t, err)
		require.False(t, done)
	}
	_, _, angle := car.Position()
	assert.InDelta(t, math.Pi, angle, 1e-9)

	// Starting 20 pixels from the wall, the second step ends within a
	// car radius of it
	step, done, err := car.Step(Straight)
	require.NoError(t, err)
	require.False(t, done)

	step, done, err = car.Step(Straight)
	require.NoError(t, err)
	assert.True(t, done)
	assert.True(t, step.Last())
	assert.Equal(t, ts.TerminalStateReached, step.EndType())
	assert.Equal(t, CrashReward, step.Reward)
}

func TestSurvivingStepReward(t *testing.T) {
	car, _, err := New(Config{}, 1)
	require.NoError(t, err)
	defer car.Close()

	step, done, err := car.Step(Straight)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, StepReward, step.Reward)
	assert.Equal(t, 1, step.Number)

	x, y, _ := car.Position()
	assert.InDelta(t, StartX+CarSpeed, x, 1e-9)
	assert.InDelta(t, StartY, y, 1e-9)
}

func TestIllegalAction(t *testing.T) {
	car, _, err := New(Config{}, 1)
	require.NoError(t, err)
	defer car.Close()

	_, _, err = car.Step(len(ActionNames))
	assert.Error(t, err)
}

func TestNegativeObstacles(t *testing.T) {
	_, _, err := New(Config{Obstacles: -1}, 1)
	assert.Error(t, err)
}

func TestCloseTwice(t *testing.T) {
	car, _, err := New(Config{}, 1)
	require.NoError(t, err)

	require.NoError(t, car.Close())
	assert.Error(t, car.Close())

	_, err = car.Reset()
	assert.Error(t, err)
}

func TestRenderFrames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	car, _, err := New(Config{FrameDir: dir}, 1)
	require.NoError(t, err)
	defer car.Close()

	require.NoError(t, car.Render())
	_, _, err = car.Step(Straight)
	require.NoError(t, err)
	require.NoError(t, car.Render())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRenderWithoutFrameDir(t *testing.T) {
	car, _, err := New(Config{}, 1)
	require.NoError(t, err)
	defer car.Close()

	assert.NoError(t, car.Render())
}
