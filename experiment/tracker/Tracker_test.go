package tracker

import (
	"path/filepath"
	"testing"

	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// episode returns the TimeSteps of an episode with the argument rewards
func episode(rewards ...float64) []ts.TimeStep {
	steps := []ts.TimeStep{ts.New(ts.First, 0, []int{0}, 0)}
	for i, r := range rewards {
		t := ts.Mid
		if i == len(rewards)-1 {
			t = ts.Last
		}
		steps = append(steps, ts.New(t, r, []int{0}, i+1))
	}
	return steps
}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "returns.gob")
	r := NewReturn(filename)

	for _, step := range episode(1, 1, 1) {
		r.Track(step)
	}
	for _, step := range episode(1, -100) {
		r.Track(step)
	}
	assert.Equal(t, []float64{3, -99}, r.Data())

	require.NoError(t, r.Save())
	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, -99}, data)
}

func TestReturnPanicsOnNonSequential(t *testing.T) {
	r := NewReturn("")
	r.Track(ts.New(ts.First, 0, []int{0}, 0))

	assert.Panics(t, func() {
		r.Track(ts.New(ts.Mid, 0, []int{0}, 2))
	})
}

func TestEpisodeLength(t *testing.T) {
	e := NewEpisodeLength(filepath.Join(t.TempDir(), "lengths.gob"))
	for _, step := range episode(1, 1, 1) {
		e.Track(step)
	}
	for _, step := range episode(1) {
		e.Track(step)
	}
	assert.Equal(t, []int{3, 1}, e.Data())
	assert.NoError(t, e.Save())
}

func TestLoadDataMissing(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.gob"))
	assert.Error(t, err)
}
