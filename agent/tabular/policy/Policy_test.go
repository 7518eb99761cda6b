package policy

import (
	"errors"
	"testing"

	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// sequence returns the given uniform numbers in order, cycling
type sequence struct {
	values []float64
	i      int
}

func (s *sequence) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

// sampler records how often it was asked for an action
type sampler struct {
	action int
	calls  int
}

func (s *sampler) SampleAction() int {
	s.calls++
	return s.action
}

func newTable(t *testing.T) *qtable.Table {
	table, err := qtable.New([]int{2, 2}, 4)
	require.NoError(t, err)
	require.NoError(t, table.Set([]int{1, 0}, 2, 3.0))
	require.NoError(t, table.Set([]int{1, 0}, 3, 3.0))
	require.NoError(t, table.Set([]int{1, 0}, 0, -1.0))
	return table
}

func TestEpsilonGreedyZeroEpsilonExploits(t *testing.T) {
	table := newTable(t)
	explore := &sampler{action: 1}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		a, err := EpsilonGreedy(table, []int{1, 0}, 0, rng, explore)
		require.NoError(t, err)
		assert.Equal(t, 2, a) // lowest index of the tied maximum
	}
	assert.Equal(t, 0, explore.calls)

	// Even a draw of exactly zero does not explore
	a, err := EpsilonGreedy(table, []int{1, 0}, 0, &sequence{values: []float64{0}},
		explore)
	require.NoError(t, err)
	assert.Equal(t, 2, a)
	assert.Equal(t, 0, explore.calls)
}

func TestEpsilonGreedyOneEpsilonExplores(t *testing.T) {
	table := newTable(t)
	explore := &sampler{action: 1}
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		a, err := EpsilonGreedy(table, []int{1, 0}, 1, rng, explore)
		require.NoError(t, err)
		assert.Equal(t, 1, a)
	}
	assert.Equal(t, 1000, explore.calls)
}

func TestEpsilonGreedyThreshold(t *testing.T) {
	table := newTable(t)
	explore := &sampler{action: 0}
	rng := &sequence{values: []float64{0.1, 0.5, 0.9}}

	var actions []int
	for i := 0; i < 3; i++ {
		a, err := EpsilonGreedy(table, []int{1, 0}, 0.5, rng, explore)
		require.NoError(t, err)
		actions = append(actions, a)
	}
	assert.Equal(t, []int{0, 2, 2}, actions)
	assert.Equal(t, 1, explore.calls)
}

func TestEpsilonGreedyErrors(t *testing.T) {
	table := newTable(t)
	explore := &sampler{}
	rng := &sequence{values: []float64{0.9}}

	_, err := EpsilonGreedy(table, []int{1, 0}, 1.5, rng, explore)
	assert.Error(t, err)

	_, err = EpsilonGreedy(table, []int{2, 0}, 0, rng, explore)
	assert.True(t, errors.Is(err, qtable.ErrIndexOutOfRange), "got %v", err)

	_, err = EpsilonGreedy(&qtable.Table{}, nil, 0, rng, explore)
	assert.True(t, errors.Is(err, qtable.ErrEmptyActionSpace), "got %v", err)
}

func TestGreedyAllZeroFallsBack(t *testing.T) {
	table := newTable(t)
	explore := &sampler{action: 3}

	for i := 0; i < 10; i++ {
		a, err := Greedy(table, []int{0, 1}, explore)
		require.NoError(t, err)
		assert.Equal(t, 3, a)
	}
	assert.Equal(t, 10, explore.calls)
}

func TestGreedyArgmax(t *testing.T) {
	table := newTable(t)
	explore := &sampler{action: 1}

	a, err := Greedy(table, []int{1, 0}, explore)
	require.NoError(t, err)
	assert.Equal(t, 2, a)
	assert.Equal(t, 0, explore.calls)

	// A single negative value is enough to leave the all-zero fallback
	require.NoError(t, table.Set([]int{0, 0}, 0, -0.5))
	a, err = Greedy(table, []int{0, 0}, explore)
	require.NoError(t, err)
	assert.Equal(t, 1, a) // first zero beats the negative value
	assert.Equal(t, 0, explore.calls)

	_, err = Greedy(&qtable.Table{}, nil, explore)
	assert.True(t, errors.Is(err, qtable.ErrEmptyActionSpace), "got %v", err)
}

func TestPolicyStructs(t *testing.T) {
	table := newTable(t)
	explore := &sampler{action: 1}
	step := ts.New(ts.First, 0, []int{1, 0}, 0)

	p, err := NewEGreedy(1, table, &sequence{values: []float64{0.3}}, explore)
	require.NoError(t, err)

	a, err := p.SelectAction(step)
	require.NoError(t, err)
	assert.Equal(t, 1, a)

	require.NoError(t, p.SetEpsilon(0))
	assert.Equal(t, 0.0, p.Epsilon())
	a, err = p.SelectAction(step)
	require.NoError(t, err)
	assert.Equal(t, 2, a)

	assert.Error(t, p.SetEpsilon(-0.1))
	_, err = NewEGreedy(2, table, nil, explore)
	assert.Error(t, err)

	g := NewGreedy(table, explore)
	a, err = g.SelectAction(step)
	require.NoError(t, err)
	assert.Equal(t, 2, a)
}
