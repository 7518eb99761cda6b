package policy

import (
	"fmt"

	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	"github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/samuelfneumann/tabq/utils/floatutils"
)

// Greedy selects the greedy action in state, breaking ties in favour
// of the lowest action index. A state whose action values are all
// exactly zero has never been updated, so its action is sampled from
// explore instead.
func Greedy(q *qtable.Table, state []int,
	explore environment.ActionSampler) (int, error) {
	if q.Actions() == 0 {
		return 0, fmt.Errorf("greedy: %w", qtable.ErrEmptyActionSpace)
	}

	row, err := q.Row(state)
	if err != nil {
		return 0, fmt.Errorf("greedy: %w", err)
	}

	if floatutils.AllEqual(row, 0.0) {
		return explore.SampleAction(), nil
	}
	return floatutils.Argmax(row), nil
}

// GreedyPolicy implements the greedy policy over a qtable.Table
type GreedyPolicy struct {
	table   *qtable.Table
	explore environment.ActionSampler
}

// NewGreedy creates a new GreedyPolicy
func NewGreedy(table *qtable.Table,
	explore environment.ActionSampler) *GreedyPolicy {
	return &GreedyPolicy{table, explore}
}

// SelectAction selects the greedy action
func (p *GreedyPolicy) SelectAction(t ts.TimeStep) (int, error) {
	return Greedy(p.table, t.Observation, p.explore)
}
