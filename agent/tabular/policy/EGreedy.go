// Package policy implements policies over tabular action values
package policy

import (
	"fmt"

	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	"github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"github.com/samuelfneumann/tabq/utils/floatutils"
)

// Rand is a source of uniform random numbers in [0, 1)
type Rand interface {
	Float64() float64
}

// EpsilonGreedy selects an action in state from an ε-greedy policy
// over the action values in q. A uniform number u in [0, 1) is drawn
// from rng; if u >= epsilon the greedy action is returned, with ties
// broken in favour of the lowest action index. Otherwise, the action
// is sampled from explore. The boundary u == epsilon exploits so that
// an epsilon of 0 never explores, even when u is exactly 0.
func EpsilonGreedy(q *qtable.Table, state []int, epsilon float64, rng Rand,
	explore environment.ActionSampler) (int, error) {
	if q.Actions() == 0 {
		return 0, fmt.Errorf("epsilonGreedy: %w", qtable.ErrEmptyActionSpace)
	}
	if err := validateEpsilon(epsilon); err != nil {
		return 0, fmt.Errorf("epsilonGreedy: %v", err)
	}

	if rng.Float64() >= epsilon {
		row, err := q.Row(state)
		if err != nil {
			return 0, fmt.Errorf("epsilonGreedy: %w", err)
		}
		return floatutils.Argmax(row), nil
	}
	return explore.SampleAction(), nil
}

func validateEpsilon(epsilon float64) error {
	if epsilon < 0 || epsilon > 1 {
		return fmt.Errorf("epsilon %v outside [0, 1]", epsilon)
	}
	return nil
}

// EGreedy implements an ε-greedy policy over a qtable.Table. The
// exploration rate can be changed between action selections.
type EGreedy struct {
	table   *qtable.Table
	epsilon float64
	rng     Rand
	explore environment.ActionSampler
}

// NewEGreedy constructs a new EGreedy policy, where e=epsilon is the
// probability with which the exploratory action sampler is used rather
// than the greedy action in the table
func NewEGreedy(e float64, table *qtable.Table, rng Rand,
	explore environment.ActionSampler) (*EGreedy, error) {
	if err := validateEpsilon(e); err != nil {
		return nil, fmt.Errorf("newEGreedy: %v", err)
	}
	return &EGreedy{table, e, rng, explore}, nil
}

// SelectAction selects an action from an ε-greedy policy
func (p *EGreedy) SelectAction(t ts.TimeStep) (int, error) {
	return EpsilonGreedy(p.table, t.Observation, p.epsilon, p.rng, p.explore)
}

// SetEpsilon sets the exploration rate of the policy
func (p *EGreedy) SetEpsilon(e float64) error {
	if err := validateEpsilon(e); err != nil {
		return fmt.Errorf("setEpsilon: %v", err)
	}
	p.epsilon = e
	return nil
}

// Epsilon returns the exploration rate of the policy
func (p *EGreedy) Epsilon() float64 {
	return p.epsilon
}
