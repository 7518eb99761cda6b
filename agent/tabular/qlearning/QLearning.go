// Package qlearning implements the tabular Q-Learning algorithm.
//
// The behaviour policy is ε-greedy with respect to the learned action
// values and the target policy is greedy. By default the update target
// bootstraps off the value of the next state under the action that was
// just taken rather than the greedy action; see Bootstrap.
package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/tabq/agent"
	"github.com/samuelfneumann/tabq/agent/tabular/policy"
	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	"github.com/samuelfneumann/tabq/environment"
	ts "github.com/samuelfneumann/tabq/timestep"
	"golang.org/x/exp/rand"
)

// QLearning implements the Q-Learning algorithm
type QLearning struct {
	*Learner
	behaviour *policy.EGreedy
	target    *policy.GreedyPolicy
	eval      bool
}

var _ agent.EGreedyPolicy = &QLearning{}
var _ agent.Agent = &QLearning{}

// New creates a new QLearning agent learning table. The environment
// is used to sample exploratory actions. The initial exploration rate
// is epsilon.
func New(env environment.Environment, table *qtable.Table, c Config,
	epsilon float64, seed uint64) (*QLearning, error) {
	rng := rand.New(rand.NewSource(seed))
	return NewWithRand(env, table, c, epsilon, rng)
}

// NewWithRand creates a new QLearning agent whose ε-greedy draws come
// from rng
func NewWithRand(env environment.Environment, table *qtable.Table,
	c Config, epsilon float64, rng policy.Rand) (*QLearning, error) {
	if err := CheckShape(env, table); err != nil {
		return nil, fmt.Errorf("new: %w", err)
	}

	learner, err := NewLearner(table, c)
	if err != nil {
		return nil, fmt.Errorf("new: %v", err)
	}

	behaviour, err := policy.NewEGreedy(epsilon, table, rng, env)
	if err != nil {
		return nil, fmt.Errorf("new: invalid behaviour policy: %v", err)
	}
	target := policy.NewGreedy(table, env)

	return &QLearning{Learner: learner, behaviour: behaviour,
		target: target}, nil
}

// CheckShape ensures the table matches the state and action spaces of
// the environment
func CheckShape(env environment.Environment, table *qtable.Table) error {
	want := env.StateCardinalities()
	got := table.Cardinalities()
	if len(want) != len(got) || env.ActionCount() != table.Actions() {
		return fmt.Errorf("%w: table shape %v does not match environment "+
			"shape %v x %d", qtable.ErrInvalidShape, table.Shape(), want,
			env.ActionCount())
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("%w: table shape %v does not match "+
				"environment shape %v x %d", qtable.ErrInvalidShape,
				table.Shape(), want, env.ActionCount())
		}
	}
	return nil
}

// SelectAction selects an action using the behaviour policy in
// training mode and the target policy in evaluation mode
func (q *QLearning) SelectAction(t ts.TimeStep) (int, error) {
	if q.eval {
		return q.target.SelectAction(t)
	}
	return q.behaviour.SelectAction(t)
}

// SetEpsilon sets the exploration rate of the behaviour policy
func (q *QLearning) SetEpsilon(e float64) error {
	return q.behaviour.SetEpsilon(e)
}

// Epsilon returns the exploration rate of the behaviour policy
func (q *QLearning) Epsilon() float64 {
	return q.behaviour.Epsilon()
}

// Eval sets the agent to act greedily
func (q *QLearning) Eval() {
	q.eval = true
}

// Train sets the agent to act ε-greedily
func (q *QLearning) Train() {
	q.eval = false
}

// IsEval indicates if the agent is acting greedily
func (q *QLearning) IsEval() bool {
	return q.eval
}
