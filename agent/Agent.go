// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/tabq/timestep"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns action values, and a
// Policy which chooses actions in each state. The Policy chooses which
// actions are taken, and the Learner uses these actions to update the
// action values the Policy acts on.
type Agent interface {
	Learner
	Policy

	// Eval sets the agent to act with its target policy, Train sets
	// the agent to act with its behaviour policy
	Eval()
	Train()
	IsEval() bool
}

// Learner implements a learning algorithm that defines how action
// values are updated.
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action int, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should reference the same action values so that
// any changes the learner makes are reflected in the actions the
// Policy chooses.
type Policy interface {
	SelectAction(t timestep.TimeStep) (int, error)
}

// EGreedyPolicy is a Policy whose exploration rate can be set and
// retrieved, for example to decay exploration between episodes
type EGreedyPolicy interface {
	Policy
	SetEpsilon(float64) error
	Epsilon() float64
}
