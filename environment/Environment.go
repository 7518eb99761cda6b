// Package environment outlines the interfaces and structs needed to
// implement concrete environments with discretized states and discrete
// actions
package environment

import (
	ts "github.com/samuelfneumann/tabq/timestep"
)

// ActionSampler samples uniformly random valid actions
type ActionSampler interface {
	SampleAction() int
}

// Starter implements a distribution of starting states and samples
// discrete starting states for environments
type Starter interface {
	Start() []int
}

// Ender determines when episodes end. If End returns true, it sets
// the StepType of the argument TimeStep to timestep.Last and records
// the reason the episode ended.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Environment implements a simulated environment whose observations
// are discretized states. Each state component i lies in
// [0, StateCardinalities()[i]) and actions lie in [0, ActionCount()).
type Environment interface {
	ActionSampler

	// Reset resets the environment between episodes and returns the
	// first TimeStep of the new episode
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step given action and returns the
	// next TimeStep and whether the episode has terminated
	Step(action int) (ts.TimeStep, bool, error)

	StateCardinalities() []int
	ActionCount() int

	// Render visualizes the current state of the environment
	Render() error

	// Close releases any resources held by the environment
	Close() error
}

// ActionNamer is an Environment whose actions have human readable
// names, indexed by action
type ActionNamer interface {
	ActionNames() []string
}
