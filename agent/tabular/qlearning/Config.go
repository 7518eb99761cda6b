package qlearning

import (
	"fmt"
	"math"
)

// Bootstrap determines which next-state action value the update
// target bootstraps off
type Bootstrap string

const (
	// BootstrapTaken bootstraps off the value of the next state under
	// the action just taken: q(s', a)
	BootstrapTaken Bootstrap = "Taken"

	// BootstrapMax bootstraps off the greedy value of the next state:
	// max_a' q(s', a')
	BootstrapMax Bootstrap = "Max"
)

// Config represents a configuration for the QLearning agent
type Config struct {
	LearningRate float64
	Discount     float64

	// Bootstrap defaults to BootstrapTaken when empty
	Bootstrap Bootstrap
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	if c.LearningRate < 0 {
		return fmt.Errorf("learning rate cannot be lower than 0")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("discount %v outside [0, 1]", c.Discount)
	}
	switch c.Bootstrap {
	case "", BootstrapTaken, BootstrapMax:
	default:
		return fmt.Errorf("unknown bootstrap target %q", c.Bootstrap)
	}
	return nil
}

// Schedule is an exponentially decaying exploration rate schedule.
// The exploration rate on episode e is:
//
//	Min + (Max - Min) * exp(-DecayRate * e)
type Schedule struct {
	Min       float64
	Max       float64
	DecayRate float64
}

// Validate ensures that the Schedule is valid
func (s Schedule) Validate() error {
	if s.Min < 0 || s.Min > 1 {
		return fmt.Errorf("minimum epsilon %v outside [0, 1]", s.Min)
	}
	if s.Max < 0 || s.Max > 1 {
		return fmt.Errorf("maximum epsilon %v outside [0, 1]", s.Max)
	}
	if s.Min > s.Max {
		return fmt.Errorf("minimum epsilon %v exceeds maximum %v", s.Min,
			s.Max)
	}
	if s.DecayRate < 0 {
		return fmt.Errorf("decay rate cannot be lower than 0")
	}
	return nil
}

// At returns the exploration rate for the argument (0-based) episode
func (s Schedule) At(episode int) float64 {
	if episode == 0 {
		return s.Max
	}
	return s.Min + (s.Max-s.Min)*math.Exp(-s.DecayRate*float64(episode))
}
