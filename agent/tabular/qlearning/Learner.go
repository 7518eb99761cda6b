package qlearning

import (
	"fmt"

	"github.com/samuelfneumann/tabq/agent/tabular/qtable"
	"github.com/samuelfneumann/tabq/timestep"
	"github.com/samuelfneumann/tabq/utils/floatutils"
)

// Learner implements the temporal difference update of the Q-Learning
// algorithm on a qtable.Table
type Learner struct {
	table        *qtable.Table
	learningRate float64
	discount     float64
	bootstrap    Bootstrap

	step     timestep.TimeStep
	action   int
	nextStep timestep.TimeStep
	observed bool
}

// NewLearner creates a new Learner updating table
func NewLearner(table *qtable.Table, c Config) (*Learner, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("newLearner: %v", err)
	}

	bootstrap := c.Bootstrap
	if bootstrap == "" {
		bootstrap = BootstrapTaken
	}

	return &Learner{
		table:        table,
		learningRate: c.LearningRate,
		discount:     c.Discount,
		bootstrap:    bootstrap,
	}, nil
}

// Update performs a single temporal difference update of the value of
// taking action in state, which led to next with the argument reward:
//
//	q(s, a) += α * (r + γ * q(s', ·) - q(s, a))
//
// where q(s', ·) is determined by the Learner's Bootstrap setting.
func (l *Learner) Update(state []int, action int, reward float64,
	next []int) error {
	current, err := l.table.Get(state, action)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	var nextValue float64
	switch l.bootstrap {
	case BootstrapMax:
		row, err := l.table.Row(next)
		if err != nil {
			return fmt.Errorf("update: %w", err)
		}
		nextValue, _ = floatutils.MaxSlice(row)

	default:
		nextValue, err = l.table.Get(next, action)
		if err != nil {
			return fmt.Errorf("update: %w", err)
		}
	}

	// Equivalent to current + α(target - current), but exact for
	// α = 0 and α = 1
	target := reward + l.discount*nextValue
	updated := (1-l.learningRate)*current + l.learningRate*target
	if err := l.table.Set(state, action, updated); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return nil
}

// ObserveFirst observes and records the first episodic timestep
func (l *Learner) ObserveFirst(t timestep.TimeStep) error {
	if !t.First() {
		return fmt.Errorf("observeFirst: should only be called on the "+
			"first timestep (current timestep = %d)", t.Number)
	}
	l.step = timestep.TimeStep{}
	l.nextStep = t
	l.observed = false
	return nil
}

// Observe observes and records any timestep other than the first
// timestep
func (l *Learner) Observe(action int, nextStep timestep.TimeStep) error {
	if l.nextStep.Observation == nil {
		return fmt.Errorf("observe: ObserveFirst must be called before " +
			"Observe")
	}
	l.step = l.nextStep
	l.action = action
	l.nextStep = nextStep
	l.observed = true
	return nil
}

// Step updates the action values using the last observed transition
func (l *Learner) Step() error {
	if !l.observed {
		return fmt.Errorf("step: no transition observed")
	}
	l.observed = false

	return l.Update(l.step.Observation, l.action, l.nextStep.Reward,
		l.nextStep.Observation)
}

// EndEpisode performs cleanup at the end of an episode
func (l *Learner) EndEpisode() {
	l.step = timestep.TimeStep{}
	l.nextStep = timestep.TimeStep{}
	l.observed = false
}

// Table returns the table being learned
func (l *Learner) Table() *qtable.Table {
	return l.table
}
